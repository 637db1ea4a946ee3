package http

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/licenseiq/internal/app"
	"github.com/neomorfeo/licenseiq/internal/domain"
)

// Register adds all API routes to the Huma API.
func Register(api huma.API, catalog *app.CatalogService, ledger *app.LicenseService, assignments *app.AssignmentService, requests *app.RequestService) {
	registerCatalog(api, catalog)
	registerLicenses(api, ledger, requests)
	registerAssignments(api, assignments)
}

// toHumaError translates domain errors to Huma HTTP errors. Every domain
// error kind keeps its specific message so callers can render an
// actionable failure instead of a generic one.
func toHumaError(err error) error {
	switch {
	case errors.Is(err, domain.ErrOrganizationNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrLicenseNotFound),
		errors.Is(err, domain.ErrAssignmentNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, domain.ErrMissingPrincipal):
		return huma.Error401Unauthorized(err.Error())
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return huma.Error422UnprocessableEntity(validationErr.Error())
	}

	var transitionErr *domain.TransitionError
	if errors.As(err, &transitionErr) {
		return huma.Error422UnprocessableEntity(transitionErr.Error())
	}

	var capacityErr *domain.CapacityError
	if errors.As(err, &capacityErr) {
		return huma.Error409Conflict(capacityErr.Error())
	}

	var duplicateErr *domain.DuplicateAssignmentError
	if errors.As(err, &duplicateErr) {
		return huma.Error409Conflict(duplicateErr.Error())
	}

	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		return huma.Error409Conflict(conflictErr.Error())
	}

	var codeErr *domain.ProductCodeConflictError
	if errors.As(err, &codeErr) {
		return huma.Error409Conflict(codeErr.Error())
	}

	var stateErr *domain.InvalidStateError
	if errors.As(err, &stateErr) {
		return huma.Error409Conflict(stateErr.Error())
	}

	var forbiddenErr *domain.ForbiddenError
	if errors.As(err, &forbiddenErr) {
		return huma.Error403Forbidden(forbiddenErr.Error())
	}

	return huma.Error500InternalServerError("internal server error")
}
