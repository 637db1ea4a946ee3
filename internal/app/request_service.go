package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neomorfeo/licenseiq/internal/domain"
)

// DefaultSeats is the seat allocation applied on approval when the
// approver does not override it. A policy default, not an invariant;
// the composition root may configure a different value.
const DefaultSeats = 10

// RequestService runs the client-facing license request workflow: a client
// administrator requests a license for a product, and an approval
// authority resolves the request into an active ledger entry or a denial.
type RequestService struct {
	licenses     domain.LicenseRepository
	orgs         domain.OrganizationRepository
	products     domain.ProductRepository
	publisher    domain.EventPublisher
	validator    domain.TransitionValidator
	principals   domain.PrincipalResolver
	clock        domain.Clock
	locks        *LicenseLocks
	defaultSeats int
}

// NewRequestService creates a request workflow service. defaultSeats <= 0
// falls back to DefaultSeats.
func NewRequestService(
	licenses domain.LicenseRepository,
	orgs domain.OrganizationRepository,
	products domain.ProductRepository,
	publisher domain.EventPublisher,
	validator domain.TransitionValidator,
	principals domain.PrincipalResolver,
	clock domain.Clock,
	locks *LicenseLocks,
	defaultSeats int,
) *RequestService {
	if defaultSeats <= 0 {
		defaultSeats = DefaultSeats
	}
	return &RequestService{
		licenses:     licenses,
		orgs:         orgs,
		products:     products,
		publisher:    publisher,
		validator:    validator,
		principals:   principals,
		clock:        clock,
		locks:        locks,
		defaultSeats: defaultSeats,
	}
}

// RequestLicense creates a license in the requested status for the
// (organization, product) pair. At most one requested-or-active license
// may exist per pair; a denied, expired, inactive or suspended license
// does not block a fresh request.
func (s *RequestService) RequestLicense(ctx context.Context, orgID, productID, requestedBy string) (domain.License, error) {
	principal, err := s.principals.Resolve(ctx)
	if err != nil {
		return domain.License{}, err
	}
	if principal.Role != domain.RoleClientAdmin && principal.Role != domain.RoleApprover {
		return domain.License{}, &domain.ForbiddenError{Need: domain.RoleClientAdmin}
	}
	if requestedBy == "" {
		requestedBy = principal.UserID
	}

	if _, err := s.orgs.GetByID(ctx, orgID); err != nil {
		return domain.License{}, err
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return domain.License{}, err
	}

	if blocking, err := s.licenses.FindBlocking(ctx, orgID, productID); err == nil {
		return domain.License{}, &domain.ConflictError{
			OrganizationID: orgID,
			ProductID:      productID,
			Status:         blocking.Status,
		}
	} else if !errors.Is(err, domain.ErrLicenseNotFound) {
		return domain.License{}, err
	}

	id, err := generateID()
	if err != nil {
		return domain.License{}, fmt.Errorf("generating license id: %w", err)
	}

	// Seat configuration is decided at approval time; until then the
	// license permits no assignments anyway (status is not active).
	license := domain.NewLicense(id, orgID, productID, domain.TypeSeat, 0,
		nil, nil, domain.StatusRequested, s.clock.Now())
	license.RequestedBy = requestedBy

	if err := s.licenses.Create(ctx, license); err != nil {
		return domain.License{}, err
	}

	if err := s.publisher.Publish(ctx, domain.EventRequested, license); err != nil {
		return domain.License{}, fmt.Errorf("publishing request event: %w", err)
	}

	return license, nil
}

// ApproveParams holds the optional seat and date overrides applied on
// approval.
type ApproveParams struct {
	TotalSeats *int
	StartDate  *time.Time
	EndDate    *time.Time
}

// Approve transitions a requested license to active, applying the given
// seat count (or the configured default) and validity window.
func (s *RequestService) Approve(ctx context.Context, licenseID string, params ApproveParams) (domain.License, error) {
	if err := s.requireApprover(ctx); err != nil {
		return domain.License{}, err
	}

	unlock := s.locks.Lock(licenseID)
	defer unlock()

	license, err := s.licenses.GetByID(ctx, licenseID)
	if err != nil {
		return domain.License{}, err
	}

	newStatus, err := s.validator.Apply(ctx, license.Status, domain.EventApprove)
	if err != nil {
		return domain.License{}, err
	}

	license.TotalSeats = s.defaultSeats
	if params.TotalSeats != nil {
		license.TotalSeats = *params.TotalSeats
	}
	license.StartDate = params.StartDate
	license.EndDate = params.EndDate
	license.Status = newStatus

	if err := license.Validate(); err != nil {
		return domain.License{}, err
	}

	license.UpdatedAt = s.clock.Now()
	if err := s.licenses.Update(ctx, license); err != nil {
		return domain.License{}, err
	}

	if err := s.publisher.Publish(ctx, domain.EventApprove, license); err != nil {
		return domain.License{}, fmt.Errorf("publishing approval event: %w", err)
	}

	return license, nil
}

// Deny transitions a requested license to denied, recording the optional
// reason. Denied is terminal.
func (s *RequestService) Deny(ctx context.Context, licenseID, reason string) (domain.License, error) {
	if err := s.requireApprover(ctx); err != nil {
		return domain.License{}, err
	}

	unlock := s.locks.Lock(licenseID)
	defer unlock()

	license, err := s.licenses.GetByID(ctx, licenseID)
	if err != nil {
		return domain.License{}, err
	}

	newStatus, err := s.validator.Apply(ctx, license.Status, domain.EventDeny)
	if err != nil {
		return domain.License{}, err
	}

	license.Status = newStatus
	license.DenialReason = reason
	license.UpdatedAt = s.clock.Now()

	if err := s.licenses.Update(ctx, license); err != nil {
		return domain.License{}, err
	}

	if err := s.publisher.Publish(ctx, domain.EventDeny, license); err != nil {
		return domain.License{}, fmt.Errorf("publishing denial event: %w", err)
	}

	return license, nil
}

func (s *RequestService) requireApprover(ctx context.Context) error {
	principal, err := s.principals.Resolve(ctx)
	if err != nil {
		return err
	}
	if principal.Role != domain.RoleApprover {
		return &domain.ForbiddenError{Need: domain.RoleApprover}
	}
	return nil
}
