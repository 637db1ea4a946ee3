package app

import (
	"context"
	"fmt"
	"time"

	"github.com/neomorfeo/licenseiq/internal/domain"
)

// LicenseService is the ledger: it owns license records, their seat
// capacity and their lifecycle. All status changes go through Transition;
// Update never touches status.
type LicenseService struct {
	licenses  domain.LicenseRepository
	orgs      domain.OrganizationRepository
	products  domain.ProductRepository
	publisher domain.EventPublisher
	validator domain.TransitionValidator
	clock     domain.Clock
	locks     *LicenseLocks
}

// NewLicenseService creates a ledger service with the given adapters.
func NewLicenseService(
	licenses domain.LicenseRepository,
	orgs domain.OrganizationRepository,
	products domain.ProductRepository,
	publisher domain.EventPublisher,
	validator domain.TransitionValidator,
	clock domain.Clock,
	locks *LicenseLocks,
) *LicenseService {
	return &LicenseService{
		licenses:  licenses,
		orgs:      orgs,
		products:  products,
		publisher: publisher,
		validator: validator,
		clock:     clock,
		locks:     locks,
	}
}

// CreateLicenseParams holds the inputs for a direct ledger creation.
type CreateLicenseParams struct {
	OrganizationID string
	ProductID      string
	Type           domain.LicenseType
	TotalSeats     int
	StartDate      *time.Time
	EndDate        *time.Time
	InitialStatus  domain.Status
	RequestedBy    string
}

// Create inserts a new license with zero used seats. The initial status
// must be "requested" (request workflow) or "active" (direct creation by
// an approval authority); every other status is reachable only through
// Transition.
func (s *LicenseService) Create(ctx context.Context, params CreateLicenseParams) (domain.License, error) {
	if params.InitialStatus != domain.StatusRequested && params.InitialStatus != domain.StatusActive {
		return domain.License{}, &domain.ValidationError{
			Field:  "initialStatus",
			Reason: "must be \"requested\" or \"active\"",
		}
	}

	if _, err := s.orgs.GetByID(ctx, params.OrganizationID); err != nil {
		return domain.License{}, err
	}
	if _, err := s.products.GetByID(ctx, params.ProductID); err != nil {
		return domain.License{}, err
	}

	id, err := generateID()
	if err != nil {
		return domain.License{}, fmt.Errorf("generating license id: %w", err)
	}

	license := domain.NewLicense(id, params.OrganizationID, params.ProductID,
		params.Type, params.TotalSeats, params.StartDate, params.EndDate,
		params.InitialStatus, s.clock.Now())
	license.RequestedBy = params.RequestedBy

	if err := license.Validate(); err != nil {
		return domain.License{}, err
	}

	if err := s.licenses.Create(ctx, license); err != nil {
		return domain.License{}, err
	}

	event := domain.EventRequested
	if license.Status == domain.StatusActive {
		event = domain.EventApprove
	}
	if err := s.publisher.Publish(ctx, event, license); err != nil {
		return domain.License{}, fmt.Errorf("publishing creation event: %w", err)
	}

	return license, nil
}

// UpdateLicensePatch holds a partial change to a license's capacity
// configuration. Nil fields are left untouched.
type UpdateLicensePatch struct {
	Type       *domain.LicenseType
	TotalSeats *int
	StartDate  *time.Time
	EndDate    *time.Time
}

// Update applies the patch and re-validates the resulting license. A
// shrink of TotalSeats below current usage fails with CapacityError and
// leaves the license unchanged.
func (s *LicenseService) Update(ctx context.Context, licenseID string, patch UpdateLicensePatch) (domain.License, error) {
	unlock := s.locks.Lock(licenseID)
	defer unlock()

	license, err := s.licenses.GetByID(ctx, licenseID)
	if err != nil {
		return domain.License{}, err
	}

	if patch.Type != nil {
		license.Type = *patch.Type
	}
	if patch.TotalSeats != nil {
		license.TotalSeats = *patch.TotalSeats
	}
	if patch.StartDate != nil {
		license.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		license.EndDate = patch.EndDate
	}

	if err := license.Validate(); err != nil {
		return domain.License{}, err
	}

	license.UpdatedAt = s.clock.Now()
	if err := s.licenses.Update(ctx, license); err != nil {
		return domain.License{}, err
	}

	return license, nil
}

// Get returns a license by its unique identifier.
func (s *LicenseService) Get(ctx context.Context, licenseID string) (domain.License, error) {
	return s.licenses.GetByID(ctx, licenseID)
}

// ListByOrganization returns every license owned by an organization.
func (s *LicenseService) ListByOrganization(ctx context.Context, orgID string) ([]domain.License, error) {
	if _, err := s.orgs.GetByID(ctx, orgID); err != nil {
		return nil, err
	}
	return s.licenses.ListByOrganization(ctx, orgID)
}

// Transition applies a lifecycle event to a license. Illegal edges fail
// with TransitionError; expired and denied are terminal.
func (s *LicenseService) Transition(ctx context.Context, licenseID string, event domain.Event) (domain.License, error) {
	unlock := s.locks.Lock(licenseID)
	defer unlock()

	license, err := s.licenses.GetByID(ctx, licenseID)
	if err != nil {
		return domain.License{}, err
	}

	newStatus, err := s.validator.Apply(ctx, license.Status, event)
	if err != nil {
		return domain.License{}, err
	}

	license.Status = newStatus
	license.UpdatedAt = s.clock.Now()

	if err := s.licenses.Update(ctx, license); err != nil {
		return domain.License{}, fmt.Errorf("updating license: %w", err)
	}

	if err := s.publisher.Publish(ctx, event, license); err != nil {
		return domain.License{}, fmt.Errorf("publishing event %q: %w", event, err)
	}

	return license, nil
}
