package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/neomorfeo/licenseiq/internal/domain"
)

// AssignmentService assigns and revokes individual users against licenses.
// It is the only component permitted to change a license's used-seat
// counter, and it does so exclusively through the assignment repository's
// transactional create/delete.
type AssignmentService struct {
	assignments domain.AssignmentRepository
	licenses    domain.LicenseRepository
	publisher   domain.EventPublisher
	clock       domain.Clock
	locks       *LicenseLocks
}

// NewAssignmentService creates an assignment service with the given adapters.
func NewAssignmentService(
	assignments domain.AssignmentRepository,
	licenses domain.LicenseRepository,
	publisher domain.EventPublisher,
	clock domain.Clock,
	locks *LicenseLocks,
) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		licenses:    licenses,
		publisher:   publisher,
		clock:       clock,
		locks:       locks,
	}
}

// Assign grants a user a seat on a license. The license must be active,
// inside its validity window, and (for seat licenses) below capacity; the
// user must not already hold a live assignment. The check-then-insert runs
// under the per-license lock, and the storage layer re-checks capacity in
// the same transaction that increments the counter.
func (s *AssignmentService) Assign(ctx context.Context, orgID, userID, licenseID string) (domain.UserLicense, error) {
	unlock := s.locks.Lock(licenseID)
	defer unlock()

	license, err := s.licenses.GetByID(ctx, licenseID)
	if err != nil {
		return domain.UserLicense{}, err
	}
	// A license belonging to another organization is invisible to the caller.
	if license.OrganizationID != orgID {
		return domain.UserLicense{}, domain.ErrLicenseNotFound
	}

	if license.Status != domain.StatusActive {
		return domain.UserLicense{}, &domain.InvalidStateError{
			LicenseID: licenseID,
			Status:    license.Status,
			Reason:    "assignment requires an active license",
		}
	}
	if !license.WithinWindow(s.clock.Now()) {
		return domain.UserLicense{}, &domain.InvalidStateError{
			LicenseID: licenseID,
			Status:    license.Status,
			Reason:    "outside validity window",
		}
	}

	if !license.HasCapacity() {
		return domain.UserLicense{}, &domain.CapacityError{
			LicenseID:  licenseID,
			TotalSeats: license.TotalSeats,
			UsedSeats:  license.UsedSeats,
		}
	}

	if _, err := s.assignments.Get(ctx, userID, licenseID); err == nil {
		return domain.UserLicense{}, &domain.DuplicateAssignmentError{UserID: userID, LicenseID: licenseID}
	} else if !errors.Is(err, domain.ErrAssignmentNotFound) {
		return domain.UserLicense{}, err
	}

	id, err := generateID()
	if err != nil {
		return domain.UserLicense{}, fmt.Errorf("generating assignment id: %w", err)
	}

	assignment := domain.NewUserLicense(id, userID, license, s.clock.Now())
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return domain.UserLicense{}, err
	}

	if license.Type == domain.TypeSeat {
		license.UsedSeats++
	}
	if err := s.publisher.Publish(ctx, domain.EventSeatAssigned, license); err != nil {
		return domain.UserLicense{}, fmt.Errorf("publishing assignment event: %w", err)
	}

	return assignment, nil
}

// Revoke removes a user's assignment and frees the seat. Fails with
// ErrAssignmentNotFound when no live assignment exists.
func (s *AssignmentService) Revoke(ctx context.Context, userID, licenseID string) error {
	unlock := s.locks.Lock(licenseID)
	defer unlock()

	if _, err := s.assignments.Get(ctx, userID, licenseID); err != nil {
		return err
	}

	if err := s.assignments.Delete(ctx, userID, licenseID); err != nil {
		return err
	}

	license, err := s.licenses.GetByID(ctx, licenseID)
	if err != nil {
		return err
	}
	if err := s.publisher.Publish(ctx, domain.EventSeatRevoked, license); err != nil {
		return fmt.Errorf("publishing revocation event: %w", err)
	}

	return nil
}

// ListByOrganization returns all live assignments for an organization.
func (s *AssignmentService) ListByOrganization(ctx context.Context, orgID string) ([]domain.UserLicense, error) {
	return s.assignments.ListByOrganization(ctx, orgID)
}
