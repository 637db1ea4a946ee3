package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for simple conditions without extra context.
var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrLicenseNotFound      = errors.New("license not found")
	ErrAssignmentNotFound   = errors.New("assignment not found")
	ErrMissingPrincipal     = errors.New("no principal on request")
)

// ValidationError is returned for malformed input: negative seat counts,
// inverted date ranges, unknown enum values.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CapacityError is returned when a seat license is exhausted or when an
// update would shrink capacity below current usage.
type CapacityError struct {
	LicenseID  string
	TotalSeats int
	UsedSeats  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("license %s has no capacity: %d of %d seats used", e.LicenseID, e.UsedSeats, e.TotalSeats)
}

// TransitionError is returned when a lifecycle transition is not allowed.
type TransitionError struct {
	Event   Event
	Current Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("event %q is not valid from status %q", e.Event, e.Current)
}

// InvalidStateError is returned when an operation is attempted against a
// license whose status or validity window forbids it.
type InvalidStateError struct {
	LicenseID string
	Status    Status
	Reason    string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("license %s (status %q): %s", e.LicenseID, e.Status, e.Reason)
}

// DuplicateAssignmentError is returned when a user already holds a live
// assignment on the license.
type DuplicateAssignmentError struct {
	UserID    string
	LicenseID string
}

func (e *DuplicateAssignmentError) Error() string {
	return fmt.Sprintf("user %s is already assigned to license %s", e.UserID, e.LicenseID)
}

// ConflictError is returned when a requested or active license already
// exists for the (organization, product) pair.
type ConflictError struct {
	OrganizationID string
	ProductID      string
	Status         Status
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("organization %s already has a %s license for product %s", e.OrganizationID, e.Status, e.ProductID)
}

// ProductCodeConflictError is returned when a product code is already in use.
type ProductCodeConflictError struct {
	Code string
}

func (e *ProductCodeConflictError) Error() string {
	return fmt.Sprintf("product code %q is already in use", e.Code)
}

// ForbiddenError is returned when the acting principal lacks the role an
// operation requires.
type ForbiddenError struct {
	Need Role
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("operation requires the %q role", e.Need)
}
