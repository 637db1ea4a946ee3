package domain

import (
	"context"
	"time"
)

// OrganizationRepository defines the persistence contract for organizations.
type OrganizationRepository interface {
	Create(ctx context.Context, org Organization) error
	GetByID(ctx context.Context, id string) (Organization, error)
	List(ctx context.Context, filter OrgFilter) ([]Organization, error)
}

// OrgFilter holds optional criteria for listing organizations.
type OrgFilter struct {
	Status   *OrgStatus
	TenantID string
	Limit    int
	Offset   int
}

// ProductRepository defines the persistence contract for products.
type ProductRepository interface {
	Create(ctx context.Context, p Product) error
	GetByID(ctx context.Context, id string) (Product, error)
	GetByCode(ctx context.Context, code string) (Product, error)
	List(ctx context.Context, filter ProductFilter) ([]Product, error)
}

// ProductFilter holds optional criteria for listing products.
type ProductFilter struct {
	Status *ProductStatus
	Limit  int
	Offset int
}

// LicenseRepository defines the persistence contract for licenses.
// Licenses are never deleted; removal is modelled by status transitions.
type LicenseRepository interface {
	Create(ctx context.Context, l License) error
	GetByID(ctx context.Context, id string) (License, error)
	ListByOrganization(ctx context.Context, orgID string) ([]License, error)
	Update(ctx context.Context, l License) error
	// FindBlocking returns the license, if any, that blocks a new request
	// for the (organization, product) pair: one in requested or active
	// status. Returns ErrLicenseNotFound when no such license exists.
	FindBlocking(ctx context.Context, orgID, productID string) (License, error)
}

// AssignmentRepository defines the persistence contract for user-license
// assignments. Create and Delete must adjust the owning license's seat
// counter in the same transaction as the assignment row: the counter and
// the assignment set may never be observed out of sync.
type AssignmentRepository interface {
	Create(ctx context.Context, a UserLicense) error
	Get(ctx context.Context, userID, licenseID string) (UserLicense, error)
	Delete(ctx context.Context, userID, licenseID string) error
	ListByOrganization(ctx context.Context, orgID string) ([]UserLicense, error)
}

// TransitionValidator checks whether a lifecycle event is legal from a
// given status and yields the destination status.
type TransitionValidator interface {
	Apply(ctx context.Context, current Status, event Event) (Status, error)
}

// EventPublisher defines the contract for emitting domain events.
type EventPublisher interface {
	Publish(ctx context.Context, event Event, license License) error
}

// Clock supplies the current time for validity-window checks and
// timestamps. Abstracted so tests can pin the clock.
type Clock interface {
	Now() time.Time
}
