package domain

import "time"

// OrgStatus represents the subscription state of an organization.
type OrgStatus string

const (
	OrgActive    OrgStatus = "active"
	OrgTrial     OrgStatus = "trial"
	OrgExpired   OrgStatus = "expired"
	OrgCancelled OrgStatus = "cancelled"
)

// Organization is a tenant-scoped customer account. The ledger reads
// organizations for referential checks; it never mutates them.
type Organization struct {
	ID        string
	TenantID  string
	Name      string
	Status    OrgStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOrganization creates an organization in the given status.
func NewOrganization(id, tenantID, name string, status OrgStatus, now time.Time) Organization {
	now = now.UTC()
	return Organization{
		ID:        id,
		TenantID:  tenantID,
		Name:      name,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
