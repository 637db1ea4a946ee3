package domain

import "time"

// UserLicense records one user occupying one seat under a license.
// OrganizationID and ProductID are denormalized from the license for
// query convenience. At most one live record exists per (user, license).
type UserLicense struct {
	ID             string
	UserID         string
	LicenseID      string
	OrganizationID string
	ProductID      string
	AssignedAt     time.Time
}

// NewUserLicense creates an assignment stamped with the given time.
func NewUserLicense(id, userID string, l License, now time.Time) UserLicense {
	return UserLicense{
		ID:             id,
		UserID:         userID,
		LicenseID:      l.ID,
		OrganizationID: l.OrganizationID,
		ProductID:      l.ProductID,
		AssignedAt:     now.UTC(),
	}
}
