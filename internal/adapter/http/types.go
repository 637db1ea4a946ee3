package http

import (
	"time"

	"github.com/neomorfeo/licenseiq/internal/domain"
)

const (
	timestampFormat = "2006-01-02T15:04:05Z"
	dateFormat      = "2006-01-02"
)

// OrganizationResponse is the API representation of an organization.
type OrganizationResponse struct {
	ID        string `json:"id" doc:"Unique identifier"`
	TenantID  string `json:"tenant_id" doc:"Owning tenant identifier"`
	Name      string `json:"name" doc:"Display name"`
	Status    string `json:"status" doc:"Subscription state"`
	CreatedAt string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt string `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toOrganizationResponse(o domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        o.ID,
		TenantID:  o.TenantID,
		Name:      o.Name,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt.Format(timestampFormat),
		UpdatedAt: o.UpdatedAt.Format(timestampFormat),
	}
}

// ProductResponse is the API representation of a product.
type ProductResponse struct {
	ID          string `json:"id" doc:"Unique identifier"`
	Code        string `json:"code" doc:"Stable SKU code"`
	Name        string `json:"name" doc:"Display name"`
	Description string `json:"description,omitempty" doc:"Product description"`
	Status      string `json:"status" doc:"Availability state"`
	CreatedAt   string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt   string `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt.Format(timestampFormat),
		UpdatedAt:   p.UpdatedAt.Format(timestampFormat),
	}
}

// LicenseResponse is the API representation of a license.
type LicenseResponse struct {
	ID             string `json:"id" doc:"Unique identifier"`
	OrganizationID string `json:"organization_id" doc:"Owning organization"`
	ProductID      string `json:"product_id" doc:"Licensed product"`
	LicenseType    string `json:"license_type" doc:"Capacity model (seat or unlimited)"`
	TotalSeats     int    `json:"total_seats" doc:"Seat capacity (seat licenses)"`
	UsedSeats      int    `json:"used_seats" doc:"Seats currently assigned"`
	Status         string `json:"status" doc:"Lifecycle state"`
	StartDate      string `json:"start_date,omitempty" doc:"Validity window start (YYYY-MM-DD)"`
	EndDate        string `json:"end_date,omitempty" doc:"Validity window end (YYYY-MM-DD)"`
	RequestedBy    string `json:"requested_by,omitempty" doc:"User who requested the license"`
	DenialReason   string `json:"denial_reason,omitempty" doc:"Reason recorded on denial"`
	CreatedAt      string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	UpdatedAt      string `json:"updated_at" doc:"Last update timestamp (ISO 8601)"`
}

func toLicenseResponse(l domain.License) LicenseResponse {
	return LicenseResponse{
		ID:             l.ID,
		OrganizationID: l.OrganizationID,
		ProductID:      l.ProductID,
		LicenseType:    string(l.Type),
		TotalSeats:     l.TotalSeats,
		UsedSeats:      l.UsedSeats,
		Status:         string(l.Status),
		StartDate:      formatDate(l.StartDate),
		EndDate:        formatDate(l.EndDate),
		RequestedBy:    l.RequestedBy,
		DenialReason:   l.DenialReason,
		CreatedAt:      l.CreatedAt.Format(timestampFormat),
		UpdatedAt:      l.UpdatedAt.Format(timestampFormat),
	}
}

// AssignmentResponse is the API representation of a user-license assignment.
type AssignmentResponse struct {
	ID             string `json:"id" doc:"Unique identifier"`
	UserID         string `json:"user_id" doc:"Assigned user"`
	LicenseID      string `json:"license_id" doc:"Owning license"`
	OrganizationID string `json:"organization_id" doc:"Owning organization"`
	ProductID      string `json:"product_id" doc:"Licensed product"`
	AssignedAt     string `json:"assigned_at" doc:"Assignment timestamp (ISO 8601)"`
}

func toAssignmentResponse(a domain.UserLicense) AssignmentResponse {
	return AssignmentResponse{
		ID:             a.ID,
		UserID:         a.UserID,
		LicenseID:      a.LicenseID,
		OrganizationID: a.OrganizationID,
		ProductID:      a.ProductID,
		AssignedAt:     a.AssignedAt.Format(timestampFormat),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateFormat)
}

// parseDate converts an optional YYYY-MM-DD string to a time pointer.
func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateFormat, value)
	if err != nil {
		return nil, &domain.ValidationError{Field: field, Reason: "must be a YYYY-MM-DD date"}
	}
	t = t.UTC()
	return &t, nil
}
