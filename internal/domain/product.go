package domain

import "time"

// ProductStatus marks whether a product is available for new licenses.
type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

// Product is a purchasable SKU referenced by licenses. Managed by an
// administrative workflow; read-only from the ledger's perspective.
type Product struct {
	ID          string
	Code        string
	Name        string
	Description string
	Status      ProductStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct creates a product with the given stable SKU code.
func NewProduct(id, code, name, description string, status ProductStatus, now time.Time) Product {
	now = now.UTC()
	return Product{
		ID:          id,
		Code:        code,
		Name:        name,
		Description: description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
