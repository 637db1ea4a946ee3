package app

import (
	"context"
	"fmt"

	"github.com/neomorfeo/licenseiq/internal/domain"
)

// CatalogService serves the organization directory and the product
// catalog: referential data the ledger reads but never mutates. Writes
// come from the administrative workflow outside the ledger.
type CatalogService struct {
	orgs     domain.OrganizationRepository
	products domain.ProductRepository
	clock    domain.Clock
}

// NewCatalogService creates a catalog service with the given adapters.
func NewCatalogService(orgs domain.OrganizationRepository, products domain.ProductRepository, clock domain.Clock) *CatalogService {
	return &CatalogService{orgs: orgs, products: products, clock: clock}
}

// CreateOrganization registers an organization. Status defaults to active.
func (s *CatalogService) CreateOrganization(ctx context.Context, tenantID, name string, status domain.OrgStatus) (domain.Organization, error) {
	if status == "" {
		status = domain.OrgActive
	}
	switch status {
	case domain.OrgActive, domain.OrgTrial, domain.OrgExpired, domain.OrgCancelled:
	default:
		return domain.Organization{}, &domain.ValidationError{Field: "status", Reason: "unknown organization status"}
	}

	id, err := generateID()
	if err != nil {
		return domain.Organization{}, fmt.Errorf("generating organization id: %w", err)
	}

	org := domain.NewOrganization(id, tenantID, name, status, s.clock.Now())
	if err := s.orgs.Create(ctx, org); err != nil {
		return domain.Organization{}, err
	}
	return org, nil
}

// GetOrganization returns an organization by id.
func (s *CatalogService) GetOrganization(ctx context.Context, id string) (domain.Organization, error) {
	return s.orgs.GetByID(ctx, id)
}

// ListOrganizations returns organizations matching the filter.
func (s *CatalogService) ListOrganizations(ctx context.Context, filter domain.OrgFilter) ([]domain.Organization, error) {
	return s.orgs.List(ctx, filter)
}

// CreateProduct registers a product under a unique SKU code. Status
// defaults to active.
func (s *CatalogService) CreateProduct(ctx context.Context, code, name, description string, status domain.ProductStatus) (domain.Product, error) {
	if status == "" {
		status = domain.ProductActive
	}
	switch status {
	case domain.ProductActive, domain.ProductInactive:
	default:
		return domain.Product{}, &domain.ValidationError{Field: "status", Reason: "unknown product status"}
	}

	// Check code uniqueness before creating.
	if _, err := s.products.GetByCode(ctx, code); err == nil {
		return domain.Product{}, &domain.ProductCodeConflictError{Code: code}
	}

	id, err := generateID()
	if err != nil {
		return domain.Product{}, fmt.Errorf("generating product id: %w", err)
	}

	product := domain.NewProduct(id, code, name, description, status, s.clock.Now())
	if err := s.products.Create(ctx, product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

// GetProduct returns a product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// GetProductByCode returns a product by its SKU code.
func (s *CatalogService) GetProductByCode(ctx context.Context, code string) (domain.Product, error) {
	return s.products.GetByCode(ctx, code)
}

// ListProducts returns products matching the filter.
func (s *CatalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.products.List(ctx, filter)
}
