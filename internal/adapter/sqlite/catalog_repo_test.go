package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/neomorfeo/licenseiq/internal/adapter/sqlite"
	"github.com/neomorfeo/licenseiq/internal/domain"
)

func TestOrganizationCreate_And_GetByID(t *testing.T) {
	store := newTestStore(t)
	repo := sqlite.NewOrganizationRepository(store)
	ctx := context.Background()

	org := domain.NewOrganization("org-1", "tenant-1", "Acme Corp", domain.OrgTrial, testNow)
	if err := repo.Create(ctx, org); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "org-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Acme Corp" {
		t.Errorf("Name = %q, want %q", got.Name, "Acme Corp")
	}
	if got.TenantID != "tenant-1" {
		t.Errorf("TenantID = %q, want %q", got.TenantID, "tenant-1")
	}
	if got.Status != domain.OrgTrial {
		t.Errorf("Status = %q, want %q", got.Status, domain.OrgTrial)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should not be zero")
	}
}

func TestOrganizationGetByID_NotFound(t *testing.T) {
	store := newTestStore(t)
	repo := sqlite.NewOrganizationRepository(store)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, domain.ErrOrganizationNotFound) {
		t.Errorf("expected ErrOrganizationNotFound, got %v", err)
	}
}

func TestOrganizationList_Filters(t *testing.T) {
	store := newTestStore(t)
	repo := sqlite.NewOrganizationRepository(store)
	ctx := context.Background()

	orgs := []domain.Organization{
		domain.NewOrganization("org-1", "tenant-1", "A", domain.OrgActive, testNow),
		domain.NewOrganization("org-2", "tenant-1", "B", domain.OrgTrial, testNow),
		domain.NewOrganization("org-3", "tenant-2", "C", domain.OrgActive, testNow),
	}
	for _, o := range orgs {
		if err := repo.Create(ctx, o); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	all, err := repo.List(ctx, domain.OrgFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d organizations, want 3", len(all))
	}

	active := domain.OrgActive
	byStatus, err := repo.List(ctx, domain.OrgFilter{Status: &active})
	if err != nil {
		t.Fatalf("List by status failed: %v", err)
	}
	if len(byStatus) != 2 {
		t.Errorf("got %d active organizations, want 2", len(byStatus))
	}

	byTenant, err := repo.List(ctx, domain.OrgFilter{TenantID: "tenant-1"})
	if err != nil {
		t.Fatalf("List by tenant failed: %v", err)
	}
	if len(byTenant) != 2 {
		t.Errorf("got %d tenant-1 organizations, want 2", len(byTenant))
	}

	both, err := repo.List(ctx, domain.OrgFilter{Status: &active, TenantID: "tenant-1"})
	if err != nil {
		t.Fatalf("List by status and tenant failed: %v", err)
	}
	if len(both) != 1 {
		t.Fatalf("got %d organizations, want 1", len(both))
	}
	if both[0].ID != "org-1" {
		t.Errorf("ID = %q, want %q", both[0].ID, "org-1")
	}
}

func TestOrganizationList_Pagination(t *testing.T) {
	store := newTestStore(t)
	repo := sqlite.NewOrganizationRepository(store)
	ctx := context.Background()

	for i := range 5 {
		id := fmt.Sprintf("org-%d", i)
		if err := repo.Create(ctx, domain.NewOrganization(id, "tenant-1", "T", domain.OrgActive, testNow)); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	orgs, err := repo.List(ctx, domain.OrgFilter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(orgs) != 2 {
		t.Errorf("got %d organizations, want 2", len(orgs))
	}
}

func TestProductCreate_And_Get(t *testing.T) {
	store := newTestStore(t)
	repo := sqlite.NewProductRepository(store)
	ctx := context.Background()

	product := domain.NewProduct("prod-1", "CRM-PRO", "CRM Pro", "Customer platform", domain.ProductActive, testNow)
	if err := repo.Create(ctx, product); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	byID, err := repo.GetByID(ctx, "prod-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if byID.Code != "CRM-PRO" {
		t.Errorf("Code = %q, want %q", byID.Code, "CRM-PRO")
	}
	if byID.Description != "Customer platform" {
		t.Errorf("Description = %q, want %q", byID.Description, "Customer platform")
	}

	byCode, err := repo.GetByCode(ctx, "CRM-PRO")
	if err != nil {
		t.Fatalf("GetByCode failed: %v", err)
	}
	if byCode.ID != "prod-1" {
		t.Errorf("ID = %q, want %q", byCode.ID, "prod-1")
	}
}

func TestProductGet_NotFound(t *testing.T) {
	store := newTestStore(t)
	repo := sqlite.NewProductRepository(store)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "nonexistent"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("GetByID: expected ErrProductNotFound, got %v", err)
	}
	if _, err := repo.GetByCode(ctx, "NOPE"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("GetByCode: expected ErrProductNotFound, got %v", err)
	}
}

func TestProductCreate_DuplicateCode(t *testing.T) {
	store := newTestStore(t)
	repo := sqlite.NewProductRepository(store)
	ctx := context.Background()

	p1 := domain.NewProduct("prod-1", "CRM-PRO", "CRM Pro", "", domain.ProductActive, testNow)
	p2 := domain.NewProduct("prod-2", "CRM-PRO", "CRM Again", "", domain.ProductActive, testNow)

	if err := repo.Create(ctx, p1); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	err := repo.Create(ctx, p2)
	var codeErr *domain.ProductCodeConflictError
	if !errors.As(err, &codeErr) {
		t.Fatalf("expected ProductCodeConflictError, got %v", err)
	}
	if codeErr.Code != "CRM-PRO" {
		t.Errorf("code = %q, want %q", codeErr.Code, "CRM-PRO")
	}
}

func TestProductList_FilterByStatus(t *testing.T) {
	store := newTestStore(t)
	repo := sqlite.NewProductRepository(store)
	ctx := context.Background()

	if err := repo.Create(ctx, domain.NewProduct("prod-1", "A", "A", "", domain.ProductActive, testNow)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, domain.NewProduct("prod-2", "B", "B", "", domain.ProductInactive, testNow)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	inactive := domain.ProductInactive
	products, err := repo.List(ctx, domain.ProductFilter{Status: &inactive})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("got %d products, want 1", len(products))
	}
	if products[0].ID != "prod-2" {
		t.Errorf("ID = %q, want %q", products[0].ID, "prod-2")
	}
}
