package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/neomorfeo/licenseiq/internal/adapter/sqlite"
	"github.com/neomorfeo/licenseiq/internal/domain"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestStore creates an in-memory SQLite store for testing.
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// seedCatalog inserts the organization and product rows license tests
// reference.
func seedCatalog(t *testing.T, store *sqlite.Store) {
	t.Helper()
	ctx := context.Background()

	orgs := sqlite.NewOrganizationRepository(store)
	if err := orgs.Create(ctx, domain.NewOrganization("org-1", "tenant-1", "Acme", domain.OrgActive, testNow)); err != nil {
		t.Fatalf("seeding organization: %v", err)
	}

	products := sqlite.NewProductRepository(store)
	if err := products.Create(ctx, domain.NewProduct("prod-1", "CRM-PRO", "CRM Pro", "", domain.ProductActive, testNow)); err != nil {
		t.Fatalf("seeding product: %v", err)
	}
	if err := products.Create(ctx, domain.NewProduct("prod-2", "ANALYTICS", "Analytics", "", domain.ProductActive, testNow)); err != nil {
		t.Fatalf("seeding product: %v", err)
	}
}

func mustCreateLicense(t *testing.T, repo *sqlite.LicenseRepository, l domain.License) {
	t.Helper()
	if err := repo.Create(context.Background(), l); err != nil {
		t.Fatalf("mustCreateLicense failed: %v", err)
	}
}
