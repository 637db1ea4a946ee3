package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/neomorfeo/licenseiq/internal/adapter/sqlite"
	"github.com/neomorfeo/licenseiq/internal/domain"
)

func newAssignmentRepos(t *testing.T) (*sqlite.AssignmentRepository, *sqlite.LicenseRepository) {
	t.Helper()
	store := newTestStore(t)
	seedCatalog(t, store)
	return sqlite.NewAssignmentRepository(store), sqlite.NewLicenseRepository(store)
}

func seedSeatLicense(t *testing.T, licenses *sqlite.LicenseRepository, id string, totalSeats int) domain.License {
	t.Helper()
	l := domain.NewLicense(id, "org-1", "prod-1", domain.TypeSeat, totalSeats, nil, nil, domain.StatusActive, testNow)
	mustCreateLicense(t, licenses, l)
	return l
}

func TestAssignmentCreate_IncrementsCounter(t *testing.T) {
	assignments, licenses := newAssignmentRepos(t)
	ctx := context.Background()

	license := seedSeatLicense(t, licenses, "l-1", 5)

	a := domain.NewUserLicense("a-1", "u-1", license, testNow)
	if err := assignments.Create(ctx, a); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := assignments.Get(ctx, "u-1", "l-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.OrganizationID != "org-1" || got.ProductID != "prod-1" {
		t.Errorf("denormalized ids = %q/%q, want org-1/prod-1", got.OrganizationID, got.ProductID)
	}

	stored, _ := licenses.GetByID(ctx, "l-1")
	if stored.UsedSeats != 1 {
		t.Errorf("UsedSeats = %d, want 1", stored.UsedSeats)
	}
}

func TestAssignmentCreate_Duplicate(t *testing.T) {
	assignments, licenses := newAssignmentRepos(t)
	ctx := context.Background()

	license := seedSeatLicense(t, licenses, "l-1", 5)

	if err := assignments.Create(ctx, domain.NewUserLicense("a-1", "u-1", license, testNow)); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	err := assignments.Create(ctx, domain.NewUserLicense("a-2", "u-1", license, testNow))
	var dErr *domain.DuplicateAssignmentError
	if !errors.As(err, &dErr) {
		t.Fatalf("expected DuplicateAssignmentError, got %v", err)
	}

	// The failed insert must not move the counter.
	stored, _ := licenses.GetByID(ctx, "l-1")
	if stored.UsedSeats != 1 {
		t.Errorf("UsedSeats = %d, want 1", stored.UsedSeats)
	}
}

func TestAssignmentCreate_CapacityGuard(t *testing.T) {
	assignments, licenses := newAssignmentRepos(t)
	ctx := context.Background()

	license := seedSeatLicense(t, licenses, "l-1", 1)

	if err := assignments.Create(ctx, domain.NewUserLicense("a-1", "u-1", license, testNow)); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// The UPDATE's used_seats < total_seats guard fires and the whole
	// transaction rolls back.
	err := assignments.Create(ctx, domain.NewUserLicense("a-2", "u-2", license, testNow))
	var cErr *domain.CapacityError
	if !errors.As(err, &cErr) {
		t.Fatalf("expected CapacityError, got %v", err)
	}
	if cErr.TotalSeats != 1 || cErr.UsedSeats != 1 {
		t.Errorf("CapacityError = %d/%d, want 1/1", cErr.UsedSeats, cErr.TotalSeats)
	}

	if _, err := assignments.Get(ctx, "u-2", "l-1"); !errors.Is(err, domain.ErrAssignmentNotFound) {
		t.Errorf("rolled-back assignment should not exist, got %v", err)
	}
	stored, _ := licenses.GetByID(ctx, "l-1")
	if stored.UsedSeats != 1 {
		t.Errorf("UsedSeats = %d, want 1", stored.UsedSeats)
	}
}

func TestAssignmentCreate_UnlimitedLeavesCounter(t *testing.T) {
	assignments, licenses := newAssignmentRepos(t)
	ctx := context.Background()

	license := domain.NewLicense("l-1", "org-1", "prod-1", domain.TypeUnlimited, 0, nil, nil, domain.StatusActive, testNow)
	mustCreateLicense(t, licenses, license)

	if err := assignments.Create(ctx, domain.NewUserLicense("a-1", "u-1", license, testNow)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := assignments.Create(ctx, domain.NewUserLicense("a-2", "u-2", license, testNow)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	stored, _ := licenses.GetByID(ctx, "l-1")
	if stored.UsedSeats != 0 {
		t.Errorf("UsedSeats = %d, unlimited licenses do not count seats", stored.UsedSeats)
	}
}

func TestAssignmentCreate_LicenseNotFound(t *testing.T) {
	assignments, _ := newAssignmentRepos(t)

	a := domain.UserLicense{ID: "a-1", UserID: "u-1", LicenseID: "nonexistent", OrganizationID: "org-1", ProductID: "prod-1", AssignedAt: testNow}
	err := assignments.Create(context.Background(), a)
	if !errors.Is(err, domain.ErrLicenseNotFound) {
		t.Errorf("expected ErrLicenseNotFound, got %v", err)
	}
}

func TestAssignmentDelete_DecrementsCounter(t *testing.T) {
	assignments, licenses := newAssignmentRepos(t)
	ctx := context.Background()

	license := seedSeatLicense(t, licenses, "l-1", 2)

	if err := assignments.Create(ctx, domain.NewUserLicense("a-1", "u-1", license, testNow)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := assignments.Delete(ctx, "u-1", "l-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	stored, _ := licenses.GetByID(ctx, "l-1")
	if stored.UsedSeats != 0 {
		t.Errorf("UsedSeats = %d, want 0", stored.UsedSeats)
	}

	if _, err := assignments.Get(ctx, "u-1", "l-1"); !errors.Is(err, domain.ErrAssignmentNotFound) {
		t.Errorf("deleted assignment should not exist, got %v", err)
	}

	// The seat is reusable.
	if err := assignments.Create(ctx, domain.NewUserLicense("a-2", "u-1", license, testNow)); err != nil {
		t.Errorf("re-assign after delete failed: %v", err)
	}
}

func TestAssignmentDelete_NotFound(t *testing.T) {
	assignments, licenses := newAssignmentRepos(t)
	seedSeatLicense(t, licenses, "l-1", 2)

	err := assignments.Delete(context.Background(), "u-1", "l-1")
	if !errors.Is(err, domain.ErrAssignmentNotFound) {
		t.Errorf("expected ErrAssignmentNotFound, got %v", err)
	}
}

func TestAssignmentListByOrganization(t *testing.T) {
	assignments, licenses := newAssignmentRepos(t)
	ctx := context.Background()

	license := seedSeatLicense(t, licenses, "l-1", 5)

	if err := assignments.Create(ctx, domain.NewUserLicense("a-1", "u-1", license, testNow)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := assignments.Create(ctx, domain.NewUserLicense("a-2", "u-2", license, testNow)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := assignments.ListByOrganization(ctx, "org-1")
	if err != nil {
		t.Fatalf("ListByOrganization failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d assignments, want 2", len(got))
	}

	empty, err := assignments.ListByOrganization(ctx, "org-none")
	if err != nil {
		t.Fatalf("ListByOrganization failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("got %d assignments for unknown org, want 0", len(empty))
	}
}
