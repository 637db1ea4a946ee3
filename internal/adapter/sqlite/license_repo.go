package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/neomorfeo/licenseiq/internal/domain"
)

// LicenseRepository implements domain.LicenseRepository using SQLite.
// A partial unique index on (organization_id, product_id) over open
// statuses backs the one-open-license-per-product constraint at the
// storage layer.
type LicenseRepository struct {
	db *sql.DB
}

// Compile-time check: LicenseRepository implements the domain port.
var _ domain.LicenseRepository = (*LicenseRepository)(nil)

// NewLicenseRepository creates a repository over the store's connection.
func NewLicenseRepository(s *Store) *LicenseRepository {
	return &LicenseRepository{db: s.db}
}

const licenseColumns = `id, organization_id, product_id, license_type, total_seats, used_seats,
	 status, start_date, end_date, requested_by, denial_reason, created_at, updated_at`

func (r *LicenseRepository) Create(ctx context.Context, l domain.License) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO licenses (`+licenseColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.OrganizationID, l.ProductID, string(l.Type), l.TotalSeats, l.UsedSeats,
		string(l.Status), formatDate(l.StartDate), formatDate(l.EndDate),
		l.RequestedBy, l.DenialReason,
		l.CreatedAt.Format(timeFormat),
		l.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return r.conflictFor(ctx, l)
		}
		return fmt.Errorf("inserting license: %w", err)
	}
	return nil
}

func (r *LicenseRepository) GetByID(ctx context.Context, id string) (domain.License, error) {
	return scanLicense(r.db.QueryRowContext(ctx,
		`SELECT `+licenseColumns+` FROM licenses WHERE id = ?`, id,
	))
}

func (r *LicenseRepository) ListByOrganization(ctx context.Context, orgID string) ([]domain.License, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+licenseColumns+` FROM licenses
		 WHERE organization_id = ? ORDER BY created_at DESC`, orgID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing licenses: %w", err)
	}
	defer rows.Close()

	var licenses []domain.License
	for rows.Next() {
		l, err := scanLicenseRow(rows)
		if err != nil {
			return nil, err
		}
		licenses = append(licenses, l)
	}

	return licenses, rows.Err()
}

// Update persists every mutable license field except used_seats, which is
// owned by the assignment repository's transactional create/delete.
func (r *LicenseRepository) Update(ctx context.Context, l domain.License) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE licenses
		 SET license_type = ?, total_seats = ?, status = ?, start_date = ?, end_date = ?,
		     requested_by = ?, denial_reason = ?, updated_at = ?
		 WHERE id = ?`,
		string(l.Type), l.TotalSeats, string(l.Status),
		formatDate(l.StartDate), formatDate(l.EndDate),
		l.RequestedBy, l.DenialReason,
		time.Now().UTC().Format(timeFormat), l.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return r.conflictFor(ctx, l)
		}
		return fmt.Errorf("updating license: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrLicenseNotFound
	}

	return nil
}

func (r *LicenseRepository) FindBlocking(ctx context.Context, orgID, productID string) (domain.License, error) {
	return scanLicense(r.db.QueryRowContext(ctx,
		`SELECT `+licenseColumns+` FROM licenses
		 WHERE organization_id = ? AND product_id = ? AND status IN ('requested', 'active')`,
		orgID, productID,
	))
}

// conflictFor builds a ConflictError describing the license that holds the
// open slot for the pair.
func (r *LicenseRepository) conflictFor(ctx context.Context, l domain.License) error {
	conflict := &domain.ConflictError{
		OrganizationID: l.OrganizationID,
		ProductID:      l.ProductID,
	}
	if blocking, err := r.FindBlocking(ctx, l.OrganizationID, l.ProductID); err == nil {
		conflict.Status = blocking.Status
	}
	return conflict
}

func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(timeFormat)
}

func parseDate(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t, err := time.Parse(timeFormat, s.String)
	if err != nil {
		return nil
	}
	return &t
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLicenseFields(row rowScanner) (domain.License, error) {
	var l domain.License
	var typ, status, createdAt, updatedAt string
	var startDate, endDate sql.NullString

	err := row.Scan(&l.ID, &l.OrganizationID, &l.ProductID, &typ, &l.TotalSeats, &l.UsedSeats,
		&status, &startDate, &endDate, &l.RequestedBy, &l.DenialReason, &createdAt, &updatedAt)
	if err != nil {
		return domain.License{}, err
	}

	l.Type = domain.LicenseType(typ)
	l.Status = domain.Status(status)
	l.StartDate = parseDate(startDate)
	l.EndDate = parseDate(endDate)
	l.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	l.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)

	return l, nil
}

func scanLicense(row *sql.Row) (domain.License, error) {
	l, err := scanLicenseFields(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.License{}, domain.ErrLicenseNotFound
		}
		return domain.License{}, fmt.Errorf("scanning license: %w", err)
	}
	return l, nil
}

func scanLicenseRow(rows *sql.Rows) (domain.License, error) {
	l, err := scanLicenseFields(rows)
	if err != nil {
		return domain.License{}, fmt.Errorf("scanning license row: %w", err)
	}
	return l, nil
}
