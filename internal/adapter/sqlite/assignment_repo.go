package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/neomorfeo/licenseiq/internal/domain"
)

// AssignmentRepository implements domain.AssignmentRepository using SQLite.
// Create and Delete run the assignment row change and the owning license's
// seat-counter change in one transaction, with the capacity check repeated
// inside the UPDATE so the counter can never exceed total_seats even if
// two processes share the database.
type AssignmentRepository struct {
	db *sql.DB
}

// Compile-time check: AssignmentRepository implements the domain port.
var _ domain.AssignmentRepository = (*AssignmentRepository)(nil)

// NewAssignmentRepository creates a repository over the store's connection.
func NewAssignmentRepository(s *Store) *AssignmentRepository {
	return &AssignmentRepository{db: s.db}
}

func (r *AssignmentRepository) Create(ctx context.Context, a domain.UserLicense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	var typ string
	var totalSeats, usedSeats int
	err = tx.QueryRowContext(ctx,
		`SELECT license_type, total_seats, used_seats FROM licenses WHERE id = ?`,
		a.LicenseID,
	).Scan(&typ, &totalSeats, &usedSeats)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrLicenseNotFound
		}
		return fmt.Errorf("loading license: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_licenses (id, user_id, license_id, organization_id, product_id, assigned_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.LicenseID, a.OrganizationID, a.ProductID,
		a.AssignedAt.Format(timeFormat),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateAssignmentError{UserID: a.UserID, LicenseID: a.LicenseID}
		}
		return fmt.Errorf("inserting assignment: %w", err)
	}

	if domain.LicenseType(typ) == domain.TypeSeat {
		result, err := tx.ExecContext(ctx,
			`UPDATE licenses SET used_seats = used_seats + 1, updated_at = ?
			 WHERE id = ? AND used_seats < total_seats`,
			time.Now().UTC().Format(timeFormat), a.LicenseID,
		)
		if err != nil {
			return fmt.Errorf("incrementing used seats: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("checking rows affected: %w", err)
		}
		if rows == 0 {
			return &domain.CapacityError{
				LicenseID:  a.LicenseID,
				TotalSeats: totalSeats,
				UsedSeats:  usedSeats,
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing assignment: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) Get(ctx context.Context, userID, licenseID string) (domain.UserLicense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, license_id, organization_id, product_id, assigned_at
		 FROM user_licenses WHERE user_id = ? AND license_id = ?`,
		userID, licenseID,
	)

	a, err := scanAssignment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.UserLicense{}, domain.ErrAssignmentNotFound
		}
		return domain.UserLicense{}, fmt.Errorf("scanning assignment: %w", err)
	}
	return a, nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, userID, licenseID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	result, err := tx.ExecContext(ctx,
		`DELETE FROM user_licenses WHERE user_id = ? AND license_id = ?`,
		userID, licenseID,
	)
	if err != nil {
		return fmt.Errorf("deleting assignment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrAssignmentNotFound
	}

	// Decrement with a floor of zero. The counter never goes negative even
	// if it was already out of sync.
	_, err = tx.ExecContext(ctx,
		`UPDATE licenses SET used_seats = MAX(used_seats - 1, 0), updated_at = ?
		 WHERE id = ? AND license_type = 'seat'`,
		time.Now().UTC().Format(timeFormat), licenseID,
	)
	if err != nil {
		return fmt.Errorf("decrementing used seats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing revocation: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) ListByOrganization(ctx context.Context, orgID string) ([]domain.UserLicense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, license_id, organization_id, product_id, assigned_at
		 FROM user_licenses WHERE organization_id = ? ORDER BY assigned_at DESC`,
		orgID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	var assignments []domain.UserLicense
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning assignment row: %w", err)
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}

func scanAssignment(row rowScanner) (domain.UserLicense, error) {
	var a domain.UserLicense
	var assignedAt string

	err := row.Scan(&a.ID, &a.UserID, &a.LicenseID, &a.OrganizationID, &a.ProductID, &assignedAt)
	if err != nil {
		return domain.UserLicense{}, err
	}

	a.AssignedAt, _ = time.Parse(timeFormat, assignedAt)
	return a, nil
}
