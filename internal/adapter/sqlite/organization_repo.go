package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/neomorfeo/licenseiq/internal/domain"
)

// OrganizationRepository implements domain.OrganizationRepository using SQLite.
type OrganizationRepository struct {
	db *sql.DB
}

// Compile-time check: OrganizationRepository implements the domain port.
var _ domain.OrganizationRepository = (*OrganizationRepository)(nil)

// NewOrganizationRepository creates a repository over the store's connection.
func NewOrganizationRepository(s *Store) *OrganizationRepository {
	return &OrganizationRepository{db: s.db}
}

func (r *OrganizationRepository) Create(ctx context.Context, o domain.Organization) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO organizations (id, tenant_id, name, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		o.ID, o.TenantID, o.Name, string(o.Status),
		o.CreatedAt.Format(timeFormat),
		o.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id string) (domain.Organization, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, name, status, created_at, updated_at
		 FROM organizations WHERE id = ?`, id,
	)

	var o domain.Organization
	var status, createdAt, updatedAt string

	err := row.Scan(&o.ID, &o.TenantID, &o.Name, &status, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Organization{}, domain.ErrOrganizationNotFound
		}
		return domain.Organization{}, fmt.Errorf("scanning organization: %w", err)
	}

	o.Status = domain.OrgStatus(status)
	o.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	o.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)

	return o, nil
}

func (r *OrganizationRepository) List(ctx context.Context, filter domain.OrgFilter) ([]domain.Organization, error) {
	query := `SELECT id, tenant_id, name, status, created_at, updated_at FROM organizations`
	var args []any
	var clauses []string

	if filter.Status != nil {
		clauses = append(clauses, `status = ?`)
		args = append(args, string(*filter.Status))
	}
	if filter.TenantID != "" {
		clauses = append(clauses, `tenant_id = ?`)
		args = append(args, filter.TenantID)
	}
	for i, clause := range clauses {
		if i == 0 {
			query += ` WHERE ` + clause
		} else {
			query += ` AND ` + clause
		}
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		var o domain.Organization
		var status, createdAt, updatedAt string

		if err := rows.Scan(&o.ID, &o.TenantID, &o.Name, &status, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning organization row: %w", err)
		}

		o.Status = domain.OrgStatus(status)
		o.CreatedAt, _ = time.Parse(timeFormat, createdAt)
		o.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)
		orgs = append(orgs, o)
	}

	return orgs, rows.Err()
}
