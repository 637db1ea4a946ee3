package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/neomorfeo/licenseiq/internal/domain"
)

// ProductRepository implements domain.ProductRepository using SQLite.
type ProductRepository struct {
	db *sql.DB
}

// Compile-time check: ProductRepository implements the domain port.
var _ domain.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository creates a repository over the store's connection.
func NewProductRepository(s *Store) *ProductRepository {
	return &ProductRepository{db: s.db}
}

func (r *ProductRepository) Create(ctx context.Context, p domain.Product) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, code, name, description, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Code, p.Name, p.Description, string(p.Status),
		p.CreatedAt.Format(timeFormat),
		p.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ProductCodeConflictError{Code: p.Code}
		}
		return fmt.Errorf("inserting product: %w", err)
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (domain.Product, error) {
	return r.scanProduct(r.db.QueryRowContext(ctx,
		`SELECT id, code, name, description, status, created_at, updated_at
		 FROM products WHERE id = ?`, id,
	))
}

func (r *ProductRepository) GetByCode(ctx context.Context, code string) (domain.Product, error) {
	return r.scanProduct(r.db.QueryRowContext(ctx,
		`SELECT id, code, name, description, status, created_at, updated_at
		 FROM products WHERE code = ?`, code,
	))
}

func (r *ProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := `SELECT id, code, name, description, status, created_at, updated_at FROM products`
	var args []any

	if filter.Status != nil {
		query += ` WHERE status = ?`
		args = append(args, string(*filter.Status))
	}

	query += ` ORDER BY code`

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
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var status, createdAt, updatedAt string

		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Description, &status, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}

		p.Status = domain.ProductStatus(status)
		p.CreatedAt, _ = time.Parse(timeFormat, createdAt)
		p.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *ProductRepository) scanProduct(row *sql.Row) (domain.Product, error) {
	var p domain.Product
	var status, createdAt, updatedAt string

	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Description, &status, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("scanning product: %w", err)
	}

	p.Status = domain.ProductStatus(status)
	p.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	p.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)

	return p, nil
}
