package repository

import (
	"context"
	"fmt"

	"libraminds/database"
	"libraminds/domain/entities"

	"github.com/jackc/pgx/v5"
)

const categoryColumns = `id, name, status, created_by, created_at, updated_at`

// CategoryRepository implements the CategoryRepository interface over Postgres
type CategoryRepository struct {
	q Queryable
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *database.DB) *CategoryRepository {
	return &CategoryRepository{q: db.Pool}
}

func newCategoryRepository(q Queryable) *CategoryRepository {
	return &CategoryRepository{q: q}
}

func scanCategory(row pgx.Row) (*entities.Category, error) {
	var category entities.Category
	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Status,
		&category.CreatedBy,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetByID retrieves a category by ID, returning nil when not found
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*entities.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE id = $1`, categoryColumns)

	category, err := scanCategory(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}
	return category, nil
}

// Create inserts a new category and fills its ID and timestamps
func (r *CategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	query := `
		INSERT INTO categories (name, status, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.q.QueryRow(ctx, query, category.Name, category.Status, category.CreatedBy).Scan(
		&category.ID,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create category %q: %w", category.Name, err)
	}
	return nil
}

// UpdateStatus sets a category's approval status
func (r *CategoryRepository) UpdateStatus(ctx context.Context, id int64, status entities.CategoryStatus) error {
	query := `
		UPDATE categories
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`
	result, err := r.q.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status for category %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("category %d not found", id)
	}
	return nil
}

// GetAll returns categories, optionally filtered by status
func (r *CategoryRepository) GetAll(ctx context.Context, status *entities.CategoryStatus) ([]*entities.Category, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM categories
		WHERE ($1::TEXT IS NULL OR status = $1)
		ORDER BY name
	`, categoryColumns)

	rows, err := r.q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	var categories []*entities.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}
