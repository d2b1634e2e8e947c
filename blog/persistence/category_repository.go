package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/graker/blogarchive/blog/domain"
)

var _ domain.CategoryRepository = (*SQLiteCategoryRepository)(nil)

// SQLiteCategoryRepository implements domain.CategoryRepository using SQL database (SQLite)
type SQLiteCategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new SQLiteCategoryRepository from a standard sql.DB
func NewCategoryRepository(db *sql.DB) *SQLiteCategoryRepository {
	return &SQLiteCategoryRepository{
		db: db,
	}
}

const findBySlugQuery = `
	SELECT id, name, slug
	FROM categories
	WHERE slug = ?
`

// FindBySlug resolves a category by slug; unknown slugs yield nil, not an error
func (r *SQLiteCategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	if slug == "" {
		return nil, nil
	}

	var c domain.Category
	err := r.db.QueryRowContext(ctx, findBySlugQuery, slug).Scan(&c.ID, &c.Name, &c.Slug)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &c, nil
}
