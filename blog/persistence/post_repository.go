package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/graker/blogarchive/blog/domain"
	"github.com/graker/blogarchive/shared/db"
)

var _ domain.PostRepository = (*SQLitePostRepository)(nil)

// SQLitePostRepository implements domain.PostRepository using SQL database (SQLite)
type SQLitePostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new SQLitePostRepository from a standard sql.DB
func NewPostRepository(db *sql.DB) *SQLitePostRepository {
	return &SQLitePostRepository{
		db: db,
	}
}

const postColumns = `p.id, p.title, p.slug, p.excerpt, p.content, p.published, p.published_at, p.updated_at, p.created_at`

// visibleWhere filters to published posts whose publish time is not in the
// future. Callers bind the "now" timestamp.
const visibleWhere = `p.published = 1 AND p.published_at IS NOT NULL AND p.published_at <= ?`

const findVisibleInRangeQuery = `
	SELECT ` + postColumns + `
	FROM posts p
	WHERE ` + visibleWhere + ` AND p.published_at >= ? AND p.published_at < ?
	ORDER BY p.published_at DESC
`

const findVisibleInRangeByCategoryQuery = `
	SELECT ` + postColumns + `
	FROM posts p
	JOIN post_categories pc ON pc.post_id = p.id
	JOIN categories c ON c.id = pc.category_id
	WHERE ` + visibleWhere + ` AND p.published_at >= ? AND p.published_at < ? AND c.id = ?
	ORDER BY p.published_at DESC
`

// FindVisibleInRange retrieves visible posts published in [start, end),
// newest first, optionally restricted to a category
func (r *SQLitePostRepository) FindVisibleInRange(ctx context.Context, start, end time.Time, category *domain.Category) ([]*domain.Post, error) {
	now := time.Now().UTC()

	var (
		rows *sql.Rows
		err  error
	)
	if category != nil {
		rows, err = r.db.QueryContext(ctx, findVisibleInRangeByCategoryQuery, now, start, end, category.ID)
	} else {
		rows, err = r.db.QueryContext(ctx, findVisibleInRangeQuery, now, start, end)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query posts in range: %w", err)
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadCategories(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

const firstVisibleQuery = `
	SELECT ` + postColumns + `
	FROM posts p
	WHERE ` + visibleWhere + `
	ORDER BY p.published_at ASC
	LIMIT 1
`

const lastVisibleQuery = `
	SELECT ` + postColumns + `
	FROM posts p
	WHERE ` + visibleWhere + `
	ORDER BY p.published_at DESC
	LIMIT 1
`

// FirstVisiblePost returns the earliest visible post, or nil if there are none
func (r *SQLitePostRepository) FirstVisiblePost(ctx context.Context) (*domain.Post, error) {
	return r.queryOne(ctx, firstVisibleQuery)
}

// LastVisiblePost returns the most recently published visible post, or nil if there are none
func (r *SQLitePostRepository) LastVisiblePost(ctx context.Context) (*domain.Post, error) {
	return r.queryOne(ctx, lastVisibleQuery)
}

func (r *SQLitePostRepository) queryOne(ctx context.Context, query string) (*domain.Post, error) {
	now := time.Now().UTC()

	var row postRow
	err := r.db.QueryRowContext(ctx, query, now).Scan(
		&row.ID,
		&row.Title,
		&row.Slug,
		&row.Excerpt,
		&row.Content,
		&row.Published,
		&row.PublishedAt,
		&row.UpdatedAt,
		&row.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	post := row.toDomain()
	if err := r.loadCategories(ctx, []*domain.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

const randomVisibleQuery = `
	SELECT ` + postColumns + `
	FROM posts p
	WHERE ` + visibleWhere + `
	ORDER BY RANDOM()
	LIMIT ?
`

// RandomVisible returns up to count visible posts in random order
func (r *SQLitePostRepository) RandomVisible(ctx context.Context, count int) ([]*domain.Post, error) {
	if count <= 0 {
		count = 5
	}

	now := time.Now().UTC()
	rows, err := r.db.QueryContext(ctx, randomVisibleQuery, now, count)
	if err != nil {
		return nil, fmt.Errorf("failed to query random posts: %w", err)
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadCategories(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

const listWithExcerptsQuery = `
	SELECT ` + postColumns + `
	FROM posts p
	WHERE p.excerpt <> ''
	ORDER BY p.id ASC
`

// ListWithExcerpts returns all posts carrying a non-empty excerpt
func (r *SQLitePostRepository) ListWithExcerpts(ctx context.Context) ([]*domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, listWithExcerptsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts with excerpts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

const updateExcerptQuery = `
	UPDATE posts
	SET excerpt = ?, updated_at = ?
	WHERE id = ?
`

// UpdateExcerpt replaces the stored excerpt of a post
func (r *SQLitePostRepository) UpdateExcerpt(ctx context.Context, postID int64, excerpt string) error {
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, updateExcerptQuery, excerpt, now, postID); err != nil {
		return fmt.Errorf("failed to update excerpt: %w", err)
	}
	return nil
}

const insertPostQuery = `
	INSERT INTO posts (id, title, slug, excerpt, content, published, published_at, updated_at, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const insertCategoryQuery = `
	INSERT INTO categories (name, slug)
	VALUES (?, ?)
	ON CONFLICT(slug) DO UPDATE SET name = excluded.name
`

const selectCategoryIDQuery = `SELECT id FROM categories WHERE slug = ?`

const linkCategoryQuery = `
	INSERT INTO post_categories (post_id, category_id, sort_order)
	VALUES (?, ?, ?)
`

// CreatePost inserts a post together with its category links within a transaction
func (r *SQLitePostRepository) CreatePost(ctx context.Context, p *domain.Post) error {
	if p == nil {
		return fmt.Errorf("post cannot be nil")
	}
	if p.Title == "" {
		return fmt.Errorf("post title cannot be empty")
	}

	return db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, r.db)

		var publishedAt, updatedAt, createdAt any
		if !p.PublishedAt.IsZero() {
			publishedAt = p.PublishedAt
		}
		if !p.UpdatedAt.IsZero() {
			updatedAt = p.UpdatedAt
		}
		if !p.CreatedAt.IsZero() {
			createdAt = p.CreatedAt
		}

		var id any
		if p.ID != 0 {
			id = p.ID
		}

		res, err := executor.ExecContext(txCtx, insertPostQuery,
			id,
			p.Title,
			p.Slug,
			p.Excerpt,
			p.Content,
			p.Published,
			publishedAt,
			updatedAt,
			createdAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert post: %w", err)
		}

		if p.ID == 0 {
			newID, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("failed to read post id: %w", err)
			}
			p.ID = newID
		}

		for i, c := range p.Categories {
			if _, err := executor.ExecContext(txCtx, insertCategoryQuery, c.Name, c.Slug); err != nil {
				return fmt.Errorf("failed to upsert category %q: %w", c.Slug, err)
			}

			var categoryID int64
			if err := executor.QueryRowContext(txCtx, selectCategoryIDQuery, c.Slug).Scan(&categoryID); err != nil {
				return fmt.Errorf("failed to resolve category %q: %w", c.Slug, err)
			}
			p.Categories[i].ID = categoryID

			if _, err := executor.ExecContext(txCtx, linkCategoryQuery, p.ID, categoryID, i); err != nil {
				return fmt.Errorf("failed to link category %q: %w", c.Slug, err)
			}
		}

		return nil
	})
}

const loadCategoriesQuery = `
	SELECT pc.post_id, c.id, c.name, c.slug
	FROM post_categories pc
	JOIN categories c ON c.id = pc.category_id
	WHERE pc.post_id IN (%s)
	ORDER BY pc.post_id, pc.sort_order
`

// loadCategories attaches categories to the posts given, in link order
func (r *SQLitePostRepository) loadCategories(ctx context.Context, posts []*domain.Post) error {
	if len(posts) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Post, len(posts))
	placeholders := make([]string, 0, len(posts))
	args := make([]any, 0, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
		placeholders = append(placeholders, "?")
		args = append(args, p.ID)
	}

	query := fmt.Sprintf(loadCategoriesQuery, strings.Join(placeholders, ", "))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID int64
		var c domain.Category
		if err := rows.Scan(&postID, &c.ID, &c.Name, &c.Slug); err != nil {
			return fmt.Errorf("failed to scan category row: %w", err)
		}
		if p, ok := byID[postID]; ok {
			p.Categories = append(p.Categories, c)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating category rows: %w", err)
	}

	return nil
}

func scanPosts(rows *sql.Rows) ([]*domain.Post, error) {
	posts := make([]*domain.Post, 0)
	for rows.Next() {
		var row postRow
		err := rows.Scan(
			&row.ID,
			&row.Title,
			&row.Slug,
			&row.Excerpt,
			&row.Content,
			&row.Published,
			&row.PublishedAt,
			&row.UpdatedAt,
			&row.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, row.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}

// postRow is a private struct used to scan database rows
// It uses sql.NullTime to handle nullable timestamp fields
// and provides a method to convert to the domain.Post model
type postRow struct {
	ID          int64        `db:"id"`
	Title       string       `db:"title"`
	Slug        string       `db:"slug"`
	Excerpt     string       `db:"excerpt"`
	Content     string       `db:"content"`
	Published   bool         `db:"published"`
	PublishedAt sql.NullTime `db:"published_at"`
	UpdatedAt   sql.NullTime `db:"updated_at"`
	CreatedAt   sql.NullTime `db:"created_at"`
}

// toDomain converts a postRow to a domain.Post, handling nullable times
func (pr *postRow) toDomain() *domain.Post {
	post := &domain.Post{
		ID:        pr.ID,
		Title:     pr.Title,
		Slug:      pr.Slug,
		Excerpt:   pr.Excerpt,
		Content:   pr.Content,
		Published: pr.Published,
	}

	if pr.PublishedAt.Valid {
		post.PublishedAt = pr.PublishedAt.Time
	}
	if pr.UpdatedAt.Valid {
		post.UpdatedAt = pr.UpdatedAt.Time
	}
	if pr.CreatedAt.Valid {
		post.CreatedAt = pr.CreatedAt.Time
	}

	return post
}
