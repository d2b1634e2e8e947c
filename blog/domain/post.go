package domain

import (
	"context"
	"time"
)

// Post represents a blog post
// A post is visible when it is published and its publish timestamp is not in the future.
// Posts originally imported from Drupal 6 keep their node id as ID.
type Post struct {
	ID          int64
	Title       string
	Slug        string
	Excerpt     string
	Content     string
	Published   bool
	PublishedAt time.Time
	UpdatedAt   time.Time
	CreatedAt   time.Time

	// Categories in the repository's natural order; the first one is the
	// post's display category in archive tables.
	Categories []Category
}

// Category is a blog category a post may belong to. No hierarchy.
type Category struct {
	ID   int64
	Name string
	Slug string
}

// FirstCategory returns the post's display category, or nil if it has none.
func (p *Post) FirstCategory() *Category {
	if len(p.Categories) == 0 {
		return nil
	}
	return &p.Categories[0]
}

type PostRepository interface {
	// FindVisibleInRange returns visible posts with PublishedAt in [start, end),
	// ordered by PublishedAt descending. A non-nil category restricts the result
	// to posts carrying that category.
	FindVisibleInRange(ctx context.Context, start, end time.Time, category *Category) ([]*Post, error)

	// FirstVisiblePost returns the earliest visible post, or nil if none exist.
	FirstVisiblePost(ctx context.Context) (*Post, error)

	// LastVisiblePost returns the most recently published visible post, or nil if none exist.
	LastVisiblePost(ctx context.Context) (*Post, error)

	// RandomVisible returns up to count visible posts in random order.
	RandomVisible(ctx context.Context, count int) ([]*Post, error)

	// ListWithExcerpts returns all posts with a non-empty excerpt.
	ListWithExcerpts(ctx context.Context) ([]*Post, error)

	// UpdateExcerpt replaces the stored excerpt of a post.
	UpdateExcerpt(ctx context.Context, postID int64, excerpt string) error

	CreatePost(ctx context.Context, p *Post) error
}

type CategoryRepository interface {
	// FindBySlug resolves a category by its slug, nil if unknown.
	FindBySlug(ctx context.Context, slug string) (*Category, error)
}
