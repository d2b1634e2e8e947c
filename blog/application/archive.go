package application

import (
	"context"
	"fmt"
	"time"

	"github.com/graker/blogarchive/blog/domain"
)

// ArchiveConfig carries the page identifiers the archive resolves URLs
// against and the locale used for month names.
type ArchiveConfig struct {
	// ArchivePage, PostPage and CategoryPage identify CMS pages for the
	// URL builder.
	ArchivePage  string
	PostPage     string
	CategoryPage string

	// Locale is a BCP 47 tag for month names, e.g. "en" or "ru".
	Locale string

	// Location sets the day-boundary zone for all calendar arithmetic.
	// Nil means UTC.
	Location *time.Location

	// Now overrides the clock; nil means time.Now.
	Now Clock
}

// ArchiveService answers archive page requests: the grouped post table and
// the prev/next pager. Both not-found and invalid-request conditions surface
// as errors that callers present uniformly as a missing resource.
type ArchiveService struct {
	posts      domain.PostRepository
	categories domain.CategoryRepository
	urls       domain.URLBuilder
	bounds     *BoundsValidator
	pager      *ArchivePager
	months     MonthFormatter
	loc        *time.Location

	postPage     string
	categoryPage string
}

func NewArchiveService(posts domain.PostRepository, categories domain.CategoryRepository, urls domain.URLBuilder, cfg ArchiveConfig) *ArchiveService {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	months := NewMonthFormatter(cfg.Locale)
	bounds := NewBoundsValidator(posts, now, loc)

	return &ArchiveService{
		posts:        posts,
		categories:   categories,
		urls:         urls,
		bounds:       bounds,
		pager:        NewArchivePager(bounds, urls, months, now, loc, cfg.ArchivePage),
		months:       months,
		loc:          loc,
		postPage:     cfg.PostPage,
		categoryPage: cfg.CategoryPage,
	}
}

// Bounds exposes the validator shared with the sitemap provider.
func (s *ArchiveService) Bounds() *BoundsValidator {
	return s.bounds
}

// Archive returns the archive table for the request: visible posts in the
// requested range, newest first, grouped by localized month name in the
// order the posts are encountered.
//
// Returns domain.ErrInvalidRequest for impossible dates and domain.ErrNotFound
// for dates outside [first post, today] or unknown category slugs. An
// in-bounds range that simply has no posts yields an empty table.
func (s *ArchiveService) Archive(ctx context.Context, req domain.ArchiveRequest) (*domain.ArchiveTable, error) {
	rng, err := ComputeRange(req.Year, req.Month, req.Day, s.loc)
	if err != nil {
		return nil, err
	}

	var category *domain.Category
	if req.CategorySlug != "" {
		category, err = s.categories.FindBySlug(ctx, req.CategorySlug)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve category %q: %w", req.CategorySlug, err)
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
	}

	ok, err := s.bounds.InRange(ctx, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}

	posts, err := s.posts.FindVisibleInRange(ctx, rng.Start, rng.End, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query archive posts: %w", err)
	}

	table := domain.NewArchiveTable()
	for _, p := range posts {
		entry := domain.ArchiveEntry{
			PublishedAt: p.PublishedAt,
			Title:       p.Title,
			PostURL:     s.urls.BuildURL(s.postPage, map[string]string{"slug": p.Slug}),
		}
		if c := p.FirstCategory(); c != nil {
			entry.CategoryName = c.Name
			entry.CategoryURL = s.urls.BuildURL(s.categoryPage, map[string]string{"slug": c.Slug})
		}
		table.Append(s.months.MonthName(p.PublishedAt.In(s.loc)), entry)
	}

	return table, nil
}

// Pager computes prev/next navigation for the request. It never fails for
// out-of-range requests; unreachable directions come back with empty URLs.
func (s *ArchiveService) Pager(ctx context.Context, req domain.ArchiveRequest) (domain.PagerResult, error) {
	if req.Year <= 0 {
		return domain.PagerResult{}, domain.ErrInvalidRequest
	}
	return s.pager.Pager(ctx, req)
}
