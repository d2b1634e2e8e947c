package application

import (
	"context"
	"time"

	"github.com/graker/blogarchive/blog/domain"
)

// fixedClock returns a Clock frozen at the instant given.
func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// fakePostRepo serves fixture posts. Posts must be listed newest first,
// matching the ordering contract of the real repository.
type fakePostRepo struct {
	posts []*domain.Post

	randomCalls int
	randomErr   error

	updatedExcerpts map[int64]string
}

var _ domain.PostRepository = (*fakePostRepo)(nil)

func (r *fakePostRepo) visible(p *domain.Post) bool {
	return p.Published && !p.PublishedAt.IsZero()
}

func (r *fakePostRepo) FindVisibleInRange(ctx context.Context, start, end time.Time, category *domain.Category) ([]*domain.Post, error) {
	result := make([]*domain.Post, 0)
	for _, p := range r.posts {
		if !r.visible(p) {
			continue
		}
		if p.PublishedAt.Before(start) || !p.PublishedAt.Before(end) {
			continue
		}
		if category != nil {
			found := false
			for _, c := range p.Categories {
				if c.ID == category.ID {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		result = append(result, p)
	}
	return result, nil
}

func (r *fakePostRepo) FirstVisiblePost(ctx context.Context) (*domain.Post, error) {
	var first *domain.Post
	for _, p := range r.posts {
		if !r.visible(p) {
			continue
		}
		if first == nil || p.PublishedAt.Before(first.PublishedAt) {
			first = p
		}
	}
	return first, nil
}

func (r *fakePostRepo) LastVisiblePost(ctx context.Context) (*domain.Post, error) {
	var last *domain.Post
	for _, p := range r.posts {
		if !r.visible(p) {
			continue
		}
		if last == nil || p.PublishedAt.After(last.PublishedAt) {
			last = p
		}
	}
	return last, nil
}

func (r *fakePostRepo) RandomVisible(ctx context.Context, count int) ([]*domain.Post, error) {
	r.randomCalls++
	if r.randomErr != nil {
		return nil, r.randomErr
	}
	result := make([]*domain.Post, 0, count)
	for _, p := range r.posts {
		if !r.visible(p) {
			continue
		}
		result = append(result, p)
		if len(result) == count {
			break
		}
	}
	return result, nil
}

func (r *fakePostRepo) ListWithExcerpts(ctx context.Context) ([]*domain.Post, error) {
	result := make([]*domain.Post, 0)
	for _, p := range r.posts {
		if p.Excerpt != "" {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakePostRepo) UpdateExcerpt(ctx context.Context, postID int64, excerpt string) error {
	if r.updatedExcerpts == nil {
		r.updatedExcerpts = make(map[int64]string)
	}
	r.updatedExcerpts[postID] = excerpt
	return nil
}

func (r *fakePostRepo) CreatePost(ctx context.Context, p *domain.Post) error {
	r.posts = append(r.posts, p)
	return nil
}

// fakeCategoryRepo resolves categories from a slug map.
type fakeCategoryRepo struct {
	categories map[string]*domain.Category
}

var _ domain.CategoryRepository = (*fakeCategoryRepo)(nil)

func (r *fakeCategoryRepo) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	if slug == "" {
		return nil, nil
	}
	return r.categories[slug], nil
}

// visiblePost builds a published post fixture.
func visiblePost(id int64, title string, publishedAt time.Time, categories ...domain.Category) *domain.Post {
	return &domain.Post{
		ID:          id,
		Title:       title,
		Slug:        "post-" + title,
		Published:   true,
		PublishedAt: publishedAt,
		Categories:  categories,
	}
}
