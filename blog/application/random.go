package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/graker/blogarchive/blog/domain"
)

// RandomPostsService returns a handful of random visible posts, optionally
// cached for a fixed lifetime. The cache is a single slot keyed by nothing
// but time, independent from the archive core.
type RandomPostsService struct {
	posts domain.PostRepository
	ttl   time.Duration
	now   Clock

	mu      sync.Mutex
	cached  []*domain.Post
	expires time.Time
}

// NewRandomPostsService creates the service; ttl of zero disables caching.
func NewRandomPostsService(posts domain.PostRepository, ttl time.Duration, now Clock) *RandomPostsService {
	if now == nil {
		now = time.Now
	}
	return &RandomPostsService{posts: posts, ttl: ttl, now: now}
}

// Posts returns up to count random visible posts.
func (s *RandomPostsService) Posts(ctx context.Context, count int) ([]*domain.Post, error) {
	if count <= 0 {
		count = 5
	}

	if s.ttl > 0 {
		s.mu.Lock()
		if s.cached != nil && s.now().Before(s.expires) {
			posts := s.cached
			s.mu.Unlock()
			return posts, nil
		}
		s.mu.Unlock()
	}

	posts, err := s.posts.RandomVisible(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("failed to pick random posts: %w", err)
	}

	if s.ttl > 0 {
		s.mu.Lock()
		s.cached = posts
		s.expires = s.now().Add(s.ttl)
		s.mu.Unlock()
	}

	return posts, nil
}
