package application

import (
	"context"
	"fmt"

	"github.com/graker/blogarchive/blog/domain"
	"github.com/rs/zerolog/log"
)

// ExcerptService re-renders stored post excerpts through the Markdown filter
// and saves the result. Used after import and whenever the filter changes.
type ExcerptService struct {
	posts    domain.PostRepository
	renderer ExcerptRenderer
}

func NewExcerptService(posts domain.PostRepository, renderer ExcerptRenderer) *ExcerptService {
	return &ExcerptService{posts: posts, renderer: renderer}
}

// UpdateAll processes every post with a non-empty excerpt and returns how
// many were re-saved. Render failures are logged and skipped; storage
// failures abort.
func (s *ExcerptService) UpdateAll(ctx context.Context) (int, error) {
	posts, err := s.posts.ListWithExcerpts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list posts with excerpts: %w", err)
	}

	updated := 0
	for _, p := range posts {
		rendered, err := s.renderer.Render(p.Excerpt)
		if err != nil {
			log.Error().Err(err).Int64("postID", p.ID).Msg("Failed to render excerpt")
			continue
		}
		if rendered == p.Excerpt {
			continue
		}
		if err := s.posts.UpdateExcerpt(ctx, p.ID, rendered); err != nil {
			return updated, fmt.Errorf("failed to save excerpt for post %d: %w", p.ID, err)
		}
		updated++
	}

	return updated, nil
}
