package application

import (
	"context"
	"fmt"
	"time"

	"github.com/graker/blogarchive/blog/domain"
)

// BoundsValidator determines the earliest navigable archive date and whether
// a requested archive unit falls inside [first post date, today].
type BoundsValidator struct {
	posts domain.PostRepository
	now   Clock
	loc   *time.Location
}

func NewBoundsValidator(posts domain.PostRepository, now Clock, loc *time.Location) *BoundsValidator {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &BoundsValidator{posts: posts, now: now, loc: loc}
}

// FirstDate returns the publish date of the earliest visible post truncated
// to the start of its day, or today's start when no visible posts exist.
func (v *BoundsValidator) FirstDate(ctx context.Context) (time.Time, error) {
	first, err := v.posts.FirstVisiblePost(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to look up first post: %w", err)
	}
	if first == nil {
		return v.dayStart(v.now().In(v.loc)), nil
	}
	return v.dayStart(first.PublishedAt.In(v.loc)), nil
}

// FirstYear returns the year of the earliest visible post, or the current
// year when no visible posts exist.
func (v *BoundsValidator) FirstYear(ctx context.Context) (int, error) {
	first, err := v.posts.FirstVisiblePost(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to look up first post: %w", err)
	}
	if first == nil {
		return v.now().In(v.loc).Year(), nil
	}
	return first.PublishedAt.In(v.loc).Year(), nil
}

// InRange reports whether the requested unit lies within [firstDate, now],
// inclusive on both ends. The lower bound is truncated to the start of the
// request's granularity, so the first post's own year, month and day are all
// navigable even when the post was published mid-unit.
func (v *BoundsValidator) InRange(ctx context.Context, req domain.ArchiveRequest) (bool, error) {
	first, err := v.FirstDate(ctx)
	if err != nil {
		return false, err
	}

	var lower, requested time.Time
	switch req.Granularity() {
	case domain.GranularityDay:
		lower = first
		requested = time.Date(req.Year, time.Month(req.Month), req.Day, 0, 0, 0, 0, v.loc)
	case domain.GranularityMonth:
		lower = time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, v.loc)
		requested = time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, v.loc)
	default:
		lower = time.Date(first.Year(), time.January, 1, 0, 0, 0, 0, v.loc)
		requested = time.Date(req.Year, time.January, 1, 0, 0, 0, 0, v.loc)
	}

	now := v.now().In(v.loc)
	return !requested.Before(lower) && !requested.After(now), nil
}

func (v *BoundsValidator) dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, v.loc)
}
