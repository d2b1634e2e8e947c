package application

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/graker/blogarchive/blog/domain"
)

// SitemapService contributes one entry per archive year to the XML sitemap,
// from the first post's year through the current year.
type SitemapService struct {
	posts  domain.PostRepository
	bounds *BoundsValidator
	urls   domain.URLBuilder
	now    Clock
	loc    *time.Location
}

func NewSitemapService(posts domain.PostRepository, bounds *BoundsValidator, urls domain.URLBuilder, now Clock, loc *time.Location) *SitemapService {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &SitemapService{posts: posts, bounds: bounds, urls: urls, now: now, loc: loc}
}

// Years enumerates archive years ascending. A page without a configured year
// parameter still produces entries, just with empty URLs.
func (s *SitemapService) Years(ctx context.Context, page domain.SitemapPage) ([]domain.SitemapEntry, error) {
	firstYear, err := s.bounds.FirstYear(ctx)
	if err != nil {
		return nil, err
	}
	currentYear := s.now().In(s.loc).Year()

	entries := make([]domain.SitemapEntry, 0, currentYear-firstYear+1)
	for year := firstYear; year <= currentYear; year++ {
		url := ""
		if page.YearParam != "" {
			url = s.urls.BuildURL(page.ID, map[string]string{page.YearParam: strconv.Itoa(year)})
		}

		mtime, err := s.mtime(ctx, year, currentYear)
		if err != nil {
			return nil, err
		}

		entries = append(entries, domain.SitemapEntry{
			Title: fmt.Sprintf("Archive for year %d", year),
			URL:   url,
			MTime: mtime,
		})
	}

	return entries, nil
}

// mtime is the last post's publish time for the current year; any other year
// gets a stable Dec 31 00:00:00 stamp instead of "now".
func (s *SitemapService) mtime(ctx context.Context, year, currentYear int) (time.Time, error) {
	if year == currentYear {
		last, err := s.posts.LastVisiblePost(ctx)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to look up last post: %w", err)
		}
		if last != nil {
			return last.PublishedAt, nil
		}
	}
	return time.Date(year, time.December, 31, 0, 0, 0, 0, s.loc), nil
}
