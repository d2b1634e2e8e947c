package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/graker/blogarchive/blog/domain"
)

func newTestSitemapService(posts []*domain.Post, now time.Time) *SitemapService {
	repo := &fakePostRepo{posts: posts}
	clock := fixedClock(now)
	bounds := NewBoundsValidator(repo, clock, time.UTC)
	urls := NewPageURLBuilder("https://example.org", map[string]string{
		"archive": "/archive/{year}/{month}/{day}",
	})
	return NewSitemapService(repo, bounds, urls, clock, time.UTC)
}

func TestSitemapService_Years(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	lastPublished := time.Date(2024, 5, 20, 9, 30, 0, 0, time.UTC)

	posts := []*domain.Post{
		visiblePost(2, "Last", lastPublished),
		visiblePost(1, "First", time.Date(2021, 3, 17, 0, 0, 0, 0, time.UTC)),
	}

	s := newTestSitemapService(posts, now)
	page := domain.SitemapPage{ID: "archive", YearParam: "year"}

	entries, err := s.Years(context.Background(), page)
	if err != nil {
		t.Fatalf("Years failed: %v", err)
	}

	if len(entries) != 4 {
		t.Fatalf("Years returned %d entries, want 4 (2021..2024)", len(entries))
	}

	for i, year := range []int{2021, 2022, 2023, 2024} {
		e := entries[i]
		wantTitle := fmt.Sprintf("Archive for year %d", year)
		if e.Title != wantTitle {
			t.Errorf("entry %d title = %q, want %q", i, e.Title, wantTitle)
		}
		wantURL := fmt.Sprintf("https://example.org/archive/%d", year)
		if e.URL != wantURL {
			t.Errorf("entry %d url = %q, want %q", i, e.URL, wantURL)
		}
	}

	// Past years get a stable Dec 31 stamp
	wantPast := time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC)
	if !entries[0].MTime.Equal(wantPast) {
		t.Errorf("2021 mtime = %v, want %v", entries[0].MTime, wantPast)
	}

	// The current year tracks the last post's publish time
	if !entries[3].MTime.Equal(lastPublished) {
		t.Errorf("2024 mtime = %v, want %v", entries[3].MTime, lastPublished)
	}
}

func TestSitemapService_Years_NoYearParam(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	posts := []*domain.Post{
		visiblePost(1, "First", time.Date(2023, 3, 17, 0, 0, 0, 0, time.UTC)),
	}

	s := newTestSitemapService(posts, now)

	entries, err := s.Years(context.Background(), domain.SitemapPage{ID: "archive"})
	if err != nil {
		t.Fatalf("Years failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Years returned %d entries, want 2", len(entries))
	}
	for i, e := range entries {
		if e.URL != "" {
			t.Errorf("entry %d url = %q, want empty without a year parameter", i, e.URL)
		}
	}
}

func TestSitemapService_Years_NoPosts(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	s := newTestSitemapService(nil, now)

	entries, err := s.Years(context.Background(), domain.SitemapPage{ID: "archive", YearParam: "year"})
	if err != nil {
		t.Fatalf("Years failed: %v", err)
	}

	// No posts collapses the range to the current year, with a Dec 31 stamp
	if len(entries) != 1 {
		t.Fatalf("Years returned %d entries, want 1", len(entries))
	}
	want := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	if !entries[0].MTime.Equal(want) {
		t.Errorf("mtime = %v, want %v", entries[0].MTime, want)
	}
}
