package application

import (
	"context"
	"testing"
	"time"

	"github.com/graker/blogarchive/blog/domain"
)

func newTestPager(firstPost, now time.Time) *ArchivePager {
	repo := &fakePostRepo{posts: []*domain.Post{
		visiblePost(1, "First", firstPost),
	}}
	clock := fixedClock(now)
	bounds := NewBoundsValidator(repo, clock, time.UTC)
	urls := NewPageURLBuilder("https://example.org", map[string]string{
		"archive": "/archive/{year}/{month}/{day}",
	})
	return NewArchivePager(bounds, urls, NewMonthFormatter("en"), clock, time.UTC, "archive")
}

func TestArchivePager_Year(t *testing.T) {
	firstPost := time.Date(2015, 3, 17, 14, 30, 0, 0, time.UTC)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	p := newTestPager(firstPost, now)
	ctx := context.Background()

	tests := []struct {
		name string
		year int
		want domain.PagerResult
	}{
		{
			name: "middle year navigates both ways",
			year: 2020,
			want: domain.PagerResult{
				PreviousLabel: "2019",
				PreviousURL:   "https://example.org/archive/2019",
				NextLabel:     "2021",
				NextURL:       "https://example.org/archive/2021",
			},
		},
		{
			name: "first year has no previous",
			year: 2015,
			want: domain.PagerResult{
				PreviousLabel: "2015",
				NextLabel:     "2016",
				NextURL:       "https://example.org/archive/2016",
			},
		},
		{
			name: "current year has no next",
			year: 2024,
			want: domain.PagerResult{
				PreviousLabel: "2023",
				PreviousURL:   "https://example.org/archive/2023",
				NextLabel:     "2024",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Pager(ctx, domain.ArchiveRequest{Year: tt.year})
			if err != nil {
				t.Fatalf("Pager failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Pager = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestArchivePager_Month(t *testing.T) {
	firstPost := time.Date(2015, 3, 17, 14, 30, 0, 0, time.UTC)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	p := newTestPager(firstPost, now)
	ctx := context.Background()

	tests := []struct {
		name  string
		year  int
		month int
		want  domain.PagerResult
	}{
		{
			name:  "middle month navigates both ways",
			year:  2020,
			month: 6,
			want: domain.PagerResult{
				PreviousLabel: "May, 2020",
				PreviousURL:   "https://example.org/archive/2020/5",
				NextLabel:     "July, 2020",
				NextURL:       "https://example.org/archive/2020/7",
			},
		},
		{
			name:  "january navigates back into december",
			year:  2020,
			month: 1,
			want: domain.PagerResult{
				PreviousLabel: "December, 2019",
				PreviousURL:   "https://example.org/archive/2019/12",
				NextLabel:     "February, 2020",
				NextURL:       "https://example.org/archive/2020/2",
			},
		},
		{
			name:  "first month has no previous",
			year:  2015,
			month: 3,
			want: domain.PagerResult{
				PreviousLabel: "March, 2015",
				NextLabel:     "April, 2015",
				NextURL:       "https://example.org/archive/2015/4",
			},
		},
		{
			name:  "current month has no next",
			year:  2024,
			month: 6,
			want: domain.PagerResult{
				PreviousLabel: "May, 2024",
				PreviousURL:   "https://example.org/archive/2024/5",
				NextLabel:     "June, 2024",
			},
		},
		{
			name:  "december of last year navigates into january",
			year:  2023,
			month: 12,
			want: domain.PagerResult{
				PreviousLabel: "November, 2023",
				PreviousURL:   "https://example.org/archive/2023/11",
				NextLabel:     "January, 2024",
				NextURL:       "https://example.org/archive/2024/1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Pager(ctx, domain.ArchiveRequest{Year: tt.year, Month: tt.month})
			if err != nil {
				t.Fatalf("Pager failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Pager = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestArchivePager_Day(t *testing.T) {
	firstPost := time.Date(2015, 3, 17, 14, 30, 0, 0, time.UTC)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	p := newTestPager(firstPost, now)
	ctx := context.Background()

	tests := []struct {
		name  string
		year  int
		month int
		day   int
		want  domain.PagerResult
	}{
		{
			name:  "middle day navigates both ways",
			year:  2020,
			month: 3,
			day:   1,
			want: domain.PagerResult{
				PreviousLabel: "29 February, 2020",
				PreviousURL:   "https://example.org/archive/2020/2/29",
				NextLabel:     "02 March, 2020",
				NextURL:       "https://example.org/archive/2020/3/2",
			},
		},
		{
			name:  "first day has no previous",
			year:  2015,
			month: 3,
			day:   17,
			want: domain.PagerResult{
				PreviousLabel: "17 March, 2015",
				NextLabel:     "18 March, 2015",
				NextURL:       "https://example.org/archive/2015/3/18",
			},
		},
		{
			name:  "today has no next",
			year:  2024,
			month: 6,
			day:   15,
			want: domain.PagerResult{
				PreviousLabel: "14 June, 2024",
				PreviousURL:   "https://example.org/archive/2024/6/14",
				NextLabel:     "15 June, 2024",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Pager(ctx, domain.ArchiveRequest{Year: tt.year, Month: tt.month, Day: tt.day})
			if err != nil {
				t.Fatalf("Pager failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Pager = %+v, want %+v", got, tt.want)
			}
		})
	}
}
