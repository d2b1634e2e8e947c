package application

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/graker/blogarchive/blog/domain"
)

// ArchivePager computes prev/next navigation between adjacent archive pages.
// Navigation is bounded below by the first post's date and above by today;
// when a direction is not navigable its URL stays empty and its label repeats
// the current unit so templates always have text to render.
type ArchivePager struct {
	bounds      *BoundsValidator
	urls        domain.URLBuilder
	months      MonthFormatter
	now         Clock
	loc         *time.Location
	archivePage string
}

func NewArchivePager(bounds *BoundsValidator, urls domain.URLBuilder, months MonthFormatter, now Clock, loc *time.Location, archivePage string) *ArchivePager {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ArchivePager{
		bounds:      bounds,
		urls:        urls,
		months:      months,
		now:         now,
		loc:         loc,
		archivePage: archivePage,
	}
}

// Pager computes navigation for the request's granularity.
func (p *ArchivePager) Pager(ctx context.Context, req domain.ArchiveRequest) (domain.PagerResult, error) {
	switch req.Granularity() {
	case domain.GranularityDay:
		return p.dayPager(ctx, req)
	case domain.GranularityMonth:
		return p.monthPager(ctx, req)
	default:
		return p.yearPager(ctx, req)
	}
}

func (p *ArchivePager) yearPager(ctx context.Context, req domain.ArchiveRequest) (domain.PagerResult, error) {
	first, err := p.bounds.FirstDate(ctx)
	if err != nil {
		return domain.PagerResult{}, err
	}

	var res domain.PagerResult
	if first.Year() <= req.Year-1 {
		prev := req.Year - 1
		res.PreviousLabel = strconv.Itoa(prev)
		res.PreviousURL = p.pageURL(map[string]string{"year": strconv.Itoa(prev)})
	} else {
		res.PreviousLabel = strconv.Itoa(req.Year)
	}

	if req.Year < p.now().In(p.loc).Year() {
		next := req.Year + 1
		res.NextLabel = strconv.Itoa(next)
		res.NextURL = p.pageURL(map[string]string{"year": strconv.Itoa(next)})
	} else {
		res.NextLabel = strconv.Itoa(req.Year)
	}

	return res, nil
}

func (p *ArchivePager) monthPager(ctx context.Context, req domain.ArchiveRequest) (domain.PagerResult, error) {
	first, err := p.bounds.FirstDate(ctx)
	if err != nil {
		return domain.PagerResult{}, err
	}

	current := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, p.loc)

	var res domain.PagerResult
	if first.Before(current) {
		prev := current.AddDate(0, -1, 0)
		res.PreviousLabel = p.monthLabel(prev)
		res.PreviousURL = p.monthURL(prev)
	} else {
		res.PreviousLabel = p.monthLabel(current)
	}

	// The year and month comparisons are intentionally independent; keep
	// them as-is even though they disagree with the day pager's boundary.
	now := p.now().In(p.loc)
	if req.Year < now.Year() || req.Month < int(now.Month()) {
		next := current.AddDate(0, 1, 0)
		res.NextLabel = p.monthLabel(next)
		res.NextURL = p.monthURL(next)
	} else {
		res.NextLabel = p.monthLabel(current)
	}

	return res, nil
}

func (p *ArchivePager) dayPager(ctx context.Context, req domain.ArchiveRequest) (domain.PagerResult, error) {
	first, err := p.bounds.FirstDate(ctx)
	if err != nil {
		return domain.PagerResult{}, err
	}

	current := time.Date(req.Year, time.Month(req.Month), req.Day, 0, 0, 0, 0, p.loc)

	var res domain.PagerResult
	if first.Before(current) {
		prev := current.AddDate(0, 0, -1)
		res.PreviousLabel = p.dayLabel(prev)
		res.PreviousURL = p.dayURL(prev)
	} else {
		res.PreviousLabel = p.dayLabel(current)
	}

	nowTime := p.now().In(p.loc)
	today := time.Date(nowTime.Year(), nowTime.Month(), nowTime.Day(), 0, 0, 0, 0, p.loc)
	if current.Before(today) {
		next := current.AddDate(0, 0, 1)
		res.NextLabel = p.dayLabel(next)
		res.NextURL = p.dayURL(next)
	} else {
		res.NextLabel = p.dayLabel(current)
	}

	return res, nil
}

func (p *ArchivePager) monthLabel(t time.Time) string {
	return fmt.Sprintf("%s, %d", p.months.MonthName(t), t.Year())
}

func (p *ArchivePager) dayLabel(t time.Time) string {
	return fmt.Sprintf("%02d %s, %d", t.Day(), p.months.MonthName(t), t.Year())
}

func (p *ArchivePager) monthURL(t time.Time) string {
	return p.pageURL(map[string]string{
		"year":  strconv.Itoa(t.Year()),
		"month": strconv.Itoa(int(t.Month())),
	})
}

func (p *ArchivePager) dayURL(t time.Time) string {
	return p.pageURL(map[string]string{
		"year":  strconv.Itoa(t.Year()),
		"month": strconv.Itoa(int(t.Month())),
		"day":   strconv.Itoa(t.Day()),
	})
}

func (p *ArchivePager) pageURL(params map[string]string) string {
	return p.urls.BuildURL(p.archivePage, params)
}
