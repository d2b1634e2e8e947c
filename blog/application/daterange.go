package application

import (
	"time"

	"github.com/graker/blogarchive/blog/domain"
)

// ComputeRange turns a year/month/day request into a half-open [start, end)
// range aligned to day boundaries in the location given (nil means UTC).
//
// Granularity follows the arguments: month == 0 yields a year range (day is
// ignored without a month), day == 0 yields a month range, otherwise a single
// day. Month and year rollovers use real calendar arithmetic, so Dec ranges
// end on Jan 1 of the next year and Feb 28 of a leap year is followed by
// Feb 29.
func ComputeRange(year, month, day int, loc *time.Location) (domain.DateRange, error) {
	if year <= 0 {
		return domain.DateRange{}, domain.ErrInvalidRequest
	}
	if loc == nil {
		loc = time.UTC
	}

	switch {
	case month == 0:
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		return domain.DateRange{Start: start, End: start.AddDate(1, 0, 0)}, nil

	case day == 0:
		if month < 1 || month > 12 {
			return domain.DateRange{}, domain.ErrInvalidRequest
		}
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
		return domain.DateRange{Start: start, End: start.AddDate(0, 1, 0)}, nil

	default:
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return domain.DateRange{}, domain.ErrInvalidRequest
		}
		start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
		// time.Date normalizes impossible dates (Feb 30 becomes Mar 2);
		// treat any normalization as an invalid request.
		if start.Year() != year || start.Month() != time.Month(month) || start.Day() != day {
			return domain.DateRange{}, domain.ErrInvalidRequest
		}
		return domain.DateRange{Start: start, End: start.AddDate(0, 0, 1)}, nil
	}
}
