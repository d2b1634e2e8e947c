package domain

import (
	"encoding/json"
	"time"
)

// Granularity is the calendar unit an archive request targets.
type Granularity int

const (
	GranularityYear Granularity = iota
	GranularityMonth
	GranularityDay
)

// ArchiveRequest addresses one archive page. Year is required. Day is only
// meaningful when Month is set; a day without a month is ignored.
type ArchiveRequest struct {
	Year         int
	Month        int
	Day          int
	CategorySlug string
}

// Granularity derives the calendar unit from which fields are set.
func (r ArchiveRequest) Granularity() Granularity {
	switch {
	case r.Month > 0 && r.Day > 0:
		return GranularityDay
	case r.Month > 0:
		return GranularityMonth
	default:
		return GranularityYear
	}
}

// DateRange is a half-open [Start, End) interval aligned to day boundaries.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// PagerResult carries prev/next navigation for an archive page. An empty URL
// means there is no navigable unit in that direction; the label is still
// populated with the current unit's own label so the UI always has text.
type PagerResult struct {
	PreviousLabel string `json:"previousLabel"`
	PreviousURL   string `json:"previousUrl"`
	NextLabel     string `json:"nextLabel"`
	NextURL       string `json:"nextUrl"`
}

// ArchiveEntry is one post line in an archive table. Category fields are empty
// when the post has no categories.
type ArchiveEntry struct {
	PublishedAt  time.Time `json:"publishedAt"`
	Title        string    `json:"title"`
	PostURL      string    `json:"postUrl"`
	CategoryName string    `json:"categoryName,omitempty"`
	CategoryURL  string    `json:"categoryUrl,omitempty"`
}

// ArchiveTable is an ordered mapping from localized month name to entries.
// Months appear in the order posts are encountered (descending publish date),
// not in calendar order. That insertion-order contract is deliberate and
// callers depend on it.
type ArchiveTable struct {
	months  []string
	entries map[string][]ArchiveEntry
}

func NewArchiveTable() *ArchiveTable {
	return &ArchiveTable{entries: make(map[string][]ArchiveEntry)}
}

// Append adds an entry to the named month group, creating the group at the
// current insertion position if it does not exist yet.
func (t *ArchiveTable) Append(month string, entry ArchiveEntry) {
	if _, ok := t.entries[month]; !ok {
		t.months = append(t.months, month)
	}
	t.entries[month] = append(t.entries[month], entry)
}

// Months returns group names in insertion order.
func (t *ArchiveTable) Months() []string {
	return t.months
}

// Entries returns the entries of one month group in insertion order.
func (t *ArchiveTable) Entries(month string) []ArchiveEntry {
	return t.entries[month]
}

// Len returns the total number of entries across all groups.
func (t *ArchiveTable) Len() int {
	n := 0
	for _, es := range t.entries {
		n += len(es)
	}
	return n
}

type archiveTableGroup struct {
	Month   string         `json:"month"`
	Entries []ArchiveEntry `json:"entries"`
}

// MarshalJSON serializes the table as an array of groups to keep the
// insertion order that a plain map would lose.
func (t *ArchiveTable) MarshalJSON() ([]byte, error) {
	groups := make([]archiveTableGroup, 0, len(t.months))
	for _, m := range t.months {
		groups = append(groups, archiveTableGroup{Month: m, Entries: t.entries[m]})
	}
	return json.Marshal(groups)
}

// SitemapEntry is one year line contributed to the XML sitemap.
type SitemapEntry struct {
	Title string    `json:"title"`
	URL   string    `json:"url"`
	MTime time.Time `json:"mtime"`
}

// SitemapPage describes the CMS page the sitemap years resolve against:
// its identifier for the URL builder and the configured URL parameter names.
// An empty YearParam yields entries with empty URLs.
type SitemapPage struct {
	ID         string
	YearParam  string
	MonthParam string
	DayParam   string
}

// URLBuilder builds a URL for a page identifier and its parameters.
// Implementations live outside the archive core.
type URLBuilder interface {
	BuildURL(pageID string, params map[string]string) string
}
