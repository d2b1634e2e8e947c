package api

import "github.com/graker/blogarchive/blog/domain"

// ArchiveResponse is the wire shape of one archive page: the grouped post
// table plus prev/next navigation.
type ArchiveResponse struct {
	Archive *domain.ArchiveTable `json:"archive"`
	Pager   domain.PagerResult   `json:"pager"`
}

// RandomPost is the wire shape of a random-posts entry.
type RandomPost struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Excerpt     string `json:"excerpt,omitempty"`
	PublishedAt string `json:"published_at"`
}

// SitemapYearsResponse lists the archive-year sitemap entries.
type SitemapYearsResponse struct {
	Items []domain.SitemapEntry `json:"items"`
}
