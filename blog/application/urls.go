package application

import (
	"strings"

	"github.com/graker/blogarchive/blog/domain"
)

var _ domain.URLBuilder = (*PageURLBuilder)(nil)

// PageURLBuilder resolves page identifiers to path templates with {param}
// placeholders, e.g. "/archive/{year}/{month}/{day}". Trailing segments whose
// parameters are absent are dropped, so the same template serves year, month
// and day archives.
type PageURLBuilder struct {
	baseURL string
	pages   map[string]string
}

func NewPageURLBuilder(baseURL string, pages map[string]string) *PageURLBuilder {
	return &PageURLBuilder{baseURL: strings.TrimRight(baseURL, "/"), pages: pages}
}

// BuildURL returns an empty string for unknown page identifiers.
func (b *PageURLBuilder) BuildURL(pageID string, params map[string]string) string {
	tmpl, ok := b.pages[pageID]
	if !ok {
		return ""
	}

	segments := strings.Split(strings.Trim(tmpl, "/"), "/")
	resolved := make([]string, 0, len(segments))
	for _, seg := range segments {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			value := params[seg[1:len(seg)-1]]
			if value == "" {
				break
			}
			resolved = append(resolved, value)
			continue
		}
		resolved = append(resolved, seg)
	}

	return b.baseURL + "/" + strings.Join(resolved, "/")
}
