package d6import

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

// d6FilesPrefix is where Drupal 6 kept uploaded files.
const d6FilesPrefix = "/sites/default/files"

// previewMarker is the infix D6 image presets put into preview-sized copies.
const previewMarker = ".preview."

// legacyCodeTags maps the code-block tag names the old GeSHi filter emitted
// to their prettyprint language classes.
var legacyCodeTags = map[string]string{
	"code":       "",
	"blockcode":  "",
	"php":        "lang-php",
	"cpp":        "lang-cpp",
	"python":     "lang-py",
	"bash":       "lang-bsh",
	"javascript": "lang-js",
}

// Config enumerates the optional HTML transforms. Zero values leave each
// transform a no-op.
type Config struct {
	// FileLinksPath replaces the Drupal 6 file-storage prefix in links and
	// image sources when non-empty.
	FileLinksPath string

	// ExternalDomain rewrites absolute links on this domain to root-relative
	// form when non-empty.
	ExternalDomain string

	// LightboxToMagnific converts rel="lightbox" anchors to class="magnific".
	LightboxToMagnific bool

	// MagnifyOrphanPreviews wraps preview-sized images that are not already
	// links with a magnifying anchor pointing at the full-size file.
	MagnifyOrphanPreviews bool

	// CodeToPrettify restructures legacy code-block tags into
	// <pre class="prettyprint ..."><code> blocks.
	CodeToPrettify bool
}

func (c Config) htmlEnabled() bool {
	return c.FileLinksPath != "" || c.ExternalDomain != "" ||
		c.LightboxToMagnific || c.MagnifyOrphanPreviews || c.CodeToPrettify
}

// Rewriter applies the configured transforms to HTML fragments. Each call
// owns its parsed tree exclusively: parse, run transforms, serialize.
type Rewriter struct {
	cfg Config
}

func NewRewriter(cfg Config) *Rewriter {
	return &Rewriter{cfg: cfg}
}

// Rewrite processes one HTML fragment. With no transforms configured the
// fragment passes through byte-identical.
func (rw *Rewriter) Rewrite(fragment string) (string, error) {
	if !rw.cfg.htmlEnabled() || strings.TrimSpace(fragment) == "" {
		return fragment, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML fragment: %w", err)
	}

	if rw.cfg.ExternalDomain != "" {
		rw.relativizeExternalLinks(doc)
	}
	if rw.cfg.FileLinksPath != "" {
		rw.rewriteFileLinks(doc)
	}
	if rw.cfg.LightboxToMagnific {
		rw.lightboxToMagnific(doc)
	}
	if rw.cfg.MagnifyOrphanPreviews {
		rw.magnifyOrphanPreviews(doc)
	}
	if rw.cfg.CodeToPrettify {
		rw.codeToPrettify(doc)
	}

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize HTML fragment: %w", err)
	}
	return out, nil
}

// relativizeExternalLinks turns absolute links on the configured domain into
// root-relative ones, so imported content stops pointing at the old host.
func (rw *Rewriter) relativizeExternalLinks(doc *goquery.Document) {
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		u, err := url.Parse(href)
		if err != nil || !strings.EqualFold(u.Host, rw.cfg.ExternalDomain) {
			return
		}

		rel := u.Path
		if rel == "" {
			rel = "/"
		}
		if u.RawQuery != "" {
			rel += "?" + u.RawQuery
		}
		if u.Fragment != "" {
			rel += "#" + u.Fragment
		}

		log.Debug().Str("href", href).Str("relative", rel).Msg("Relativizing external link")
		s.SetAttr("href", rel)
	})
}

// rewriteFileLinks replaces the D6 file-storage prefix in anchor hrefs and
// image sources with the configured path.
func (rw *Rewriter) rewriteFileLinks(doc *goquery.Document) {
	rewrite := func(s *goquery.Selection, attr string) {
		value, ok := s.Attr(attr)
		if !ok || !strings.HasPrefix(value, d6FilesPrefix) {
			return
		}
		replaced := rw.cfg.FileLinksPath + strings.TrimPrefix(value, d6FilesPrefix)
		log.Debug().Str(attr, value).Msg("Replacing file link")
		s.SetAttr(attr, replaced)
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) { rewrite(s, "href") })
	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) { rewrite(s, "src") })
}

// lightboxToMagnific converts the old lightbox marker to the css class the
// new gallery script looks for.
func (rw *Rewriter) lightboxToMagnific(doc *goquery.Document) {
	doc.Find(`a[rel="lightbox"]`).Each(func(_ int, s *goquery.Selection) {
		s.RemoveAttr("rel")
		s.SetAttr("class", "magnific")
	})
}

// magnifyOrphanPreviews wraps preview-styled images that are not already
// inside a link with an anchor pointing at the full-size image.
func (rw *Rewriter) magnifyOrphanPreviews(doc *goquery.Document) {
	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if !strings.Contains(src, previewMarker) {
			return
		}
		if s.Closest("a").Length() > 0 {
			return
		}

		full := strings.Replace(src, previewMarker, ".", 1)
		log.Debug().Str("src", src).Str("href", full).Msg("Wrapping orphan preview image")
		s.WrapHtml(fmt.Sprintf(`<a href="%s" class="magnific"></a>`, full))
	})
}

// codeToPrettify restructures legacy code-block tags into a normalized
// <pre class="prettyprint ..."><code> block, pulled out of any enclosing
// paragraph, with embedded <br> tags stripped.
func (rw *Rewriter) codeToPrettify(doc *goquery.Document) {
	tags := make([]string, 0, len(legacyCodeTags))
	for tag := range legacyCodeTags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		class := "prettyprint"
		if lang := legacyCodeTags[tag]; lang != "" {
			class += " " + lang
		}

		doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
			// skip blocks this pass (or an earlier run) already produced
			if s.Closest("pre").Length() > 0 {
				return
			}

			s.Find("br").Remove()
			inner, err := s.Html()
			if err != nil {
				return
			}

			block := fmt.Sprintf(`<pre class="%s"><code>%s</code></pre>`, class, inner)
			paragraph := s.Closest("p")
			if paragraph.Length() == 0 {
				s.ReplaceWithHtml(block)
				return
			}

			// move the block out of the paragraph, then drop the
			// paragraph if nothing else is left in it
			paragraph.AfterHtml(block)
			s.Remove()
			if strings.TrimSpace(paragraph.Text()) == "" && paragraph.Children().Length() == 0 {
				paragraph.Remove()
			}
		})
	}
}
