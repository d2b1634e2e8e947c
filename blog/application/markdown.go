package application

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ExcerptRenderer converts a Markdown excerpt to HTML. Post excerpts are
// stored pre-rendered so list pages never run the Markdown filter at
// request time.
type ExcerptRenderer interface {
	Render(source string) (string, error)
}

type goldmarkExcerptRenderer struct {
	renderer goldmark.Markdown
}

func NewExcerptRenderer() ExcerptRenderer {
	renderer := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			html.WithUnsafe(),
		),
	)

	return &goldmarkExcerptRenderer{renderer: renderer}
}

func (r *goldmarkExcerptRenderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.renderer.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to convert excerpt to HTML: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
