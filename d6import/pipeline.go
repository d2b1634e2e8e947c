package d6import

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

const (
	// Drupal 6 Views exports categories joined with ", "
	d6CategoryDelimiter = ", "
	categoryDelimiter   = "|"
	categoryMinLen      = 3
	categorySuffix      = "-tag"
)

// Preprocess runs the per-row pipeline over every data row and then the
// global slug uniqueness pass. The first row must be the header. Rows are
// mutated in place and returned.
//
// A missing required column aborts the batch with a ColumnError. Malformed
// link fields are logged and leave the row's slug untouched; the row still
// passes through the remaining stages.
func Preprocess(rows [][]string, cfg Config) ([][]string, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV input is empty")
	}

	cols, err := ResolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	pipeline := &rowPipeline{
		cols:     cols,
		rewriter: NewRewriter(cfg),
	}

	for i, row := range rows[1:] {
		pipeline.processRow(row, i+1)
	}

	UniquifySlugs(rows[1:], cols)

	return rows, nil
}

// rowPipeline applies the per-row stages in a fixed order: teaser dedup,
// slug extraction and normalization, category fixups, HTML rewriting.
type rowPipeline struct {
	cols     Columns
	rewriter *Rewriter
}

func (p *rowPipeline) processRow(row []string, index int) {
	// exports are not always rectangular; a truncated row cannot be processed
	for _, col := range []int{p.cols.Title, p.cols.Content, p.cols.Teaser, p.cols.Link, p.cols.Categories} {
		if col >= len(row) {
			log.Error().Str("node", p.rowID(row, index)).Msg("Row is missing columns, skipping")
			return
		}
	}

	p.dedupTeaser(row, index)
	p.extractSlug(row, index)
	p.fixCategories(row)
	p.rewriteHTML(row, index)
}

// rowID labels a row for log messages: the id column when the export has
// one, the row index otherwise.
func (p *rowPipeline) rowID(row []string, index int) string {
	if p.cols.ID >= 0 && p.cols.ID < len(row) {
		return row[p.cols.ID]
	}
	return strconv.Itoa(index)
}

// dedupTeaser clears a teaser that duplicates the content verbatim; the
// import target treats an empty teaser as "no excerpt".
func (p *rowPipeline) dedupTeaser(row []string, index int) {
	if row[p.cols.Teaser] == "" {
		return
	}
	if row[p.cols.Content] == row[p.cols.Teaser] {
		row[p.cols.Teaser] = ""
		log.Info().Str("node", p.rowID(row, index)).Msg("Removing redundant teaser")
	}
}

// extractSlug pulls the slug out of the D6 link field, which arrives as an
// anchor tag with the full node URL in its href: the slug is the last path
// segment between the first pair of double quotes. A field with no quoted
// href is reported and left as-is.
func (p *rowPipeline) extractSlug(row []string, index int) {
	link := row[p.cols.Link]

	start := strings.Index(link, `"`)
	if start < 0 {
		log.Error().Str("node", p.rowID(row, index)).Msg("Failed to parse link field")
		return
	}
	rest := link[start+1:]
	end := strings.Index(rest, `"`)
	if end < 0 {
		log.Error().Str("node", p.rowID(row, index)).Msg("Failed to parse link field")
		return
	}

	href := rest[:end]
	parts := strings.Split(href, "/")
	slug := parts[len(parts)-1]

	row[p.cols.Link] = normalizeSlug(slug, row[p.cols.Title])
}

// fixCategories swaps the D6 ", " delimiter for "|" and pads category names
// below the minimum length, mirroring the slug length rule.
func (p *rowPipeline) fixCategories(row []string) {
	field := row[p.cols.Categories]
	if field == "" {
		return
	}

	names := strings.Split(field, d6CategoryDelimiter)
	for i, name := range names {
		if name != "" && utf8.RuneCountInString(name) < categoryMinLen {
			names[i] = name + categorySuffix
		}
	}
	row[p.cols.Categories] = strings.Join(names, categoryDelimiter)
}

// rewriteHTML runs the configured DOM transforms over content and teaser
// independently; empty fields are skipped.
func (p *rowPipeline) rewriteHTML(row []string, index int) {
	for _, col := range []int{p.cols.Content, p.cols.Teaser} {
		if row[col] == "" {
			continue
		}
		rewritten, err := p.rewriter.Rewrite(row[col])
		if err != nil {
			log.Error().Err(err).Str("node", p.rowID(row, index)).Msg("Failed to rewrite HTML")
			continue
		}
		row[col] = rewritten
	}
}
