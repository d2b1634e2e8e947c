// Package d6import preprocesses CSV exports of Drupal 6 blog nodes into
// import-ready CSV: cleaned HTML, fixed slugs and rewritten links.
package d6import

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Columns holds the resolved positions of the headers the preprocessor
// works on. ID is optional and set to -1 when the export has no id column.
type Columns struct {
	ID         int
	Title      int
	Content    int
	Teaser     int
	Link       int
	Categories int
}

// ColumnError reports a required column header missing from the CSV.
// It aborts the whole batch; there is no per-row recovery for it.
type ColumnError struct {
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %q not found in CSV header", e.Column)
}

// ResolveColumns locates the pipeline's columns in the header row.
// Header names are matched case-insensitively with whitespace trimmed;
// column order in the file is not fixed.
func ResolveColumns(header []string) (Columns, error) {
	find := func(name string) int {
		for i, title := range header {
			if strings.EqualFold(strings.TrimSpace(title), name) {
				return i
			}
		}
		return -1
	}

	cols := Columns{
		ID:         find("id"),
		Title:      find("title"),
		Content:    find("content"),
		Teaser:     find("teaser"),
		Link:       find("link"),
		Categories: find("categories"),
	}

	for _, required := range []struct {
		name string
		pos  int
	}{
		{"title", cols.Title},
		{"content", cols.Content},
		{"teaser", cols.Teaser},
		{"link", cols.Link},
		{"categories", cols.Categories},
	} {
		if required.pos < 0 {
			return cols, &ColumnError{Column: required.name}
		}
	}

	return cols, nil
}

// ReadFile loads a whole CSV file, header row included.
func ReadFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // D6 exports are not always rectangular

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV %s: %w", path, err)
	}
	return rows, nil
}

// WriteFile writes rows back out as CSV.
func WriteFile(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}
