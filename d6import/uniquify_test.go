package d6import

import (
	"reflect"
	"testing"
)

func slugRows(slugs ...string) [][]string {
	rows := make([][]string, 0, len(slugs))
	for _, s := range slugs {
		rows = append(rows, []string{"title", "content", "teaser", s, "categories"})
	}
	return rows
}

func collectSlugs(rows [][]string, cols Columns) []string {
	slugs := make([]string, 0, len(rows))
	for _, row := range rows {
		slugs = append(slugs, row[cols.Link])
	}
	return slugs
}

func TestUniquifySlugs(t *testing.T) {
	cols := Columns{ID: -1, Title: 0, Content: 1, Teaser: 2, Link: 3, Categories: 4}

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no collisions",
			in:   []string{"a", "b", "c"},
			want: []string{"a", "b", "c"},
		},
		{
			name: "repeated slug gets numbered suffixes",
			in:   []string{"a", "a", "a", "b"},
			want: []string{"a", "a-1", "a-2", "b"},
		},
		{
			name: "suffix already taken moves to the next number",
			in:   []string{"a", "a-1", "a"},
			want: []string{"a", "a-1", "a-2"},
		},
		{
			name: "first occurrence always keeps its slug",
			in:   []string{"post", "post"},
			want: []string{"post", "post-1"},
		},
		{
			name: "empty slugs are left alone",
			in:   []string{"", "", "a"},
			want: []string{"", "", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := slugRows(tt.in...)
			UniquifySlugs(rows, cols)
			if got := collectSlugs(rows, cols); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("slugs = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUniquifySlugs_Deterministic(t *testing.T) {
	cols := Columns{ID: -1, Title: 0, Content: 1, Teaser: 2, Link: 3, Categories: 4}

	first := slugRows("a", "a", "b", "a")
	second := slugRows("a", "a", "b", "a")

	UniquifySlugs(first, cols)
	UniquifySlugs(second, cols)

	if !reflect.DeepEqual(collectSlugs(first, cols), collectSlugs(second, cols)) {
		t.Error("UniquifySlugs is not deterministic across runs")
	}
}

func TestUniquifySlugs_ShortRowsSkipped(t *testing.T) {
	cols := Columns{ID: -1, Title: 0, Content: 1, Teaser: 2, Link: 3, Categories: 4}

	rows := [][]string{
		{"title", "content"}, // missing the link column entirely
		{"title", "content", "teaser", "a", "categories"},
	}

	UniquifySlugs(rows, cols)

	if rows[1][cols.Link] != "a" {
		t.Errorf("slug = %q, want %q", rows[1][cols.Link], "a")
	}
}
