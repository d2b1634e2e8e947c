package d6import

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// UniquifySlugs resolves slug collisions across the whole row set. It runs
// after the per-row pipeline so it sees every final slug at once: the first
// row keeps its slug, later duplicates get "-1", "-2", ... suffixes. Ties
// break by row order, which makes repeated runs deterministic, and the
// monotonically increasing suffix guarantees termination.
func UniquifySlugs(rows [][]string, cols Columns) {
	seen := make(map[string]struct{}, len(rows))

	for _, row := range rows {
		if cols.Link >= len(row) {
			continue
		}
		slug := row[cols.Link]
		if slug == "" {
			continue
		}

		if _, taken := seen[slug]; !taken {
			seen[slug] = struct{}{}
			continue
		}

		for n := 1; ; n++ {
			candidate := fmt.Sprintf("%s-%d", slug, n)
			if _, taken := seen[candidate]; !taken {
				row[cols.Link] = candidate
				seen[candidate] = struct{}{}
				break
			}
		}
		log.Info().Str("slug", slug).Str("resolved", row[cols.Link]).Msg("Resolved slug collision")
	}
}
