package query

import (
	"sort"
	"strings"

	"github.com/brainloxlabs/coursebot-go/internal/catalog"
)

// detectCategory returns the known category whose name appears as a
// case-insensitive substring of the query, or "" when none does.
//
// When several category names overlap the query (say "Web Development"
// and "AI" both appear), the longest name wins; ties break on sorted
// category order. Longest-match keeps detection deterministic.
func detectCategory(cat *catalog.Catalog, query string) string {
	categories := cat.Categories()
	if len(categories) == 0 {
		return ""
	}

	// Categories() is sorted ascending; a stable re-sort by descending
	// length keeps name order as the tie-break.
	ordered := make([]string, len(categories))
	copy(ordered, categories)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})

	lowered := strings.ToLower(query)
	for _, category := range ordered {
		if strings.Contains(lowered, strings.ToLower(category)) {
			return category
		}
	}
	return ""
}
