package query

import (
	"strings"

	"github.com/brainloxlabs/coursebot-go/internal/catalog"
	"github.com/brainloxlabs/coursebot-go/internal/storage"
)

// matchTitle resolves a query to a catalog record in two phases, both
// case-insensitive.
//
// Exact phase: the trimmed query equals a title. An exact hit wins
// outright, so a record titled "AI" beats "Intro to AI" for the query
// "AI".
//
// Partial phase: every title that appears as a substring of the query
// is a candidate; the longest title wins. This keeps a short generic
// title from shadowing a longer, more specific one it is contained in.
func matchTitle(cat *catalog.Catalog, query string) *storage.Course {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil
	}

	if exact := cat.FindByTitle(trimmed); exact != nil {
		return exact
	}

	lowered := strings.ToLower(trimmed)
	var best *storage.Course
	for _, course := range cat.Courses() {
		title := strings.ToLower(course.Title)
		if title == "" || !strings.Contains(lowered, title) {
			continue
		}
		if best == nil || len(course.Title) > len(best.Title) {
			best = course
		}
	}
	return best
}
