// Package query resolves free-text questions about the course catalog
// into deterministic textual answers.
package query

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/brainloxlabs/coursebot-go/internal/catalog"
	"github.com/brainloxlabs/coursebot-go/internal/logger"
	"github.com/brainloxlabs/coursebot-go/internal/metrics"
	"github.com/brainloxlabs/coursebot-go/internal/storage"
)

// Candidate is a course plus a similarity score in [0,1].
type Candidate struct {
	Course *storage.Course
	Score  float32
}

// Searcher performs vector similarity search over course embeddings,
// optionally filtered to a category. Implementations drop candidates
// scoring below threshold (inclusive boundary: a score equal to the
// threshold is kept) and return at most k results, best first.
type Searcher interface {
	Search(ctx context.Context, query, category string, k int, threshold float32) ([]Candidate, error)
}

// Route labels which state of the router produced an answer.
type Route string

const (
	RouteCategoryList Route = "category_list"
	RouteGroupedList  Route = "grouped_list"
	RouteTitleMatch   Route = "title_match"
	RouteSimilarity   Route = "similarity"
	RouteFallback     Route = "fallback"
)

// Router resolves queries against a catalog snapshot. States are
// checked in strict precedence order and the first hit answers:
//
//  1. category listing keywords
//  2. grouped course listing keywords
//  3. title match (exact, then longest partial)
//  4. category detection + similarity search
//  5. fixed guidance message
//
// Answer never returns an error; a missing catalog, missing index, or
// failed search all degrade to fixed messages.
type Router struct {
	catalog   atomic.Pointer[catalog.Catalog]
	searcher  Searcher
	log       *logger.Logger
	metrics   *metrics.Metrics
	topK      int
	threshold float32
}

// NewRouter creates a router over the given snapshot. searcher may be
// nil when no similarity index is available; state 4 then degrades to
// its "no courses found" message. metrics may be nil.
func NewRouter(cat *catalog.Catalog, searcher Searcher, log *logger.Logger, m *metrics.Metrics, topK int, threshold float32) *Router {
	if cat == nil {
		cat = catalog.New(nil)
	}
	if log == nil {
		log = logger.New("info")
	}
	r := &Router{
		searcher:  searcher,
		log:       log.WithModule("query"),
		metrics:   m,
		topK:      topK,
		threshold: threshold,
	}
	r.catalog.Store(cat)
	return r
}

// SetCatalog swaps in a fresh catalog snapshot. Safe to call while
// queries are in flight; in-flight queries keep the snapshot they
// started with.
func (r *Router) SetCatalog(cat *catalog.Catalog) {
	if cat == nil {
		cat = catalog.New(nil)
	}
	r.catalog.Store(cat)
}

// Catalog returns the active snapshot.
func (r *Router) Catalog() *catalog.Catalog {
	return r.catalog.Load()
}

// Answer resolves a query to a textual response. It never fails; every
// degenerate input or collaborator failure yields a fixed message.
func (r *Router) Answer(ctx context.Context, query string) string {
	start := time.Now()
	answer, route := r.resolve(ctx, query)

	if r.metrics != nil {
		r.metrics.QueriesTotal.WithLabelValues(string(route)).Inc()
		r.metrics.QueryDurationSeconds.WithLabelValues(string(route)).Observe(time.Since(start).Seconds())
	}
	r.log.Debug("query resolved",
		"route", string(route),
		"duration_ms", time.Since(start).Milliseconds())

	return answer
}

func (r *Router) resolve(ctx context.Context, query string) (string, Route) {
	cat := r.catalog.Load()
	lowered := strings.ToLower(strings.TrimSpace(query))

	if containsAny(lowered, "different courses", "types of courses") {
		return r.answerCategoryList(cat), RouteCategoryList
	}

	if containsAny(lowered, "available courses", "list all courses", "what courses do you have") {
		return r.answerGroupedList(cat), RouteGroupedList
	}

	if course := matchTitle(cat, query); course != nil {
		return formatCourse(course, query), RouteTitleMatch
	}

	if category := detectCategory(cat, query); category != "" {
		return r.answerSimilarity(ctx, query, category), RouteSimilarity
	}

	return fallbackMsg, RouteFallback
}

func (r *Router) answerCategoryList(cat *catalog.Catalog) string {
	categories := cat.Categories()
	if len(categories) == 0 {
		return noCategoriesMsg
	}

	var b strings.Builder
	b.WriteString(categoryListHeader)
	for _, category := range categories {
		b.WriteString("\n- ")
		b.WriteString(category)
	}
	return b.String()
}

func (r *Router) answerGroupedList(cat *catalog.Catalog) string {
	categories := cat.Categories()
	if len(categories) == 0 {
		return noCategoriesMsg
	}

	var b strings.Builder
	b.WriteString(groupedListHeader)
	b.WriteString("\n")
	for _, category := range categories {
		courses := cat.CoursesInCategory(category)
		if len(courses) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("\n**%s Courses:**", category))
		for _, course := range courses {
			b.WriteString("\n- ")
			b.WriteString(course.Title)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(groupedListTrailer)
	return b.String()
}

func (r *Router) answerSimilarity(ctx context.Context, query, category string) string {
	noResults := fmt.Sprintf("No courses found in '%s'. Try searching in other categories.", category)

	if r.searcher == nil {
		return noResults
	}

	candidates, err := r.searcher.Search(ctx, query, category, r.topK, r.threshold)
	if err != nil {
		r.log.WithError(err).WithField("category", category).Warn("similarity search failed")
		if r.metrics != nil {
			r.metrics.SearchErrorsTotal.Inc()
		}
		return noResults
	}
	if r.metrics != nil {
		r.metrics.SearchResultsReturned.Observe(float64(len(candidates)))
	}
	if len(candidates) == 0 {
		return noResults
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Found %d course(s) in '%s':", len(candidates), category))
	for _, c := range candidates {
		b.WriteString(fmt.Sprintf("\n- %s (%s)", c.Course.Title, c.Course.Category))
	}
	return b.String()
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
