// Package catalog provides a read-only snapshot of the course catalog
// shared across concurrent queries.
package catalog

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/brainloxlabs/coursebot-go/internal/storage"
)

// NoLower keeps acronym categories such as "AI" intact.
var titleCaser = cases.Title(language.English, cases.NoLower)

// Catalog is an immutable snapshot of course records. Built once at
// startup (or on refresh) and shared read-only, so no locking is needed
// on the query path.
type Catalog struct {
	courses    []*storage.Course
	categories []string
	byCategory map[string][]*storage.Course
}

// New builds a catalog snapshot from the given records. The input slice
// is not retained; records themselves are shared and must not be mutated.
func New(courses []*storage.Course) *Catalog {
	c := &Catalog{
		courses:    make([]*storage.Course, 0, len(courses)),
		byCategory: make(map[string][]*storage.Course),
	}

	seen := make(map[string]bool)
	for _, course := range courses {
		if course == nil || course.Title == "" {
			continue
		}
		c.courses = append(c.courses, course)

		category := NormalizeCategory(course.Category)
		key := strings.ToLower(category)
		if !seen[key] {
			seen[key] = true
			c.categories = append(c.categories, category)
		}
		c.byCategory[key] = append(c.byCategory[key], course)
	}

	sort.Strings(c.categories)
	return c
}

// LoadFromRepository builds a catalog snapshot from persisted records.
// A missing or empty store yields an empty catalog, not an error.
func LoadFromRepository(ctx context.Context, repo storage.CourseRepository) (*Catalog, error) {
	courses, err := repo.GetAllCourses(ctx)
	if err != nil {
		return nil, err
	}
	return New(courses), nil
}

// LoadFromJSON builds a catalog snapshot from an exported JSON file.
// A missing file yields an empty catalog.
func LoadFromJSON(path string) (*Catalog, error) {
	courses, err := storage.ImportJSON(path)
	if err != nil {
		if err == storage.ErrNotFound {
			return New(nil), nil
		}
		return nil, err
	}
	return New(courses), nil
}

// NormalizeCategory trims and title-cases a category name. This is the
// single canonical casing used by both the directory and the detector.
func NormalizeCategory(category string) string {
	return titleCaser.String(strings.TrimSpace(category))
}

// Courses returns all records in insertion order. Callers must not
// mutate the returned slice or its elements.
func (c *Catalog) Courses() []*storage.Course {
	return c.courses
}

// Categories returns the distinct normalized category names, sorted
// ascending. Empty catalog yields an empty slice, never nil access.
func (c *Catalog) Categories() []string {
	return c.categories
}

// CoursesInCategory returns the records tagged with the given category,
// case-insensitively. Returns nil when the category is unknown.
func (c *Catalog) CoursesInCategory(category string) []*storage.Course {
	return c.byCategory[strings.ToLower(NormalizeCategory(category))]
}

// FindByTitle returns the record whose title equals the given string
// case-insensitively, or nil.
func (c *Catalog) FindByTitle(title string) *storage.Course {
	want := strings.ToLower(strings.TrimSpace(title))
	for _, course := range c.courses {
		if strings.ToLower(course.Title) == want {
			return course
		}
	}
	return nil
}

// Len returns the number of records in the snapshot.
func (c *Catalog) Len() int {
	return len(c.courses)
}

// IsEmpty reports whether the snapshot holds no records.
func (c *Catalog) IsEmpty() bool {
	return len(c.courses) == 0
}
