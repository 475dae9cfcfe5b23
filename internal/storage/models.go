package storage

import apperrors "github.com/brainloxlabs/coursebot-go/internal/errors"

// ErrNotFound is returned when a resource is not found in the database.
var ErrNotFound = apperrors.ErrNotFound

// Course represents a course record.
//
// TotalPrice is computed once at ingestion (price per session x lessons)
// and never recomputed afterwards. Category is always set; records the
// categorizer cannot place fall back to "Other Programming".
type Course struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	PricePerSession string `json:"price_per_session"` // Formatted, e.g. "$10 per session"
	NumberOfLessons int    `json:"number_of_lessons"`
	TotalPrice      int    `json:"total_price"`
	Category        string `json:"course_category"`
	CachedAt        int64  `json:"cached_at,omitempty"`
}
