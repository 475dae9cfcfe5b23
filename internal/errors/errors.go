// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested resource was not found.
	// A failed title or category match is a normal outcome, not an error;
	// this sentinel is reserved for storage lookups.
	ErrNotFound = errors.New("resource not found")

	// ErrCatalogUnavailable indicates the course catalog is missing or empty.
	// Callers degrade to a fixed "no categories found" style message.
	ErrCatalogUnavailable = errors.New("course catalog unavailable")

	// ErrIndexUnavailable indicates the similarity index is missing or not
	// yet built. Only the semantic-search branch degrades; other branches
	// are unaffected.
	ErrIndexUnavailable = errors.New("similarity index unavailable")
)

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ScrapeError represents catalog scraping failures with context.
type ScrapeError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *ScrapeError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("scrape error (url=%s, status=%d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("scrape error (url=%s): %v", e.URL, e.Err)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// NewScrapeError creates a new scrape error.
func NewScrapeError(url string, statusCode int, err error) *ScrapeError {
	return &ScrapeError{
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}

// EmbeddingError represents embedding provider failures.
type EmbeddingError struct {
	Provider string
	Err      error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding error (provider=%s): %v", e.Provider, e.Err)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Err
}

// NewEmbeddingError creates a new embedding error.
func NewEmbeddingError(provider string, err error) *EmbeddingError {
	return &EmbeddingError{Provider: provider, Err: err}
}
