package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/brainloxlabs/coursebot-go/internal/errors"
)

// SaveCourse persists a single course record, replacing any existing
// record with the same title.
func (db *DB) SaveCourse(ctx context.Context, course *Course) error {
	if course == nil {
		return apperrors.NewValidationError("course", "must not be nil")
	}
	if course.Title == "" {
		return apperrors.NewValidationError("title", "must not be empty")
	}

	cachedAt := course.CachedAt
	if cachedAt == 0 {
		cachedAt = time.Now().Unix()
	}

	query := `
	INSERT INTO courses (title, description, price_per_session, number_of_lessons, total_price, category, cached_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(title) DO UPDATE SET
		description = excluded.description,
		price_per_session = excluded.price_per_session,
		number_of_lessons = excluded.number_of_lessons,
		total_price = excluded.total_price,
		category = excluded.category,
		cached_at = excluded.cached_at
	`

	_, err := db.conn.ExecContext(ctx, query,
		course.Title, course.Description, course.PricePerSession,
		course.NumberOfLessons, course.TotalPrice, course.Category, cachedAt)
	if err != nil {
		return fmt.Errorf("failed to save course %q: %w", course.Title, err)
	}
	return nil
}

// SaveCoursesBatch persists multiple course records in a single transaction.
func (db *DB) SaveCoursesBatch(ctx context.Context, courses []*Course) error {
	if len(courses) == 0 {
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO courses (title, description, price_per_session, number_of_lessons, total_price, category, cached_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(title) DO UPDATE SET
		description = excluded.description,
		price_per_session = excluded.price_per_session,
		number_of_lessons = excluded.number_of_lessons,
		total_price = excluded.total_price,
		category = excluded.category,
		cached_at = excluded.cached_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().Unix()
	for _, course := range courses {
		if course == nil || course.Title == "" {
			continue
		}
		cachedAt := course.CachedAt
		if cachedAt == 0 {
			cachedAt = now
		}
		if _, err := stmt.ExecContext(ctx,
			course.Title, course.Description, course.PricePerSession,
			course.NumberOfLessons, course.TotalPrice, course.Category, cachedAt); err != nil {
			return fmt.Errorf("failed to save course %q: %w", course.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ReplaceAllCourses atomically replaces the entire catalog with the given
// records. Used by the refresh job so readers never observe a half-written
// catalog.
func (db *DB) ReplaceAllCourses(ctx context.Context, courses []*Course) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM courses"); err != nil {
		return fmt.Errorf("failed to clear courses: %w", err)
	}

	now := time.Now().Unix()
	for _, course := range courses {
		if course == nil || course.Title == "" {
			continue
		}
		cachedAt := course.CachedAt
		if cachedAt == 0 {
			cachedAt = now
		}
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO courses (title, description, price_per_session, number_of_lessons, total_price, category, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET
			description = excluded.description,
			price_per_session = excluded.price_per_session,
			number_of_lessons = excluded.number_of_lessons,
			total_price = excluded.total_price,
			category = excluded.category,
			cached_at = excluded.cached_at
		`,
			course.Title, course.Description, course.PricePerSession,
			course.NumberOfLessons, course.TotalPrice, course.Category, cachedAt); err != nil {
			return fmt.Errorf("failed to insert course %q: %w", course.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetCourseByTitle retrieves a course by exact title (case-insensitive).
// Returns ErrNotFound if no such course exists.
func (db *DB) GetCourseByTitle(ctx context.Context, title string) (*Course, error) {
	query := `
	SELECT title, description, price_per_session, number_of_lessons, total_price, category, cached_at
	FROM courses WHERE title = ? COLLATE NOCASE
	`

	var c Course
	err := db.conn.QueryRowContext(ctx, query, title).Scan(
		&c.Title, &c.Description, &c.PricePerSession,
		&c.NumberOfLessons, &c.TotalPrice, &c.Category, &c.CachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course %q: %w", title, err)
	}
	return &c, nil
}

// GetAllCourses retrieves every course record ordered by title.
// Returns an empty slice, not an error, when the catalog is empty.
func (db *DB) GetAllCourses(ctx context.Context) ([]*Course, error) {
	query := `
	SELECT title, description, price_per_session, number_of_lessons, total_price, category, cached_at
	FROM courses ORDER BY title COLLATE NOCASE
	`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var courses []*Course
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.Title, &c.Description, &c.PricePerSession,
			&c.NumberOfLessons, &c.TotalPrice, &c.Category, &c.CachedAt); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}
	return courses, nil
}

// GetCoursesByCategory retrieves all courses in a category (case-insensitive),
// ordered by title.
func (db *DB) GetCoursesByCategory(ctx context.Context, category string) ([]*Course, error) {
	query := `
	SELECT title, description, price_per_session, number_of_lessons, total_price, category, cached_at
	FROM courses WHERE category = ? COLLATE NOCASE ORDER BY title COLLATE NOCASE
	`

	rows, err := db.conn.QueryContext(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses by category: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var courses []*Course
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.Title, &c.Description, &c.PricePerSession,
			&c.NumberOfLessons, &c.TotalPrice, &c.Category, &c.CachedAt); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}
	return courses, nil
}

// DistinctCategories returns the distinct category values in the catalog,
// ordered ascending. Casing is whatever was stored; callers normalize.
func (db *DB) DistinctCategories(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT DISTINCT category FROM courses ORDER BY category COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

// CountCourses returns the total number of course records.
func (db *DB) CountCourses(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM courses").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}
	return count, nil
}
