package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// InitSchema creates all necessary tables and indexes.
// Note: WAL mode is configured in db.go.
func InitSchema(db *sql.DB) error {
	return createCoursesTable(db)
}

func createCoursesTable(db *sql.DB) error {
	// Title is the natural key of a catalog record; comparisons are
	// case-insensitive everywhere, hence COLLATE NOCASE.
	query := `
	CREATE TABLE IF NOT EXISTS courses (
		title TEXT PRIMARY KEY COLLATE NOCASE,
		description TEXT NOT NULL DEFAULT '',
		price_per_session TEXT NOT NULL,
		number_of_lessons INTEGER NOT NULL CHECK(number_of_lessons >= 0),
		total_price INTEGER NOT NULL CHECK(total_price >= 0),
		category TEXT NOT NULL,
		cached_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_courses_category ON courses(category COLLATE NOCASE);
	CREATE INDEX IF NOT EXISTS idx_courses_cached_at ON courses(cached_at);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create courses table: %w", err)
	}

	return nil
}
