package storage

import "context"

// CourseRepository defines course catalog persistence operations.
type CourseRepository interface {
	SaveCourse(ctx context.Context, course *Course) error
	SaveCoursesBatch(ctx context.Context, courses []*Course) error
	ReplaceAllCourses(ctx context.Context, courses []*Course) error
	GetCourseByTitle(ctx context.Context, title string) (*Course, error)
	GetAllCourses(ctx context.Context) ([]*Course, error)
	GetCoursesByCategory(ctx context.Context, category string) ([]*Course, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	CountCourses(ctx context.Context) (int, error)
}

// HealthChecker defines database health probing operations.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Ready(ctx context.Context) error
}

// Compile-time interface checks
var (
	_ CourseRepository = (*DB)(nil)
	_ HealthChecker    = (*DB)(nil)
)
