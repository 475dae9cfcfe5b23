package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainloxlabs/coursebot-go/internal/storage"
)

func course(title, category string) *storage.Course {
	return &storage.Course{
		Title:           title,
		Description:     "desc",
		PricePerSession: "$10 per session",
		NumberOfLessons: 5,
		TotalPrice:      50,
		Category:        category,
	}
}

func TestNew_CategoriesSortedAndDeduplicated(t *testing.T) {
	t.Parallel()

	c := New([]*storage.Course{
		course("Java Basics", "java"),
		course("Advanced Java", "Java"),
		course("Intro to AI", "AI"),
		course("Python for Kids", " python "),
	})

	assert.Equal(t, []string{"AI", "Java", "Python"}, c.Categories())
	assert.Equal(t, 4, c.Len())
}

func TestNew_SkipsNilAndUntitled(t *testing.T) {
	t.Parallel()

	c := New([]*storage.Course{
		nil,
		course("", "Java"),
		course("Java Basics", "Java"),
	})

	assert.Equal(t, 1, c.Len())
}

func TestCoursesInCategory(t *testing.T) {
	t.Parallel()

	c := New([]*storage.Course{
		course("Java Basics", "Java"),
		course("Advanced Java", "java"),
		course("Intro to AI", "AI"),
	})

	javaCourses := c.CoursesInCategory("JAVA")
	require.Len(t, javaCourses, 2)
	assert.Equal(t, "Java Basics", javaCourses[0].Title)

	assert.Nil(t, c.CoursesInCategory("Robotics"))
}

func TestFindByTitle(t *testing.T) {
	t.Parallel()

	c := New([]*storage.Course{
		course("Python for Kids", "Python"),
	})

	got := c.FindByTitle("  python FOR kids ")
	require.NotNil(t, got)
	assert.Equal(t, "Python for Kids", got.Title)

	assert.Nil(t, c.FindByTitle("No Such Course"))
}

func TestEmptyCatalog(t *testing.T) {
	t.Parallel()

	c := New(nil)
	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Categories())
	assert.Nil(t, c.FindByTitle("anything"))
}

func TestNormalizeCategory(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Web Development", NormalizeCategory(" web development "))
	assert.Equal(t, "Ai", NormalizeCategory("ai"))
	assert.Equal(t, "AI", NormalizeCategory("AI"))
}

func TestLoadFromJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "processed_courses.json")

	require.NoError(t, storage.ExportJSON(path, []*storage.Course{
		course("Java Basics", "Java"),
	}))

	c, err := LoadFromJSON(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	empty, err := LoadFromJSON(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}
