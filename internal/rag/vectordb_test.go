package rag

import (
	"context"
	"strings"
	"testing"

	chromem "github.com/philippgille/chromem-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainloxlabs/coursebot-go/internal/logger"
	"github.com/brainloxlabs/coursebot-go/internal/storage"
)

// stubEmbedder returns fixed unit vectors keyed by phrases in the text,
// making similarity scores fully deterministic.
func stubEmbedder() chromem.EmbeddingFunc {
	vectors := map[string][]float32{
		"java basics":     {1, 0, 0},
		"python for kids": {0, 1, 0},
		"close course":    {0.6, 0.8, 0},
		"distant course":  {0.59, 0.80740323, 0},
	}
	return func(_ context.Context, text string) ([]float32, error) {
		lowered := strings.ToLower(text)
		for key, vec := range vectors {
			if strings.Contains(lowered, key) {
				return vec, nil
			}
		}
		return []float32{1, 0, 0}, nil
	}
}

func testCourse(title, category string) *storage.Course {
	return &storage.Course{
		Title:           title,
		Description:     "About " + title,
		PricePerSession: "$10 per session",
		NumberOfLessons: 5,
		TotalPrice:      50,
		Category:        category,
	}
}

func newTestVectorDB(t *testing.T, courses []*storage.Course) *VectorDB {
	t.Helper()
	v := NewInMemoryVectorDB(stubEmbedder(), logger.New("error"))
	require.NotNil(t, v)
	require.NoError(t, v.Initialize(context.Background(), courses))
	return v
}

func TestVectorDB_NilSafe(t *testing.T) {
	t.Parallel()

	var v *VectorDB
	assert.NoError(t, v.Initialize(context.Background(), nil))
	assert.NoError(t, v.Rebuild(context.Background(), nil))
	assert.Equal(t, 0, v.Count())
	assert.False(t, v.IsEnabled())

	results, err := v.Search(context.Background(), "anything", "", 5, 0.6)
	assert.NoError(t, err)
	assert.Nil(t, results)
}

func TestVectorDB_DisabledWithoutEmbedder(t *testing.T) {
	t.Parallel()

	v, err := NewVectorDB(t.TempDir(), nil, logger.New("error"))
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestVectorDB_InitializeAndCount(t *testing.T) {
	t.Parallel()

	v := newTestVectorDB(t, []*storage.Course{
		testCourse("Java Basics", "Java"),
		testCourse("Python for Kids", "Python"),
	})

	assert.True(t, v.IsEnabled())
	assert.Equal(t, 2, v.Count())
}

func TestSearch_ThresholdInclusiveBoundary(t *testing.T) {
	t.Parallel()

	v := newTestVectorDB(t, []*storage.Course{
		testCourse("Close Course", "AI"),   // similarity 0.60 against the query vector
		testCourse("Distant Course", "AI"), // similarity 0.59
	})

	candidates, err := v.Search(context.Background(), "unrelated words", "", 5, 0.6)
	require.NoError(t, err)

	require.Len(t, candidates, 1, "score 0.60 is kept, 0.59 is dropped")
	assert.Equal(t, "Close Course", candidates[0].Course.Title)
	assert.InDelta(t, 0.6, float64(candidates[0].Score), 1e-4)
}

func TestSearch_CategoryHardFilter(t *testing.T) {
	t.Parallel()

	v := newTestVectorDB(t, []*storage.Course{
		testCourse("Java Basics", "Java"),
		testCourse("Python for Kids", "Python"),
	})

	candidates, err := v.Search(context.Background(), "java basics material", "Java", 5, 0)
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	assert.Equal(t, "Java Basics", candidates[0].Course.Title)
	assert.Equal(t, "Java", candidates[0].Course.Category)
}

func TestSearch_MetadataRoundTrip(t *testing.T) {
	t.Parallel()

	v := newTestVectorDB(t, []*storage.Course{
		testCourse("Java Basics", "Java"),
	})

	candidates, err := v.Search(context.Background(), "java basics", "", 1, 0.5)
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	got := candidates[0].Course
	assert.Equal(t, "Java Basics", got.Title)
	assert.Equal(t, "About Java Basics", got.Description)
	assert.Equal(t, "$10 per session", got.PricePerSession)
	assert.Equal(t, 5, got.NumberOfLessons)
	assert.Equal(t, 50, got.TotalPrice)
}

func TestSearch_LimitsToK(t *testing.T) {
	t.Parallel()

	v := newTestVectorDB(t, []*storage.Course{
		testCourse("Java Basics", "Java"),
		testCourse("Close Course", "Java"),
	})

	candidates, err := v.Search(context.Background(), "java basics", "", 1, 0)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Java Basics", candidates[0].Course.Title)
}

func TestSearch_EmptyInputs(t *testing.T) {
	t.Parallel()

	v := newTestVectorDB(t, nil)

	candidates, err := v.Search(context.Background(), "query", "", 5, 0.6)
	assert.NoError(t, err)
	assert.Empty(t, candidates)

	candidates, err = v.Search(context.Background(), "   ", "", 5, 0.6)
	assert.NoError(t, err)
	assert.Empty(t, candidates)

	candidates, err = v.Search(context.Background(), "query", "", 0, 0.6)
	assert.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestRebuild(t *testing.T) {
	t.Parallel()

	v := newTestVectorDB(t, []*storage.Course{
		testCourse("Java Basics", "Java"),
		testCourse("Python for Kids", "Python"),
	})
	require.Equal(t, 2, v.Count())

	require.NoError(t, v.Rebuild(context.Background(), []*storage.Course{
		testCourse("Close Course", "AI"),
	}))
	assert.Equal(t, 1, v.Count())
}

func TestDocumentContent(t *testing.T) {
	t.Parallel()

	got := DocumentContent(testCourse("Java Basics", "Java"))
	assert.Equal(t, "Category: Java\nTitle: Java Basics\nDescription: About Java Basics", got)
}
