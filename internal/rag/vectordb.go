// Package rag provides vector similarity search over course embeddings
// using chromem-go for storage.
package rag

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	chromem "github.com/philippgille/chromem-go"

	"github.com/brainloxlabs/coursebot-go/internal/catalog"
	apperrors "github.com/brainloxlabs/coursebot-go/internal/errors"
	"github.com/brainloxlabs/coursebot-go/internal/logger"
	"github.com/brainloxlabs/coursebot-go/internal/query"
	"github.com/brainloxlabs/coursebot-go/internal/storage"
)

// CourseCollectionName is the name of the course collection in chromem
const CourseCollectionName = "courses"

// VectorDB wraps a chromem-go database for course semantic search.
// A nil *VectorDB is valid and reports itself disabled; all methods
// degrade to empty results.
type VectorDB struct {
	db            *chromem.DB
	collection    *chromem.Collection
	embeddingFunc chromem.EmbeddingFunc
	logger        *logger.Logger
	mu            sync.RWMutex
	initialized   bool
}

// NewVectorDB creates a vector database persisted under persistDir.
// Returns nil if embeddingFunc is nil (semantic search disabled).
func NewVectorDB(persistDir string, embeddingFunc chromem.EmbeddingFunc, log *logger.Logger) (*VectorDB, error) {
	if embeddingFunc == nil {
		log.Info("no embedding provider configured, semantic search disabled")
		return nil, nil
	}

	db, err := chromem.NewPersistentDB(persistDir, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create chromem database: %w", err)
	}

	return &VectorDB{
		db:            db,
		embeddingFunc: embeddingFunc,
		logger:        log.WithModule("rag"),
	}, nil
}

// NewInMemoryVectorDB creates a non-persistent vector database, mainly
// for tests and one-shot tooling.
func NewInMemoryVectorDB(embeddingFunc chromem.EmbeddingFunc, log *logger.Logger) *VectorDB {
	if embeddingFunc == nil {
		return nil
	}
	return &VectorDB{
		db:            chromem.NewDB(),
		embeddingFunc: embeddingFunc,
		logger:        log.WithModule("rag"),
	}
}

// Initialize opens the course collection and indexes the given courses
// when the persisted collection is empty. Call once after construction.
func (v *VectorDB) Initialize(ctx context.Context, courses []*storage.Course) error {
	if v == nil {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	collection, err := v.db.GetOrCreateCollection(CourseCollectionName, nil, v.embeddingFunc)
	if err != nil {
		return fmt.Errorf("failed to get/create collection: %w", err)
	}
	v.collection = collection

	if existing := collection.Count(); existing > 0 {
		v.logger.WithField("count", existing).Info("loaded existing course embeddings from disk")
		v.initialized = true
		return nil
	}

	if len(courses) > 0 {
		if err := v.addCoursesInternal(ctx, courses); err != nil {
			return fmt.Errorf("failed to index courses: %w", err)
		}
		v.logger.WithField("count", len(courses)).Info("indexed courses for semantic search")
	}

	v.initialized = true
	return nil
}

// Rebuild drops the collection and re-indexes the given courses. Used
// after a catalog refresh.
func (v *VectorDB) Rebuild(ctx context.Context, courses []*storage.Course) error {
	if v == nil {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.db.DeleteCollection(CourseCollectionName); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	collection, err := v.db.GetOrCreateCollection(CourseCollectionName, nil, v.embeddingFunc)
	if err != nil {
		return fmt.Errorf("failed to recreate collection: %w", err)
	}
	v.collection = collection

	if len(courses) > 0 {
		if err := v.addCoursesInternal(ctx, courses); err != nil {
			return fmt.Errorf("failed to index courses: %w", err)
		}
	}

	v.logger.WithField("count", len(courses)).Info("rebuilt course embeddings")
	return nil
}

// AddCourses indexes additional courses into the collection.
func (v *VectorDB) AddCourses(ctx context.Context, courses []*storage.Course) error {
	if v == nil || v.collection == nil || len(courses) == 0 {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	return v.addCoursesInternal(ctx, courses)
}

// addCoursesInternal indexes courses (assumes lock held). One document
// per course; the embedded blob carries category, title, and
// description so category-scoped queries land near their courses.
func (v *VectorDB) addCoursesInternal(ctx context.Context, courses []*storage.Course) error {
	docs := make([]chromem.Document, 0, len(courses))
	for _, course := range courses {
		if course == nil || strings.TrimSpace(course.Title) == "" {
			continue
		}
		docs = append(docs, chromem.Document{
			ID:      strings.ToLower(course.Title),
			Content: DocumentContent(course),
			Metadata: map[string]string{
				"title":             course.Title,
				"category":          catalog.NormalizeCategory(course.Category),
				"description":       course.Description,
				"price_per_session": course.PricePerSession,
				"number_of_lessons": strconv.Itoa(course.NumberOfLessons),
				"total_price":       strconv.Itoa(course.TotalPrice),
			},
		})
	}

	if len(docs) == 0 {
		return nil
	}

	if err := v.collection.AddDocuments(ctx, docs, 4); err != nil { // 4 concurrent embeddings
		return fmt.Errorf("failed to add documents: %w", err)
	}
	return nil
}

// DocumentContent renders the text blob embedded for a course.
func DocumentContent(course *storage.Course) string {
	return fmt.Sprintf("Category: %s\nTitle: %s\nDescription: %s",
		course.Category, course.Title, course.Description)
}

// Search performs semantic search for courses matching the query.
// category, when non-empty, is a hard metadata filter and is also
// prefixed onto the embedded query text to pull results toward that
// category. Candidates scoring below threshold are dropped; the
// boundary is inclusive, a score equal to threshold survives. At most
// k results are returned, best first.
func (v *VectorDB) Search(ctx context.Context, queryText, category string, k int, threshold float32) ([]query.Candidate, error) {
	if v == nil {
		return nil, nil
	}
	if v.collection == nil {
		return nil, apperrors.ErrIndexUnavailable
	}
	if strings.TrimSpace(queryText) == "" || k <= 0 {
		return nil, nil
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	docCount := v.collection.Count()
	if docCount == 0 {
		return nil, nil
	}

	// chromem errors when asked for more results than documents
	limit := k
	if limit > docCount {
		limit = docCount
	}

	var where map[string]string
	embedText := queryText
	if category != "" {
		// Hard metadata filter; chromem caps the result count at the
		// filtered document count itself. Filter matching is exact, so
		// both sides use the canonical category casing.
		where = map[string]string{"category": catalog.NormalizeCategory(category)}
		embedText = fmt.Sprintf("Category: %s\n%s", category, queryText)
	}

	results, err := v.collection.Query(ctx, embedText, limit, where, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}

	candidates := make([]query.Candidate, 0, len(results))
	for _, result := range results {
		if result.Similarity < threshold {
			continue
		}
		candidates = append(candidates, query.Candidate{
			Course: courseFromMetadata(result.Metadata),
			Score:  result.Similarity,
		})
	}
	return candidates, nil
}

func courseFromMetadata(metadata map[string]string) *storage.Course {
	lessons, _ := strconv.Atoi(metadata["number_of_lessons"])
	totalPrice, _ := strconv.Atoi(metadata["total_price"])
	return &storage.Course{
		Title:           metadata["title"],
		Description:     metadata["description"],
		PricePerSession: metadata["price_per_session"],
		NumberOfLessons: lessons,
		TotalPrice:      totalPrice,
		Category:        metadata["category"],
	}
}

// Count returns the number of indexed documents.
func (v *VectorDB) Count() int {
	if v == nil || v.collection == nil {
		return 0
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.collection.Count()
}

// IsEnabled reports whether the vector store is usable.
func (v *VectorDB) IsEnabled() bool {
	return v != nil && v.initialized
}

// Compile-time interface check
var _ query.Searcher = (*VectorDB)(nil)
