package query

import (
	"fmt"
	"strings"

	"github.com/brainloxlabs/coursebot-go/internal/storage"
)

// courseIntent selects which course detail the asker wants.
type courseIntent int

const (
	intentDescription courseIntent = iota
	intentPrice
	intentLessons
)

// intentRule maps trigger keywords to an intent. Rules are evaluated in
// order and the first hit wins, so price outranks lessons when a query
// mentions both.
type intentRule struct {
	keywords []string
	intent   courseIntent
}

var intentRules = []intentRule{
	{keywords: []string{"price", "cost"}, intent: intentPrice},
	{keywords: []string{"session", "lesson"}, intent: intentLessons},
}

func classifyIntent(query string) courseIntent {
	lowered := strings.ToLower(query)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return rule.intent
			}
		}
	}
	return intentDescription
}

// formatCourse renders a resolved course using the template chosen by
// the query's intent.
func formatCourse(course *storage.Course, query string) string {
	switch classifyIntent(query) {
	case intentPrice:
		return fmt.Sprintf("Course: %s\nPrice per session: %s\nTotal price: $%d",
			course.Title, course.PricePerSession, course.TotalPrice)
	case intentLessons:
		return fmt.Sprintf("Course: %s\nNumber of lessons: %d",
			course.Title, course.NumberOfLessons)
	default:
		return fmt.Sprintf("Course: %s\nDescription: %s",
			course.Title, course.Description)
	}
}
