// Package brainlox extracts course records from the Brainlox catalog
// page text.
package brainlox

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/brainloxlabs/coursebot-go/internal/storage"
)

// coursePattern matches one course card in the rendered page text:
// price, a free-form title/description blob, lesson count, and the
// trailing "View Details" link label.
var coursePattern = regexp.MustCompile(`(?s)\$(\d+)\s*per session\s*(.*?)\s*(\d+)\s*Lessons\s*View Details`)

// categoryRule maps keywords to a category. Rules are checked in order
// and the first keyword found in the title or description wins.
type categoryRule struct {
	name     string
	keywords []string
}

var categoryRules = []categoryRule{
	{name: "Python", keywords: []string{"python"}},
	{name: "Java", keywords: []string{"java"}},
	{name: "Cloud Computing", keywords: []string{"aws", "cloud"}},
	{name: "AI", keywords: []string{"ai", "artificial intelligence", "chatgpt", "machine learning"}},
	{name: "Game Development", keywords: []string{"game development", "unity", "scratch", "minecraft", "roblox"}},
	{name: "Web Development", keywords: []string{"javascript", "node", "html", "css", "web development"}},
	{name: "Mobile Development", keywords: []string{"mobile development"}},
	{name: "Robotics", keywords: []string{"robotics"}},
}

// FallbackCategory is assigned when no keyword rule matches, so no
// record is ever left uncategorized.
const FallbackCategory = "Other Programming"

// Categorize assigns a category from the keyword table.
func Categorize(title, description string) string {
	loweredTitle := strings.ToLower(title)
	loweredDesc := strings.ToLower(description)

	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(loweredTitle, kw) || strings.Contains(loweredDesc, kw) {
				return rule.name
			}
		}
	}
	return FallbackCategory
}

// splitTitleDescription separates the free-form blob between price and
// lesson count into a title and description. A colon or newline is the
// separator when present; otherwise the first five words become the
// title.
func splitTitleDescription(content string) (title, description string) {
	switch {
	case strings.Contains(content, ":"):
		parts := strings.SplitN(content, ":", 2)
		title, description = parts[0], parts[1]
	case strings.Contains(content, "\n"):
		parts := strings.SplitN(content, "\n", 2)
		title, description = parts[0], parts[1]
	default:
		words := strings.Fields(content)
		if len(words) > 5 {
			title = strings.Join(words[:5], " ")
			description = strings.Join(words[5:], " ")
		} else {
			title = content
		}
	}
	return strings.TrimSpace(title), strings.TrimSpace(description)
}

// Extract parses course records out of catalog page text. Returns an
// empty slice when no course cards are found.
func Extract(pageText string) []*storage.Course {
	matches := coursePattern.FindAllStringSubmatch(pageText, -1)
	courses := make([]*storage.Course, 0, len(matches))

	for _, match := range matches {
		pricePerSession, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		numberOfLessons, err := strconv.Atoi(match[3])
		if err != nil {
			continue
		}

		title, description := splitTitleDescription(strings.TrimSpace(match[2]))
		if title == "" {
			continue
		}

		courses = append(courses, &storage.Course{
			Title:           title,
			Description:     description,
			PricePerSession: fmt.Sprintf("$%d per session", pricePerSession),
			NumberOfLessons: numberOfLessons,
			TotalPrice:      pricePerSession * numberOfLessons,
			Category:        Categorize(title, description),
		})
	}

	return courses
}
