package main

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/brainloxlabs/coursebot-go/internal/catalog"
	"github.com/brainloxlabs/coursebot-go/internal/config"
	"github.com/brainloxlabs/coursebot-go/internal/scraper/brainlox"
	"github.com/brainloxlabs/coursebot-go/internal/storage"
)

// Verification results
type verifyResult struct {
	name    string
	passed  bool
	message string
}

var pricePattern = regexp.MustCompile(`^\$(\d+) per session$`)

func main() {
	fmt.Println("🔍 CourseBot Go - Data Consistency Verification Tool")
	fmt.Println("====================================================")

	results := []verifyResult{}

	// 1. Verify categorization rules against representative phrases
	results = append(results, verifyCategorization()...)

	// 2. Verify keyword precedence between overlapping rules
	results = append(results, verifyCategoryPrecedence()...)

	// 3. Verify category normalization keeps acronyms intact
	results = append(results, verifyNormalization()...)

	// 4. Verify exported catalog JSON, when present
	results = append(results, verifyExportedJSON()...)

	// Print results
	fmt.Println("\n📊 Verification Results:")
	fmt.Println("========================")

	passedCount := 0
	failedCount := 0

	for _, result := range results {
		status := "❌"
		if result.passed {
			status = "✅"
			passedCount++
		} else {
			failedCount++
		}
		fmt.Printf("%s %s: %s\n", status, result.name, result.message)
	}

	fmt.Printf("\n📈 Summary: %d passed, %d failed\n", passedCount, failedCount)

	if failedCount > 0 {
		os.Exit(1)
	}
}

// verifyCategorization checks that each category still claims its
// representative course titles.
func verifyCategorization() []verifyResult {
	results := []verifyResult{}

	cases := []struct {
		title    string
		expected string
	}{
		{"Python for Beginners", "Python"},
		{"Java Fundamentals", "Java"},
		{"AWS Cloud Practitioner", "Cloud Computing"},
		{"Machine Learning with ChatGPT", "AI"},
		{"Unity Game Development", "Game Development"},
		{"HTML and CSS Fundamentals", "Web Development"},
		{"Mobile Development with Flutter", "Mobile Development"},
		{"Robotics for Kids", "Robotics"},
		{"Competitive Chess Strategy", brainlox.FallbackCategory},
	}

	for _, tc := range cases {
		got := brainlox.Categorize(tc.title, "")
		results = append(results, verifyResult{
			name:    fmt.Sprintf("Categorize %q", tc.title),
			passed:  got == tc.expected,
			message: fmt.Sprintf("Expected %q, got %q", tc.expected, got),
		})
	}

	return results
}

// verifyCategoryPrecedence checks that earlier rules win when keywords
// overlap. "java" is a substring of "javascript", and "scratch" can
// appear in web course descriptions.
func verifyCategoryPrecedence() []verifyResult {
	results := []verifyResult{}

	cases := []struct {
		name        string
		title       string
		description string
		expected    string
	}{
		{"java beats javascript", "JavaScript Essentials", "", "Java"},
		{"scratch beats web keywords", "HTML and CSS from Scratch", "", "Game Development"},
		{"description keywords count", "Coding Adventures", "Build games in Roblox", "Game Development"},
	}

	for _, tc := range cases {
		got := brainlox.Categorize(tc.title, tc.description)
		results = append(results, verifyResult{
			name:    fmt.Sprintf("Precedence: %s", tc.name),
			passed:  got == tc.expected,
			message: fmt.Sprintf("Expected %q, got %q", tc.expected, got),
		})
	}

	return results
}

// verifyNormalization checks category casing used for vector metadata
// filters.
func verifyNormalization() []verifyResult {
	results := []verifyResult{}

	cases := []struct {
		input    string
		expected string
	}{
		{"AI", "AI"},
		{"web development", "Web Development"},
		{"  python  ", "Python"},
	}

	for _, tc := range cases {
		got := catalog.NormalizeCategory(tc.input)
		results = append(results, verifyResult{
			name:    fmt.Sprintf("Normalize %q", tc.input),
			passed:  got == tc.expected,
			message: fmt.Sprintf("Expected %q, got %q", tc.expected, got),
		})
	}

	return results
}

// verifyExportedJSON validates the processed catalog export when the
// file exists: every record needs a title and category, and the total
// price must equal price per session times lesson count.
func verifyExportedJSON() []verifyResult {
	cfg, err := config.Load()
	if err != nil {
		return []verifyResult{{
			name:    "Exported Catalog JSON",
			passed:  false,
			message: fmt.Sprintf("Failed to load config: %v", err),
		}}
	}
	path := cfg.CatalogJSONPath()

	courses, err := storage.ImportJSON(path)
	if err != nil {
		return []verifyResult{{
			name:    "Exported Catalog JSON",
			passed:  true,
			message: fmt.Sprintf("Skipped, %s not readable: %v", path, err),
		}}
	}

	results := []verifyResult{{
		name:    "Exported Catalog JSON",
		passed:  len(courses) > 0,
		message: fmt.Sprintf("Loaded %d courses from %s", len(courses), path),
	}}

	badRecords := 0
	badPricing := 0
	for _, course := range courses {
		if course.Title == "" || course.Category == "" {
			badRecords++
			continue
		}
		m := pricePattern.FindStringSubmatch(course.PricePerSession)
		if m == nil {
			badPricing++
			continue
		}
		perSession, _ := strconv.Atoi(m[1])
		if perSession*course.NumberOfLessons != course.TotalPrice {
			badPricing++
		}
	}

	results = append(results, verifyResult{
		name:    "Record Completeness",
		passed:  badRecords == 0,
		message: fmt.Sprintf("%d records missing title or category", badRecords),
	})
	results = append(results, verifyResult{
		name:    "Pricing Consistency",
		passed:  badPricing == 0,
		message: fmt.Sprintf("%d records with inconsistent pricing", badPricing),
	})

	return results
}
