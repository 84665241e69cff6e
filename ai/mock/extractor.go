package mock

import (
	"context"
	"strings"

	"github.com/spontanique/eventscout/ai"
)

// MockIntentExtractor is a test double for ai.IntentExtractor.
// It allows custom behavior injection via function fields.
type MockIntentExtractor struct {
	// ExtractIntentFunc is called by ExtractIntent if set.
	// If nil, uses default rule-based extraction.
	ExtractIntentFunc func(ctx context.Context, query string) (*ai.SearchIntent, error)

	// DefaultLocation is the city stamped on extracted intents.
	// If empty, "Copenhagen" is used.
	DefaultLocation string

	callCount int
}

// NewMockIntentExtractor creates a mock intent extractor with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExtractor().
func NewMockIntentExtractor() *MockIntentExtractor {
	return &MockIntentExtractor{}
}

// ExtractIntent extracts a search intent using simple substring rules,
// replicating what the extraction model does for common phrasings without any
// external service.
func (m *MockIntentExtractor) ExtractIntent(ctx context.Context, query string) (*ai.SearchIntent, error) {
	m.callCount++

	if m.ExtractIntentFunc != nil {
		return m.ExtractIntentFunc(ctx, query)
	}

	location := m.DefaultLocation
	if location == "" {
		location = "Copenhagen"
	}

	lower := strings.ToLower(query)

	intent := ai.FallbackIntent(query, location)

	// Categories: named directly or hinted by a characteristic keyword.
	hints := map[string][]string{
		"music":         {"concert", "jazz", "band", "gig", "dj"},
		"fitness":       {"yoga", "workout", "gym", "running"},
		"food":          {"dinner", "brunch", "tasting", "restaurant"},
		"entertainment": {"game", "games", "quiz", "comedy", "show"},
		"nightlife":     {"club", "party", "bar", "disco"},
		"culture":       {"museum", "art", "theater", "exhibition"},
		"sports":        {"football", "match", "basketball"},
		"business":      {"networking", "startup", "conference"},
		"social":        {"meetup", "gathering", "community"},
	}
	for _, category := range ai.IntentCategories {
		if strings.Contains(lower, category) {
			intent.Categories = append(intent.Categories, category)
			continue
		}
		for _, hint := range hints[category] {
			if strings.Contains(lower, hint) {
				intent.Categories = append(intent.Categories, category)
				break
			}
		}
	}

	// Price preference
	switch {
	case strings.Contains(lower, "free"):
		intent.PriceRange = ai.PriceRange{Min: 0, Max: 0}
	case strings.Contains(lower, "cheap") || strings.Contains(lower, "affordable"):
		intent.PriceRange = ai.PriceRange{Min: 0, Max: 200}
	case strings.Contains(lower, "expensive") || strings.Contains(lower, "premium"):
		intent.PriceRange = ai.PriceRange{Min: 300, Max: 10000}
	}

	// Time preference
	switch {
	case strings.Contains(lower, "tonight") || strings.Contains(lower, "today"):
		intent.TimePreference = "tonight"
	case strings.Contains(lower, "tomorrow"):
		intent.TimePreference = "tomorrow"
	case strings.Contains(lower, "weekend"):
		intent.TimePreference = "weekend"
	case strings.Contains(lower, "week"):
		intent.TimePreference = "week"
	}

	intent.Normalize(location)
	return intent, nil
}

// CallCount returns the number of times ExtractIntent was called.
func (m *MockIntentExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockIntentExtractor) Reset() {
	m.callCount = 0
	m.ExtractIntentFunc = nil
}
