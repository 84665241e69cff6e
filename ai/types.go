package ai

import "strings"

// IntentCategories defines the valid event categories an extractor may emit.
// Values outside this vocabulary are dropped during normalization.
var IntentCategories = []string{
	"music",
	"culture",
	"food",
	"fitness",
	"business",
	"entertainment",
	"social",
	"sports",
	"nightlife",
}

// TimePreferences defines the valid time_preference values.
// "anytime" means no time constraint.
var TimePreferences = []string{
	"tonight",
	"tomorrow",
	"weekend",
	"week",
	"anytime",
}

// PriceRange bounds an intent to a price band. Min and Max of 0 means free.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SearchIntent is the structured interpretation of a free-text event query.
// The JSON field names match the wire format the extraction model is
// instructed to produce.
type SearchIntent struct {
	Categories     []string   `json:"categories"`
	Keywords       []string   `json:"keywords"`
	PriceRange     PriceRange `json:"price_range"`
	TimePreference string     `json:"time_preference"`
	Location       string     `json:"location"`
}

// FallbackIntent builds the degraded intent used when extraction fails:
// every word of the query over two characters becomes a keyword and all
// constraints stay open.
func FallbackIntent(query, location string) *SearchIntent {
	words := strings.Fields(strings.ToLower(query))
	keywords := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) > 2 {
			keywords = append(keywords, word)
		}
	}
	return &SearchIntent{
		Categories:     []string{},
		Keywords:       keywords,
		PriceRange:     PriceRange{Min: 0, Max: 2000},
		TimePreference: "anytime",
		Location:       location,
	}
}

// Normalize brings a model-produced intent into canonical form: categories
// are lowercased and restricted to IntentCategories, the time preference
// falls back to "anytime" when unrecognized, and an empty location gets the
// provided default.
func (s *SearchIntent) Normalize(defaultLocation string) {
	categories := make([]string, 0, len(s.Categories))
	for _, category := range s.Categories {
		category = strings.ToLower(strings.TrimSpace(category))
		if validCategory(category) {
			categories = append(categories, category)
		}
	}
	s.Categories = categories

	s.TimePreference = strings.ToLower(strings.TrimSpace(s.TimePreference))
	if !validTimePreference(s.TimePreference) {
		s.TimePreference = "anytime"
	}

	if s.PriceRange.Min < 0 {
		s.PriceRange.Min = 0
	}
	if s.PriceRange.Max < s.PriceRange.Min {
		s.PriceRange.Max = s.PriceRange.Min
	}

	if strings.TrimSpace(s.Location) == "" {
		s.Location = defaultLocation
	}
}

func validCategory(category string) bool {
	for _, known := range IntentCategories {
		if category == known {
			return true
		}
	}
	return false
}

func validTimePreference(preference string) bool {
	for _, known := range TimePreferences {
		if preference == known {
			return true
		}
	}
	return false
}
