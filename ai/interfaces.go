package ai

import "context"

// IntentExtractor turns a free-text event query into a structured SearchIntent.
// Implementations must be thread-safe for concurrent use.
type IntentExtractor interface {
	// ExtractIntent analyzes a query and extracts categories, keywords and
	// price/time constraints. The returned intent is normalized: categories
	// come from IntentCategories, the time preference from TimePreferences.
	// Returns an error if extraction fails outright; implementations may
	// instead degrade to FallbackIntent for recoverable parse failures.
	ExtractIntent(ctx context.Context, query string) (*SearchIntent, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages IntentExtractor
// instances, ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// IntentExtractor returns the query understanding service.
	// The returned IntentExtractor is safe for concurrent use.
	IntentExtractor() IntentExtractor

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
