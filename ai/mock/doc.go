// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.IntentExtractor and
// ai.AIProvider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic
// behavior.
//
// # Usage in Tests
//
//	// Basic usage with default rule-based extraction
//	mockProvider := mock.NewMockProvider()
//	intent, err := mockProvider.IntentExtractor().ExtractIntent(ctx, "cheap yoga")
//
//	// Custom behavior injection
//	extractor := mock.NewMockIntentExtractor()
//	extractor.ExtractIntentFunc = func(ctx context.Context, query string) (*ai.SearchIntent, error) {
//	    return &ai.SearchIntent{Categories: []string{"music"}}, nil
//	}
//
//	// Check call counts
//	count := extractor.CallCount()
//
// # Default Behavior
//
// MockIntentExtractor replicates the extraction model with substring rules:
// category names and characteristic keywords map to categories, and price and
// time phrases set the corresponding preferences. The output shape matches
// what the production extractor returns after normalization.
package mock
