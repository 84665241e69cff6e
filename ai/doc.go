// Copyright 2025 Spontanique ApS
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ai provides abstractions for the AI services used in eventscout.
//
// This package defines the query understanding layer: an IntentExtractor turns
// a free-text event query into a structured SearchIntent (categories, keywords,
// price band, time preference, location) that the search engine consumes as
// explicit constraints. It follows the dependency inversion principle, allowing
// business logic to depend on abstractions rather than concrete implementations.
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewIntentExtractor) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.AIProvider
//
// Test utility constructors (mock.NewMockIntentExtractor) return CONCRETE
// types to enable test assertions and behavior injection via the mock's
// public methods (CallCount, function fields, Reset).
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	intent, err := provider.IntentExtractor().ExtractIntent(ctx, "cheap jazz tonight")
//
// Extraction failures degrade rather than break the search path: a provider
// may fall back to FallbackIntent, which carries the query words as keywords
// and leaves every constraint open.
package ai
