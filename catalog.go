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


package eventscout

import (
	"log/slog"

	"github.com/spontanique/eventscout/ai"
	"github.com/spontanique/eventscout/ai/openai"
	"github.com/spontanique/eventscout/ingestion"
	"github.com/spontanique/eventscout/search"
	"github.com/spontanique/eventscout/storage"
	"github.com/spontanique/eventscout/storage/badger"
)

// Catalog bundles the event store and the AI provider behind one handle.
type Catalog struct {
	backend   *badger.Backend
	eventRepo storage.EventRepository
	provider  ai.AIProvider
	logger    *slog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
}

// WithAIConfig sets the configuration used to build the intent-extraction
// provider.
func WithAIConfig(config *ai.Config) CatalogOption {
	return func(o *catalogOptions) {
		o.aiConfig = config
	}
}

// WithAIProvider injects a pre-built AI provider, bypassing the configured
// one. Useful for offline operation and tests.
func WithAIProvider(provider ai.AIProvider) CatalogOption {
	return func(o *catalogOptions) {
		o.provider = provider
	}
}

func NewCatalog(filePath string, opts ...CatalogOption) (*Catalog, error) {
	// Apply options
	options := &catalogOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create event repository
	eventRepo, err := badger.NewEventRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings unless one was injected
	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			eventRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Catalog{
		backend:   backend,
		eventRepo: eventRepo,
		provider:  provider,
		logger:    slog.Default(),
	}, nil
}

func (c *Catalog) Close() error {
	// Close AI provider first
	if err := c.provider.Close(); err != nil {
		c.logger.Error("error closing AI provider", "err", err)
	}

	// Close repository
	if err := c.eventRepo.Close(); err != nil {
		c.logger.Error("error closing event repository", "err", err)
		return err
	}

	// Close backend
	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (c *Catalog) EventRepository() storage.EventRepository {
	return c.eventRepo
}

func (c *Catalog) IntentExtractor() ai.IntentExtractor {
	return c.provider.IntentExtractor()
}

func (c *Catalog) NewImportPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(c.eventRepo, opts...)
}

func (c *Catalog) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(c.eventRepo, opts...)
}
