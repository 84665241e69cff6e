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


package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	eventscout "github.com/spontanique/eventscout"
	"github.com/spontanique/eventscout/ai"
	"github.com/spontanique/eventscout/ai/mock"
	"github.com/spontanique/eventscout/core"
	"github.com/spontanique/eventscout/ingestion"
	"github.com/spontanique/eventscout/maintenance"
	"github.com/spontanique/eventscout/search"
	"github.com/spontanique/eventscout/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "eventscout",
		Usage: "Relevance-ranked discovery over a local event catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search the event catalog with a free-text query",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "extractor-host",
						Usage: "Intent extraction service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "extractor-model",
						Usage: "Intent extraction model name",
						Value: "qwen2.5:3b",
					},
					&cli.StringFlag{
						Name:  "location",
						Usage: "Default location for extracted intents",
						Value: "Copenhagen",
					},
					&cli.BoolFlag{
						Name:  "no-ai",
						Usage: "Use rule-based intent extraction instead of the AI service",
					},
					&cli.StringSliceFlag{
						Name:    "category",
						Aliases: []string{"c"},
						Usage:   "Restrict results to these categories (overrides extracted intent)",
					},
					&cli.Float64Flag{
						Name:  "min-price",
						Usage: "Minimum event price in DKK (only with --max-price)",
					},
					&cli.Float64Flag{
						Name:  "max-price",
						Usage: "Maximum event price in DKK (overrides extracted intent)",
					},
					&cli.StringFlag{
						Name:  "when",
						Usage: "Time window: tonight, tomorrow, weekend or week (overrides extracted intent)",
					},
					&cli.BoolFlag{
						Name:  "explain",
						Usage: "Print pipeline diagnostics for the query",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results to print",
						Value:   20,
					},
				},
			},
			{
				Name:   "prune",
				Usage:  "Remove expired events from the catalog",
				Action: pruneCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.TimestampFlag{
						Name:   "before",
						Usage:  "Remove events dated before this moment (default: now)",
						Layout: time.RFC3339,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of events to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N events",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:   "import",
				Usage:  "Import a JSON event feed into the catalog",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "feed",
						Aliases:  []string{"f"},
						Usage:    "Path to the JSON feed file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "platform",
						Aliases:  []string{"p"},
						Usage:    "Name of the partner platform the feed came from",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Worker pool size for concurrent batch upserts",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of events per upsert transaction",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// searchOptionsFromIntent maps an extracted intent onto explicit search
// constraints. A price window is only applied when the intent actually
// narrowed it; the wide-open default would otherwise mask query-derived
// windows.
func searchOptionsFromIntent(intent *ai.SearchIntent, now time.Time) *search.Options {
	opts := &search.Options{
		Categories: intent.Categories,
	}

	if intent.PriceRange.Max > 0 && intent.PriceRange.Max < 10000 {
		opts.Price = &search.PriceWindow{
			Min: intent.PriceRange.Min,
			Max: intent.PriceRange.Max,
		}
	}

	if window, ok := search.TimeWindowForPreference(intent.TimePreference, now); ok {
		opts.Time = &window
	}

	return opts
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("query is required")
	}

	limit := c.Int("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	// Assemble catalog options
	catalogOpts := []eventscout.CatalogOption{}
	if c.Bool("no-ai") {
		catalogOpts = append(catalogOpts, eventscout.WithAIProvider(mock.NewMockProvider()))
	} else {
		aiConfig := ai.NewConfig(
			ai.WithHost(c.String("extractor-host")),
			ai.WithModel(c.String("extractor-model")),
			ai.WithDefaultLocation(c.String("location")),
		)
		if err := aiConfig.Validate(); err != nil {
			return fmt.Errorf("invalid AI configuration: %w", err)
		}
		catalogOpts = append(catalogOpts, eventscout.WithAIConfig(aiConfig))
	}

	catalog, err := eventscout.NewCatalog(c.String("db"), catalogOpts...)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	// Extract intent; an unreachable service degrades to the lexical fallback
	intent, err := catalog.IntentExtractor().ExtractIntent(ctx, query)
	if err != nil {
		slog.Warn("intent extraction unavailable, using fallback", "err", err)
		intent = ai.FallbackIntent(query, c.String("location"))
	}

	searcher, err := catalog.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	// Explicit flags beat the extracted intent
	opts := searchOptionsFromIntent(intent, time.Now())
	if categories := c.StringSlice("category"); len(categories) > 0 {
		opts.Categories = categories
	}
	if maxPrice := c.Float64("max-price"); maxPrice > 0 {
		opts.Price = &search.PriceWindow{Min: c.Float64("min-price"), Max: maxPrice}
	}
	if when := c.String("when"); when != "" {
		window, ok := search.TimeWindowForPreference(when, time.Now())
		if !ok {
			return fmt.Errorf("invalid time window %q: must be one of tonight, tomorrow, weekend, week", when)
		}
		opts.Time = &window
	}

	var monitor search.SearchMonitor
	if c.Bool("explain") {
		monitor = &printingMonitor{out: os.Stderr}
	}

	results, err := searcher.SearchWithMonitor(ctx, query, opts, monitor)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) > limit {
		results = results[:limit]
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: '%s' @ %s, %s on %s (%.0f DKK) [%.1f]\n",
			i,
			hit.Event.Title,
			hit.Event.Venue,
			hit.Event.City,
			hit.Event.EventDate.Format("2006-01-02 15:04"),
			hit.Event.Price,
			hit.Relevance.Score,
		)
	}

	return nil
}

func pruneCommand(c *cli.Context) error {
	ctx := context.Background()

	cutoff := time.Now()
	if t := c.Timestamp("before"); t != nil && !t.IsZero() {
		cutoff = *t
	}

	// Open database
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewEventRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	config := &maintenance.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	// Validate config
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	pruner := maintenance.NewPruner(repo, config, os.Stderr)

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Cutoff: %s\n", cutoff.Format(time.RFC3339))
	fmt.Fprintln(os.Stderr)

	if _, err := pruner.Run(ctx, cutoff); err != nil {
		return fmt.Errorf("pruning failed: %w", err)
	}

	return nil
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	feedFile, err := os.Open(c.String("feed"))
	if err != nil {
		return fmt.Errorf("failed to open feed: %w", err)
	}
	defer feedFile.Close()

	// Open database
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewEventRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	pipelineOpts := []ingestion.Option{}
	if c.Int("pool-size") > 0 {
		pipelineOpts = append(pipelineOpts, ingestion.WithPoolSize(c.Int("pool-size")))
	}
	if c.Int("batch-size") > 0 {
		pipelineOpts = append(pipelineOpts, ingestion.WithBatchSize(c.Int("batch-size")))
	}

	pipeline, err := ingestion.NewPipeline(repo, pipelineOpts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	report, err := pipeline.Import(ctx, feedFile, c.String("platform"))
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Imported: %d\n", report.Imported)
	fmt.Fprintf(os.Stderr, "Rejected: %d\n", report.Rejected)
	fmt.Fprintf(os.Stderr, "Failed: %d\n", report.Failed)

	return nil
}

// printingMonitor writes each pipeline stage to out, one line per hook.
type printingMonitor struct {
	out io.Writer
}

func (m *printingMonitor) Start(query string) {
	fmt.Fprintf(m.out, "query: %q\n", query)
}

func (m *printingMonitor) AfterTokenize(tokens []string) {
	fmt.Fprintf(m.out, "tokens: %v\n", tokens)
}

func (m *printingMonitor) AfterExpansion(terms []string) {
	fmt.Fprintf(m.out, "expanded: %v\n", terms)
}

func (m *printingMonitor) AfterPreferenceParsing(timeWindow *search.TimeWindow, priceWindow *search.PriceWindow) {
	if timeWindow != nil {
		fmt.Fprintf(m.out, "time window: %s .. %s\n",
			timeWindow.Start.Format(time.RFC3339), timeWindow.End.Format(time.RFC3339))
	}
	if priceWindow != nil {
		fmt.Fprintf(m.out, "price window: %.0f .. %.0f DKK\n", priceWindow.Min, priceWindow.Max)
	}
}

func (m *printingMonitor) AfterHardFilter(remaining int) {
	fmt.Fprintf(m.out, "after filters: %d candidates\n", remaining)
}

func (m *printingMonitor) EventScored(event *core.Event, relevance core.Relevance) {
	fmt.Fprintf(m.out, "scored: '%s' %.1f (direct %d, synonym %d, title %t)\n",
		event.Title, relevance.Score, relevance.DirectMatches, relevance.SynonymMatches, relevance.HasTitleMatch)
}

func (m *printingMonitor) BelowThreshold(event *core.Event, relevance core.Relevance) {
	fmt.Fprintf(m.out, "below threshold: '%s' %.1f\n", event.Title, relevance.Score)
}

func (m *printingMonitor) Finish(results []*core.SearchResult) {
	fmt.Fprintf(m.out, "results: %d\n", len(results))
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
