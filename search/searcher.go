package search

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/spontanique/eventscout/core"
	"github.com/spontanique/eventscout/storage"
)

// Minimum relevance score a result must reach. Weak partial matches and
// synonym noise fall below it; browsing-mode and intent-boosted hits clear it
// comfortably. Bypassed for pure stop-word queries (see SearchEvents).
const scoreThreshold = 150

// Options carries explicit search constraints supplied by the caller, for
// instance from UI filter widgets or the intent-extraction service. Explicit
// values always take precedence over preferences parsed from the query text.
type Options struct {
	// Categories restricts results to the listed categories when non-empty.
	Categories []string

	// Price bounds event prices. Nil means: derive from the query, if possible.
	Price *PriceWindow

	// Time bounds event dates. Nil means: derive from the query, if possible.
	Time *TimeWindow
}

// Searcher ranks catalog events against free-text queries.
type Searcher struct {
	eventRepository storage.EventRepository
	registry        *Registry
	now             func() time.Time
	logger          *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithRegistry injects alternate lookup tables.
// Default is DefaultRegistry(). The registry must not be mutated afterwards.
func WithRegistry(registry *Registry) Option {
	return func(s *Searcher) error {
		if registry == nil {
			registry = DefaultRegistry()
		}
		s.registry = registry
		return nil
	}
}

// WithClock sets the time source used for parsed time windows and the
// date-proximity bonus. Default is time.Now. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Searcher) error {
		if now == nil {
			now = time.Now
		}
		s.now = now
		return nil
	}
}

// NewSearcher creates a new searcher over the given event catalog.
func NewSearcher(eventRepository storage.EventRepository, opts ...Option) (*Searcher, error) {
	if eventRepository == nil {
		return nil, ErrEventRepositoryRequired
	}

	s := &Searcher{
		eventRepository: eventRepository,
		registry:        DefaultRegistry(),
		now:             time.Now,
		logger:          slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search loads the full catalog and ranks it against the query.
// Returns the ordered results; storage failures are the only error source.
func (s *Searcher) Search(ctx context.Context, query string, opts *Options) ([]*core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, query, opts, nil)
}

// SearchWithMonitor is Search with stage callbacks for diagnostics.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, opts *Options, monitor SearchMonitor) ([]*core.SearchResult, error) {
	events, err := s.eventRepository.AllEvents(ctx)
	if err != nil {
		s.logger.Error("error loading event catalog", "err", err)
		return nil, err
	}
	return s.SearchEventsWithMonitor(events, query, opts, monitor), nil
}

// SearchEvents ranks an externally supplied event collection against the
// query. It is a pure function of its inputs: no state carries between calls,
// the input slice is never mutated, and degenerate input (empty query, pure
// stop-word query, nothing matching) yields a valid, possibly empty, result,
// never an error.
func (s *Searcher) SearchEvents(events []*core.Event, query string, opts *Options) []*core.SearchResult {
	return s.SearchEventsWithMonitor(events, query, opts, nil)
}

// SearchEventsWithMonitor is SearchEvents with stage callbacks.
func (s *Searcher) SearchEventsWithMonitor(events []*core.Event, query string, opts *Options, monitor SearchMonitor) []*core.SearchResult {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if opts == nil {
		opts = &Options{}
	}

	monitor.Start(query)
	now := s.now()

	// 1. Tokenize and expand.
	tokens := Tokenize(query)
	monitor.AfterTokenize(tokens)

	expanded := s.registry.Expand(tokens)
	monitor.AfterExpansion(slices.Sorted(maps.Keys(expanded)))

	// 2. Resolve effective windows: explicit option > parsed hint > absent.
	timeWindow := opts.Time
	if timeWindow == nil {
		if parsed, ok := ParseTimeWindow(query, now); ok {
			timeWindow = &parsed
		}
	}
	priceWindow := opts.Price
	if priceWindow == nil {
		if parsed, ok := ParsePriceWindow(query); ok {
			priceWindow = &parsed
		}
	}
	monitor.AfterPreferenceParsing(timeWindow, priceWindow)

	s.logger.Debug("search parameters",
		"query", query,
		"tokens", tokens,
		"expandedCount", len(expanded),
		"timeWindow", timeWindow != nil,
		"priceWindow", priceWindow != nil,
		"categories", opts.Categories)

	// 3. Hard filters over a working copy; the caller's slice stays untouched.
	filtered := make([]*core.Event, 0, len(events))
	for _, event := range events {
		if event == nil {
			continue
		}
		if timeWindow != nil && !timeWindow.Contains(event.EventDate) {
			continue
		}
		if priceWindow != nil && !priceWindow.Contains(event.Price) {
			continue
		}
		if len(opts.Categories) > 0 && !slices.Contains(opts.Categories, event.Category) {
			continue
		}
		filtered = append(filtered, event)
	}
	monitor.AfterHardFilter(len(filtered))

	// 4. Score survivors.
	scored := make([]*core.SearchResult, 0, len(filtered))
	for _, event := range filtered {
		relevance := s.registry.Score(event, tokens, expanded, query, now)
		monitor.EventScored(event, relevance)
		scored = append(scored, &core.SearchResult{Event: event, Relevance: relevance})
	}

	// 5. Threshold, unless every token is a stop word: then the user is doing
	// pure filter browsing ("events tomorrow") and there is no semantic query
	// to judge, so every filtered event stays.
	browsing := true
	for _, token := range tokens {
		if !s.registry.StopWords[token] {
			browsing = false
			break
		}
	}

	results := scored
	if !browsing {
		results = make([]*core.SearchResult, 0, len(scored))
		for _, result := range scored {
			if result.Relevance.Score < scoreThreshold {
				monitor.BelowThreshold(result.Event, result.Relevance)
				continue
			}
			results = append(results, result)
		}
	}

	// 6. Order: any title match outranks none, then score, then soonest first.
	slices.SortStableFunc(results, func(a, b *core.SearchResult) int {
		if a.Relevance.HasTitleMatch != b.Relevance.HasTitleMatch {
			if a.Relevance.HasTitleMatch {
				return -1
			}
			return 1
		}
		if a.Relevance.Score != b.Relevance.Score {
			if a.Relevance.Score > b.Relevance.Score {
				return -1
			}
			return 1
		}
		return a.Event.EventDate.Compare(b.Event.EventDate)
	})

	monitor.Finish(results)
	return results
}
