package ingestion

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/spontanique/eventscout/core"
	"github.com/spontanique/eventscout/storage"
)

// Batch size for upsert transactions. Small enough to keep BadgerDB
// transactions well under their size limit, large enough to amortize commits.
const defaultBatchSize = 64

// FeedEvent is the wire format of one event in a partner feed.
type FeedEvent struct {
	EventKey      string    `json:"event_key"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Venue         string    `json:"venue"`
	City          string    `json:"city"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"original_price"`
	EventDate     time.Time `json:"event_date"`
	TicketsLeft   int       `json:"tickets_left"`
}

// Report summarizes one feed import.
type Report struct {
	Imported int // events upserted into the catalog
	Rejected int // events dropped by validation
	Failed   int // events lost to storage errors
}

// Pipeline orchestrates the import of partner event feeds into the catalog.
// Feed batches are upserted concurrently through a worker pool.
type Pipeline struct {
	eventRepository storage.EventRepository
	pool            *ants.Pool
	batchSize       int
	logger          *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent batch upserts.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many events are upserted per transaction.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new import pipeline.
func NewPipeline(eventRepository storage.EventRepository, opts ...Option) (*Pipeline, error) {
	if eventRepository == nil {
		return nil, ErrEventRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		eventRepository: eventRepository,
		pool:            pool,
		batchSize:       defaultBatchSize,
		logger:          slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Import reads a JSON feed and upserts its events into the catalog.
// sourcePlatform names the partner the feed came from and is stamped on every
// event. Invalid events are rejected and logged, never imported; a storage
// failure of one batch does not stop the others. The returned Report accounts
// for every event in the feed.
func (p *Pipeline) Import(ctx context.Context, feed io.Reader, sourcePlatform string) (*Report, error) {
	var feedEvents []FeedEvent
	if err := json.NewDecoder(feed).Decode(&feedEvents); err != nil {
		return nil, err
	}

	report := &Report{}
	events := make([]*core.Event, 0, len(feedEvents))

	for _, fe := range feedEvents {
		event := &core.Event{
			EventKey:       fe.EventKey,
			Title:          fe.Title,
			Description:    fe.Description,
			Category:       fe.Category,
			Venue:          fe.Venue,
			City:           fe.City,
			Price:          fe.Price,
			OriginalPrice:  fe.OriginalPrice,
			EventDate:      fe.EventDate,
			TicketsLeft:    fe.TicketsLeft,
			Source:         core.SourceTypeExternal,
			SourcePlatform: sourcePlatform,
		}

		if err := core.ValidateEvent(event); err != nil {
			p.logger.Warn("rejecting feed event",
				"eventKey", fe.EventKey,
				"title", fe.Title,
				"err", err)
			report.Rejected++
			continue
		}
		events = append(events, event)
	}

	// Upsert in concurrent batches; each batch is its own transaction.
	var wg sync.WaitGroup
	var imported, failed atomic.Int64

	for start := 0; start < len(events); start += p.batchSize {
		batch := events[start:min(start+p.batchSize, len(events))]

		wg.Add(1)
		if err := p.pool.Submit(func() {
			defer wg.Done()
			if _, err := p.eventRepository.UpsertEvents(ctx, batch...); err != nil {
				p.logger.Error("error upserting feed batch", "size", len(batch), "err", err)
				failed.Add(int64(len(batch)))
				return
			}
			imported.Add(int64(len(batch)))
		}); err != nil {
			wg.Done()
			p.logger.Error("error submitting feed batch", "err", err)
			failed.Add(int64(len(batch)))
		}
	}
	wg.Wait()

	report.Imported = int(imported.Load())
	report.Failed = int(failed.Load())

	p.logger.Info("feed import finished",
		"sourcePlatform", sourcePlatform,
		"imported", report.Imported,
		"rejected", report.Rejected,
		"failed", report.Failed)

	return report, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
