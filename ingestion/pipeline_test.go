package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/spontanique/eventscout/core"
	"github.com/spontanique/eventscout/storage"
	"github.com/spontanique/eventscout/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingEventRepository fails every upsert. The embedded interface is left
// nil; Import only ever calls UpsertEvents.
type failingEventRepository struct {
	storage.EventRepository
}

func (r *failingEventRepository) UpsertEvents(ctx context.Context, events ...*core.Event) ([]*core.Event, error) {
	return nil, errors.New("disk full")
}

func setupTestRepository(t *testing.T) storage.EventRepository {
	repo, backend, err := badger.NewMemoryEventRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		backend.Close()
	})
	return repo
}

func testFeed(t *testing.T, events []FeedEvent) *bytes.Reader {
	data, err := json.Marshal(events)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func testFeedEvents(n int) []FeedEvent {
	events := make([]FeedEvent, n)
	for i := range events {
		events[i] = FeedEvent{
			EventKey:    fmt.Sprintf("feed-%d", i),
			Title:       fmt.Sprintf("Event %d", i),
			Description: "Feed event",
			Category:    "music",
			Venue:       "Vega",
			City:        "Copenhagen",
			Price:       float64(100 + i),
			EventDate:   time.Date(2025, 6, 2+i, 20, 0, 0, 0, time.UTC),
			TicketsLeft: 10,
		}
	}
	return events
}

func TestNewPipeline(t *testing.T) {
	repo := setupTestRepository(t)

	t.Run("valid pipeline", func(t *testing.T) {
		pipeline, err := NewPipeline(repo)
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		defer pipeline.Release()

		assert.NotNil(t, pipeline.eventRepository)
		assert.NotNil(t, pipeline.pool)
		assert.Equal(t, defaultBatchSize, pipeline.batchSize)
	})

	t.Run("nil event repository", func(t *testing.T) {
		_, err := NewPipeline(nil)
		assert.Equal(t, ErrEventRepositoryRequired, err)
	})
}

func TestPipeline_WithOptions(t *testing.T) {
	repo := setupTestRepository(t)

	t.Run("with pool size", func(t *testing.T) {
		pipeline, err := NewPipeline(repo, WithPoolSize(4))
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		defer pipeline.Release()

		assert.NotNil(t, pipeline.pool)
	})

	t.Run("with pool size zero defaults to 1", func(t *testing.T) {
		pipeline, err := NewPipeline(repo, WithPoolSize(0))
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		defer pipeline.Release()
	})

	t.Run("with batch size", func(t *testing.T) {
		pipeline, err := NewPipeline(repo, WithBatchSize(8))
		require.NoError(t, err)
		defer pipeline.Release()

		assert.Equal(t, 8, pipeline.batchSize)
	})

	t.Run("with batch size zero defaults to 1", func(t *testing.T) {
		pipeline, err := NewPipeline(repo, WithBatchSize(0))
		require.NoError(t, err)
		defer pipeline.Release()

		assert.Equal(t, 1, pipeline.batchSize)
	})

	t.Run("with custom logger", func(t *testing.T) {
		logger := slog.Default()
		pipeline, err := NewPipeline(repo, WithLogger(logger))
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		defer pipeline.Release()

		assert.Equal(t, logger, pipeline.logger)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		pipeline, err := NewPipeline(repo, WithLogger(nil))
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		defer pipeline.Release()

		assert.NotNil(t, pipeline.logger)
	})

	t.Run("with multiple options", func(t *testing.T) {
		logger := slog.Default()
		pipeline, err := NewPipeline(
			repo,
			WithPoolSize(2),
			WithBatchSize(16),
			WithLogger(logger),
		)
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		defer pipeline.Release()

		assert.Equal(t, logger, pipeline.logger)
		assert.Equal(t, 16, pipeline.batchSize)
	})
}

func TestPipeline_Import(t *testing.T) {
	repo := setupTestRepository(t)

	pipeline, err := NewPipeline(repo, WithPoolSize(1))
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()

	report, err := pipeline.Import(ctx, testFeed(t, testFeedEvents(3)), "billetto")
	require.NoError(t, err)
	assert.Equal(t, 3, report.Imported)
	assert.Equal(t, 0, report.Rejected)
	assert.Equal(t, 0, report.Failed)

	// Every feed event is retrievable by its stable key
	for i := 0; i < 3; i++ {
		event, err := repo.GetEventByKey(ctx, fmt.Sprintf("feed-%d", i))
		require.NoError(t, err)
		require.NotNil(t, event)
		assert.Equal(t, fmt.Sprintf("Event %d", i), event.Title)
		assert.Equal(t, core.SourceTypeExternal, event.Source)
		assert.Equal(t, "billetto", event.SourcePlatform)
		assert.Equal(t, core.IDFromContent(event.EventKey), event.Id)
	}
}

func TestPipeline_Import_WireFormat(t *testing.T) {
	repo := setupTestRepository(t)

	pipeline, err := NewPipeline(repo)
	require.NoError(t, err)
	defer pipeline.Release()

	feed := `[{
		"event_key": "jazz-night-vega",
		"title": "Jazz Night at Vega",
		"description": "Live jazz all evening",
		"category": "music",
		"venue": "Vega",
		"city": "Copenhagen",
		"price": 150,
		"original_price": 200,
		"event_date": "2025-06-02T20:00:00Z",
		"tickets_left": 42
	}]`

	ctx := context.Background()
	report, err := pipeline.Import(ctx, strings.NewReader(feed), "billetto")
	require.NoError(t, err)
	require.Equal(t, 1, report.Imported)

	event, err := repo.GetEventByKey(ctx, "jazz-night-vega")
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, "Jazz Night at Vega", event.Title)
	assert.Equal(t, "Live jazz all evening", event.Description)
	assert.Equal(t, "music", event.Category)
	assert.Equal(t, "Vega", event.Venue)
	assert.Equal(t, "Copenhagen", event.City)
	assert.Equal(t, 150.0, event.Price)
	assert.Equal(t, 200.0, event.OriginalPrice)
	assert.Equal(t, 42, event.TicketsLeft)
	assert.True(t, event.EventDate.Equal(time.Date(2025, 6, 2, 20, 0, 0, 0, time.UTC)))
}

func TestPipeline_Import_RejectsInvalidEvents(t *testing.T) {
	repo := setupTestRepository(t)

	pipeline, err := NewPipeline(repo)
	require.NoError(t, err)
	defer pipeline.Release()

	events := testFeedEvents(2)
	events = append(events,
		FeedEvent{EventKey: "no-title", Category: "music", EventDate: time.Now().UTC()},
		FeedEvent{EventKey: "no-category", Title: "Untagged", EventDate: time.Now().UTC()},
		FeedEvent{EventKey: "no-date", Title: "Undated", Category: "music"},
		FeedEvent{EventKey: "bad-price", Title: "Oops", Category: "music", Price: -1, EventDate: time.Now().UTC()},
	)

	ctx := context.Background()
	report, err := pipeline.Import(ctx, testFeed(t, events), "billetto")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 4, report.Rejected)
	assert.Equal(t, 0, report.Failed)

	all, err := repo.AllEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPipeline_Import_Idempotent(t *testing.T) {
	repo := setupTestRepository(t)

	pipeline, err := NewPipeline(repo)
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()

	_, err = pipeline.Import(ctx, testFeed(t, testFeedEvents(5)), "billetto")
	require.NoError(t, err)

	first, err := repo.GetEventByKey(ctx, "feed-0")
	require.NoError(t, err)

	// Re-importing the same feed must not duplicate the catalog
	report, err := pipeline.Import(ctx, testFeed(t, testFeedEvents(5)), "billetto")
	require.NoError(t, err)
	assert.Equal(t, 5, report.Imported)

	all, err := repo.AllEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	second, err := repo.GetEventByKey(ctx, "feed-0")
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)
	assert.True(t, first.InsertedAt.Equal(second.InsertedAt))
}

func TestPipeline_Import_SmallBatches(t *testing.T) {
	repo := setupTestRepository(t)

	pipeline, err := NewPipeline(repo, WithPoolSize(4), WithBatchSize(2))
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	report, err := pipeline.Import(ctx, testFeed(t, testFeedEvents(7)), "billetto")
	require.NoError(t, err)
	assert.Equal(t, 7, report.Imported)

	all, err := repo.AllEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 7)
}

func TestPipeline_Import_MalformedFeed(t *testing.T) {
	repo := setupTestRepository(t)

	pipeline, err := NewPipeline(repo)
	require.NoError(t, err)
	defer pipeline.Release()

	_, err = pipeline.Import(context.Background(), strings.NewReader("{not json"), "billetto")
	require.Error(t, err)
}

func TestPipeline_Import_EmptyFeed(t *testing.T) {
	repo := setupTestRepository(t)

	pipeline, err := NewPipeline(repo)
	require.NoError(t, err)
	defer pipeline.Release()

	report, err := pipeline.Import(context.Background(), strings.NewReader("[]"), "billetto")
	require.NoError(t, err)
	assert.Equal(t, 0, report.Imported)
	assert.Equal(t, 0, report.Rejected)
	assert.Equal(t, 0, report.Failed)
}

func TestPipeline_Import_StorageFailure(t *testing.T) {
	pipeline, err := NewPipeline(&failingEventRepository{}, WithBatchSize(2))
	require.NoError(t, err)
	defer pipeline.Release()

	report, err := pipeline.Import(context.Background(), testFeed(t, testFeedEvents(5)), "billetto")
	require.NoError(t, err)
	assert.Equal(t, 0, report.Imported)
	assert.Equal(t, 5, report.Failed)
}

func TestPipeline_Release(t *testing.T) {
	repo := setupTestRepository(t)

	pipeline, err := NewPipeline(repo)
	require.NoError(t, err)

	// Release should not panic
	pipeline.Release()

	// Multiple releases should not panic
	pipeline.Release()
}
