package storage

import (
	"context"
	"time"

	"github.com/spontanique/eventscout/core"
)

// Repository provides common storage operations shared across repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// EventRepository provides operations for managing the event catalog.
type EventRepository interface {
	Repository

	// AddEvents adds one or more events to the catalog.
	// Native events receive sequence-generated IDs; external events receive
	// content-based IDs derived from their EventKey.
	// Sets InsertedAt/UpdatedAt timestamps.
	// Returns the events with IDs and timestamps populated.
	AddEvents(ctx context.Context, events ...*core.Event) ([]*core.Event, error)

	// UpsertEvents inserts events or, when an event with the same EventKey
	// already exists, replaces it in place keeping the existing ID and
	// InsertedAt. Used by feed imports so re-importing is idempotent.
	UpsertEvents(ctx context.Context, events ...*core.Event) ([]*core.Event, error)

	// UpdateEvents updates existing events.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any event doesn't exist.
	UpdateEvents(ctx context.Context, events ...*core.Event) ([]*core.Event, error)

	// DeleteEvents removes events by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any event doesn't exist.
	DeleteEvents(ctx context.Context, ids ...core.ID) error

	// GetEvent retrieves a single event by ID.
	// Returns ErrNotFound if the event doesn't exist.
	GetEvent(ctx context.Context, id core.ID) (*core.Event, error)

	// GetEvents retrieves multiple events by their IDs.
	// Returns only the events that exist (no error for missing events).
	GetEvents(ctx context.Context, ids ...core.ID) ([]*core.Event, error)

	// GetEventByKey retrieves an event by its stable EventKey.
	// Returns ErrNotFound if no event has the key.
	GetEventByKey(ctx context.Context, eventKey string) (*core.Event, error)

	// AllEvents retrieves the complete catalog. The search engine consumes the
	// catalog wholesale; there is no persistent index.
	AllEvents(ctx context.Context) ([]*core.Event, error)

	// GetEventsByDateRange retrieves events within a time range.
	// Returns events where start <= EventDate < end, ordered by date.
	GetEventsByDateRange(ctx context.Context, start, end time.Time) ([]*core.Event, error)
}
