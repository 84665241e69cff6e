package badger

import (
	"bytes"
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/spontanique/eventscout/core"
	"github.com/spontanique/eventscout/storage"
)

// EventRepository implements storage.EventRepository for BadgerDB.
type EventRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.EventRepository = (*EventRepository)(nil)

// NewEventRepository creates a new EventRepository on the given backend.
func NewEventRepository(backend *Backend) (*EventRepository, error) {
	idSeq, err := backend.GetSequence(eventRecordIDSeq)
	if err != nil {
		return nil, err
	}

	return &EventRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *EventRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *EventRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// stampNow returns the current time at the microsecond precision stored
// records carry, so a stamped event compares equal to its re-read copy.
func stampNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// nextID assigns an ID for a new event. External events with a stable
// EventKey get a content-derived ID so the same upstream event always maps
// to the same record; everything else draws from the sequence.
func (r *EventRepository) nextID(event *core.Event) (core.ID, error) {
	if event.Source == core.SourceTypeExternal && event.EventKey != "" {
		return core.IDFromContent(event.EventKey), nil
	}

	nextID, err := r.idSeq.Next()
	if err != nil {
		return 0, err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if nextID == 0 {
		nextID, err = r.idSeq.Next()
		if err != nil {
			return 0, err
		}
	}
	return core.ID(nextID), nil
}

// AddEvents adds one or more events to the catalog.
func (r *EventRepository) AddEvents(ctx context.Context, events ...*core.Event) ([]*core.Event, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, event := range events {
			id, err := r.nextID(event)
			if err != nil {
				return err
			}
			event.Id = id

			event.InsertedAt = stampNow()
			event.UpdatedAt = event.InsertedAt

			// Adding an already-known key is a caller error; use UpsertEvents
			// for idempotent imports.
			if event.EventKey != "" {
				existing, err := readIndexedID(tx, makeEventKeyIndexKey(event.EventKey))
				if err != nil {
					return err
				}
				if existing != 0 {
					return storage.ErrDuplicateKey
				}
			}

			if err := r.writeEvent(tx, event); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return events, err
}

// UpsertEvents inserts events, replacing any existing event that carries the
// same EventKey. The existing ID and InsertedAt survive the replacement.
func (r *EventRepository) UpsertEvents(ctx context.Context, events ...*core.Event) ([]*core.Event, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, event := range events {
			var old *core.Event
			if event.EventKey != "" {
				existingID, err := readIndexedID(tx, makeEventKeyIndexKey(event.EventKey))
				if err != nil {
					return err
				}
				if existingID != 0 {
					old, err = r.readEvent(tx, makeEventRecordKey(existingID))
					if err != nil {
						return err
					}
				}
			}

			if old == nil {
				id, err := r.nextID(event)
				if err != nil {
					return err
				}
				event.Id = id
				event.InsertedAt = stampNow()
				event.UpdatedAt = event.InsertedAt

				if err := r.writeEvent(tx, event); err != nil {
					return err
				}
				continue
			}

			event.Id = old.Id
			event.InsertedAt = old.InsertedAt
			event.UpdatedAt = stampNow()

			value := storage.MarshalEvent(event)
			if err := tx.Set(makeEventRecordKey(event.Id), value); err != nil {
				return err
			}

			// Refresh date index if the event moved
			if !old.EventDate.Equal(event.EventDate) {
				if err := tx.Delete(makeEventDateKey(old.EventDate, old.Id)); err != nil {
					return err
				}
				if err := tx.Set(makeEventDateKey(event.EventDate, event.Id), storage.MarshalID(event.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return events, err
}

// UpdateEvents updates existing events.
func (r *EventRepository) UpdateEvents(ctx context.Context, events ...*core.Event) ([]*core.Event, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, event := range events {
			key := makeEventRecordKey(event.Id)

			// Read old event to detect changes
			old, err := r.readEvent(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// Update timestamp
			event.UpdatedAt = stampNow()

			// Store updated event
			value := storage.MarshalEvent(event)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update date index if the event date changed
			if !old.EventDate.Equal(event.EventDate) {
				oldDateKey := makeEventDateKey(old.EventDate, old.Id)
				if err := tx.Delete(oldDateKey); err != nil {
					return err
				}
				newDateKey := makeEventDateKey(event.EventDate, event.Id)
				if err := tx.Set(newDateKey, storage.MarshalID(event.Id)); err != nil {
					return err
				}
			}

			// Update key index if the event key changed
			if old.EventKey != event.EventKey {
				if old.EventKey != "" {
					if err := tx.Delete(makeEventKeyIndexKey(old.EventKey)); err != nil {
						return err
					}
				}
				if event.EventKey != "" {
					if err := tx.Set(makeEventKeyIndexKey(event.EventKey), storage.MarshalID(event.Id)); err != nil {
						return err
					}
				}
			}
		}
		return tx.Commit()
	}, true)

	return events, err
}

// DeleteEvents removes events by their IDs.
func (r *EventRepository) DeleteEvents(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeEventRecordKey(id)

			// Read event to get metadata for index cleanup
			event, err := r.readEvent(tx, key)
			if err != nil {
				return err
			}
			if event == nil {
				return storage.ErrNotFound
			}

			// Delete from date index
			dateKey := makeEventDateKey(event.EventDate, event.Id)
			if err := tx.Delete(dateKey); err != nil {
				return err
			}

			// Delete from key index
			if event.EventKey != "" {
				if err := tx.Delete(makeEventKeyIndexKey(event.EventKey)); err != nil {
					return err
				}
			}

			// Delete primary record
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetEvent retrieves a single event by ID.
func (r *EventRepository) GetEvent(ctx context.Context, id core.ID) (*core.Event, error) {
	var result *core.Event
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeEventRecordKey(id)
		var err error
		result, err = r.readEvent(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetEvents retrieves multiple events by their IDs.
func (r *EventRepository) GetEvents(ctx context.Context, ids ...core.ID) ([]*core.Event, error) {
	var result []*core.Event
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeEventRecordKey(id)
			event, err := r.readEvent(tx, key)
			if err != nil {
				return err
			}
			if event != nil {
				result = append(result, event)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetEventByKey retrieves an event by its stable EventKey.
func (r *EventRepository) GetEventByKey(ctx context.Context, eventKey string) (*core.Event, error) {
	var result *core.Event
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		id, err := readIndexedID(tx, makeEventKeyIndexKey(eventKey))
		if err != nil {
			return err
		}
		if id == 0 {
			return storage.ErrNotFound
		}
		result, err = r.readEvent(tx, makeEventRecordKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// AllEvents retrieves the complete event catalog.
func (r *EventRepository) AllEvents(ctx context.Context) ([]*core.Event, error) {
	var results []*core.Event
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(eventRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.Key()

			// Skip index keys (date index, key index, and sequence key)
			if bytes.Equal(key, []byte(eventRecordIDSeq)) ||
				bytes.HasPrefix(key, []byte(eventRecordDatePrefix)) ||
				bytes.HasPrefix(key, []byte(eventRecordKeyPrefix)) {
				continue
			}

			var event *core.Event
			err := item.Value(func(val []byte) error {
				var err error
				event, err = storage.UnmarshalEvent(val)
				return err
			})
			if err != nil {
				return err
			}
			if event != nil {
				results = append(results, event)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetEventsByDateRange retrieves events within a time range, ordered by date.
func (r *EventRepository) GetEventsByDateRange(ctx context.Context, start, end time.Time) ([]*core.Event, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.Event
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialEventDateKey(start)
		endKey := makePartialEventDateKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if slices.Compare(key, endKey) > 0 {
				break
			}

			// Read the ID from the index
			var eventID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				eventID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full event
			eventKey := makeEventRecordKey(eventID)
			event, err := r.readEvent(tx, eventKey)
			if err != nil {
				return err
			}
			if event != nil {
				results = append(results, event)
			}
		}
		return nil
	}, false)

	return results, err
}

// Helper methods

// writeEvent stores a new event record plus its indices.
func (r *EventRepository) writeEvent(tx *badger.Txn, event *core.Event) error {
	value := storage.MarshalEvent(event)
	if err := tx.Set(makeEventRecordKey(event.Id), value); err != nil {
		return err
	}

	dateKey := makeEventDateKey(event.EventDate, event.Id)
	if err := tx.Set(dateKey, storage.MarshalID(event.Id)); err != nil {
		return err
	}

	if event.EventKey != "" {
		if err := tx.Set(makeEventKeyIndexKey(event.EventKey), storage.MarshalID(event.Id)); err != nil {
			return err
		}
	}
	return nil
}

// readEvent reads an event from the transaction.
func (r *EventRepository) readEvent(tx *badger.Txn, key []byte) (*core.Event, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var event *core.Event
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		event, unmarshalErr = storage.UnmarshalEvent(val)
		return unmarshalErr
	})
	return event, err
}

// readIndexedID reads an ID stored under an index key. Returns 0 if absent.
func readIndexedID(tx *badger.Txn, key []byte) (core.ID, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return 0, nil
		}
		return 0, err
	}

	var id core.ID
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		id, unmarshalErr = storage.UnmarshalID(val)
		return unmarshalErr
	})
	return id, err
}
