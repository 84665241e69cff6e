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


package maintenance

import (
	"context"
	"time"

	"github.com/spontanique/eventscout/core"
	"github.com/spontanique/eventscout/storage"
)

const (
	// DefaultBatchSize is the default number of events to fetch in each batch
	DefaultBatchSize = 100
)

// EventIterator iterates over the events of a date window in batches.
type EventIterator struct {
	repo      storage.EventRepository
	batchSize int
}

// NewEventIterator creates a new event iterator.
// batchSize: number of events to fetch in each batch (must be > 0)
func NewEventIterator(repo storage.EventRepository, batchSize int) *EventIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &EventIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach fetches every event dated within [start, end) and runs fn over
// them in batches. The window end is exclusive, matching the repository's
// date-range contract. Iteration stops on the first error from fn.
func (it *EventIterator) ForEach(ctx context.Context, start, end time.Time, fn func([]*core.Event) error) error {
	events, err := it.repo.GetEventsByDateRange(ctx, start, end)
	if err != nil {
		return err
	}

	return it.Process(ctx, events, fn)
}

// Process runs fn over an already-fetched event slice in batches of the
// configured size. Context cancellation is checked before each batch.
func (it *EventIterator) Process(ctx context.Context, events []*core.Event, fn func([]*core.Event) error) error {
	for i := 0; i < len(events); i += it.batchSize {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		j := i + it.batchSize
		if j > len(events) {
			j = len(events)
		}

		if err := fn(events[i:j]); err != nil {
			return err
		}
	}

	return nil
}
