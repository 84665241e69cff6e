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
	"fmt"
	"io"
	"time"

	"github.com/spontanique/eventscout/core"
	"github.com/spontanique/eventscout/storage"
)

// Config holds configuration for catalog maintenance jobs.
type Config struct {
	// BatchSize is the number of events to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of events)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Pruner removes events whose date lies before a cutoff from the catalog.
type Pruner struct {
	repo     storage.EventRepository
	config   *Config
	progress io.Writer
	iterator *EventIterator
}

// NewPruner creates a new pruner.
// progress: where to write progress output (typically os.Stderr)
func NewPruner(repo storage.EventRepository, config *Config, progress io.Writer) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}

	return &Pruner{
		repo:     repo,
		config:   config,
		progress: progress,
		iterator: NewEventIterator(repo, config.BatchSize),
	}
}

// Run deletes every event dated strictly before the cutoff.
// Progress is reported to the configured writer. Returns the number of
// events removed.
func (p *Pruner) Run(ctx context.Context, cutoff time.Time) (int, error) {
	// The date index starts at the epoch and the range query's end is
	// exclusive, so [epoch, cutoff) is exactly the expired set.
	startTime := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	if !cutoff.After(startTime) {
		return 0, nil
	}

	expired, err := p.repo.GetEventsByDateRange(ctx, startTime, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to query expired events: %w", err)
	}

	total := len(expired)
	if total == 0 {
		fmt.Fprintf(p.progress, "No expired events found (0 events)\n")
		return 0, nil
	}

	fmt.Fprintf(p.progress, "Pruning %d expired events (batch size: %d)\n",
		total, p.config.BatchSize)

	tracker := NewProgressTracker(p.progress, total, p.config.ReportInterval)
	tracker.Start()

	pruned := 0

	err = p.iterator.Process(ctx, expired, func(batch []*core.Event) error {
		ids := make([]core.ID, len(batch))
		for i, event := range batch {
			ids[i] = event.Id
		}

		// Delete this batch with retry
		deleteErr := RetryWithBackoff(ctx, func() error {
			return p.repo.DeleteEvents(ctx, ids...)
		}, p.config.MaxRetries, p.config.RetryDelay)
		if deleteErr != nil {
			return fmt.Errorf("failed to delete batch after %d attempts: %w", p.config.MaxRetries, deleteErr)
		}

		pruned += len(batch)
		tracker.Update(pruned)

		return nil
	})

	if err != nil {
		return pruned, err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(p.progress, "Pruning complete. Removed %d events in %v (%.1f events/sec)\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return pruned, nil
}
