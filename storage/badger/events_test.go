package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spontanique/eventscout/core"
	"github.com/spontanique/eventscout/storage"
)

func TestEventBasics(t *testing.T) {
	eventRepo, backend, err := NewMemoryEventRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { eventRepo.Close(); backend.Close() }()

	ctx := context.Background()

	event := &core.Event{
		Title:     "Jazz Night at Vega",
		Category:  "music",
		Venue:     "Vega",
		City:      "Copenhagen",
		Price:     150,
		EventDate: time.Now().UTC().Add(24 * time.Hour),
		Source:    core.SourceTypeNative,
	}

	added, err := eventRepo.AddEvents(ctx, event)
	if err != nil {
		t.Fatalf("Failed to add event: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(added))
	}
	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}
	if added[0].InsertedAt.IsZero() || added[0].UpdatedAt.IsZero() {
		t.Fatal("Expected timestamps to be set")
	}

	retrieved, err := eventRepo.GetEvent(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get event: %v", err)
	}
	if retrieved.Title != "Jazz Night at Vega" {
		t.Fatalf("Expected 'Jazz Night at Vega', got '%s'", retrieved.Title)
	}
	// Stamps are written at storage precision, so the returned event and its
	// stored copy must agree
	if !retrieved.InsertedAt.Equal(added[0].InsertedAt) {
		t.Fatalf("Expected InsertedAt to round-trip: %v != %v", retrieved.InsertedAt, added[0].InsertedAt)
	}
	if !retrieved.UpdatedAt.Equal(added[0].UpdatedAt) {
		t.Fatalf("Expected UpdatedAt to round-trip: %v != %v", retrieved.UpdatedAt, added[0].UpdatedAt)
	}
}

func TestExternalEventContentID(t *testing.T) {
	eventRepo, backend, err := NewMemoryEventRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { eventRepo.Close(); backend.Close() }()

	ctx := context.Background()

	event := &core.Event{
		EventKey:       "billetto-4711",
		Title:          "Board Game Night",
		Category:       "entertainment",
		EventDate:      time.Now().UTC().Add(48 * time.Hour),
		Source:         core.SourceTypeExternal,
		SourcePlatform: "billetto",
	}

	added, err := eventRepo.AddEvents(ctx, event)
	if err != nil {
		t.Fatalf("Failed to add event: %v", err)
	}

	want := core.IDFromContent("billetto-4711")
	if added[0].Id != want {
		t.Fatalf("Expected content-derived ID %d, got %d", want, added[0].Id)
	}

	// Adding the same key again is a duplicate
	dup := &core.Event{
		EventKey:  "billetto-4711",
		Title:     "Board Game Night",
		Category:  "entertainment",
		EventDate: event.EventDate,
		Source:    core.SourceTypeExternal,
	}
	_, err = eventRepo.AddEvents(ctx, dup)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestGetEventByKey(t *testing.T) {
	eventRepo, backend, err := NewMemoryEventRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { eventRepo.Close(); backend.Close() }()

	ctx := context.Background()

	event := &core.Event{
		EventKey:  "ra-2001",
		Title:     "Techno Warehouse Rave",
		Category:  "nightlife",
		EventDate: time.Now().UTC().Add(72 * time.Hour),
		Source:    core.SourceTypeExternal,
	}
	if _, err := eventRepo.AddEvents(ctx, event); err != nil {
		t.Fatalf("Failed to add event: %v", err)
	}

	found, err := eventRepo.GetEventByKey(ctx, "ra-2001")
	if err != nil {
		t.Fatalf("Failed to get event by key: %v", err)
	}
	if found.Title != "Techno Warehouse Rave" {
		t.Fatalf("Unexpected event: %s", found.Title)
	}

	_, err = eventRepo.GetEventByKey(ctx, "ra-9999")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestUpsertEvents(t *testing.T) {
	eventRepo, backend, err := NewMemoryEventRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { eventRepo.Close(); backend.Close() }()

	ctx := context.Background()
	date := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Microsecond)

	first := &core.Event{
		EventKey:  "eb-550",
		Title:     "Startup Pitch Evening",
		Category:  "business",
		Price:     0,
		EventDate: date,
		Source:    core.SourceTypeExternal,
	}
	if _, err := eventRepo.UpsertEvents(ctx, first); err != nil {
		t.Fatalf("Failed to upsert event: %v", err)
	}
	firstID := first.Id
	firstInserted := first.InsertedAt

	// Re-import with changed price and date
	second := &core.Event{
		EventKey:  "eb-550",
		Title:     "Startup Pitch Evening",
		Category:  "business",
		Price:     50,
		EventDate: date.Add(2 * time.Hour),
		Source:    core.SourceTypeExternal,
	}
	if _, err := eventRepo.UpsertEvents(ctx, second); err != nil {
		t.Fatalf("Failed to upsert event again: %v", err)
	}

	if second.Id != firstID {
		t.Fatalf("Expected ID to survive upsert: %d != %d", second.Id, firstID)
	}
	if !second.InsertedAt.Equal(firstInserted) {
		t.Fatal("Expected InsertedAt to survive upsert")
	}

	stored, err := eventRepo.GetEventByKey(ctx, "eb-550")
	if err != nil {
		t.Fatalf("Failed to get event: %v", err)
	}
	if stored.Price != 50 {
		t.Fatalf("Expected updated price 50, got %v", stored.Price)
	}

	// Date index must follow the new date
	results, err := eventRepo.GetEventsByDateRange(ctx, date.Add(time.Hour), date.Add(3*time.Hour))
	if err != nil {
		t.Fatalf("Failed to query date range: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 event in moved range, got %d", len(results))
	}

	all, err := eventRepo.AllEvents(ctx)
	if err != nil {
		t.Fatalf("Failed to list events: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Expected 1 event after upsert, got %d", len(all))
	}
}

func TestUpdateEvents(t *testing.T) {
	eventRepo, backend, err := NewMemoryEventRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { eventRepo.Close(); backend.Close() }()

	ctx := context.Background()

	event := &core.Event{
		Title:     "Morning Yoga in the Park",
		Category:  "fitness",
		EventDate: time.Now().UTC().Add(24 * time.Hour),
		Source:    core.SourceTypeNative,
	}
	if _, err := eventRepo.AddEvents(ctx, event); err != nil {
		t.Fatalf("Failed to add event: %v", err)
	}

	event.Price = 75
	if _, err := eventRepo.UpdateEvents(ctx, event); err != nil {
		t.Fatalf("Failed to update event: %v", err)
	}

	stored, err := eventRepo.GetEvent(ctx, event.Id)
	if err != nil {
		t.Fatalf("Failed to get event: %v", err)
	}
	if stored.Price != 75 {
		t.Fatalf("Expected price 75, got %v", stored.Price)
	}
	if !stored.UpdatedAt.Equal(event.UpdatedAt) {
		t.Fatalf("Expected UpdatedAt to round-trip: %v != %v", stored.UpdatedAt, event.UpdatedAt)
	}

	missing := &core.Event{Id: 99999, Title: "Ghost", Category: "music", EventDate: time.Now().UTC(), Source: core.SourceTypeNative}
	_, err = eventRepo.UpdateEvents(ctx, missing)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteEvents(t *testing.T) {
	eventRepo, backend, err := NewMemoryEventRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { eventRepo.Close(); backend.Close() }()

	ctx := context.Background()
	date := time.Now().UTC().Add(24 * time.Hour)

	event := &core.Event{
		EventKey:  "bi-77",
		Title:     "Wine Tasting",
		Category:  "food",
		EventDate: date,
		Source:    core.SourceTypeExternal,
	}
	if _, err := eventRepo.AddEvents(ctx, event); err != nil {
		t.Fatalf("Failed to add event: %v", err)
	}

	if err := eventRepo.DeleteEvents(ctx, event.Id); err != nil {
		t.Fatalf("Failed to delete event: %v", err)
	}

	if _, err := eventRepo.GetEvent(ctx, event.Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}
	if _, err := eventRepo.GetEventByKey(ctx, "bi-77"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected key index to be cleaned up, got %v", err)
	}

	results, err := eventRepo.GetEventsByDateRange(ctx, date.Add(-time.Hour), date.Add(time.Hour))
	if err != nil {
		t.Fatalf("Failed to query date range: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Expected empty date range after delete, got %d", len(results))
	}

	if err := eventRepo.DeleteEvents(ctx, event.Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for double delete, got %v", err)
	}
}

func TestEventDateRange(t *testing.T) {
	eventRepo, backend, err := NewMemoryEventRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { eventRepo.Close(); backend.Close() }()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	events := []*core.Event{
		{Title: "Event 1", Category: "music", EventDate: now.Add(24 * time.Hour), Source: core.SourceTypeNative},
		{Title: "Event 2", Category: "music", EventDate: now.Add(48 * time.Hour), Source: core.SourceTypeNative},
		{Title: "Event 3", Category: "music", EventDate: now.Add(96 * time.Hour), Source: core.SourceTypeNative},
	}
	if _, err := eventRepo.AddEvents(ctx, events...); err != nil {
		t.Fatalf("Failed to add events: %v", err)
	}

	results, err := eventRepo.GetEventsByDateRange(ctx, now, now.Add(72*time.Hour))
	if err != nil {
		t.Fatalf("Failed to get events by date range: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(results))
	}
	if results[0].Title != "Event 1" || results[1].Title != "Event 2" {
		t.Fatalf("Expected date ordering, got %s, %s", results[0].Title, results[1].Title)
	}
}

func TestAllEvents(t *testing.T) {
	eventRepo, backend, err := NewMemoryEventRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { eventRepo.Close(); backend.Close() }()

	ctx := context.Background()
	now := time.Now().UTC()

	events := []*core.Event{
		{Title: "Native One", Category: "music", EventDate: now.Add(24 * time.Hour), Source: core.SourceTypeNative},
		{EventKey: "x-1", Title: "External One", Category: "food", EventDate: now.Add(48 * time.Hour), Source: core.SourceTypeExternal},
		{EventKey: "x-2", Title: "External Two", Category: "culture", EventDate: now.Add(72 * time.Hour), Source: core.SourceTypeExternal},
	}
	if _, err := eventRepo.AddEvents(ctx, events...); err != nil {
		t.Fatalf("Failed to add events: %v", err)
	}

	all, err := eventRepo.AllEvents(ctx)
	if err != nil {
		t.Fatalf("Failed to list events: %v", err)
	}
	// Index entries and the sequence key must not leak into the catalog
	if len(all) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(all))
	}
}
