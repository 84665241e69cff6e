package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// External feed imports use it on the event key so that re-importing the same feed
// produces the same IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SourceType identifies where an event record originated.
type SourceType int

const (
	// SourceTypeNative represents an event created on the platform itself.
	SourceTypeNative SourceType = iota + 1
	// SourceTypeExternal represents an event imported from a partner feed.
	SourceTypeExternal
)

// Event represents a single entry in the event catalog.
// The search engine treats events as read-only; scoring state lives in Relevance.
type Event struct {
	Id             ID
	EventKey       string // Stable key from the source platform, used for upserts
	Title          string
	Description    string
	Category       string // Drawn from the fixed category vocabulary
	Venue          string
	City           string
	Price          float64
	OriginalPrice  float64 // Pre-discount price; 0 when the event was never discounted
	EventDate      time.Time
	TicketsLeft    int
	Source         SourceType
	SourcePlatform string    // e.g. "eventbrite", "billetto"; empty for native events
	InsertedAt     time.Time // When the record was inserted into the catalog
	UpdatedAt      time.Time // When the record was last updated
}

// Relevance is the transient scoring record produced for one event during one
// search call. It is never persisted back into the catalog.
type Relevance struct {
	Score          float64
	DirectMatches  int
	SynonymMatches int
	HasTitleMatch  bool
}

// SearchResult pairs an event with its relevance record for one query.
type SearchResult struct {
	Event     *Event
	Relevance Relevance
}
