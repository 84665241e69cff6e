package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/spontanique/eventscout/core"
)

// Key prefixes for different data types
const (
	eventRecordPrefix     = "evtrec"
	eventRecordDatePrefix = "evtrecd"
	eventRecordKeyPrefix  = "evtreck"
	eventRecordIDSeq      = "evtrecseq"
)

// makeEventRecordKey generates a key for an event by ID.
func makeEventRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", eventRecordPrefix, id))
}

// makeEventDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeEventDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := eventRecordDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialEventDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialEventDateKey(timestamp time.Time) []byte {
	prefix := eventRecordDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeEventKeyIndexKey generates a key for event lookup by stable EventKey.
// Format: prefix:eventKey
func makeEventKeyIndexKey(eventKey string) []byte {
	prefix := eventRecordKeyPrefix + ":"
	totalSize := len(prefix) + len(eventKey)
	buf := make([]byte, totalSize)
	offset := copy(buf, []byte(prefix))
	copy(buf[offset:], []byte(eventKey))
	return buf
}
