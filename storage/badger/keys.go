package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/verdant/core"
)

// Key prefixes for different data types. Prefixes are chosen so that no
// prefix is a prefix of another, which keeps prefix scans clean.
const (
	documentPrefix = "doc:"
	dateIdxPrefix  = "date:"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s%d", documentPrefix, id))
}

// makeDateKey generates a composite key for the date index.
// Format: prefix + timestamp + id, big-endian so lexicographic sort follows
// chronological order.
func makeDateKey(timestamp time.Time, id core.ID) []byte {
	prefixBytes := []byte(dateIdxPrefix)
	buf := make([]byte, len(prefixBytes)+16)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialDateKey generates a partial key for date range queries.
func makePartialDateKey(timestamp time.Time) []byte {
	prefixBytes := []byte(dateIdxPrefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}
