package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/baytlab/bayt/core"
)

// Key prefixes for different data types
const (
	verseRecordPrefix  = "verrec"
	verseOrdinalPrefix = "verord"
	verseOrdinalSeq    = "verordseq"
)

// makeRecordKey generates a key for a corpus record by ID.
func makeRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s", verseRecordPrefix, id))
}

// makeOrdinalKey generates a key for the ingestion-order index.
// Format: prefix:ordinal
func makeOrdinalKey(ordinal uint64) []byte {
	prefix := verseOrdinalPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], ordinal)
	return buf
}
