package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/Fasteroid/partial-pattern-tree/core"
)

// Key prefixes for different data types
const (
	entryRecordPrefix = "entrec"
	entryOrderPrefix  = "entord"
	entryNamePrefix   = "entnam"
	entrySeq          = "entseq"
)

// makeEntryKey generates a key for an entry by ID.
func makeEntryKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", entryRecordPrefix, id))
}

// makeEntryOrderKey generates a key for the insertion order index.
// Format: prefix:seq
func makeEntryOrderKey(seq uint64) []byte {
	prefix := entryOrderPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	// BigEndian so lexicographic order is numeric order
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makeEntryNameKey generates a key for the unique name index.
// Format: prefix:name
func makeEntryNameKey(name string) []byte {
	prefix := entryNamePrefix + ":"
	buf := make([]byte, len(prefix)+len(name))
	offset := copy(buf, prefix)
	copy(buf[offset:], name)
	return buf
}
