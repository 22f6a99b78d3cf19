package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Entry is a named description indexed by the pattern tree.
type Entry struct {
	Id          ID
	Seq         uint64            // Insertion order, assigned by storage
	Name        string            // Value returned by searches; unique
	Description []TokenSpec       // Literal and pattern tokens describing the entry
	Metadata    map[string]string // Optional metadata
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// NewEntry parses description and returns an Entry with a content-based ID.
// The description is parsed but not compiled; see ValidateEntry.
func NewEntry(name, description string) (*Entry, error) {
	specs, err := ParseDescription(description)
	if err != nil {
		return nil, err
	}
	return &Entry{
		Id:          IDFromContent(name),
		Name:        name,
		Description: specs,
	}, nil
}

// DescriptionString renders the entry description in the description syntax.
func (e *Entry) DescriptionString() string {
	return FormatDescription(e.Description)
}

// Sequence compiles the entry description.
func (e *Entry) Sequence() (Sequence, error) {
	return CompileDescription(e.Description)
}

// SearchResult is a matched entry and its skip cost.
// Lower cost means fewer tokens were skipped before the match began.
type SearchResult struct {
	Entry *Entry
	Cost  int
}
