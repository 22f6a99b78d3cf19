package ingestion

import (
	"context"

	"github.com/Fasteroid/partial-pattern-tree/core"
	"github.com/Fasteroid/partial-pattern-tree/storage"
)

const (
	// DefaultBatchSize is the default number of entries handed to each batch
	DefaultBatchSize = 100
)

// EntryIterator iterates over all stored entries in batches, in insertion order.
type EntryIterator struct {
	repo      storage.EntryRepository
	batchSize int
}

// NewEntryIterator creates a new entry iterator.
// A batchSize <= 0 selects DefaultBatchSize.
func NewEntryIterator(repo storage.EntryRepository, batchSize int) *EntryIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &EntryIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach calls fn for each batch of entries.
// Iteration stops on first error from fn or when all entries are processed.
// Context cancellation is checked between batches.
func (it *EntryIterator) ForEach(ctx context.Context, fn func([]*core.Entry) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := it.repo.AllEntries(ctx)
	if err != nil {
		return err
	}

	for i := 0; i < len(entries); i += it.batchSize {
		end := min(i+it.batchSize, len(entries))
		if err := fn(entries[i:end]); err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}

	return nil
}
