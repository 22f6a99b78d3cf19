// Copyright 2025 Poiesic Systems
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


package storage

import (
	"context"

	"github.com/Fasteroid/partial-pattern-tree/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// EntryRepository provides operations for managing indexed entries.
type EntryRepository interface {
	Repository
	// AddEntries adds one or more entries to storage.
	// Uses content-based IDs (IDFromContent of the entry name).
	// Assigns Seq from a sequence so entries keep their insertion order.
	// Sets InsertedAt and UpdatedAt.
	// Returns ErrDuplicateKey if an entry with the same name exists.
	AddEntries(ctx context.Context, entries ...*core.Entry) ([]*core.Entry, error)

	// UpdateEntries replaces the description and metadata of existing entries.
	// Updates the UpdatedAt timestamp automatically; Seq is preserved.
	// A changed Name moves the entry to the ID derived from the new name.
	// Returns ErrNotFound if any entry doesn't exist.
	UpdateEntries(ctx context.Context, entries ...*core.Entry) ([]*core.Entry, error)

	// DeleteEntries removes entries by their IDs.
	// Returns ErrNotFound if any entry doesn't exist.
	DeleteEntries(ctx context.Context, ids ...core.ID) error

	// GetEntry retrieves a single entry by ID.
	// Returns ErrNotFound if the entry doesn't exist.
	GetEntry(ctx context.Context, id core.ID) (*core.Entry, error)

	// GetEntries retrieves multiple entries by their IDs, in the order given.
	// Returns only the entries that exist (no error for missing entries).
	GetEntries(ctx context.Context, ids ...core.ID) ([]*core.Entry, error)

	// FindEntryByName finds an entry by its unique name.
	// Returns ErrNotFound if no matching entry exists.
	FindEntryByName(ctx context.Context, name string) (*core.Entry, error)

	// AllEntries retrieves every entry in insertion order.
	AllEntries(ctx context.Context) ([]*core.Entry, error)

	// CountEntries returns the number of stored entries.
	CountEntries(ctx context.Context) (int, error)
}
