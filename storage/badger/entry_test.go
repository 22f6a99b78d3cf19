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


package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/Fasteroid/partial-pattern-tree/core"
	"github.com/Fasteroid/partial-pattern-tree/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.EntryRepository {
	t.Helper()
	repo, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func mustEntry(t *testing.T, name, description string) *core.Entry {
	t.Helper()
	entry, err := core.NewEntry(name, description)
	require.NoError(t, err)
	return entry
}

func TestEntryBasics(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddEntries(ctx, mustEntry(t, "parakeet", "parake{^e+}t"))
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, core.IDFromContent("parakeet"), added[0].Id)
	assert.NotZero(t, added[0].Seq)
	assert.False(t, added[0].InsertedAt.IsZero())
	assert.Equal(t, added[0].InsertedAt, added[0].UpdatedAt)

	got, err := repo.GetEntry(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, "parakeet", got.Name)
	assert.Equal(t, "parake{^e+}t", got.DescriptionString())

	found, err := repo.FindEntryByName(ctx, "parakeet")
	require.NoError(t, err)
	assert.Equal(t, got, found)

	count, err := repo.CountEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAddEntries_Duplicate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddEntries(ctx, mustEntry(t, "doge", "doge"))
	require.NoError(t, err)

	_, err = repo.AddEntries(ctx, mustEntry(t, "doge", "dog"))
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	// Duplicates within one call roll back the whole call
	_, err = repo.AddEntries(ctx, mustEntry(t, "bingus", "bingus"), mustEntry(t, "bingus", "bing"))
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
	_, err = repo.FindEntryByName(ctx, "bingus")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAllEntries_InsertionOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	names := []string{"zebra", "apple", "mango", "kiwi", "banana"}
	for _, name := range names {
		_, err := repo.AddEntries(ctx, mustEntry(t, name, name))
		require.NoError(t, err)
	}

	all, err := repo.AllEntries(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(names))
	for i, entry := range all {
		assert.Equal(t, names[i], entry.Name)
		if i > 0 {
			assert.Greater(t, entry.Seq, all[i-1].Seq)
		}
	}
}

func TestUpdateEntries(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddEntries(ctx, mustEntry(t, "bird", "bird"), mustEntry(t, "fish", "fish"))
	require.NoError(t, err)
	bird := added[0]
	seq, inserted := bird.Seq, bird.InsertedAt

	specs, err := core.ParseDescription("b{^i+}rd")
	require.NoError(t, err)
	bird.Description = specs
	bird.Metadata = map[string]string{"kind": "animal"}
	bird.Seq = 0

	_, err = repo.UpdateEntries(ctx, bird)
	require.NoError(t, err)

	got, err := repo.GetEntry(ctx, bird.Id)
	require.NoError(t, err)
	assert.Equal(t, "b{^i+}rd", got.DescriptionString())
	assert.Equal(t, "animal", got.Metadata["kind"])
	assert.Equal(t, seq, got.Seq)
	assert.Equal(t, inserted, got.InsertedAt)
	assert.False(t, got.UpdatedAt.Before(got.InsertedAt))

	// Order is unchanged by updates
	all, err := repo.AllEntries(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "bird", all[0].Name)

	missing := mustEntry(t, "ghost", "boo")
	_, err = repo.UpdateEntries(ctx, missing)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateEntries_Rename(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddEntries(ctx, mustEntry(t, "cat", "cat"), mustEntry(t, "dog", "dog"))
	require.NoError(t, err)

	cat := added[0]
	cat.Name = "dog"
	_, err = repo.UpdateEntries(ctx, cat)
	require.ErrorIs(t, err, storage.ErrDuplicateKey)

	cat.Name = "kitten"
	_, err = repo.UpdateEntries(ctx, cat)
	require.NoError(t, err)

	_, err = repo.FindEntryByName(ctx, "cat")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	found, err := repo.FindEntryByName(ctx, "kitten")
	require.NoError(t, err)
	assert.Equal(t, cat.Id, found.Id)
}

func TestUpdateEntries_RenameRekeys(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddEntries(ctx, mustEntry(t, "parrot", "parrot"), mustEntry(t, "doge", "doge"))
	require.NoError(t, err)
	oldID := added[0].Id

	parrot := added[0]
	parrot.Name = "polly"
	_, err = repo.UpdateEntries(ctx, parrot)
	require.NoError(t, err)
	assert.Equal(t, core.IDFromContent("polly"), parrot.Id)

	_, err = repo.GetEntry(ctx, oldID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	polly, err := repo.GetEntry(ctx, parrot.Id)
	require.NoError(t, err)
	assert.Equal(t, "polly", polly.Name)

	// The old name is free again.
	readded, err := repo.AddEntries(ctx, mustEntry(t, "parrot", "squawk"))
	require.NoError(t, err)
	assert.Equal(t, oldID, readded[0].Id)

	// The renamed entry keeps its place in insertion order.
	all, err := repo.AllEntries(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"polly", "doge", "parrot"}, []string{all[0].Name, all[1].Name, all[2].Name})

	count, err := repo.CountEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestDeleteEntries(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddEntries(ctx, mustEntry(t, "a", "a"), mustEntry(t, "b", "b"), mustEntry(t, "c", "c"))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteEntries(ctx, added[1].Id))

	_, err = repo.GetEntry(ctx, added[1].Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = repo.FindEntryByName(ctx, "b")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	all, err := repo.AllEntries(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name)
	assert.Equal(t, "c", all[1].Name)

	count, err := repo.CountEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	err = repo.DeleteEntries(ctx, added[1].Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// The name can be reused after deletion
	_, err = repo.AddEntries(ctx, mustEntry(t, "b", "bee"))
	require.NoError(t, err)
}

func TestGetEntries_SkipsMissing(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddEntries(ctx, mustEntry(t, "x", "x"), mustEntry(t, "y", "y"))
	require.NoError(t, err)

	got, err := repo.GetEntries(ctx, added[1].Id, core.IDFromContent("nope"), added[0].Id)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "y", got[0].Name)
	assert.Equal(t, "x", got[1].Name)
}

func TestEntryRepository_WithTransaction(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rollback := errors.New("rollback")
	err := repo.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := repo.AddEntries(ctx, mustEntry(t, "one", "one")); err != nil {
			return err
		}
		// Visible inside the transaction
		if _, err := repo.FindEntryByName(ctx, "one"); err != nil {
			return err
		}
		return rollback
	})
	require.ErrorIs(t, err, rollback)

	count, err := repo.CountEntries(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	err = repo.WithTransaction(ctx, func(ctx context.Context) error {
		_, err := repo.AddEntries(ctx, mustEntry(t, "one", "one"), mustEntry(t, "two", "two"))
		return err
	})
	require.NoError(t, err)

	count, err = repo.CountEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNewEntryRepository_SharedBackend(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	repo, err := NewEntryRepository(backend)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	// Closing the repository leaves a caller-owned backend open
	assert.False(t, backend.IsClosed())
}
