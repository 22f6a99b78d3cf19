package pptree

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Fasteroid/partial-pattern-tree/core"
	"github.com/Fasteroid/partial-pattern-tree/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		assert.NotNil(t, db.EntryRepository())
		assert.NotNil(t, db.backend)
		assert.NotNil(t, db.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("in memory", func(t *testing.T) {
		db, err := NewDatabase("", WithInMemory())
		require.NoError(t, err)
		require.NoError(t, db.Close())
	})
}

func TestDatabase_Close(t *testing.T) {
	db, err := NewDatabase(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, db.Close())
	assert.True(t, db.backend.IsClosed())
}

func TestDatabase_EndToEnd(t *testing.T) {
	db, err := NewDatabase("", WithInMemory())
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	pipeline, err := db.NewIngestionPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	var entries []*core.Entry
	for _, pair := range [][2]string{
		{"doge", "shiba inu"},
		{"bingus", "{^[bdgz]}ingus"},
	} {
		entry, err := core.NewEntry(pair[0], pair[1])
		require.NoError(t, err)
		entries = append(entries, entry)
	}
	_, err = pipeline.Ingest(ctx, entries...)
	require.NoError(t, err)

	tree, err := db.BuildTree(ctx)
	require.NoError(t, err)

	searcher, err := db.NewSearcher(tree)
	require.NoError(t, err)
	defer searcher.Release()

	results, err := searcher.Search(ctx, "in", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "bingus", results[0].Entry.Name)
	assert.Equal(t, "doge", results[1].Entry.Name)
}

func TestDatabase_Reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	db, err := NewDatabase(dir)
	require.NoError(t, err)
	entry, err := core.NewEntry("parakeet", "parake{^e+}t")
	require.NoError(t, err)
	_, err = db.EntryRepository().AddEntries(ctx, entry)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = NewDatabase(dir)
	require.NoError(t, err)
	defer db.Close()

	tree, err := db.BuildTree(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.ID{core.IDFromContent("parakeet")}, tree.Search("keeeeeeeeeee"))
}

// failingCloseRepo is an entry repository whose Close always reports an error.
type failingCloseRepo struct {
	storage.EntryRepository
}

var errRepoClose = errors.New("repository close failed")

func (r failingCloseRepo) Close() error {
	return errors.Join(r.EntryRepository.Close(), errRepoClose)
}

func TestDatabaseClose_ClosesBackendAfterRepositoryError(t *testing.T) {
	db, err := NewDatabase("", WithInMemory())
	require.NoError(t, err)

	db.entryRepo = failingCloseRepo{db.entryRepo}

	err = db.Close()
	assert.ErrorIs(t, err, errRepoClose)
	assert.True(t, db.backend.IsClosed())
}
