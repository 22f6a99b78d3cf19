package badger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "db")
	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenBackend_NotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	_, err := OpenBackend(path, false)
	assert.ErrorContains(t, err, "is not a directory")
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)

	assert.False(t, backend.IsClosed())
	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())
}

func TestWithTransaction_CommitAndRollback(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()
	ctx := context.Background()

	err = backend.WithTransaction(ctx, func(ctx context.Context) error {
		return backend.update(ctx, func(tx *badger.Txn) error {
			return tx.Set([]byte("kept"), []byte("1"))
		})
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = backend.WithTransaction(ctx, func(ctx context.Context) error {
		if err := backend.update(ctx, func(tx *badger.Txn) error {
			return tx.Set([]byte("dropped"), []byte("1"))
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = backend.view(ctx, func(tx *badger.Txn) error {
		kept, err := keyExists(tx, []byte("kept"))
		require.NoError(t, err)
		assert.True(t, kept)

		dropped, err := keyExists(tx, []byte("dropped"))
		require.NoError(t, err)
		assert.False(t, dropped)
		return nil
	})
	require.NoError(t, err)
}

func TestGetSequence(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	seq, err := backend.GetSequence("testseq")
	require.NoError(t, err)
	defer seq.Release()

	first, err := seq.Next()
	require.NoError(t, err)
	second, err := seq.Next()
	require.NoError(t, err)
	assert.Greater(t, second, first)
}

func TestEntryKeys(t *testing.T) {
	assert.Equal(t, []byte("entrec:42"), makeEntryKey(42))
	assert.Equal(t, []byte("entnam:doge"), makeEntryNameKey("doge"))

	// Order keys sort numerically
	assert.Less(t, string(makeEntryOrderKey(2)), string(makeEntryOrderKey(10)))
	assert.Less(t, string(makeEntryOrderKey(255)), string(makeEntryOrderKey(256)))
}
