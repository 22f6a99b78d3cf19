package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Fasteroid/partial-pattern-tree/core"
	"github.com/Fasteroid/partial-pattern-tree/storage"
	"github.com/dgraph-io/badger/v4"
)

// EntryRepository implements storage.EntryRepository for BadgerDB.
type EntryRepository struct {
	backend     *Backend
	seq         *badger.Sequence
	ownsBackend bool
}

var _ storage.EntryRepository = (*EntryRepository)(nil)

// NewEntryRepository creates an entry repository on an open backend.
// The caller keeps ownership of the backend.
func NewEntryRepository(backend *Backend) (storage.EntryRepository, error) {
	return newEntryRepository(backend, false)
}

func newEntryRepository(backend *Backend, ownsBackend bool) (*EntryRepository, error) {
	seq, err := backend.GetSequence(entrySeq)
	if err != nil {
		return nil, err
	}
	return &EntryRepository{
		backend:     backend,
		seq:         seq,
		ownsBackend: ownsBackend,
	}, nil
}

// Close releases the sequence, and the backend if the repository owns it.
func (r *EntryRepository) Close() error {
	err := r.seq.Release()
	if r.ownsBackend {
		err = errors.Join(err, r.backend.Close())
	}
	return err
}

// WithTransaction delegates to the backend.
func (r *EntryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddEntries adds one or more entries to storage.
func (r *EntryRepository) AddEntries(ctx context.Context, entries ...*core.Entry) ([]*core.Entry, error) {
	err := r.backend.update(ctx, func(tx *badger.Txn) error {
		for _, entry := range entries {
			// Use content-based ID if not set
			if entry.Id == 0 {
				entry.Id = core.IDFromContent(entry.Name)
			}

			nameKey := makeEntryNameKey(entry.Name)
			if exists, err := keyExists(tx, nameKey); err != nil {
				return err
			} else if exists {
				return fmt.Errorf("%w: entry %q", storage.ErrDuplicateKey, entry.Name)
			}
			key := makeEntryKey(entry.Id)
			if exists, err := keyExists(tx, key); err != nil {
				return err
			} else if exists {
				return fmt.Errorf("%w: entry id %d", storage.ErrDuplicateKey, entry.Id)
			}

			seq, err := r.nextSeq()
			if err != nil {
				return err
			}
			entry.Seq = seq
			entry.InsertedAt = now()
			entry.UpdatedAt = entry.InsertedAt

			// Store primary record
			if err := tx.Set(key, storage.MarshalEntry(entry)); err != nil {
				return err
			}

			// Store order and name indexes
			id := storage.MarshalID(entry.Id)
			if err := tx.Set(makeEntryOrderKey(entry.Seq), id); err != nil {
				return err
			}
			if err := tx.Set(nameKey, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// nextSeq returns the next insertion sequence number. Zero is never used.
func (r *EntryRepository) nextSeq() (uint64, error) {
	next, err := r.seq.Next()
	if err != nil {
		return 0, err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if next == 0 {
		return r.seq.Next()
	}
	return next, nil
}

// UpdateEntries replaces existing entries, preserving their insertion order.
// Entries are located by Id. Renaming an entry re-keys it under the ID
// derived from its new name, so the old name is free to be added again.
func (r *EntryRepository) UpdateEntries(ctx context.Context, entries ...*core.Entry) ([]*core.Entry, error) {
	err := r.backend.update(ctx, func(tx *badger.Txn) error {
		for _, entry := range entries {
			key := makeEntryKey(entry.Id)

			// Read old entry to detect changes
			old, err := readEntry(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return fmt.Errorf("%w: entry id %d", storage.ErrNotFound, entry.Id)
			}

			if old.Name != entry.Name {
				if key, err = r.rename(tx, old, entry); err != nil {
					return err
				}
			}

			entry.Seq = old.Seq
			entry.InsertedAt = old.InsertedAt
			entry.UpdatedAt = now()

			if err := tx.Set(key, storage.MarshalEntry(entry)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// rename moves old's record and indexes to the ID derived from entry.Name
// and returns the new record key.
func (r *EntryRepository) rename(tx *badger.Txn, old, entry *core.Entry) ([]byte, error) {
	newNameKey := makeEntryNameKey(entry.Name)
	if exists, err := keyExists(tx, newNameKey); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("%w: entry %q", storage.ErrDuplicateKey, entry.Name)
	}

	newID := core.IDFromContent(entry.Name)
	newKey := makeEntryKey(newID)
	if newID != old.Id {
		if exists, err := keyExists(tx, newKey); err != nil {
			return nil, err
		} else if exists {
			return nil, fmt.Errorf("%w: entry id %d", storage.ErrDuplicateKey, newID)
		}
	}

	for _, k := range [][]byte{makeEntryNameKey(old.Name), makeEntryKey(old.Id)} {
		if err := tx.Delete(k); err != nil {
			return nil, err
		}
	}
	id := storage.MarshalID(newID)
	if err := tx.Set(newNameKey, id); err != nil {
		return nil, err
	}
	if err := tx.Set(makeEntryOrderKey(old.Seq), id); err != nil {
		return nil, err
	}
	entry.Id = newID
	return newKey, nil
}

// DeleteEntries removes entries by their IDs.
func (r *EntryRepository) DeleteEntries(ctx context.Context, ids ...core.ID) error {
	return r.backend.update(ctx, func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeEntryKey(id)

			// Read entry to get index keys for cleanup
			entry, err := readEntry(tx, key)
			if err != nil {
				return err
			}
			if entry == nil {
				return fmt.Errorf("%w: entry id %d", storage.ErrNotFound, id)
			}

			for _, k := range [][]byte{makeEntryOrderKey(entry.Seq), makeEntryNameKey(entry.Name), key} {
				if err := tx.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// GetEntry retrieves a single entry by ID.
func (r *EntryRepository) GetEntry(ctx context.Context, id core.ID) (*core.Entry, error) {
	var result *core.Entry
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		var err error
		result, err = readEntry(tx, makeEntryKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("%w: entry id %d", storage.ErrNotFound, id)
		}
		return nil
	})
	return result, err
}

// GetEntries retrieves multiple entries by their IDs.
func (r *EntryRepository) GetEntries(ctx context.Context, ids ...core.ID) ([]*core.Entry, error) {
	var result []*core.Entry
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		for _, id := range ids {
			entry, err := readEntry(tx, makeEntryKey(id))
			if err != nil {
				return err
			}
			if entry != nil {
				result = append(result, entry)
			}
		}
		return nil
	})
	return result, err
}

// FindEntryByName finds an entry through the name index.
func (r *EntryRepository) FindEntryByName(ctx context.Context, name string) (*core.Entry, error) {
	var result *core.Entry
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		item, err := tx.Get(makeEntryNameKey(name))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: entry %q", storage.ErrNotFound, name)
			}
			return err
		}

		var id core.ID
		err = item.Value(func(val []byte) error {
			id, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		result, err = readEntry(tx, makeEntryKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("%w: entry %q", storage.ErrNotFound, name)
		}
		return nil
	})
	return result, err
}

// AllEntries walks the order index and returns entries in insertion order.
func (r *EntryRepository) AllEntries(ctx context.Context) ([]*core.Entry, error) {
	var results []*core.Entry
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		return scanOrder(tx, func(id core.ID) error {
			entry, err := readEntry(tx, makeEntryKey(id))
			if err != nil {
				return err
			}
			if entry != nil {
				results = append(results, entry)
			}
			return nil
		})
	})
	return results, err
}

// CountEntries counts keys in the order index.
func (r *EntryRepository) CountEntries(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		prefix := []byte(entryOrderPrefix + ":")
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Helper methods

// scanOrder calls fn with each entry ID in insertion order.
func scanOrder(tx *badger.Txn, fn func(id core.ID) error) error {
	prefix := []byte(entryOrderPrefix + ":")
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
		var id core.ID
		err := iter.Item().Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}
		if err := fn(id); err != nil {
			return err
		}
	}
	return nil
}

func keyExists(tx *badger.Txn, key []byte) (bool, error) {
	_, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

// readEntry reads an entry from the transaction; a missing key yields nil.
func readEntry(tx *badger.Txn, key []byte) (*core.Entry, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var entry *core.Entry
	err = item.Value(func(val []byte) error {
		var err error
		entry, err = storage.UnmarshalEntry(val)
		return err
	})
	return entry, err
}

// now returns the current time at the precision entries are stored with.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
