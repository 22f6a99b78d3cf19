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


package pptree

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Fasteroid/partial-pattern-tree/core"
	"github.com/Fasteroid/partial-pattern-tree/ingestion"
	"github.com/Fasteroid/partial-pattern-tree/search"
	"github.com/Fasteroid/partial-pattern-tree/storage"
	"github.com/Fasteroid/partial-pattern-tree/storage/badger"
	"github.com/Fasteroid/partial-pattern-tree/trie"
)

// Database is a persistent catalog of entries plus the means to index and
// search them.
type Database struct {
	backend   *badger.Backend
	entryRepo storage.EntryRepository
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	inMemory bool
	logger   *slog.Logger
}

// WithInMemory keeps the database in memory; the path is ignored.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithLogger sets the logger shared by storage, pipelines and searchers.
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewDatabase opens or creates the database at filePath.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory, badger.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	entryRepo, err := badger.NewEntryRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:   backend,
		entryRepo: entryRepo,
		logger:    options.logger,
	}, nil
}

// Close closes the entry repository and the backend. The backend is closed
// even if closing the repository fails.
func (db *Database) Close() error {
	repoErr := db.entryRepo.Close()
	if repoErr != nil {
		db.logger.Error("error closing entry repository", "err", repoErr)
	}

	backendErr := db.backend.Close()
	if backendErr != nil {
		db.logger.Error("error closing backend storage", "err", backendErr)
	}
	return errors.Join(repoErr, backendErr)
}

func (db *Database) EntryRepository() storage.EntryRepository {
	return db.entryRepo
}

// NewIngestionPipeline returns a pipeline over the database's entries.
func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	opts = append([]ingestion.Option{ingestion.WithLogger(db.logger)}, opts...)
	return ingestion.NewPipeline(db.entryRepo, opts...)
}

// BuildTree indexes every stored entry and returns the sealed tree.
func (db *Database) BuildTree(ctx context.Context, opts ...ingestion.Option) (*trie.Tree[core.ID], error) {
	pipeline, err := db.NewIngestionPipeline(opts...)
	if err != nil {
		return nil, err
	}
	defer pipeline.Release()
	return pipeline.Build(ctx)
}

// NewSearcher returns a searcher over tree, resolving matches to the
// database's entries.
func (db *Database) NewSearcher(tree *trie.Tree[core.ID], opts ...search.Option) (*search.Searcher, error) {
	opts = append([]search.Option{search.WithLogger(db.logger)}, opts...)
	return search.NewSearcher(db.entryRepo, tree, opts...)
}
