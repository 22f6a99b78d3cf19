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


package search

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"github.com/Fasteroid/partial-pattern-tree/core"
	"github.com/Fasteroid/partial-pattern-tree/storage"
	"github.com/Fasteroid/partial-pattern-tree/trie"
	"github.com/panjf2000/ants/v2"
)

// Searcher provides ranked partial-match search over indexed entries.
type Searcher struct {
	repository storage.EntryRepository
	tree       *trie.Tree[core.ID]
	batchPool  *ants.Pool
	logger     *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size used by SearchBatch.
// Default is runtime.NumCPU().
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if s.batchPool != nil {
			s.batchPool.Release()
		}
		s.batchPool = pool
		return nil
	}
}

// NewSearcher creates a new searcher over a sealed tree whose values are
// IDs of entries in repository.
func NewSearcher(repository storage.EntryRepository, tree *trie.Tree[core.ID], opts ...Option) (*Searcher, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if tree == nil {
		return nil, ErrTreeRequired
	}

	pool, err := ants.NewPool(runtime.NumCPU())
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		repository: repository,
		tree:       tree,
		batchPool:  pool,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.Release()
			return nil, err
		}
	}

	return s, nil
}

// Tree returns the tree the searcher queries.
func (s *Searcher) Tree() *trie.Tree[core.ID] {
	return s.tree
}

// Has reports whether query appears to match some entry, following only
// the first matching edge at each step. It can return false when Contains
// returns true.
func (s *Searcher) Has(query string) bool {
	return s.tree.Has(query)
}

// Contains reports whether any entry matches query.
func (s *Searcher) Contains(query string) bool {
	return s.tree.Contains(query)
}

// Search returns entries matching query, lowest skip cost first.
// A maxHits <= 0 returns every match.
func (s *Searcher) Search(ctx context.Context, query string, maxHits int) ([]*core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, query, maxHits, nil)
}

// SearchWithMonitor is Search with callbacks at each stage.
// Matches whose entry has been deleted since the tree was built are
// reported to the monitor and dropped, so fewer than maxHits results
// may be returned.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, maxHits int, monitor SearchMonitor) ([]*core.SearchResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	matches := s.tree.SearchScored(query)
	if maxHits > 0 && len(matches) > maxHits {
		matches = matches[:maxHits]
	}
	monitor.AfterTreeSearch(matches)

	if len(matches) == 0 {
		results := []*core.SearchResult{}
		monitor.Finish(results)
		return results, nil
	}

	ids := make([]core.ID, len(matches))
	for i, m := range matches {
		ids[i] = m.Value
	}

	entries, err := s.repository.GetEntries(ctx, ids...)
	if err != nil {
		s.logger.Error("error retrieving entries", "entryCount", len(ids), "err", err)
		return nil, err
	}
	monitor.AfterEntryRetrieval(entries)

	byID := make(map[core.ID]*core.Entry, len(entries))
	for _, entry := range entries {
		byID[entry.Id] = entry
	}

	results := make([]*core.SearchResult, 0, len(matches))
	for _, m := range matches {
		entry, ok := byID[m.Value]
		if !ok {
			s.logger.Warn("matched entry no longer stored", "id", m.Value)
			monitor.MissingEntry(m.Value)
			continue
		}
		results = append(results, &core.SearchResult{Entry: entry, Cost: m.Cost})
	}
	monitor.Finish(results)

	return results, nil
}

// SearchBatch runs Search for every query concurrently.
// The result is index-aligned with queries.
func (s *Searcher) SearchBatch(ctx context.Context, queries []string, maxHits int) ([][]*core.SearchResult, error) {
	results := make([][]*core.SearchResult, len(queries))
	errs := make([]error, len(queries))

	var wg sync.WaitGroup
	for i, query := range queries {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			break
		}
		wg.Add(1)
		err := s.batchPool.Submit(func() {
			defer wg.Done()
			results[i], errs[i] = s.Search(ctx, query, maxHits)
		})
		if err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}

// Release releases the batch worker pool.
// The searcher should not be used after calling Release.
func (s *Searcher) Release() {
	if s.batchPool != nil {
		s.batchPool.Release()
	}
}
