package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/Fasteroid/partial-pattern-tree/core"
	"github.com/Fasteroid/partial-pattern-tree/storage"
	"github.com/Fasteroid/partial-pattern-tree/trie"
	"github.com/panjf2000/ants/v2"
)

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = 10 * time.Millisecond
)

// Pipeline stores entries and builds pattern trees from stored entries.
type Pipeline struct {
	repository     storage.EntryRepository
	compilePool    *ants.Pool
	batchSize      int
	progress       io.Writer
	reportInterval int
	treeOpts       []trie.Option
	maxAttempts    int
	retryDelay     time.Duration
	logger         *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size used to compile descriptions.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if p.compilePool != nil {
			p.compilePool.Release()
		}
		p.compilePool = pool
		return nil
	}
}

// WithBatchSize sets how many stored entries Build reads per batch.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = DefaultBatchSize
		}
		p.batchSize = size
		return nil
	}
}

// WithProgress makes Build report progress to w every interval entries.
func WithProgress(w io.Writer, interval int) Option {
	return func(p *Pipeline) error {
		p.progress = w
		p.reportInterval = interval
		return nil
	}
}

// WithTreeOptions passes options to the trie.Builder used by Build.
func WithTreeOptions(opts ...trie.Option) Option {
	return func(p *Pipeline) error {
		p.treeOpts = append(p.treeOpts, opts...)
		return nil
	}
}

// WithRetry sets how often Ingest retries a store that hit a write conflict.
// Default is 3 attempts, 10ms apart and doubling.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts < 1 {
			return ErrInvalidMaxAttempts
		}
		p.maxAttempts = maxAttempts
		p.retryDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(repository storage.EntryRepository, opts ...Option) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}

	poolSize := max(runtime.NumCPU()/2, 1)
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository:  repository,
		compilePool: pool,
		batchSize:   DefaultBatchSize,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
		logger:      slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest validates and stores entries. Every entry is validated before
// anything is written; if any entry is invalid nothing is stored.
// The stored entries carry their assigned IDs and sequence numbers.
func (p *Pipeline) Ingest(ctx context.Context, entries ...*core.Entry) ([]*core.Entry, error) {
	for i, entry := range entries {
		if err := core.ValidateEntry(entry); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	if len(entries) == 0 {
		return nil, nil
	}

	var added []*core.Entry
	err := retryConflicts(ctx, p.logger, func() error {
		var err error
		added, err = p.repository.AddEntries(ctx, entries...)
		return err
	}, p.maxAttempts, p.retryDelay)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("ingested entries", "count", len(added))
	return added, nil
}

// Build reads every stored entry in insertion order and returns a sealed
// tree mapping descriptions to entry IDs.
func (p *Pipeline) Build(ctx context.Context) (*trie.Tree[core.ID], error) {
	var progress *BuildProgress
	if p.progress != nil {
		total, err := p.repository.CountEntries(ctx)
		if err != nil {
			return nil, err
		}
		progress = NewBuildProgress(p.progress, total, p.reportInterval)
	}

	opts := append([]trie.Option{trie.WithLogger(p.logger)}, p.treeOpts...)
	builder := trie.NewBuilder[core.ID](opts...)

	iterator := NewEntryIterator(p.repository, p.batchSize)
	err := iterator.ForEach(ctx, func(batch []*core.Entry) error {
		sequences, err := p.compileBatch(batch)
		if err != nil {
			return err
		}
		for i, entry := range batch {
			if err := builder.Insert(sequences[i], entry.Id); err != nil {
				return fmt.Errorf("%w: entry %q: %w", ErrBuildFailed, entry.Name, err)
			}
		}
		if progress != nil {
			progress.Update(builder.Len(), builder.Suffixes())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	tree, err := builder.Seal()
	if err != nil {
		return nil, err
	}
	stats := tree.Stats()
	if progress != nil {
		progress.Sealed(stats)
	}
	p.logger.Info("built pattern tree",
		"entries", builder.Len(),
		"suffixes", builder.Suffixes(),
		"nodes", stats.Nodes,
		"literalEdges", stats.LiteralEdges,
		"patternEdges", stats.PatternEdges)
	return tree, nil
}

// Release releases resources including worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.compilePool != nil {
		p.compilePool.Release()
	}
}
