package trie

import (
	"github.com/Fasteroid/partial-pattern-tree/core"
)

// Pair associates a description with the value searches return for it.
type Pair[V comparable] struct {
	Sequence core.Sequence
	Value    V
}

// Builder accumulates descriptions until Seal turns it into a Tree.
type Builder[V comparable] struct {
	arena    *arena
	cfg      config
	sealed   bool
	inserted int
	suffixes int
}

// NewBuilder creates an empty builder.
func NewBuilder[V comparable](opts ...Option) *Builder[V] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Builder[V]{
		arena: newArena(),
		cfg:   cfg,
	}
}

// New creates a builder and inserts pairs into it.
func New[V comparable](pairs []Pair[V], opts ...Option) (*Builder[V], error) {
	b := NewBuilder[V](opts...)
	if err := b.InsertAll(pairs...); err != nil {
		return nil, err
	}
	return b, nil
}

// Insert indexes every suffix of seq under value.
//
// The sequence is expanded and validated before the trie is touched, so a
// rejected sequence leaves the builder unchanged.
func (b *Builder[V]) Insert(seq core.Sequence, value V) error {
	if b.sealed {
		return ErrSealed
	}

	atoms, err := core.ExpandSequence(seq)
	if err != nil {
		return err
	}
	keys := make([]string, len(atoms))
	for i, tok := range atoms {
		if keys[i], err = edgeKey(tok); err != nil {
			return err
		}
	}

	for i := range atoms {
		cur := root
		for j := i; j < len(atoms); j++ {
			cur = b.arena.child(cur, keys[j], atoms[j])
		}
		b.arena.record(cur, value, i)
	}
	b.inserted++
	b.suffixes += len(atoms)
	return nil
}

// InsertAll inserts pairs in order, stopping at the first error.
func (b *Builder[V]) InsertAll(pairs ...Pair[V]) error {
	for _, p := range pairs {
		if err := b.Insert(p.Sequence, p.Value); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of sequences inserted so far.
func (b *Builder[V]) Len() int {
	return b.inserted
}

// Suffixes returns the number of suffixes indexed so far.
func (b *Builder[V]) Suffixes() int {
	return b.suffixes
}

// Sealed reports whether Seal has been called.
func (b *Builder[V]) Sealed() bool {
	return b.sealed
}

// Seal runs the compression pass (unless disabled) and returns the
// query-only Tree. The builder cannot be used afterwards.
func (b *Builder[V]) Seal() (*Tree[V], error) {
	if b.sealed {
		return nil, ErrSealed
	}
	b.sealed = true

	merged := 0
	if b.cfg.compress {
		merged = b.arena.compress()
	}
	b.cfg.logger.Debug("sealed pattern tree",
		"sequences", b.inserted,
		"nodes", len(b.arena.nodes),
		"mergedEdges", merged)

	return &Tree[V]{
		nodes:  b.arena.nodes,
		logger: b.cfg.logger,
	}, nil
}
