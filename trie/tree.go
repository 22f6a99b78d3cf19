package trie

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/Fasteroid/partial-pattern-tree/core"
)

// Tree is a sealed, query-only pattern tree.
type Tree[V comparable] struct {
	nodes  []node
	logger *slog.Logger
}

// Match is a search hit with its minimum skip cost.
type Match[V comparable] struct {
	Value V
	Cost  int
}

// Has is a fast, best-effort existence check.
//
// At each node only the first edge that consumes part of the query is
// followed; siblings are never tried if that branch fails. Has can therefore
// report false for a query Search would find. Use Contains for an exact answer.
func (t *Tree[V]) Has(query string) bool {
	return t.has(root, []rune(query))
}

func (t *Tree[V]) has(n int, query []rune) bool {
	it := t.nodes[n].branches.Iterator()
	for it.Next() {
		e := it.Value().(edge)
		rest, ok := core.Consume(e.token, query)
		if !ok {
			continue
		}
		if len(rest) == 0 {
			return true
		}
		return t.has(e.child, rest)
	}
	return false
}

// Contains reports whether Search would return at least one value.
func (t *Tree[V]) Contains(query string) bool {
	return len(t.SearchScored(query)) > 0
}

// Search returns the distinct values matching query, best match first.
func (t *Tree[V]) Search(query string) []V {
	matches := t.SearchScored(query)
	values := make([]V, len(matches))
	for i, m := range matches {
		values[i] = m.Value
	}
	return values
}

// SearchScored returns the distinct values matching query with their
// minimum skip cost, ordered by ascending cost. Ties keep the order in which
// values were first reached.
func (t *Tree[V]) SearchScored(query string) []Match[V] {
	acc := newAccumulator[V]()
	t.search(root, []rune(query), acc)
	return acc.ranked()
}

func (t *Tree[V]) search(n int, query []rune, acc *accumulator[V]) {
	it := t.nodes[n].branches.Iterator()
	for it.Next() {
		e := it.Value().(edge)
		rest, ok := core.Consume(e.token, query)
		if !ok {
			continue
		}
		if len(rest) == 0 {
			t.collect(e.child, acc)
			continue
		}
		t.search(e.child, rest, acc)
	}
}

// collect offers every value recorded at n or below.
func (t *Tree[V]) collect(n int, acc *accumulator[V]) {
	stack := []int{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		vit := t.nodes[cur].values.Iterator()
		for vit.Next() {
			acc.offer(vit.Key().(V), vit.Value().(int))
		}

		// push in reverse so children are visited in container order
		children := t.nodes[cur].branches.Values()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i].(edge).child)
		}
	}
}

// Stats describes the reachable part of a tree.
type Stats struct {
	Nodes        int
	LiteralEdges int
	PatternEdges int
	Terminals    int // (node, value) cost records
}

// Stats walks the tree and counts its reachable structure.
func (t *Tree[V]) Stats() Stats {
	var s Stats
	stack := []int{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s.Nodes++
		s.Terminals += t.nodes[n].values.Size()

		it := t.nodes[n].branches.Iterator()
		for it.Next() {
			e := it.Value().(edge)
			if e.token.Kind() == core.TokenKindPattern {
				s.PatternEdges++
			} else {
				s.LiteralEdges++
			}
			stack = append(stack, e.child)
		}
	}
	return s
}

// accumulator keeps the minimum cost offered per value, in first-offer order.
type accumulator[V comparable] struct {
	best  map[V]int
	order []V
}

func newAccumulator[V comparable]() *accumulator[V] {
	return &accumulator[V]{best: make(map[V]int)}
}

func (a *accumulator[V]) offer(value V, cost int) {
	existing, ok := a.best[value]
	if !ok {
		a.order = append(a.order, value)
		a.best[value] = cost
		return
	}
	if cost < existing {
		a.best[value] = cost
	}
}

func (a *accumulator[V]) ranked() []Match[V] {
	matches := make([]Match[V], len(a.order))
	for i, v := range a.order {
		matches[i] = Match[V]{Value: v, Cost: a.best[v]}
	}
	slices.SortStableFunc(matches, func(x, y Match[V]) int {
		return cmp.Compare(x.Cost, y.Cost)
	})
	return matches
}
