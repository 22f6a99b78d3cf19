package trie

import (
	"fmt"

	"github.com/Fasteroid/partial-pattern-tree/core"
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

const root = 0

// node is one trie node. Both maps keep insertion order.
type node struct {
	branches *linkedhashmap.Map // canonical key -> edge
	values   *linkedhashmap.Map // value -> minimum skip cost
}

type edge struct {
	token core.Token
	child int
}

// arena owns every node; nodes refer to children by index.
// Nodes are never freed individually, compression only makes some unreachable.
type arena struct {
	nodes []node
}

func newArena() *arena {
	a := &arena{}
	a.alloc()
	return a
}

func (a *arena) alloc() int {
	a.nodes = append(a.nodes, node{
		branches: linkedhashmap.New(),
		values:   linkedhashmap.New(),
	})
	return len(a.nodes) - 1
}

// child returns the node reached from parent over key, creating it on first reference.
func (a *arena) child(parent int, key string, tok core.Token) int {
	if e, ok := a.nodes[parent].branches.Get(key); ok {
		return e.(edge).child
	}
	idx := a.alloc()
	a.nodes[parent].branches.Put(key, edge{token: tok, child: idx})
	return idx
}

// record stores cost for value at n unless a lower cost is already there.
func (a *arena) record(n int, value any, cost int) {
	values := a.nodes[n].values
	if existing, ok := values.Get(value); ok && existing.(int) <= cost {
		return
	}
	values.Put(value, cost)
}

// edgeKey computes the canonical key for an edge label. Keys are tagged by
// kind so a literal can never share an edge with a pattern of the same text.
func edgeKey(tok core.Token) (string, error) {
	switch t := tok.(type) {
	case core.Literal:
		return literalKey(t), nil
	case *core.Pattern:
		if t == nil {
			break
		}
		return "P" + t.Source(), nil
	}
	return "", fmt.Errorf("%w: %T", core.ErrInvalidToken, tok)
}

func literalKey(l core.Literal) string {
	return "L" + string(l)
}
