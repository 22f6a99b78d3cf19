package trie

import (
	"github.com/Fasteroid/partial-pattern-tree/core"
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// compress splices chains of literal edges running through value-free,
// single-branch nodes into one edge labeled with the concatenated text.
// Pattern edges and nodes holding values are never merged through.
// Returns the number of edges removed.
func (a *arena) compress() int {
	merged := 0
	stack := []int{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		branches := linkedhashmap.New()
		it := a.nodes[n].branches.Iterator()
		for it.Next() {
			key := it.Key().(string)
			e := it.Value().(edge)
			if lit, ok := e.token.(core.Literal); ok {
				for {
					next, ok := a.soleLiteralEdge(e.child)
					if !ok {
						break
					}
					lit += next.token.(core.Literal)
					e = edge{token: lit, child: next.child}
					merged++
				}
				key = literalKey(lit)
			}
			branches.Put(key, e)
			stack = append(stack, e.child)
		}
		a.nodes[n].branches = branches
	}
	return merged
}

// soleLiteralEdge returns the only edge leaving n when n holds no values and
// that edge is literal-labeled.
func (a *arena) soleLiteralEdge(n int) (edge, bool) {
	nd := a.nodes[n]
	if nd.branches.Size() != 1 || nd.values.Size() != 0 {
		return edge{}, false
	}
	e := nd.branches.Values()[0].(edge)
	if _, ok := e.token.(core.Literal); !ok {
		return edge{}, false
	}
	return e, true
}
