package trie

import (
	"fmt"

	"github.com/Fasteroid/partial-pattern-tree/core"
	"gopkg.in/yaml.v3"
)

// Snapshot is a nested debug view of a tree. Its shape is not stable and
// should only be used for diagnostics.
type Snapshot struct {
	Values   []ValueSnapshot  `yaml:"values,omitempty"`
	Branches []BranchSnapshot `yaml:"branches,omitempty"`
}

// ValueSnapshot is a value recorded at a node.
type ValueSnapshot struct {
	Value string `yaml:"value"`
	Cost  int    `yaml:"cost"`
}

// BranchSnapshot is an outgoing edge and the node it leads to.
type BranchSnapshot struct {
	Label string   `yaml:"label"`
	Kind  string   `yaml:"kind"`
	Node  Snapshot `yaml:"node"`
}

// Summarize returns a debug snapshot of the tree.
func (t *Tree[V]) Summarize() Snapshot {
	return t.summarize(root)
}

func (t *Tree[V]) summarize(n int) Snapshot {
	var s Snapshot
	vit := t.nodes[n].values.Iterator()
	for vit.Next() {
		s.Values = append(s.Values, ValueSnapshot{
			Value: fmt.Sprint(vit.Key()),
			Cost:  vit.Value().(int),
		})
	}
	it := t.nodes[n].branches.Iterator()
	for it.Next() {
		e := it.Value().(edge)
		label := e.token.String()
		if p, ok := e.token.(*core.Pattern); ok {
			label = p.Source()
		}
		s.Branches = append(s.Branches, BranchSnapshot{
			Label: label,
			Kind:  e.token.Kind().String(),
			Node:  t.summarize(e.child),
		})
	}
	return s
}

// YAML renders the snapshot as YAML.
func (s Snapshot) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}
