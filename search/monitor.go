package search

import (
	"github.com/Fasteroid/partial-pattern-tree/core"
	"github.com/Fasteroid/partial-pattern-tree/trie"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterTreeSearch(matches []trie.Match[core.ID])
	AfterEntryRetrieval(entries []*core.Entry)
	MissingEntry(id core.ID)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                          {}
func (n *noopMonitor) AfterTreeSearch(_ []trie.Match[core.ID]) {}
func (n *noopMonitor) AfterEntryRetrieval(_ []*core.Entry)     {}
func (n *noopMonitor) MissingEntry(_ core.ID)                  {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)           {}
