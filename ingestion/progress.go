package ingestion

import (
	"fmt"
	"io"
	"time"

	"github.com/Fasteroid/partial-pattern-tree/trie"
)

// BuildProgress writes a status line while Build fills the pattern tree and
// a summary of the tree's shape once it is sealed. It is not safe for
// concurrent use; Build drives it from a single goroutine.
type BuildProgress struct {
	w        io.Writer
	total    int // entries counted before the build began
	interval int
	entries  int
	suffixes int
	reported int
	start    time.Time
}

// NewBuildProgress starts the clock on a build of total entries. A line is
// written every interval entries.
func NewBuildProgress(w io.Writer, total, interval int) *BuildProgress {
	return &BuildProgress{
		w:        w,
		total:    total,
		interval: max(interval, 1),
		start:    time.Now(),
	}
}

// Update records the builder's running totals.
func (p *BuildProgress) Update(entries, suffixes int) {
	p.entries, p.suffixes = entries, suffixes
	if p.entries-p.reported >= p.interval {
		p.line()
		p.reported = p.entries
	}
}

// Sealed writes the final status line followed by the sealed tree's shape.
func (p *BuildProgress) Sealed(stats trie.Stats) {
	p.line()
	fmt.Fprintf(p.w, "\nSealed: %d nodes, %d literal edges, %d pattern edges in %s\n",
		stats.Nodes, stats.LiteralEdges, stats.PatternEdges, p.Elapsed().Round(time.Millisecond))
}

// Elapsed returns the time since the build started.
func (p *BuildProgress) Elapsed() time.Duration {
	return time.Since(p.start)
}

func (p *BuildProgress) line() {
	// Entries added after the count was taken still get indexed.
	total := max(p.total, p.entries)
	percentage := 100.0
	if total > 0 {
		percentage = float64(p.entries) / float64(total) * 100.0
	}
	fmt.Fprintf(p.w, "\rIndexed: %d/%d entries (%.1f%%), %d suffixes",
		p.entries, total, percentage, p.suffixes)
}
