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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	pptree "github.com/Fasteroid/partial-pattern-tree"
	"github.com/Fasteroid/partial-pattern-tree/core"
	"github.com/Fasteroid/partial-pattern-tree/ingestion"
	"github.com/Fasteroid/partial-pattern-tree/trie"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "pptree",
		Usage: "Partial-match search over entries described by literals and anchored patterns",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add an entry, e.g. add parakeet 'parake{^e+}t'",
				ArgsUsage: "NAME DESCRIPTION",
				Action:    addCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringSliceFlag{
						Name:  "meta",
						Usage: "Attach metadata as key=value (repeatable)",
					},
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove entries by name",
				ArgsUsage: "NAME...",
				Action:    removeCommand,
				Flags:     []cli.Flag{dbFlag()},
			},
			{
				Name:   "list",
				Usage:  "List entries in insertion order",
				Action: listCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
			{
				Name:      "search",
				Usage:     "Search entries, lowest skip cost first",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:    "max",
						Aliases: []string{"n"},
						Usage:   "Maximum number of hits (0 for all)",
						Value:   10,
					},
					noCompressFlag(),
				},
			},
			{
				Name:      "has",
				Usage:     "Report whether a query matches any entry",
				ArgsUsage: "QUERY",
				Action:    hasCommand,
				Flags:     []cli.Flag{dbFlag(), noCompressFlag()},
			},
			{
				Name:   "dump",
				Usage:  "Print the tree structure as YAML (format is not stable)",
				Action: dumpCommand,
				Flags:  []cli.Flag{dbFlag(), noCompressFlag()},
			},
			{
				Name:   "stats",
				Usage:  "Print entry and tree statistics",
				Action: statsCommand,
				Flags: []cli.Flag{
					dbFlag(),
					noCompressFlag(),
					&cli.BoolFlag{
						Name:  "progress",
						Usage: "Report indexing progress on stderr",
					},
				},
			},
		},
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
}

func noCompressFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "no-compress",
		Usage: "Skip path compression when building the tree",
	}
}

func openDatabase(c *cli.Context) (*pptree.Database, error) {
	dbPath := c.String("db")
	if dbPath == "" {
		return nil, fmt.Errorf("database path is required")
	}
	db, err := pptree.NewDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func buildTree(ctx context.Context, c *cli.Context, db *pptree.Database) (*trie.Tree[core.ID], error) {
	opts := []ingestion.Option{
		ingestion.WithTreeOptions(trie.WithCompression(!c.Bool("no-compress"))),
	}
	if c.Bool("progress") {
		opts = append(opts, ingestion.WithProgress(c.App.ErrWriter, 100))
	}
	tree, err := db.BuildTree(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build tree: %w", err)
	}
	return tree, nil
}

func addCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() != 2 {
		return fmt.Errorf("add requires NAME and DESCRIPTION")
	}
	entry, err := core.NewEntry(c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}
	for _, kv := range c.StringSlice("meta") {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid metadata %q: expected key=value", kv)
		}
		if entry.Metadata == nil {
			entry.Metadata = make(map[string]string)
		}
		entry.Metadata[key] = value
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	added, err := pipeline.Ingest(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to add entry: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "added %s (%d)\n", added[0].Name, added[0].Seq)
	return nil
}

func removeCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() == 0 {
		return fmt.Errorf("remove requires at least one NAME")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := db.EntryRepository()
	return repo.WithTransaction(ctx, func(ctx context.Context) error {
		for _, name := range c.Args().Slice() {
			entry, err := repo.FindEntryByName(ctx, name)
			if err != nil {
				return err
			}
			if err := repo.DeleteEntries(ctx, entry.Id); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "removed %s\n", name)
		}
		return nil
	})
}

func listCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := db.EntryRepository().AllEntries(ctx)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		fmt.Fprintf(c.App.Writer, "%s\t%s\n", entry.Name, entry.DescriptionString())
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() != 1 {
		return fmt.Errorf("search requires exactly one QUERY")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	tree, err := buildTree(ctx, c, db)
	if err != nil {
		return err
	}
	searcher, err := db.NewSearcher(tree)
	if err != nil {
		return err
	}
	defer searcher.Release()

	results, err := searcher.Search(ctx, c.Args().First(), c.Int("max"))
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Fprintf(c.App.Writer, "%d: %s [cost %d]\n", i, hit.Entry.Name, hit.Cost)
	}
	return nil
}

func hasCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() != 1 {
		return fmt.Errorf("has requires exactly one QUERY")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	tree, err := buildTree(ctx, c, db)
	if err != nil {
		return err
	}

	query := c.Args().First()
	fmt.Fprintf(c.App.Writer, "has: %t\ncontains: %t\n", tree.Has(query), tree.Contains(query))
	return nil
}

func dumpCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	tree, err := buildTree(ctx, c, db)
	if err != nil {
		return err
	}

	out, err := tree.Summarize().YAML()
	if err != nil {
		return err
	}
	_, err = c.App.Writer.Write(out)
	return err
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	count, err := db.EntryRepository().CountEntries(ctx)
	if err != nil {
		return err
	}

	tree, err := buildTree(ctx, c, db)
	if err != nil {
		return err
	}

	stats := tree.Stats()
	w := c.App.Writer
	fmt.Fprintf(w, "entries:       %d\n", count)
	fmt.Fprintf(w, "nodes:         %d\n", stats.Nodes)
	fmt.Fprintf(w, "literal edges: %d\n", stats.LiteralEdges)
	fmt.Fprintf(w, "pattern edges: %d\n", stats.PatternEdges)
	fmt.Fprintf(w, "terminals:     %d\n", stats.Terminals)
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
