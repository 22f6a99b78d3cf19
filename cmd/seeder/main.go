package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"strings"

	pptree "github.com/Fasteroid/partial-pattern-tree"
	"github.com/Fasteroid/partial-pattern-tree/core"
	"github.com/Fasteroid/partial-pattern-tree/ingestion"
)

// Sample entries as name<TAB>description.
var samples = []string{
	"parakeet\tparake{^e+}t",
	"parrot\tparrot",
	"doge\tshiba inu",
	"bingus\t{^[bdgz]}ingus",
	"cockatoo\tcockat{^o+}",
	"budgie\tbudg{^(ie|y)}",
	"lovebird\tlovebird",
	"macaw\tmac{^aw+}",
	"kea\tkea",
	"kakapo\tkak{^a+}po",
	"cat\tca{^t+}",
	"kitten\tkit{^t+}en",
	"meow\tm{^e+}{^o+}w",
	"purr\tpu{^r+}",
	"dog\tdo{^g+}",
	"puppy\tpu{^p+}y",
	"woof\tw{^o+}f",
	"bark\tbark",
	"frog\tfrog",
	"ribbit\tr{^i+}bb{^i+}t",
	"phone\t{^\\d{3}}-{^\\d{4}}",
	"year\t{^(19|20)\\d\\d}",
	"version\tv{^\\d+}.{^\\d+}",
	"hex\t0x{^[0-9a-f]+}",
	"hello\th{^e+}llo",
	"goodbye\tgoodbye",
	"yes\ty{^e+}s",
	"no\tn{^o+}",
	"hmm\th{^m+}",
	"wow\tw{^o+}w",
	"zebra\tzebra",
	"lion\tlion",
	"tiger\ttiger",
	"bear\tbear",
	"oh my\toh my",
}

var seedFileName = flag.String("src", "", "file of seed data, one name<TAB>description per line")
var dbPath = flag.String("db", "./pptree_db", "database directory")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

// linesFromFile returns an iterator over lines in a file.
// A read error is yielded as the final element.
func linesFromFile(filename string) (iter.Seq2[string, error], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string, error) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text(), nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield("", fmt.Errorf("reading %s: %w", filename, err))
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, line := range lines {
			if !yield(line, nil) {
				return
			}
		}
	}
}

// parseLine splits a name<TAB>description line into an entry.
func parseLine(line string) (*core.Entry, error) {
	name, description, ok := strings.Cut(line, "\t")
	if !ok {
		return nil, fmt.Errorf("missing tab in %q", line)
	}
	return core.NewEntry(name, description)
}

// ingestBatched reads from a source iterator and ingests entries in batches.
// Blank lines are skipped.
func ingestBatched(ctx context.Context, pipeline *ingestion.Pipeline, source iter.Seq2[string, error], batchSize int) error {
	batch := make([]*core.Entry, 0, batchSize)

	for line, err := range source {
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := parseLine(line)
		if err != nil {
			return err
		}
		batch = append(batch, entry)
		if len(batch) == batchSize {
			if _, err := pipeline.Ingest(ctx, batch...); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	// Process any remaining entries
	if len(batch) > 0 {
		if _, err := pipeline.Ingest(ctx, batch...); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	flag.Parse()

	db, err := pptree.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	ingester, err := db.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer ingester.Release()

	ctx := context.Background()

	// Determine source of seed data
	var source iter.Seq2[string, error]
	if *seedFileName != "" {
		source, err = linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = linesFromSlice(samples)
	}

	// Ingest in batches of 5
	if err := ingestBatched(ctx, ingester, source, 5); err != nil {
		panic(err)
	}
}
