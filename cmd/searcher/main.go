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
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	pptree "github.com/Fasteroid/partial-pattern-tree"
	"github.com/Fasteroid/partial-pattern-tree/core"
)

var dbPath = flag.String("db", "./pptree_db", "database directory")
var maxHits = flag.Int("n", 5, "maximum number of hits")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	db, err := pptree.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	ctx := context.Background()
	tree, err := db.BuildTree(ctx)
	if err != nil {
		panic(err)
	}
	searcher, err := db.NewSearcher(tree)
	if err != nil {
		panic(err)
	}
	defer searcher.Release()

	query := "keeeet"
	if flag.NArg() > 0 {
		query = strings.Join(flag.Args(), " ")
	}

	var results []*core.SearchResult
	results, err = searcher.Search(ctx, query, *maxHits)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: '%s' %s (%d)[cost %d]\n", i, hit.Entry.Name, hit.Entry.DescriptionString(), hit.Entry.Id, hit.Cost)
	}
}
