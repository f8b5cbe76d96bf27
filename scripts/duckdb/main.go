// Command duckdb backfills a results database from run folders written by bench.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xichen1997/stronger-llama/internal/duckdb"
	"github.com/xichen1997/stronger-llama/internal/runner"
)

func main() {
	input := flag.String("input", "", "output directory holding run folders")
	out := flag.String("out", "", "duckdb file (default: <input>/results.duckdb)")
	flag.Parse()
	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: duckdb --input <output dir> [--out <duckdb file>]")
		os.Exit(2)
	}
	dbPath := *out
	if dbPath == "" {
		dbPath = filepath.Join(*input, runner.DuckDBFileName)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	db, err := duckdb.Open(ctx, dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open duckdb: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	added, err := duckdb.BackfillRuns(ctx, db, *input)
	for _, runID := range added {
		fmt.Printf("ingested %s\n", runID)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "backfill: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d runs added to %s\n", len(added), dbPath)
}
