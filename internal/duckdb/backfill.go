package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/xichen1997/stronger-llama/internal/runner"
)

// BackfillRuns ingests every run folder under outputDir that is not stored yet,
// oldest first. It returns the run IDs it added.
func BackfillRuns(ctx context.Context, db *sql.DB, outputDir string) ([]string, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, fmt.Errorf("read output dir: %w", err)
	}
	stored, err := RunIDs(ctx, db)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var added []string
	for _, name := range names {
		runPath := filepath.Join(outputDir, name, runner.RunFileName)
		if _, err := os.Stat(runPath); err != nil {
			continue
		}
		results, err := runner.LoadRun(runPath)
		if err != nil {
			return added, err
		}
		if results.RunID == "" {
			results.RunID = name
		}
		if slices.Contains(stored, results.RunID) {
			continue
		}
		if err := IngestRun(ctx, db, results); err != nil {
			return added, fmt.Errorf("ingest %s: %w", results.RunID, err)
		}
		stored = append(stored, results.RunID)
		added = append(added, results.RunID)
	}
	return added, nil
}
