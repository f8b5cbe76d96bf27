package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xichen1997/stronger-llama/internal/duckdb"
	"github.com/xichen1997/stronger-llama/internal/report"
)

// runCompare builds the handler for the compare command.
func runCompare(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, stderr)
		specPath := flags.String("spec", "", "Path to config file (default: search for .stronger-llama/config.yml)")
		baseRef := flags.String("base", "", "Base run ID")
		headRef := flags.String("head", report.LatestRef, "Head run ID or latest")
		inputDir := flags.String("input", "", "Output directory holding run folders")
		dbPath := flags.String("db", "", "Compare runs stored in a DuckDB results file")
		if code, ok := parseFlags(cmd, flags, args, false, stdout, stderr); !ok {
			return code
		}
		if strings.TrimSpace(*baseRef) == "" {
			fmt.Fprintln(stderr, "--base is required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		load := func(ref string) ([]report.StrategySummary, string, error) {
			if *dbPath != "" {
				return summariesFromDuckDB(*dbPath, ref)
			}
			runDir, err := resolveRunDir(*specPath, *inputDir, ref)
			if err != nil {
				return nil, "", err
			}
			records, err := report.LoadRecords(runDir)
			if err != nil {
				return nil, "", err
			}
			return report.Summarize(records), runDir, nil
		}

		base, baseSource, err := load(*baseRef)
		if err != nil {
			fmt.Fprintf(stderr, "Compare failed: base: %v\n", err)
			return ExitError
		}
		head, headSource, err := load(*headRef)
		if err != nil {
			fmt.Fprintf(stderr, "Compare failed: head: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Base: %s\nHead: %s\n\n", baseSource, headSource)
		if err := report.WriteCompareTable(stdout, report.Compare(base, head)); err != nil {
			fmt.Fprintf(stderr, "Compare failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

func summariesFromDuckDB(path, ref string) ([]report.StrategySummary, string, error) {
	ctx := context.Background()
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		return nil, "", err
	}
	defer db.Close()
	runID, err := duckDBRunID(ctx, db, ref)
	if err != nil {
		return nil, "", err
	}
	summaries, err := duckdb.StrategySummaries(ctx, db, runID)
	if err != nil {
		return nil, "", err
	}
	return summaries, runID, nil
}
