package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/xichen1997/stronger-llama/internal/config"
	"github.com/xichen1997/stronger-llama/internal/duckdb"
	"github.com/xichen1997/stronger-llama/internal/report"
	"github.com/xichen1997/stronger-llama/internal/runner"
)

// runReport builds the handler for the report command.
func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, stderr)
		specPath := flags.String("spec", "", "Path to config file (default: search for .stronger-llama/config.yml)")
		inputDir := flags.String("input", "", "Output directory holding run folders")
		runRef := flags.String("run", "", "Run ID or latest")
		dbPath := flags.String("db", "", "Read from a DuckDB results file instead of JSON")
		plotPath := flags.String("plot", "", "Also write a PNG chart to this path")
		if code, ok := parseFlags(cmd, flags, args, true, stdout, stderr); !ok {
			return code
		}
		if flags.NArg() > 1 || (flags.NArg() == 1 && (*runRef != "" || *dbPath != "")) {
			fmt.Fprintln(stderr, "pass a results path, --run, or --db")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		ctx := context.Background()
		var records []runner.Record
		var err error
		var source string
		switch {
		case *dbPath != "":
			source, records, err = recordsFromDuckDB(ctx, *dbPath, *runRef)
		case flags.NArg() == 1:
			source = flags.Arg(0)
			records, err = report.LoadRecords(source)
		default:
			source, err = resolveRunDir(*specPath, *inputDir, *runRef)
			if err == nil {
				records, err = report.LoadRecords(source)
			}
		}
		if err != nil {
			fmt.Fprintf(stderr, "Report failed: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Source: %s\n\n", source)
		if err := report.WriteSummaryTable(stdout, report.Summarize(records)); err != nil {
			fmt.Fprintf(stderr, "Report failed: %v\n", err)
			return ExitError
		}
		if strings.TrimSpace(*plotPath) != "" {
			if err := report.PlotResults(records, *plotPath); err != nil {
				fmt.Fprintf(stderr, "Plot failed: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "\nPlot: %s\n", *plotPath)
		}
		return ExitOK
	}
}

// resolveRunDir finds a run folder under --input or the configured output dir.
func resolveRunDir(specPath, inputDir, ref string) (string, error) {
	outputDir := strings.TrimSpace(inputDir)
	if outputDir == "" {
		loaded, err := loadConfig(specPath)
		if err != nil {
			return "", err
		}
		outputDir = config.ResolvePath(loaded.Root, loaded.Config.Benchmark.OutputDir)
	}
	return report.ResolveRunDir(outputDir, ref)
}

// recordsFromDuckDB loads a run from a results database.
func recordsFromDuckDB(ctx context.Context, path, ref string) (string, []runner.Record, error) {
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		return "", nil, err
	}
	defer db.Close()
	runID, err := duckDBRunID(ctx, db, ref)
	if err != nil {
		return "", nil, err
	}
	records, err := duckdb.LoadRecords(ctx, db, runID)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("%s (run %s)", path, runID), records, nil
}

func duckDBRunID(ctx context.Context, db *sql.DB, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || ref == report.LatestRef {
		return duckdb.LatestRunID(ctx, db)
	}
	return ref, nil
}
