package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/xichen1997/stronger-llama/internal/config"
	"github.com/xichen1997/stronger-llama/internal/duckdb"
	"github.com/xichen1997/stronger-llama/internal/enhance"
	"github.com/xichen1997/stronger-llama/internal/question"
	"github.com/xichen1997/stronger-llama/internal/report"
	"github.com/xichen1997/stronger-llama/internal/runner"
	"github.com/xichen1997/stronger-llama/internal/ui/live"
)

// startLiveUI launches the live UI. Tests replace it.
var startLiveUI = func(stdout io.Writer, opts live.Options) *live.Controller {
	return live.Start(stdout, opts)
}

// runBench builds the handler for the bench command.
func runBench(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, stderr)
		specPath := flags.String("spec", "", "Path to config file (default: search for .stronger-llama/config.yml)")
		questionsPath := flags.String("questions", "", "Question set file (.yml, .json or .txt)")
		outputDir := flags.String("output-dir", "", "Override output directory")
		continueOnError := flags.Bool("continue-on-error", false, "Record failed cases and keep going")
		noPlot := flags.Bool("no-plot", false, "Skip writing the PNG chart")
		withDuckDB := flags.Bool("duckdb", false, "Also ingest results into the shared DuckDB file")
		uiMode := flags.String("ui", "auto", "UI mode: auto|live|plain")
		verbose := flags.Bool("verbose", false, "Verbose logging (disables live UI)")
		logPath := flags.String("log", "", "Write logs to a file")
		noColor := flags.Bool("no-color", false, "Disable colors in the live UI")
		if code, ok := parseFlags(cmd, flags, args, false, stdout, stderr); !ok {
			return code
		}

		loaded, err := loadConfig(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		cfg := loaded.Config
		bench := cfg.Benchmark
		if *continueOnError {
			bench.ContinueOnError = true
		}
		if *noPlot {
			bench.SkipPlot = true
		}
		if *withDuckDB {
			bench.DuckDB = true
		}

		questions, err := benchQuestions(loaded, *questionsPath)
		if err != nil {
			fmt.Fprintf(stderr, "Questions error:\n%v\n", err)
			return ExitError
		}
		combinations, err := runner.CombinationsFromConfig(bench.Combinations)
		if err != nil {
			fmt.Fprintf(stderr, "Config error: %v\n", err)
			return ExitError
		}

		resolvedOutputDir := config.ResolvePath(loaded.Root, bench.OutputDir)
		if strings.TrimSpace(*outputDir) != "" {
			resolvedOutputDir = *outputDir
		}

		decision, err := resolveUIMode(uiOptions{Mode: *uiMode, Verbose: *verbose, NoColor: *noColor}, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		logger, closeLogger, err := newLogger(benchLogSink(decision, stderr), *verbose, *logPath)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitError
		}
		defer closeLogger()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		gen, err := newGenerator(ctx, cfg.Backend)
		if err != nil {
			fmt.Fprintf(stderr, "Backend error: %v\n", err)
			return ExitError
		}
		pipeline, err := enhance.New(gen, cfg.Backend.Model, enhance.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitError
		}

		var observer runner.RunObserver
		var controller *live.Controller
		if decision.useLive {
			controller = startLiveUI(stdout, live.Options{NoColor: decision.noColor})
			observer = controller
		} else {
			observer = newProgressObserver(stdout)
		}

		results, runErr := runner.Run(ctx, questions, combinations, runner.RunParams{
			Pipeline:        pipeline,
			Provider:        cfg.Backend.Provider,
			ContinueOnError: bench.ContinueOnError,
			Observer:        observer,
			Logger:          logger,
		})
		if controller != nil {
			controller.Close()
			controller.Wait()
		}

		exitCode := ExitOK
		if runErr != nil {
			printGenerationFailure(stderr, runErr, cfg.Backend, backendHost(gen, cfg.Backend))
			exitCode = ExitError
		}
		if len(results.Records) == 0 {
			return exitCode
		}

		paths, err := runner.WriteRunOutputs(results, resolvedOutputDir)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to write results: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Results: %s\n", paths.ResultsPath())

		if !bench.SkipPlot {
			if err := report.PlotResults(results.Records, paths.PlotPath()); err != nil {
				logger.Warn("plot skipped", zap.Error(err))
				if !errors.Is(err, report.ErrNoRecords) {
					fmt.Fprintf(stderr, "Failed to write plot: %v\n", err)
					exitCode = ExitError
				}
			} else {
				fmt.Fprintf(stdout, "Plot: %s\n", paths.PlotPath())
			}
		}

		if bench.DuckDB {
			if err := ingestResults(ctx, paths.DuckDBPath(), results); err != nil {
				fmt.Fprintf(stderr, "Failed to ingest results: %v\n", err)
				exitCode = ExitError
			} else {
				fmt.Fprintf(stdout, "DuckDB: %s\n", paths.DuckDBPath())
			}
		}

		fmt.Fprintln(stdout)
		if err := report.WriteSummaryTable(stdout, report.Summarize(results.Records)); err != nil {
			fmt.Fprintf(stderr, "Failed to print summary: %v\n", err)
			return ExitError
		}
		return exitCode
	}
}

// benchQuestions resolves the question list, preferring --questions over config.
func benchQuestions(loaded loadedConfig, questionsPath string) ([]string, error) {
	if strings.TrimSpace(questionsPath) == "" {
		return config.Questions(loaded.Config, loaded.Root)
	}
	set, err := question.LoadSpec(questionsPath)
	if err != nil {
		return nil, err
	}
	return set.Prompts(), nil
}

func ingestResults(ctx context.Context, path string, results runner.Results) error {
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()
	return duckdb.IngestRun(ctx, db, results)
}
