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

	"github.com/xichen1997/stronger-llama/internal/enhance"
	"github.com/xichen1997/stronger-llama/internal/eval"
)

// Section headers printed by ask.
const (
	headerChainOfThought = "=== Chain of Thought Analysis ==="
	headerReflection     = "=== Reflection and Improvements ==="
	headerMetrics        = "=== Quality Metrics ==="
	headerReasoning      = "=== Reasoning Queries ==="
)

// runAsk builds the handler for the ask command.
func runAsk(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, stderr)
		specPath := flags.String("spec", "", "Path to config file (default: search for .stronger-llama/config.yml)")
		model := flags.String("model", "", "Model override")
		host := flags.String("host", "", "Generation service host override")
		strategyName := flags.String("strategy", enhance.CotPlusReflection.String(), "Strategy: none|cot|cot+reflection")
		noReasoning := flags.Bool("no-reasoning", false, "Skip the reasoning-query stage")
		questionFile := flags.String("f", "", "Read the question from a file")
		verbose := flags.Bool("verbose", false, "Log each stage to stderr")
		if code, ok := parseFlags(cmd, flags, args, true, stdout, stderr); !ok {
			return code
		}

		question, err := askQuestion(*questionFile, flags.Args())
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		strategy, err := enhance.ParseStrategy(*strategyName)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}

		loaded, err := loadConfig(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		backend := loaded.Config.Backend
		if value := strings.TrimSpace(*model); value != "" {
			backend.Model = value
		}
		if value := strings.TrimSpace(*host); value != "" {
			backend.Host = value
		}

		logger, closeLogger, err := newLogger(stderr, *verbose, "")
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitError
		}
		defer closeLogger()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		gen, err := newGenerator(ctx, backend)
		if err != nil {
			fmt.Fprintf(stderr, "Backend error: %v\n", err)
			return ExitError
		}
		pipeline, err := enhance.New(gen, backend.Model, enhance.WithLogger(logger))
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitError
		}

		result, err := pipeline.Run(ctx, question, strategy)
		if err != nil {
			if partial, ok := enhance.PartialResult(err); ok {
				printStages(stdout, partial)
			}
			printGenerationFailure(stderr, err, backend, backendHost(gen, backend))
			return ExitError
		}
		if result.Len() == 0 {
			fmt.Fprintln(stdout, "No enhancement stages ran for strategy none.")
			return ExitOK
		}
		printStages(stdout, result)
		printMetrics(stdout, eval.Evaluate(result))

		if strategy == enhance.CotPlusReflection && !*noReasoning {
			cot, _ := result.Get(enhance.StageChainOfThought)
			reflection, _ := result.Get(enhance.StageReflection)
			text, err := pipeline.GenerateReasoningQueries(ctx, question, cot, reflection)
			if err != nil {
				printGenerationFailure(stderr, err, backend, backendHost(gen, backend))
				return ExitError
			}
			fmt.Fprintf(stdout, "\n%s\n%s\n", headerReasoning, strings.TrimSpace(text))
		}
		return ExitOK
	}
}

// askQuestion reads the question from -f or joins the positional arguments.
func askQuestion(path string, args []string) (string, error) {
	if strings.TrimSpace(path) != "" {
		if len(args) > 0 {
			return "", errors.New("pass the question as an argument or with -f, not both")
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read question file: %w", err)
		}
		question := strings.TrimSpace(string(data))
		if question == "" {
			return "", fmt.Errorf("question file %s is empty", path)
		}
		return question, nil
	}
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return "", errors.New("question is required")
	}
	return question, nil
}

func printStages(w io.Writer, result enhance.StageResult) {
	for _, stage := range result.Stages() {
		switch stage.Name {
		case enhance.StageChainOfThought:
			fmt.Fprintln(w, headerChainOfThought)
		case enhance.StageReflection:
			fmt.Fprintf(w, "\n%s\n", headerReflection)
		default:
			fmt.Fprintf(w, "\n=== %s ===\n", stage.Name)
		}
		fmt.Fprintln(w, strings.TrimSpace(stage.Output))
	}
}

func printMetrics(w io.Writer, metrics eval.Metrics) {
	fmt.Fprintf(w, "\n%s\n", headerMetrics)
	for _, metric := range metrics.Named() {
		fmt.Fprintf(w, "%s: %.2f\n", metric.Name, metric.Value)
	}
}
