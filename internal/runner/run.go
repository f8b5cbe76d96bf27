package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xichen1997/stronger-llama/internal/enhance"
	"github.com/xichen1997/stronger-llama/internal/eval"
)

// Enhancer is the pipeline surface the benchmark drives.
type Enhancer interface {
	Model() string
	Run(ctx context.Context, question string, strategy enhance.Strategy) (enhance.StageResult, error)
	GenerateReasoningQueries(ctx context.Context, question, chainOfThought, reflection string) (string, error)
}

// RunDependencies allows injecting clocks and run IDs.
type RunDependencies struct {
	RunID func() (string, error)
	Now   func() time.Time
}

// RunParams configures a benchmark run.
type RunParams struct {
	Pipeline Enhancer
	Scorer   eval.Scorer
	Provider string
	// ContinueOnError records failed cases and keeps going instead of aborting.
	ContinueOnError bool
	Observer        RunObserver
	Logger          *zap.Logger
	Deps            RunDependencies
}

// Run executes every question against every combination, one case at a time.
// Questions form the outer loop. Without ContinueOnError the first failure stops
// the run; the returned Results still hold the records completed before it.
func Run(ctx context.Context, questions []string, combinations []Combination, params RunParams) (Results, error) {
	if params.Pipeline == nil {
		return Results{}, errors.New("pipeline is required")
	}
	runID, err := ensureRunID(params.Deps.RunID)
	if err != nil {
		return Results{}, err
	}
	now := params.Deps.Now
	if now == nil {
		now = time.Now
	}
	scorer := params.Scorer
	if scorer == nil {
		scorer = eval.Placeholder{}
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	observer := params.Observer

	cases := planCases(questions, combinations)
	results := Results{
		RunID:     runID,
		Provider:  params.Provider,
		Model:     params.Pipeline.Model(),
		StartedAt: now(),
		Records:   make([]Record, 0, len(cases)),
	}
	if observer != nil {
		observer.OnRunStart(runID, results.Model, cases)
		for _, c := range cases {
			observer.OnCaseEvent(CaseEvent{Case: c, Type: CaseQueued, EmittedAt: now()})
		}
	}
	logger.Info("benchmark started",
		zap.String("run_id", runID),
		zap.String("model", results.Model),
		zap.Int("cases", len(cases)),
	)

	var runErr error
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		record, caseErr := runCase(ctx, params.Pipeline, scorer, combinations[c.Index%len(combinations)], c, now, observer)
		if caseErr != nil {
			logger.Warn("benchmark case failed",
				zap.Int("case", c.Index),
				zap.String("strategy", c.Strategy),
				zap.Error(caseErr),
			)
			if !params.ContinueOnError || ctx.Err() != nil {
				runErr = fmt.Errorf("question %q (%s): %w", c.Question, c.Strategy, caseErr)
				break
			}
		}
		results.Records = append(results.Records, record)
	}

	results.FinishedAt = now()
	results.Summary = summarize(results.Records)
	logger.Info("benchmark finished",
		zap.String("run_id", runID),
		zap.Int("records", len(results.Records)),
		zap.Int("failed", results.Summary.CasesFailed),
		zap.Error(runErr),
	)
	if observer != nil {
		observer.OnRunEnd(results)
	}
	return results, runErr
}

// planCases enumerates cases with questions in the outer loop.
func planCases(questions []string, combinations []Combination) []Case {
	cases := make([]Case, 0, len(questions)*len(combinations))
	for _, question := range questions {
		for _, combo := range combinations {
			cases = append(cases, Case{Index: len(cases), Question: question, Strategy: combo.String()})
		}
	}
	return cases
}

func runCase(ctx context.Context, pipeline Enhancer, scorer eval.Scorer, combo Combination, c Case, now func() time.Time, observer RunObserver) (Record, error) {
	start := now()
	emit(observer, CaseEvent{Case: c, Type: CaseRunning, EmittedAt: start})

	result, err := executeCombination(ctx, pipeline, combo, c.Question)
	end := now()
	elapsed := end.Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}

	record := Record{
		Question:     c.Question,
		Strategy:     c.Strategy,
		ResponseTime: elapsed.Seconds(),
	}
	if err != nil {
		partial, _ := enhance.PartialResult(err)
		record.Response = partial
		record.Error = err.Error()
		emit(observer, CaseEvent{Case: c, Type: CaseFailed, Elapsed: elapsed, Error: err.Error(), EmittedAt: end})
		return record, err
	}
	record.Response = result
	record.Metrics = scorer.Score(result)
	emit(observer, CaseEvent{Case: c, Type: CaseDone, Elapsed: elapsed, EmittedAt: end})
	return record, nil
}

// executeCombination runs the pipeline and, when requested, the reasoning-query stage.
func executeCombination(ctx context.Context, pipeline Enhancer, combo Combination, question string) (enhance.StageResult, error) {
	result, err := pipeline.Run(ctx, question, combo.Strategy)
	if err != nil || !combo.Reasoning {
		return result, err
	}
	cot, _ := result.Get(enhance.StageChainOfThought)
	reflection, _ := result.Get(enhance.StageReflection)
	text, err := pipeline.GenerateReasoningQueries(ctx, question, cot, reflection)
	if err != nil {
		var stageErr *enhance.StageError
		if errors.As(err, &stageErr) {
			stageErr.Partial = result
		}
		return enhance.StageResult{}, err
	}
	return result.With(enhance.StageReasoningQuery, text), nil
}

func emit(observer RunObserver, event CaseEvent) {
	if observer != nil {
		observer.OnCaseEvent(event)
	}
}
