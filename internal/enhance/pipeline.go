// Package enhance sequences the chain-of-thought, reflection and reasoning-query stages.
package enhance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xichen1997/stronger-llama/internal/generation"
	"github.com/xichen1997/stronger-llama/internal/prompt"
)

// Pipeline runs enhancement stages against a single model, one call at a time.
type Pipeline struct {
	generator generation.Generator
	model     string
	logger    *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for per-stage debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New constructs a pipeline for model using the injected generator.
func New(generator generation.Generator, model string, opts ...Option) (*Pipeline, error) {
	if generator == nil {
		return nil, errors.New("generator is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("model is required")
	}
	p := &Pipeline{
		generator: generator,
		model:     model,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Model returns the model identifier sent with every stage.
func (p *Pipeline) Model() string {
	return p.model
}

// Run executes the stages selected by strategy and returns their outputs in order.
// On failure it returns an empty result and a *StageError holding the completed stages.
func (p *Pipeline) Run(ctx context.Context, question string, strategy Strategy) (StageResult, error) {
	if !strategy.valid() {
		return StageResult{}, fmt.Errorf("%w: %s", ErrPipelineFailure, strategy)
	}
	var result StageResult
	if !strategy.UsesChainOfThought() {
		return result, nil
	}

	cot, err := p.runStage(ctx, StageChainOfThought, prompt.ChainOfThought(question))
	if err != nil {
		return StageResult{}, stageFailure(StageChainOfThought, result, err)
	}
	result = result.With(StageChainOfThought, cot)

	if strategy.UsesReflection() {
		reflection, err := p.runStage(ctx, StageReflection, prompt.Reflection(cot))
		if err != nil {
			return StageResult{}, stageFailure(StageReflection, result, err)
		}
		result = result.With(StageReflection, reflection)
	}
	return result, nil
}

// GenerateReasoningQueries asks for a short answer synthesized from prior stage outputs.
// It is not chained by Run.
func (p *Pipeline) GenerateReasoningQueries(ctx context.Context, question, chainOfThought, reflection string) (string, error) {
	text, err := p.runStage(ctx, StageReasoningQuery, prompt.ReasoningQuery(question, chainOfThought, reflection))
	if err != nil {
		return "", stageFailure(StageReasoningQuery, StageResult{}, err)
	}
	return text, nil
}

func (p *Pipeline) runStage(ctx context.Context, stage, promptText string) (string, error) {
	start := time.Now()
	p.logger.Debug("stage started",
		zap.String("stage", stage),
		zap.String("model", p.model),
		zap.Int("prompt_bytes", len(promptText)),
	)
	text, err := p.generator.Generate(ctx, p.model, promptText)
	if err != nil {
		p.logger.Debug("stage failed",
			zap.String("stage", stage),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return "", err
	}
	p.logger.Debug("stage finished",
		zap.String("stage", stage),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_bytes", len(text)),
	)
	return text, nil
}
