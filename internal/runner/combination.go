package runner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xichen1997/stronger-llama/internal/enhance"
	"github.com/xichen1997/stronger-llama/internal/spec"
)

// ErrInvalidCombination reports a strategy/reasoning pairing that cannot run.
var ErrInvalidCombination = errors.New("invalid combination")

const reasoningSuffix = "+reasoning"

// Combination is one cell of the benchmark matrix.
type Combination struct {
	Strategy enhance.Strategy
	// Reasoning chains the reasoning-query stage after reflection.
	Reasoning bool
}

// NewCombination validates a strategy/reasoning pairing.
func NewCombination(strategy enhance.Strategy, reasoning bool) (Combination, error) {
	if reasoning && strategy != enhance.CotPlusReflection {
		return Combination{}, fmt.Errorf("%w: reasoning requires %s, got %s", ErrInvalidCombination, enhance.CotPlusReflection, strategy)
	}
	return Combination{Strategy: strategy, Reasoning: reasoning}, nil
}

// ParseCombination parses a strategy name, also accepting the "+reasoning" descriptor form.
func ParseCombination(text string, reasoning bool) (Combination, error) {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	if base, ok := strings.CutSuffix(trimmed, reasoningSuffix); ok {
		trimmed = base
		reasoning = true
	}
	strategy, err := enhance.ParseStrategy(trimmed)
	if err != nil {
		return Combination{}, fmt.Errorf("%w: %w", ErrInvalidCombination, err)
	}
	return NewCombination(strategy, reasoning)
}

// CombinationsFromConfig converts configured entries in order.
func CombinationsFromConfig(entries []spec.CombinationConfig) ([]Combination, error) {
	combos := make([]Combination, 0, len(entries))
	for i, entry := range entries {
		combo, err := ParseCombination(entry.Strategy, entry.Reasoning)
		if err != nil {
			return nil, fmt.Errorf("combinations[%d]: %w", i, err)
		}
		combos = append(combos, combo)
	}
	return combos, nil
}

// DefaultCombinations returns the standard benchmark matrix.
func DefaultCombinations() []Combination {
	return []Combination{
		{Strategy: enhance.CotOnly},
		{Strategy: enhance.CotPlusReflection},
		{Strategy: enhance.CotPlusReflection, Reasoning: true},
	}
}

// String returns the record descriptor, e.g. "cot+reflection+reasoning".
func (c Combination) String() string {
	if c.Reasoning {
		return c.Strategy.String() + reasoningSuffix
	}
	return c.Strategy.String()
}
