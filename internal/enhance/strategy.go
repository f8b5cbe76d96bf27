package enhance

import (
	"fmt"
	"strings"
)

// Strategy selects which stages the pipeline runs.
type Strategy int

const (
	// None runs no stages.
	None Strategy = iota
	// CotOnly runs the chain-of-thought stage.
	CotOnly
	// CotPlusReflection runs chain-of-thought followed by a reflection on its output.
	CotPlusReflection
)

// Strategies lists every strategy in declaration order.
var Strategies = []Strategy{None, CotOnly, CotPlusReflection}

// FromFlags maps the use_cot/use_reflection flag pair onto a strategy.
// Reflection without chain-of-thought has nothing to critique and collapses to None.
func FromFlags(useCot, useReflection bool) Strategy {
	switch {
	case !useCot:
		return None
	case useReflection:
		return CotPlusReflection
	default:
		return CotOnly
	}
}

// ParseStrategy parses the text form produced by Strategy.String.
func ParseStrategy(value string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none", "":
		return None, nil
	case "cot", "chain_of_thought":
		return CotOnly, nil
	case "cot+reflection", "cot_reflection":
		return CotPlusReflection, nil
	default:
		return None, fmt.Errorf("unknown strategy %q (expected none|cot|cot+reflection)", value)
	}
}

// String returns the descriptor used in records and config files.
func (s Strategy) String() string {
	switch s {
	case None:
		return "none"
	case CotOnly:
		return "cot"
	case CotPlusReflection:
		return "cot+reflection"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// UsesChainOfThought reports whether the chain-of-thought stage runs.
func (s Strategy) UsesChainOfThought() bool {
	return s == CotOnly || s == CotPlusReflection
}

// UsesReflection reports whether the reflection stage runs.
func (s Strategy) UsesReflection() bool {
	return s == CotPlusReflection
}

func (s Strategy) valid() bool {
	return s >= None && s <= CotPlusReflection
}
