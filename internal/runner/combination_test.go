package runner

import (
	"errors"
	"testing"

	"github.com/xichen1997/stronger-llama/internal/enhance"
	"github.com/xichen1997/stronger-llama/internal/spec"
)

func TestNewCombinationRejectsReasoningWithoutReflection(t *testing.T) {
	for _, strategy := range []enhance.Strategy{enhance.None, enhance.CotOnly} {
		if _, err := NewCombination(strategy, true); !errors.Is(err, ErrInvalidCombination) {
			t.Fatalf("%s: expected invalid combination, got %v", strategy, err)
		}
	}
	combo, err := NewCombination(enhance.CotPlusReflection, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if combo.String() != "cot+reflection+reasoning" {
		t.Fatalf("unexpected descriptor %q", combo.String())
	}
}

func TestParseCombinationDescriptors(t *testing.T) {
	cases := []struct {
		text      string
		reasoning bool
		want      string
	}{
		{text: "cot", want: "cot"},
		{text: " COT+Reflection ", want: "cot+reflection"},
		{text: "cot+reflection", reasoning: true, want: "cot+reflection+reasoning"},
		{text: "cot+reflection+reasoning", want: "cot+reflection+reasoning"},
		{text: "none", want: "none"},
	}
	for _, tc := range cases {
		combo, err := ParseCombination(tc.text, tc.reasoning)
		if err != nil {
			t.Fatalf("%q: %v", tc.text, err)
		}
		if combo.String() != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.text, tc.want, combo.String())
		}
	}
	for _, bad := range []string{"cot+reasoning", "tree-of-thought"} {
		if _, err := ParseCombination(bad, false); !errors.Is(err, ErrInvalidCombination) {
			t.Fatalf("%q: expected invalid combination, got %v", bad, err)
		}
	}
}

func TestCombinationsFromConfig(t *testing.T) {
	combos, err := CombinationsFromConfig([]spec.CombinationConfig{
		{Strategy: "cot"},
		{Strategy: "cot+reflection", Reasoning: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(combos) != 2 || !combos[1].Reasoning {
		t.Fatalf("unexpected combinations %+v", combos)
	}
	if _, err := CombinationsFromConfig([]spec.CombinationConfig{{Strategy: "cot", Reasoning: true}}); err == nil {
		t.Fatalf("expected error")
	}

	defaults := DefaultCombinations()
	want := []string{"cot", "cot+reflection", "cot+reflection+reasoning"}
	for i, combo := range defaults {
		if combo.String() != want[i] {
			t.Fatalf("default %d: expected %q, got %q", i, want[i], combo.String())
		}
	}
}
