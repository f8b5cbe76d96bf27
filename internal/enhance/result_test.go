package enhance

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestStageResultJSONKeepsExecutionOrder(t *testing.T) {
	result := NewStageResult(
		Stage{Name: StageReflection, Output: "second"},
		Stage{Name: StageChainOfThought, Output: "first <b>"},
	)
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	encoded := string(data)
	if strings.Index(encoded, StageReflection) > strings.Index(encoded, StageChainOfThought) {
		t.Fatalf("expected insertion order in %s", encoded)
	}

	var decoded StageResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	names := decoded.Names()
	if len(names) != 2 || names[0] != StageReflection || names[1] != StageChainOfThought {
		t.Fatalf("unexpected decoded order %v", names)
	}
	if out, _ := decoded.Get(StageChainOfThought); out != "first <b>" {
		t.Fatalf("unexpected decoded output %q", out)
	}
}

func TestStageResultEmptyAndNull(t *testing.T) {
	data, err := json.Marshal(StageResult{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "{}" {
		t.Fatalf("expected {}, got %s", data)
	}
	var decoded StageResult
	if err := json.Unmarshal([]byte("null"), &decoded); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if decoded.Len() != 0 {
		t.Fatalf("expected empty result")
	}
	if err := json.Unmarshal([]byte(`["x"]`), &decoded); err == nil {
		t.Fatalf("expected error for non-object")
	}
}

func TestStageResultWithDoesNotMutate(t *testing.T) {
	base := NewStageResult(Stage{Name: StageChainOfThought, Output: "a"})
	next := base.With(StageReflection, "b")
	if base.Len() != 1 || next.Len() != 2 {
		t.Fatalf("expected copy-on-write, got base=%d next=%d", base.Len(), next.Len())
	}
	replaced := next.With(StageChainOfThought, "z")
	if out, _ := next.Get(StageChainOfThought); out != "a" {
		t.Fatalf("expected original unchanged, got %q", out)
	}
	if out, _ := replaced.Get(StageChainOfThought); out != "z" || replaced.Names()[0] != StageChainOfThought {
		t.Fatalf("expected in-place replacement, got %v", replaced.Stages())
	}
}

func TestStrategyFlagsAndParsing(t *testing.T) {
	cases := []struct {
		useCot, useReflection bool
		want                  Strategy
	}{
		{false, false, None},
		{false, true, None},
		{true, false, CotOnly},
		{true, true, CotPlusReflection},
	}
	for _, tc := range cases {
		if got := FromFlags(tc.useCot, tc.useReflection); got != tc.want {
			t.Fatalf("FromFlags(%v, %v) = %s, want %s", tc.useCot, tc.useReflection, got, tc.want)
		}
	}
	for _, strategy := range Strategies {
		parsed, err := ParseStrategy(strategy.String())
		if err != nil || parsed != strategy {
			t.Fatalf("round trip %s: got %s, %v", strategy, parsed, err)
		}
	}
	for _, value := range []string{"reflection-only", "reflection", "cot+reflection+reasoning"} {
		if _, err := ParseStrategy(value); err == nil {
			t.Fatalf("expected parse error for %q", value)
		}
	}
}

func TestStageResultEqual(t *testing.T) {
	a := NewStageResult(Stage{Name: StageChainOfThought, Output: "x"})
	if !a.Equal(a.With(StageChainOfThought, "x")) {
		t.Fatalf("expected equal results")
	}
	if a.Equal(a.With(StageReflection, "y")) {
		t.Fatalf("expected different results")
	}
	if !(StageResult{}).Equal(NewStageResult()) {
		t.Fatalf("expected empty results to be equal")
	}
}
