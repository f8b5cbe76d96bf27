package runner

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/xichen1997/stronger-llama/internal/enhance"
	"github.com/xichen1997/stronger-llama/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testStart = time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

// scriptedGenerator advances a fake clock on every call so response times are deterministic.
type scriptedGenerator struct {
	clock   *testutil.FakeClock
	step    time.Duration
	failAt  int
	failErr error
	calls   int
	prompts []string
}

func (g *scriptedGenerator) Generate(_ context.Context, _ string, promptText string) (string, error) {
	call := g.calls
	g.calls++
	g.prompts = append(g.prompts, promptText)
	if g.clock != nil {
		g.clock.Advance(g.step)
	}
	if g.failErr != nil && call == g.failAt {
		return "", g.failErr
	}
	return fmt.Sprintf("out-%d", call+1), nil
}

func newTestParams(t *testing.T, gen *scriptedGenerator) RunParams {
	t.Helper()
	pipeline, err := enhance.New(gen, "llama3.2:3b")
	if err != nil {
		t.Fatalf("new pipeline: %v", err)
	}
	now := time.Now
	if gen.clock != nil {
		now = gen.clock.Now
	}
	return RunParams{
		Pipeline: pipeline,
		Provider: "ollama",
		Deps: RunDependencies{
			RunID: func() (string, error) { return "run-1", nil },
			Now:   now,
		},
	}
}

// recordingObserver keeps every event in arrival order.
type recordingObserver struct {
	started bool
	cases   []Case
	events  []CaseEvent
	ended   *Results
}

func (o *recordingObserver) OnRunStart(_ string, _ string, cases []Case) {
	o.started = true
	o.cases = cases
}

func (o *recordingObserver) OnCaseEvent(event CaseEvent) {
	o.events = append(o.events, event)
}

func (o *recordingObserver) OnRunEnd(results Results) {
	o.ended = &results
}

func mustCombination(t *testing.T, text string) Combination {
	t.Helper()
	combo, err := ParseCombination(text, false)
	if err != nil {
		t.Fatalf("parse combination %q: %v", text, err)
	}
	return combo
}
