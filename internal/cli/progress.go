package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/xichen1997/stronger-llama/internal/runner"
)

// progressObserver prints one line per finished case.
type progressObserver struct {
	out   io.Writer
	mu    sync.Mutex
	total int
}

func newProgressObserver(out io.Writer) *progressObserver {
	return &progressObserver{out: out}
}

func (p *progressObserver) OnRunStart(runID string, model string, cases []runner.Case) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = len(cases)
	fmt.Fprintf(p.out, "Run %s: %d cases on %s\n", runID, len(cases), model)
}

func (p *progressObserver) OnCaseEvent(event runner.CaseEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch event.Type {
	case runner.CaseDone:
		fmt.Fprintf(p.out, "[%d/%d] %-24s %.2fs  %s\n", event.Index+1, p.total, event.Strategy, event.Elapsed.Seconds(), event.Question)
	case runner.CaseFailed:
		fmt.Fprintf(p.out, "[%d/%d] %-24s failed: %s\n", event.Index+1, p.total, event.Strategy, event.Error)
	}
}

func (p *progressObserver) OnRunEnd(results runner.Results) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "Finished %d/%d cases (%d failed) in %.2fs\n",
		results.Summary.CasesSucceeded, p.total, results.Summary.CasesFailed, results.Summary.TotalSeconds)
}
