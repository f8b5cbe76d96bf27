package runner

import "time"

// CaseEventType identifies a case status update for observers.
type CaseEventType string

const (
	// CaseQueued marks a case known but not yet started.
	CaseQueued CaseEventType = "queued"
	// CaseRunning marks a case whose pipeline is in flight.
	CaseRunning CaseEventType = "running"
	// CaseDone marks a case that produced a record.
	CaseDone CaseEventType = "done"
	// CaseFailed marks a case that ended in an error.
	CaseFailed CaseEventType = "failed"
)

// Case identifies one question/combination pair by its position in the run.
type Case struct {
	Index    int
	Question string
	Strategy string
}

// CaseEvent carries a single status update for a case.
type CaseEvent struct {
	Case
	Type      CaseEventType
	Elapsed   time.Duration
	Error     string
	EmittedAt time.Time
}

// RunObserver receives run lifecycle events for UI or logging.
type RunObserver interface {
	// OnRunStart signals the start of a run with every planned case.
	OnRunStart(runID string, model string, cases []Case)
	// OnCaseEvent delivers a case status update.
	OnCaseEvent(event CaseEvent)
	// OnRunEnd signals run completion.
	OnRunEnd(results Results)
}

// MultiObserver fans events out to several observers in order.
type MultiObserver []RunObserver

// OnRunStart implements RunObserver.
func (m MultiObserver) OnRunStart(runID string, model string, cases []Case) {
	for _, observer := range m {
		observer.OnRunStart(runID, model, cases)
	}
}

// OnCaseEvent implements RunObserver.
func (m MultiObserver) OnCaseEvent(event CaseEvent) {
	for _, observer := range m {
		observer.OnCaseEvent(event)
	}
}

// OnRunEnd implements RunObserver.
func (m MultiObserver) OnRunEnd(results Results) {
	for _, observer := range m {
		observer.OnRunEnd(results)
	}
}
