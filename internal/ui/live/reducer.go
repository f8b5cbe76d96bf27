package live

import (
	"fmt"
	"time"

	"github.com/xichen1997/stronger-llama/internal/runner"
)

// StartRun resets the state for a new run and lists every planned case as queued.
func StartRun(state State, runID, model string, cases []runner.Case, now time.Time) State {
	state = State{RunID: runID, Model: model, StartedAt: now}
	state.Rows = make([]CaseRow, 0, len(cases))
	for _, c := range cases {
		state.Rows = append(state.Rows, CaseRow{
			Index:    c.Index,
			Question: c.Question,
			Strategy: c.Strategy,
			Status:   runner.CaseQueued,
		})
	}
	state.Counts = recount(state.Rows)
	return state
}

// Reduce applies a case event to the UI state.
func Reduce(state State, event runner.CaseEvent) State {
	state = ensureRow(state, event)
	state = applyCaseEvent(state, event)
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// FinishRun marks the run complete.
func FinishRun(state State, summary runner.RunSummary) State {
	state.Finished = true
	state.Summary = summary
	state.LastEvent = fmt.Sprintf("run finished: %d ok, %d failed", summary.CasesSucceeded, summary.CasesFailed)
	return state
}

// ensureRow grows the state rows to include the target index.
func ensureRow(state State, event runner.CaseEvent) State {
	if event.Index < 0 || event.Index < len(state.Rows) {
		return state
	}
	rows := make([]CaseRow, event.Index+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = CaseRow{Index: i, Status: runner.CaseQueued}
	}
	state.Rows = rows
	return state
}

// applyCaseEvent updates a row with the given event.
func applyCaseEvent(state State, event runner.CaseEvent) State {
	if event.Index < 0 || event.Index >= len(state.Rows) {
		return state
	}
	row := state.Rows[event.Index]
	if row.Question == "" {
		row.Question = event.Question
	}
	if row.Strategy == "" {
		row.Strategy = event.Strategy
	}
	row.Status = event.Type
	switch event.Type {
	case runner.CaseRunning:
		row.StartedAt = event.EmittedAt
	case runner.CaseDone, runner.CaseFailed:
		row.FinishedAt = event.EmittedAt
		row.Elapsed = event.Elapsed
		row.Error = event.Error
	}
	state.Rows[event.Index] = row
	return state
}

// isTerminalStatus reports whether a status is final.
func isTerminalStatus(status runner.CaseEventType) bool {
	return status == runner.CaseDone || status == runner.CaseFailed
}

// recount recomputes status counts for the current rows.
func recount(rows []CaseRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case runner.CaseQueued:
			counts.Queued++
		case runner.CaseRunning:
			counts.Running++
		case runner.CaseDone:
			counts.Done++
		case runner.CaseFailed:
			counts.Failed++
		}
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event runner.CaseEvent) string {
	label := formatIndex(event.Index)
	switch event.Type {
	case runner.CaseRunning:
		return fmt.Sprintf("%s %s started", label, event.Strategy)
	case runner.CaseDone:
		return fmt.Sprintf("%s %s finished (%s)", label, event.Strategy, formatDuration(event.Elapsed))
	case runner.CaseFailed:
		return fmt.Sprintf("%s %s failed: %s", label, event.Strategy, event.Error)
	}
	return ""
}

// formatDuration renders a rounded duration for display.
func formatDuration(duration time.Duration) string {
	if duration <= 0 {
		return "0s"
	}
	return duration.Round(100 * time.Millisecond).String()
}
