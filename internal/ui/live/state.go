package live

import (
	"time"

	"github.com/xichen1997/stronger-llama/internal/runner"
)

// CaseRow holds UI state for a single benchmark case.
type CaseRow struct {
	Index      int
	Question   string
	Strategy   string
	Status     runner.CaseEventType
	StartedAt  time.Time
	FinishedAt time.Time
	Elapsed    time.Duration
	Error      string
}

// StatusCounts aggregates counts by status bucket.
type StatusCounts struct {
	Queued  int
	Running int
	Done    int
	Failed  int
}

// State captures the live UI state for a benchmark run.
type State struct {
	RunID     string
	Model     string
	StartedAt time.Time
	Finished  bool
	Summary   runner.RunSummary
	LastEvent string
	Rows      []CaseRow
	Counts    StatusCounts
}
