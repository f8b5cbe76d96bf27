package runner

import (
	"time"

	"github.com/xichen1997/stronger-llama/internal/enhance"
	"github.com/xichen1997/stronger-llama/internal/eval"
)

// Record is one benchmark row: a question run under one combination.
type Record struct {
	Question     string  `json:"question"`
	Strategy     string  `json:"strategy"`
	ResponseTime float64 `json:"response_time"`
	eval.Metrics
	Response enhance.StageResult `json:"response"`
	Error    string              `json:"error,omitempty"`
}

// Failed reports whether the case ended in an error.
func (r Record) Failed() bool {
	return r.Error != ""
}

// Results describes a whole benchmark run.
type Results struct {
	RunID      string     `json:"run_id"`
	Provider   string     `json:"provider"`
	Model      string     `json:"model"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
	Records    []Record   `json:"records"`
	Summary    RunSummary `json:"summary"`
}

// RunSummary aggregates case outcomes.
type RunSummary struct {
	CasesTotal     int     `json:"cases_total"`
	CasesSucceeded int     `json:"cases_succeeded"`
	CasesFailed    int     `json:"cases_failed"`
	TotalSeconds   float64 `json:"total_seconds"`
}

func summarize(records []Record) RunSummary {
	summary := RunSummary{CasesTotal: len(records)}
	for _, record := range records {
		if record.Failed() {
			summary.CasesFailed++
		} else {
			summary.CasesSucceeded++
		}
		summary.TotalSeconds += record.ResponseTime
	}
	return summary
}
