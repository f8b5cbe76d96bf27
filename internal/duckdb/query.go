package duckdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/xichen1997/stronger-llama/internal/report"
	"github.com/xichen1997/stronger-llama/internal/runner"
)

// RunIDs lists stored runs, oldest first.
func RunIDs(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT run_id FROM benchmark_runs ORDER BY started_at NULLS FIRST, run_id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// LatestRunID returns the most recently started run.
func LatestRunID(ctx context.Context, db *sql.DB) (string, error) {
	ids, err := RunIDs(ctx, db)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("no runs stored")
	}
	return ids[len(ids)-1], nil
}

// LoadRecords reads a run's records back in their original order.
func LoadRecords(ctx context.Context, db *sql.DB, runID string) ([]runner.Record, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT question, strategy, response_time, coherence, reasoning_depth, self_consistency, response, error
		 FROM benchmark_records
		 WHERE run_id = ?
		 ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []runner.Record
	for rows.Next() {
		var (
			record   runner.Record
			response string
			failure  sql.NullString
		)
		if err := rows.Scan(
			&record.Question,
			&record.Strategy,
			&record.ResponseTime,
			&record.Coherence,
			&record.ReasoningDepth,
			&record.SelfConsistency,
			&response,
			&failure,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if err := json.Unmarshal([]byte(response), &record.Response); err != nil {
			return nil, fmt.Errorf("decode record response: %w", err)
		}
		record.Error = failure.String
		records = append(records, record)
	}
	return records, rows.Err()
}

// StrategySummaries aggregates a run per strategy in SQL, in first-seen order.
// Failed records are counted but excluded from the means.
func StrategySummaries(ctx context.Context, db *sql.DB, runID string) ([]report.StrategySummary, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT strategy,
		        COUNT(*),
		        COUNT(*) FILTER (WHERE error IS NOT NULL),
		        COALESCE(AVG(response_time) FILTER (WHERE error IS NULL), 0),
		        COALESCE(MIN(response_time) FILTER (WHERE error IS NULL), 0),
		        COALESCE(MAX(response_time) FILTER (WHERE error IS NULL), 0),
		        COALESCE(AVG(coherence) FILTER (WHERE error IS NULL), 0),
		        COALESCE(AVG(reasoning_depth) FILTER (WHERE error IS NULL), 0),
		        COALESCE(AVG(self_consistency) FILTER (WHERE error IS NULL), 0)
		 FROM benchmark_records
		 WHERE run_id = ?
		 GROUP BY strategy
		 ORDER BY MIN(seq)`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	var summaries []report.StrategySummary
	for rows.Next() {
		var summary report.StrategySummary
		if err := rows.Scan(
			&summary.Strategy,
			&summary.Cases,
			&summary.Failures,
			&summary.MeanResponseTime,
			&summary.MinResponseTime,
			&summary.MaxResponseTime,
			&summary.MeanMetrics.Coherence,
			&summary.MeanMetrics.ReasoningDepth,
			&summary.MeanMetrics.SelfConsistency,
		); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}
