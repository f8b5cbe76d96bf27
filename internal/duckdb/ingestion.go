package duckdb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xichen1997/stronger-llama/internal/runner"
)

// QuestionKey returns a stable fingerprint for a question, used to join runs.
func QuestionKey(question string) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(question)))
	return hex.EncodeToString(hash[:])
}

// IngestRun stores a run and its records in one transaction.
func IngestRun(ctx context.Context, db *sql.DB, results runner.Results) error {
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	if strings.TrimSpace(results.RunID) == "" {
		return errors.New("duckdb: run id is required")
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ingest: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO benchmark_runs (run_id, provider, model, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?)`,
		results.RunID,
		results.Provider,
		results.Model,
		nullTime(results.StartedAt),
		nullTime(results.FinishedAt),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for seq, record := range results.Records {
		response, err := json.Marshal(record.Response)
		if err != nil {
			return fmt.Errorf("encode record %d response: %w", seq, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO benchmark_records (
			   record_id, run_id, seq, question, question_key, strategy,
			   response_time, coherence, reasoning_depth, self_consistency, response, error
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(),
			results.RunID,
			seq,
			record.Question,
			QuestionKey(record.Question),
			record.Strategy,
			record.ResponseTime,
			record.Coherence,
			record.ReasoningDepth,
			record.SelfConsistency,
			string(response),
			nullString(record.Error),
		); err != nil {
			return fmt.Errorf("insert record %d: %w", seq, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ingest: %w", err)
	}
	return nil
}

func nullTime(value time.Time) sql.NullTime {
	return sql.NullTime{Time: value.UTC(), Valid: !value.IsZero()}
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
