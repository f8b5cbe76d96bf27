package duckdb_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xichen1997/stronger-llama/internal/duckdb"
	duckdbtesting "github.com/xichen1997/stronger-llama/internal/duckdb/testing"
	"github.com/xichen1997/stronger-llama/internal/enhance"
	"github.com/xichen1997/stronger-llama/internal/eval"
	"github.com/xichen1997/stronger-llama/internal/runner"
	"github.com/xichen1997/stronger-llama/internal/testutil"
)

const testTimeout = 5 * time.Second

func openTestDB(t *testing.T) (*sql.DB, context.Context) {
	t.Helper()
	return duckdbtesting.Open(t, ":memory:"), testutil.Context(t, testTimeout)
}

func sampleResults(runID string, started time.Time) runner.Results {
	stages := enhance.NewStageResult(
		enhance.Stage{Name: enhance.StageChainOfThought, Output: "step one"},
		enhance.Stage{Name: enhance.StageReflection, Output: "critique"},
	)
	return runner.Results{
		RunID:      runID,
		Provider:   "ollama",
		Model:      "llama3.2:3b",
		StartedAt:  started,
		FinishedAt: started.Add(time.Minute),
		Records: []runner.Record{
			{Question: "A", Strategy: "cot+reflection", ResponseTime: 2, Response: stages},
			{Question: "A", Strategy: "cot", ResponseTime: 1, Metrics: eval.Metrics{Coherence: 0.4}},
			{Question: "B", Strategy: "cot+reflection", ResponseTime: 4, Response: stages},
			{Question: "B", Strategy: "cot", ResponseTime: 7, Error: "chain_of_thought stage: boom"},
		},
	}
}

func TestSchemaObjectsExist(t *testing.T) {
	db, ctx := openTestDB(t)
	for _, table := range []string{"benchmark_runs", "benchmark_records"} {
		var count int
		require.NoError(t, db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?", table).Scan(&count))
		assert.Equal(t, 1, count, "table %s", table)
	}
	// Reapplying the schema is a no-op.
	require.NoError(t, duckdb.EnsureSchema(ctx, db))
}

func TestIngestAndLoadRoundTrip(t *testing.T) {
	db, ctx := openTestDB(t)
	results := sampleResults("run-1", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, duckdb.IngestRun(ctx, db, results))

	records, err := duckdb.LoadRecords(ctx, db, "run-1")
	require.NoError(t, err)
	require.Len(t, records, 4)
	for i, record := range records {
		want := results.Records[i]
		assert.Equal(t, want.Question, record.Question)
		assert.Equal(t, want.Strategy, record.Strategy)
		assert.InDelta(t, want.ResponseTime, record.ResponseTime, 1e-9)
		assert.Equal(t, want.Metrics, record.Metrics)
		assert.Equal(t, want.Error, record.Error)
		assert.True(t, want.Response.Equal(record.Response), "record %d response", i)
	}
}

func TestIngestRejectsDuplicateRun(t *testing.T) {
	db, ctx := openTestDB(t)
	results := sampleResults("run-1", time.Now())
	require.NoError(t, duckdb.IngestRun(ctx, db, results))
	require.Error(t, duckdb.IngestRun(ctx, db, results))

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM benchmark_records").Scan(&count))
	assert.Equal(t, 4, count, "failed ingest must roll back")
}

func TestIngestRequiresRunID(t *testing.T) {
	db, ctx := openTestDB(t)
	assert.Error(t, duckdb.IngestRun(ctx, db, runner.Results{}))
}

func TestStrategySummaries(t *testing.T) {
	db, ctx := openTestDB(t)
	require.NoError(t, duckdb.IngestRun(ctx, db, sampleResults("run-1", time.Now())))

	summaries, err := duckdb.StrategySummaries(ctx, db, "run-1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	reflection, cot := summaries[0], summaries[1]
	assert.Equal(t, "cot+reflection", reflection.Strategy)
	assert.Equal(t, 2, reflection.Cases)
	assert.InDelta(t, 3.0, reflection.MeanResponseTime, 1e-9)
	assert.InDelta(t, 2.0, reflection.MinResponseTime, 1e-9)
	assert.InDelta(t, 4.0, reflection.MaxResponseTime, 1e-9)

	assert.Equal(t, "cot", cot.Strategy)
	assert.Equal(t, 2, cot.Cases)
	assert.Equal(t, 1, cot.Failures)
	assert.InDelta(t, 1.0, cot.MeanResponseTime, 1e-9)
	assert.InDelta(t, 0.4, cot.MeanMetrics.Coherence, 1e-9)
}

func TestRunIDsOrderedByStart(t *testing.T) {
	db, ctx := openTestDB(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, duckdb.IngestRun(ctx, db, sampleResults("b-later", base.Add(time.Hour))))
	require.NoError(t, duckdb.IngestRun(ctx, db, sampleResults("a-earlier", base)))

	ids, err := duckdb.RunIDs(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []string{"a-earlier", "b-later"}, ids)

	latest, err := duckdb.LatestRunID(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "b-later", latest)
}

func TestOpenFilePersists(t *testing.T) {
	ctx := testutil.Context(t, testTimeout)
	path := filepath.Join(t.TempDir(), "results.duckdb")

	db, err := duckdb.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, duckdb.IngestRun(ctx, db, sampleResults("run-1", time.Now())))
	require.NoError(t, db.Close())

	reopened, err := duckdb.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	records, err := duckdb.LoadRecords(ctx, reopened, "run-1")
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestQuestionKeyIgnoresSurroundingSpace(t *testing.T) {
	assert.Equal(t, duckdb.QuestionKey("What?"), duckdb.QuestionKey("  What? "))
	assert.NotEqual(t, duckdb.QuestionKey("What?"), duckdb.QuestionKey("Why?"))
}

func TestBackfillRunsSkipsStoredRuns(t *testing.T) {
	db, ctx := openTestDB(t)
	outputDir := t.TempDir()
	started := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, runID := range []string{"20240102T030405Z-bbbbbbbbbbbb", "20240101T030405Z-aaaaaaaaaaaa"} {
		_, err := runner.WriteRunOutputs(sampleResults(runID, started), outputDir)
		require.NoError(t, err)
	}
	require.NoError(t, os.MkdirAll(filepath.Join(outputDir, "not-a-run"), 0o755))

	added, err := duckdb.BackfillRuns(ctx, db, outputDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"20240101T030405Z-aaaaaaaaaaaa", "20240102T030405Z-bbbbbbbbbbbb"}, added)

	records, err := duckdb.LoadRecords(ctx, db, "20240101T030405Z-aaaaaaaaaaaa")
	require.NoError(t, err)
	assert.Len(t, records, 4)

	again, err := duckdb.BackfillRuns(ctx, db, outputDir)
	require.NoError(t, err)
	assert.Empty(t, again)
}
