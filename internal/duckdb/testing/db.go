// Package duckdbtesting opens schema-initialized DuckDB databases for tests.
package duckdbtesting

import (
	"database/sql"
	"testing"
	"time"

	"github.com/xichen1997/stronger-llama/internal/duckdb"
	"github.com/xichen1997/stronger-llama/internal/testutil"
)

const (
	defaultTimeout = 5 * time.Second
)

// Open opens a DuckDB database with the schema applied and closes it on cleanup.
func Open(t testing.TB, dsn string) *sql.DB {
	t.Helper()
	ctx := testutil.Context(t, defaultTimeout)
	conn, err := duckdb.Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}
