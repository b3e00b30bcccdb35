package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/stretchr/testify/require"

	"github.com/kestrelworks/tasklist-api/internal/platform/postgres"
)

// ConnectTimeout bounds the initial ping when opening a test database.
const ConnectTimeout = 5 * time.Second

// schemaOnce guards the migration run: the schema is brought up to date by
// the first test that asks for a database, and reused by the rest of the
// process.
var (
	schemaOnce sync.Once
	schemaErr  error
)

// DatabaseURL returns the connection URL for integration tests.
// TASKLIST_TEST_DATABASE_URL takes precedence so a dedicated test database
// can coexist with a local development one; DATABASE_URL is the fallback.
func DatabaseURL() string {
	if url := os.Getenv("TASKLIST_TEST_DATABASE_URL"); url != "" {
		return url
	}
	return os.Getenv("DATABASE_URL")
}

// IsIntegrationEnvironment reports whether a database URL is configured,
// meaning integration tests can run.
func IsIntegrationEnvironment() bool {
	return DatabaseURL() != ""
}

// GetTestDB opens a connection to the integration test database with its
// schema up to date. Tests that call it are skipped when no database URL is
// configured. The connection is closed automatically when the test finishes.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := DatabaseURL()
	if dbURL == "" {
		t.Skip("Skipping integration test - TASKLIST_TEST_DATABASE_URL or DATABASE_URL required")
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "Failed to open database connection")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close database connection: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), ConnectTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "Database ping failed")

	schemaOnce.Do(func() {
		schemaErr = postgres.EnsureSchema(context.Background(), db, nil)
	})
	require.NoError(t, schemaErr, "Failed to prepare database schema")

	return db
}

// WithTx executes a test function within a transaction, rolling back
// afterwards so tests leave no rows behind and cannot observe each other.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		// sql.ErrTxDone is expected if tx is already committed or rolled back
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
