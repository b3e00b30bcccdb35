package store

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by the entity stores. Both *sql.DB
// and *sql.Tx satisfy it, so the same store code serves live sessions and
// the rolled-back transactions integration tests run inside.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
