package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

// embedMigrations holds the schema migrations compiled into the binary, so a
// deployed server never depends on finding SQL files on disk.
//
//go:embed migrations/*.sql
var embedMigrations embed.FS

const (
	// migrationTableName is the table goose uses to track applied versions.
	migrationTableName = "schema_migrations"

	// migrationsDir is the directory inside embedMigrations.
	migrationsDir = "migrations"
)

// SchemaError reports a failed schema initialization or migration command.
// Boot treats it as fatal: the process logs the diagnostic and exits
// non-zero rather than serving requests against an unknown schema.
type SchemaError struct {
	Op    string // the operation that failed, e.g. "up", "status"
	Cause error
}

// Error implements the error interface for SchemaError.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %s failed: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying goose or database error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// slogGooseLogger adapts the goose logger interface to use slog
type slogGooseLogger struct{}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding error messages to slog.Error
// Note: Unlike the standard Fatalf behavior, this does NOT call os.Exit
// so the caller handles application exit consistently
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

// configureGoose applies the process-wide goose settings. goose keeps this
// state in package globals, so both EnsureSchema and RunMigrationCommand
// route through here.
func configureGoose() error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(&slogGooseLogger{})
	goose.SetTableName(migrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return nil
}

// EnsureSchema brings the database schema up to the current version. It is
// idempotent: already-applied migrations are skipped, so running it on every
// boot is safe, including when several instances race (goose locks the
// version table).
func (h *Handle) EnsureSchema(ctx context.Context, lg *slog.Logger) error {
	return EnsureSchema(ctx, h.db, lg)
}

// EnsureSchema applies the embedded migrations to db. Boot calls it through
// Handle.EnsureSchema; test harnesses call it directly with their own handle.
func EnsureSchema(ctx context.Context, db *sql.DB, lg *slog.Logger) error {
	if lg == nil {
		lg = slog.Default()
	}
	// One correlation ID for the whole operation so its log lines can be
	// traced together.
	log := lg.With(
		slog.String("component", "schema"),
		slog.String("correlation_id", uuid.New().String()),
	)

	if err := configureGoose(); err != nil {
		return &SchemaError{Op: "configure", Cause: err}
	}

	start := time.Now()
	log.Info("ensuring database schema",
		slog.String("table", migrationTableName))

	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return &SchemaError{Op: "up", Cause: err}
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return &SchemaError{Op: "version", Cause: err}
	}

	log.Info("database schema ready",
		slog.Int64("version", version),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}

// RunMigrationCommand executes a single operator-invoked migration command
// against the embedded migrations: up, down, status or version. It opens its
// own short-lived connection; the command exits when done.
func RunMigrationCommand(ctx context.Context, dsn, redactedDSN, command string, lg *slog.Logger) error {
	if lg == nil {
		lg = slog.Default()
	}
	log := lg.With(
		slog.String("component", "migrations"),
		slog.String("correlation_id", uuid.New().String()),
		slog.String("command", command),
	)

	log.Info("starting migration operation",
		slog.String("operation", fmt.Sprintf("goose %s", command)),
		slog.String("url", redactedDSN))

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return &SchemaError{Op: command, Cause: fmt.Errorf("failed to open database connection: %w", err)}
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database connection",
				slog.String("error", closeErr.Error()))
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return &SchemaError{Op: command, Cause: fmt.Errorf("failed to connect to database: %w", err)}
	}

	if err := configureGoose(); err != nil {
		return &SchemaError{Op: command, Cause: err}
	}

	start := time.Now()
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, migrationsDir)
	case "down":
		err = goose.DownContext(ctx, db, migrationsDir)
	case "status":
		err = goose.StatusContext(ctx, db, migrationsDir)
	case "version":
		err = goose.VersionContext(ctx, db, migrationsDir)
	default:
		return &SchemaError{
			Op:    command,
			Cause: fmt.Errorf("unknown migration command: %s (expected up, down, status, or version)", command),
		}
	}
	if err != nil {
		return &SchemaError{Op: command, Cause: err}
	}

	log.Info("migration command executed successfully",
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}
