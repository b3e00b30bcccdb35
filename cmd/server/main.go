// Package main implements the entry point for the tasklist API server,
// which serves a shared task list over HTML and JSON backed by PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/kestrelworks/tasklist-api/internal/config"
	"github.com/kestrelworks/tasklist-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a schema migration command (up, down, status, version) and exit")
	flag.Parse()

	if err := run(context.Background(), *migrateCmd); err != nil {
		// The logger may not be configured when startup fails this early,
		// so the diagnostic goes to stderr directly.
		fmt.Fprintf(os.Stderr, "tasklist-api: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration, sets up logging, and either executes a migration
// command or starts the server. It returns an error for any startup failure
// so main can exit non-zero with a clear diagnostic.
func run(ctx context.Context, migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database", cfg.Database.Redacted()))

	if migrateCmd != "" {
		return handleMigration(ctx, cfg, migrateCmd, log)
	}

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
