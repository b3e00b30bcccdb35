package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kestrelworks/tasklist-api/internal/config"
	"github.com/kestrelworks/tasklist-api/internal/platform/postgres"
)

// validMigrationCommands lists the migration operations the -migrate flag
// accepts, mirroring the goose commands the schema layer exposes.
var validMigrationCommands = map[string]bool{
	"up":      true,
	"down":    true,
	"status":  true,
	"version": true,
}

// handleMigration executes the migration command requested via the -migrate
// flag and returns once it completes. It validates the command before
// touching the database so typos fail fast with a usable message.
func handleMigration(ctx context.Context, cfg *config.Config, command string, log *slog.Logger) error {
	if !validMigrationCommands[command] {
		return fmt.Errorf("unknown migration command %q (expected up, down, status, or version)", command)
	}

	log.Info("executing migration command", slog.String("command", command))

	if err := postgres.RunMigrationCommand(ctx, cfg.Database.DSN(), cfg.Database.Redacted(), command, log); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Info("migration command completed", slog.String("command", command))
	return nil
}
