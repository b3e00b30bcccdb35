package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kestrelworks/tasklist-api/internal/config"
	"github.com/kestrelworks/tasklist-api/internal/platform/postgres"
	"github.com/kestrelworks/tasklist-api/internal/service"
	"github.com/kestrelworks/tasklist-api/internal/web"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Service interfaces
	todoService   service.TodoService
	healthChecker service.HealthChecker

	// HTML rendering
	renderer *web.Renderer
}

// newApplication creates a new application instance with all dependencies
// initialized. It connects to the database with the configured retry budget,
// ensures the schema exists, and wires the services. Any failure here is
// fatal: the caller reports it and exits non-zero.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	// Request-path sessions use the full connection retry budget.
	connector := postgres.NewConnector(cfg.Database, cfg.Database.ConnectAttempts, logger)

	// Wait for the database at boot, then apply pending migrations. The boot
	// session is released immediately afterwards; requests acquire their own.
	handle, err := connector.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := handle.EnsureSchema(ctx, logger); err != nil {
		if closeErr := handle.Close(); closeErr != nil {
			logger.Warn("failed to close boot database session", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	if err := handle.Close(); err != nil {
		logger.Warn("failed to close boot database session", "error", err)
	}

	app.todoService, err = service.NewTodoService(connector, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo service: %w", err)
	}

	// The health endpoint probes with a much smaller attempt budget so it
	// answers quickly when the database is down.
	healthConnector := postgres.NewConnector(cfg.Database, cfg.Database.HealthCheckAttempts, logger)
	app.healthChecker, err = service.NewHealthChecker(healthConnector, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create health checker: %w", err)
	}

	app.renderer, err = web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load page templates: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources. Database
// sessions are acquired per request and released by the services that use
// them, so there is no pooled connection to tear down here.
func (app *application) cleanup() {
	app.logger.Info("application shutdown completed")
}
