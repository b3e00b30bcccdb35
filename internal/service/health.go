package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/kestrelworks/tasklist-api/internal/platform/logger"
	"github.com/kestrelworks/tasklist-api/internal/redact"
	"github.com/kestrelworks/tasklist-api/internal/store"
)

// HealthStatus is the outcome of a single database health probe.
type HealthStatus struct {
	// Healthy is true when a database session could be acquired.
	Healthy bool
	// Detail describes the outcome. On failure it carries the redacted
	// cause, never a raw DSN or credential.
	Detail string
	// CheckedAt is when the probe ran.
	CheckedAt time.Time
}

// HealthChecker reports whether the database is currently reachable.
type HealthChecker interface {
	// Check probes the database once. It blocks for at most the session
	// source's bounded retry budget.
	Check(ctx context.Context) HealthStatus
}

// healthCheckerImpl implements HealthChecker over a session source that is
// typically configured with a shorter retry budget than the request path.
type healthCheckerImpl struct {
	sessions store.SessionSource
	logger   *slog.Logger
}

// NewHealthChecker creates a HealthChecker over the given session source.
// It returns an error if the session source is nil.
func NewHealthChecker(sessions store.SessionSource, logger *slog.Logger) (HealthChecker, error) {
	// Validate dependencies
	if sessions == nil {
		return nil, &TodoServiceError{
			Operation: "create_health_checker",
			Message:   "sessions cannot be nil",
			Err:       nil,
		}
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &healthCheckerImpl{
		sessions: sessions,
		logger:   logger.With("component", "health_checker"),
	}, nil
}

// Check acquires and immediately releases a database session. Acquisition
// going through the retrying session source means a briefly unavailable
// database still probes healthy if it recovers within the budget.
func (h *healthCheckerImpl) Check(ctx context.Context) HealthStatus {
	log := logger.FromContextOrDefault(ctx, h.logger)
	checkedAt := time.Now().UTC()

	session, err := h.sessions.Acquire(ctx)
	if err != nil {
		log.Warn("health check failed",
			"error", err)
		return HealthStatus{
			Healthy:   false,
			Detail:    redact.Error(err),
			CheckedAt: checkedAt,
		}
	}

	if err := session.Close(); err != nil {
		log.Warn("failed to close health check session",
			"error", err)
	}

	log.Debug("health check succeeded")
	return HealthStatus{
		Healthy:   true,
		Detail:    "database reachable",
		CheckedAt: checkedAt,
	}
}
