package api

import (
	"log/slog"
	"net/http"

	"github.com/kestrelworks/tasklist-api/internal/api/shared"
	"github.com/kestrelworks/tasklist-api/internal/platform/logger"
	"github.com/kestrelworks/tasklist-api/internal/service"
)

// HealthHandler handles the health check endpoint.
type HealthHandler struct {
	checker service.HealthChecker
	logger  *slog.Logger
}

// NewHealthHandler creates a new HealthHandler with the given dependencies.
func NewHealthHandler(checker service.HealthChecker, logger *slog.Logger) *HealthHandler {
	// Validate dependencies
	if checker == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("checker cannot be nil for HealthHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for HealthHandler")
	}

	return &HealthHandler{
		checker: checker,
		logger:  logger.With(slog.String("component", "health_handler")),
	}
}

// Check handles GET /health.
// It probes database connectivity within a bounded budget and reports the
// outcome, so orchestrators can gate traffic on the response code.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	status := h.checker.Check(ctx)

	httpStatus := http.StatusOK
	label := "healthy"
	if !status.Healthy {
		httpStatus = http.StatusInternalServerError
		label = "unhealthy"
	}

	log.Debug("health probe served", slog.String("status", label))
	shared.RespondWithJSON(w, r, httpStatus, HealthResponse{
		Status:    label,
		Detail:    status.Detail,
		CheckedAt: status.CheckedAt,
	})
}
