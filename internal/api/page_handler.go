package api

import (
	"log/slog"
	"net/http"

	"github.com/kestrelworks/tasklist-api/internal/platform/logger"
	"github.com/kestrelworks/tasklist-api/internal/redact"
	"github.com/kestrelworks/tasklist-api/internal/service"
	"github.com/kestrelworks/tasklist-api/internal/web"
)

// PageHandler serves the HTML task list pages.
type PageHandler struct {
	todoService service.TodoService
	renderer    *web.Renderer
	logger      *slog.Logger
}

// NewPageHandler creates a new PageHandler with the given dependencies.
func NewPageHandler(todoService service.TodoService, renderer *web.Renderer, logger *slog.Logger) *PageHandler {
	// Validate dependencies
	if todoService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("todoService cannot be nil for PageHandler")
	}
	if renderer == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("renderer cannot be nil for PageHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PageHandler")
	}

	return &PageHandler{
		todoService: todoService,
		renderer:    renderer,
		logger:      logger.With(slog.String("component", "page_handler")),
	}
}

// Index handles GET /.
// It renders the task list page with all stored todos, newest first.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	todos, err := h.todoService.ListItems(ctx)
	if err != nil {
		h.renderErrorPage(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderIndex(w, web.IndexData{Todos: todos}); err != nil {
		log.Error("failed to render index page", slog.String("error", redact.Error(err)))
	}
}

// AddTodo handles POST /add.
// It reads the form fields, stores the todo, and redirects back to the list.
// Blank submissions are discarded by the service and still redirect, so the
// browser flow never dead-ends on an empty form.
func (h *PageHandler) AddTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	if err := r.ParseForm(); err != nil {
		log.Debug("failed to parse add todo form", slog.String("error", redact.Error(err)))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	name := r.PostFormValue("name")
	task := r.PostFormValue("task")

	if _, err := h.todoService.CreateItem(ctx, name, task); err != nil {
		h.renderErrorPage(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderErrorPage writes the HTML error page with a sanitized message and the
// status code mapped from the error. The raw error goes to the logs only.
func (h *PageHandler) renderErrorPage(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	log.LogAttrs(r.Context(), logLevel, "page request failed",
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("error", redact.Error(err)))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if renderErr := h.renderer.RenderError(w, web.ErrorData{Message: message}); renderErr != nil {
		log.Error("failed to render error page", slog.String("error", redact.Error(renderErr)))
	}
}
