package api

import (
	"log/slog"
	"net/http"

	"github.com/kestrelworks/tasklist-api/internal/api/shared"
	"github.com/kestrelworks/tasklist-api/internal/platform/logger"
	"github.com/kestrelworks/tasklist-api/internal/redact"
	"github.com/kestrelworks/tasklist-api/internal/service"
)

// TodoHandler handles the JSON todo endpoints.
type TodoHandler struct {
	todoService service.TodoService
	logger      *slog.Logger
}

// NewTodoHandler creates a new TodoHandler with the given dependencies.
func NewTodoHandler(todoService service.TodoService, logger *slog.Logger) *TodoHandler {
	// Validate dependencies
	if todoService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("todoService cannot be nil for TodoHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TodoHandler")
	}

	return &TodoHandler{
		todoService: todoService,
		logger:      logger.With(slog.String("component", "todo_handler")),
	}
}

// ListTodos handles GET /api/todos.
// It returns all stored todos, newest first.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	todos, err := h.todoService.ListItems(ctx)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("todos listed", slog.Int("count", len(todos)))
	shared.RespondWithJSON(w, r, http.StatusOK, NewTodoListResponse(todos))
}

// CreateTodo handles POST /api/todos.
// It validates the request payload, stores the todo, and echoes the stored
// entity including its assigned ID and creation timestamp.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContextOrDefault(ctx, h.logger)

	// Parse request body
	var req CreateTodoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("failed to decode todo creation request",
			slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// Validate request fields
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	todo, err := h.todoService.CreateItem(ctx, req.Name, req.Task)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	// Fields that pass tag validation can still trim to nothing, in which
	// case the service discards the submission and returns no todo.
	if todo == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Todo name and task must not be blank")
		return
	}

	log.Debug("todo created", slog.Int64("todo_id", todo.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, NewTodoResponse(*todo))
}
