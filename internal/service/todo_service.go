package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kestrelworks/tasklist-api/internal/domain"
	"github.com/kestrelworks/tasklist-api/internal/platform/logger"
	"github.com/kestrelworks/tasklist-api/internal/store"
)

// TodoService provides the todo list operations backed by the store.
type TodoService interface {
	// ListItems returns all todos ordered newest first. The result is a
	// fresh slice on every call, empty (never nil) when there are no rows.
	ListItems(ctx context.Context) ([]domain.Todo, error)

	// CreateItem trims both inputs and stores a new todo. When either field
	// is blank after trimming it returns (nil, nil) without touching the
	// database; blank form submissions are deliberately ignored.
	CreateItem(ctx context.Context, name, task string) (*domain.Todo, error)
}

// TodoServiceError wraps errors from the todo service with context.
type TodoServiceError struct {
	// Operation is the operation that failed (e.g., "create_item", "list_items")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TodoServiceError.
func (e *TodoServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("todo service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("todo service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TodoServiceError) Unwrap() error {
	return e.Err
}

// NewTodoServiceError creates a new TodoServiceError.
// Errors the API layer classifies by identity pass through unwrapped.
func NewTodoServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	// Domain validation failures keep their identity for status mapping
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptyTask) ||
		errors.Is(err, domain.ErrNameTooLong) {
		return err
	}

	// Acquisition failures carry their attempt count and cause
	if store.IsConnectionError(err) {
		return err
	}

	return &TodoServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// todoServiceImpl implements the TodoService interface
type todoServiceImpl struct {
	sessions store.SessionSource
	logger   *slog.Logger
}

// NewTodoService creates a new TodoService over the given session source.
// It returns an error if the session source is nil.
func NewTodoService(sessions store.SessionSource, logger *slog.Logger) (TodoService, error) {
	// Validate dependencies
	if sessions == nil {
		return nil, &TodoServiceError{
			Operation: "create_service",
			Message:   "sessions cannot be nil",
			Err:       nil,
		}
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &todoServiceImpl{
		sessions: sessions,
		logger:   logger.With("component", "todo_service"),
	}, nil
}

// ListItems acquires a session, reads the full list newest first, and
// releases the session before returning.
func (s *todoServiceImpl) ListItems(ctx context.Context) ([]domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := s.sessions.Acquire(ctx)
	if err != nil {
		log.Error("failed to acquire database session",
			"error", err,
			"operation", "list_items")
		return nil, err
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Warn("failed to close database session",
				"error", err)
		}
	}()

	todos, err := session.Todos().ListRecent(ctx)
	if err != nil {
		log.Error("failed to list todos",
			"error", err)
		return nil, NewTodoServiceError("list_items", "failed to list todos", err)
	}

	log.Debug("listed todo items", "count", len(todos))
	return todos, nil
}

// CreateItem stores a new todo built from the trimmed inputs. Each call runs
// on its own session; the session is released before returning on every path.
func (s *todoServiceImpl) CreateItem(
	ctx context.Context,
	name, task string,
) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// 1. Trim the submitted fields; blank submissions are ignored
	name = strings.TrimSpace(name)
	task = strings.TrimSpace(task)
	if name == "" || task == "" {
		log.Debug("ignoring todo submission with blank fields")
		return nil, nil
	}

	// 2. Build and validate the domain object
	todo, err := domain.NewTodo(name, task)
	if err != nil {
		log.Warn("todo submission failed validation",
			"error", err)
		return nil, NewTodoServiceError("create_item", "invalid todo", err)
	}

	// 3. Acquire a session for this operation only
	session, err := s.sessions.Acquire(ctx)
	if err != nil {
		log.Error("failed to acquire database session",
			"error", err,
			"operation", "create_item")
		return nil, err
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Warn("failed to close database session",
				"error", err)
		}
	}()

	// 4. Insert; the database assigns id and created_at
	if err := session.Todos().Create(ctx, todo); err != nil {
		log.Error("failed to save todo",
			"error", err,
			"name", todo.Name)
		return nil, NewTodoServiceError("create_item", "failed to save todo", err)
	}

	log.Info("todo item created",
		"todo_id", todo.ID,
		"name", todo.Name)
	return todo, nil
}
