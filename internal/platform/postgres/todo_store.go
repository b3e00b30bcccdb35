package postgres

import (
	"context"
	"log/slog"

	"github.com/kestrelworks/tasklist-api/internal/domain"
	"github.com/kestrelworks/tasklist-api/internal/platform/logger"
	"github.com/kestrelworks/tasklist-api/internal/store"
)

// PostgresTodoStore implements the store.TodoStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTodoStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTodoStore creates a new PostgreSQL implementation of the TodoStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTodoStore(db store.DBTX, logger *slog.Logger) *PostgresTodoStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTodoStore{
		db:     db,
		logger: logger.With(slog.String("component", "todo_store")),
	}
}

// Ensure PostgresTodoStore implements store.TodoStore interface
var _ store.TodoStore = (*PostgresTodoStore)(nil)

// Create implements store.TodoStore.Create
// It saves a new todo to the database, handling domain validation.
// The database assigns the ID and creation timestamp; both are written back
// to the given todo before returning.
func (s *PostgresTodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate todo data
	if err := todo.Validate(); err != nil {
		log.Warn("todo validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO todos (name, task)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, todo.Name, todo.Task).
		Scan(&todo.ID, &todo.CreatedAt)
	if err != nil {
		log.Error("failed to create todo",
			slog.String("error", err.Error()),
			slog.String("name", todo.Name))
		return MapError(err)
	}

	log.Info("todo created successfully",
		slog.Int64("todo_id", todo.ID),
		slog.String("name", todo.Name))
	return nil
}

// ListRecent implements store.TodoStore.ListRecent
// It retrieves all todos ordered newest first, with insertion order breaking
// creation-time ties. Returns an empty slice if the table is empty.
func (s *PostgresTodoStore) ListRecent(ctx context.Context) ([]domain.Todo, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("listing todos")

	query := `
		SELECT id, name, task, created_at
		FROM todos
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query todos",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		err := rows.Close()
		if err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var todos []domain.Todo
	for rows.Next() {
		var todo domain.Todo

		err := rows.Scan(
			&todo.ID,
			&todo.Name,
			&todo.Task,
			&todo.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan todo row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	// Return empty slice instead of nil if no todos found
	if todos == nil {
		todos = []domain.Todo{}
	}

	log.Debug("listed todos", slog.Int("count", len(todos)))
	return todos, nil
}
