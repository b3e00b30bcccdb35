package store

import (
	"context"

	"github.com/kestrelworks/tasklist-api/internal/domain"
)

// TodoStore defines the interface for todo data persistence.
// Version: 1.0
type TodoStore interface {
	// Create saves a new todo to the store using a parameterized statement.
	// It handles domain validation internally and returns validation errors
	// from the domain Todo if data is invalid. The database assigns ID and
	// CreatedAt; both are populated on the passed todo before return.
	Create(ctx context.Context, todo *domain.Todo) error

	// ListRecent retrieves every stored todo ordered by creation time
	// descending, ties broken by ID descending. The result is freshly
	// materialized on each call; an empty slice (never nil) is returned
	// when the store holds no todos.
	ListRecent(ctx context.Context) ([]domain.Todo, error)
}
