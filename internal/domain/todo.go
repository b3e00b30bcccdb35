package domain

import (
	"errors"
	"time"
)

// MaxNameLength is the upper bound on the author name, matching the
// VARCHAR(255) column in the todos table.
const MaxNameLength = 255

// Common validation errors for Todo
var (
	ErrEmptyName   = errors.New("todo name cannot be empty")
	ErrEmptyTask   = errors.New("todo task cannot be empty")
	ErrNameTooLong = errors.New("todo name exceeds maximum length")
)

// Todo represents one to-do entry submitted through the web form or the
// JSON API. The database assigns ID and CreatedAt at insert time; both are
// immutable afterwards. Entries are never updated or deleted by the
// application.
type Todo struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Task      string    `json:"task"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTodo creates a Todo ready for insertion with the given author name and
// task text. ID and CreatedAt are left zero; the database fills them in.
// Returns an error if validation fails.
func NewTodo(name, task string) (*Todo, error) {
	todo := &Todo{
		Name: name,
		Task: task,
	}

	if err := todo.Validate(); err != nil {
		return nil, err
	}

	return todo, nil
}

// Validate checks if the Todo has valid data.
// Returns an error if any field fails validation.
func (t *Todo) Validate() error {
	if t.Name == "" {
		return ErrEmptyName
	}

	if len(t.Name) > MaxNameLength {
		return ErrNameTooLong
	}

	if t.Task == "" {
		return ErrEmptyTask
	}

	return nil
}
