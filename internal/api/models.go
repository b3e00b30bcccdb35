package api

import (
	"time"

	"github.com/kestrelworks/tasklist-api/internal/domain"
)

// Common request/response structures

// CreateTodoRequest defines the payload for the todo creation endpoint.
type CreateTodoRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Task string `json:"task" validate:"required"`
}

// TodoResponse defines the representation of a todo item in API responses.
type TodoResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Task      string    `json:"task"`
	CreatedAt time.Time `json:"created_at"`
}

// TodoListResponse defines the response for the todo listing endpoint.
type TodoListResponse struct {
	Todos []TodoResponse `json:"todos"`
	Count int            `json:"count"`
}

// HealthResponse defines the response for the health check endpoint.
type HealthResponse struct {
	Status    string    `json:"status"`
	Detail    string    `json:"detail,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// NewTodoResponse converts a domain todo to its API representation.
func NewTodoResponse(todo domain.Todo) TodoResponse {
	return TodoResponse{
		ID:        todo.ID,
		Name:      todo.Name,
		Task:      todo.Task,
		CreatedAt: todo.CreatedAt,
	}
}

// NewTodoListResponse converts a slice of domain todos to the list response.
// The todos field is always a JSON array, never null.
func NewTodoListResponse(todos []domain.Todo) TodoListResponse {
	items := make([]TodoResponse, 0, len(todos))
	for _, todo := range todos {
		items = append(items, NewTodoResponse(todo))
	}
	return TodoListResponse{
		Todos: items,
		Count: len(items),
	}
}
