package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kestrelworks/tasklist-api/internal/domain"
	"github.com/kestrelworks/tasklist-api/internal/store"
)

// MockSessionSource mocks the store.SessionSource interface
type MockSessionSource struct {
	mock.Mock
}

// Ensure MockSessionSource implements store.SessionSource interface
var _ store.SessionSource = (*MockSessionSource)(nil)

func (m *MockSessionSource) Acquire(ctx context.Context) (store.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(store.Session), args.Error(1)
}

// MockSession mocks the store.Session interface
type MockSession struct {
	mock.Mock
}

// Ensure MockSession implements store.Session interface
var _ store.Session = (*MockSession)(nil)

func (m *MockSession) Todos() store.TodoStore {
	args := m.Called()
	return args.Get(0).(store.TodoStore)
}

func (m *MockSession) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockTodoStore mocks the store.TodoStore interface
type MockTodoStore struct {
	mock.Mock
}

// Ensure MockTodoStore implements store.TodoStore interface
var _ store.TodoStore = (*MockTodoStore)(nil)

func (m *MockTodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

func (m *MockTodoStore) ListRecent(ctx context.Context) ([]domain.Todo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Todo), args.Error(1)
}
