package api

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/kestrelworks/tasklist-api/internal/domain"
	"github.com/kestrelworks/tasklist-api/internal/service"
)

// newDiscardLogger returns a logger for tests that do not inspect log output.
func newDiscardLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockTodoService is a testify mock for service.TodoService.
type MockTodoService struct {
	mock.Mock
}

var _ service.TodoService = (*MockTodoService)(nil)

func (m *MockTodoService) ListItems(ctx context.Context) ([]domain.Todo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Todo), args.Error(1)
}

func (m *MockTodoService) CreateItem(ctx context.Context, name, task string) (*domain.Todo, error) {
	args := m.Called(ctx, name, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Todo), args.Error(1)
}

// MockHealthChecker is a testify mock for service.HealthChecker.
type MockHealthChecker struct {
	mock.Mock
}

var _ service.HealthChecker = (*MockHealthChecker)(nil)

func (m *MockHealthChecker) Check(ctx context.Context) service.HealthStatus {
	args := m.Called(ctx)
	return args.Get(0).(service.HealthStatus)
}
