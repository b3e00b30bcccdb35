package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kestrelworks/tasklist-api/internal/api/shared"
	"github.com/kestrelworks/tasklist-api/internal/domain"
	"github.com/kestrelworks/tasklist-api/internal/platform/logger"
	"github.com/kestrelworks/tasklist-api/internal/service"
	"github.com/kestrelworks/tasklist-api/internal/store"
	"github.com/kestrelworks/tasklist-api/internal/testutils"
)

func TestNewTodoHandler(t *testing.T) {
	t.Run("valid dependencies", func(t *testing.T) {
		handler := NewTodoHandler(new(MockTodoService), newDiscardLogger(t))
		assert.NotNil(t, handler)
	})

	t.Run("nil service panics", func(t *testing.T) {
		assert.PanicsWithValue(t, "todoService cannot be nil for TodoHandler", func() {
			NewTodoHandler(nil, newDiscardLogger(t))
		})
	})

	t.Run("nil logger panics", func(t *testing.T) {
		assert.PanicsWithValue(t, "logger cannot be nil for TodoHandler", func() {
			NewTodoHandler(new(MockTodoService), nil)
		})
	})
}

func TestListTodos(t *testing.T) {
	t.Run("returns todos newest first", func(t *testing.T) {
		svc := new(MockTodoService)
		stored := []domain.Todo{
			{ID: 2, Name: "groceries", Task: "buy milk", CreatedAt: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)},
			{ID: 1, Name: "garden", Task: "water the plants", CreatedAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)},
		}
		svc.On("ListItems", mock.Anything).Return(stored, nil)

		handler := NewTodoHandler(svc, newDiscardLogger(t))
		req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
		w := httptest.NewRecorder()

		handler.ListTodos(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var resp TodoListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Count)
		require.Len(t, resp.Todos, 2)
		assert.Equal(t, int64(2), resp.Todos[0].ID)
		assert.Equal(t, "groceries", resp.Todos[0].Name)
		assert.Equal(t, int64(1), resp.Todos[1].ID)

		svc.AssertExpectations(t)
	})

	t.Run("empty list encodes as empty array", func(t *testing.T) {
		svc := new(MockTodoService)
		svc.On("ListItems", mock.Anything).Return([]domain.Todo{}, nil)

		handler := NewTodoHandler(svc, newDiscardLogger(t))
		w := httptest.NewRecorder()

		handler.ListTodos(w, httptest.NewRequest(http.MethodGet, "/api/todos", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"todos":[]`)

		var resp TodoListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 0, resp.Count)
	})

	t.Run("connection failure returns 503 with safe body", func(t *testing.T) {
		svc := new(MockTodoService)
		connErr := &store.ConnectionError{
			Attempts:  30,
			Exhausted: true,
			Cause:     errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"),
		}
		svc.On("ListItems", mock.Anything).Return(nil, error(connErr))

		log, buf := logger.GetTestLogger(t)
		handler := NewTodoHandler(svc, newDiscardLogger(t))
		req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
		req = req.WithContext(logger.WithLogger(req.Context(), log))
		w := httptest.NewRecorder()

		handler.ListTodos(w, req)

		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
		assert.Equal(t, "Service temporarily unavailable", errResp.Error)

		testutils.AssertSafeResponseBody(t, w.Body.String())
		assert.NotContains(t, w.Body.String(), "10.0.0.5")

		logger.AssertLogField(t, buf, "level", "ERROR")
		logger.AssertLogContains(t, buf, "error response sent")
	})

	t.Run("query failure returns 500 with safe body", func(t *testing.T) {
		svc := new(MockTodoService)
		svcErr := &service.TodoServiceError{
			Operation: "list_items",
			Message:   "failed to list todos",
			Err:       fmt.Errorf("%w: pq: relation does not exist", store.ErrQueryFailed),
		}
		svc.On("ListItems", mock.Anything).Return(nil, error(svcErr))

		handler := NewTodoHandler(svc, newDiscardLogger(t))
		w := httptest.NewRecorder()

		handler.ListTodos(w, httptest.NewRequest(http.MethodGet, "/api/todos", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
		assert.Equal(t, "An unexpected error occurred", errResp.Error)
		testutils.AssertSafeResponseBody(t, w.Body.String())
	})
}

func TestCreateTodo(t *testing.T) {
	t.Run("stores todo and echoes entity", func(t *testing.T) {
		svc := new(MockTodoService)
		created := &domain.Todo{
			ID:        7,
			Name:      "groceries",
			Task:      "buy milk",
			CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		}
		svc.On("CreateItem", mock.Anything, "groceries", "buy milk").Return(created, nil)

		handler := NewTodoHandler(svc, newDiscardLogger(t))
		req := httptest.NewRequest(
			http.MethodPost,
			"/api/todos",
			strings.NewReader(`{"name":"groceries","task":"buy milk"}`),
		)
		w := httptest.NewRecorder()

		handler.CreateTodo(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp TodoResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, "groceries", resp.Name)
		assert.Equal(t, "buy milk", resp.Task)
		assert.True(t, created.CreatedAt.Equal(resp.CreatedAt))

		svc.AssertExpectations(t)
	})

	t.Run("invalid json returns 400", func(t *testing.T) {
		svc := new(MockTodoService)
		handler := NewTodoHandler(svc, newDiscardLogger(t))

		req := httptest.NewRequest(http.MethodPost, "/api/todos", strings.NewReader(`{"name":`))
		w := httptest.NewRecorder()

		handler.CreateTodo(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
		assert.Equal(t, "Invalid request format", errResp.Error)

		svc.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing name returns field message", func(t *testing.T) {
		svc := new(MockTodoService)
		handler := NewTodoHandler(svc, newDiscardLogger(t))

		req := httptest.NewRequest(http.MethodPost, "/api/todos", strings.NewReader(`{"task":"buy milk"}`))
		w := httptest.NewRecorder()

		handler.CreateTodo(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
		assert.Equal(t, "Invalid Name: required field", errResp.Error)

		svc.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("overlong name returns field message", func(t *testing.T) {
		svc := new(MockTodoService)
		handler := NewTodoHandler(svc, newDiscardLogger(t))

		body := fmt.Sprintf(`{"name":%q,"task":"buy milk"}`, strings.Repeat("x", domain.MaxNameLength+1))
		req := httptest.NewRequest(http.MethodPost, "/api/todos", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateTodo(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
		assert.Equal(t, "Invalid Name: too long", errResp.Error)

		svc.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("whitespace only fields return 400", func(t *testing.T) {
		svc := new(MockTodoService)
		// Passes tag validation but trims to nothing, so the service
		// discards it and returns no todo.
		svc.On("CreateItem", mock.Anything, "   ", "\t").Return(nil, nil)

		handler := NewTodoHandler(svc, newDiscardLogger(t))
		req := httptest.NewRequest(http.MethodPost, "/api/todos", strings.NewReader(`{"name":"   ","task":"\t"}`))
		w := httptest.NewRecorder()

		handler.CreateTodo(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
		assert.Equal(t, "Todo name and task must not be blank", errResp.Error)

		svc.AssertExpectations(t)
	})

	t.Run("connection failure returns 503 with safe body", func(t *testing.T) {
		svc := new(MockTodoService)
		connErr := &store.ConnectionError{
			Attempts:  30,
			Exhausted: true,
			Cause:     errors.New(`pq: password authentication failed for user "app"`),
		}
		svc.On("CreateItem", mock.Anything, "groceries", "buy milk").Return(nil, error(connErr))

		handler := NewTodoHandler(svc, newDiscardLogger(t))
		req := httptest.NewRequest(
			http.MethodPost,
			"/api/todos",
			strings.NewReader(`{"name":"groceries","task":"buy milk"}`),
		)
		w := httptest.NewRecorder()

		handler.CreateTodo(w, req)

		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
		assert.Equal(t, "Service temporarily unavailable", errResp.Error)
		testutils.AssertSafeResponseBody(t, w.Body.String())
	})
}

func TestNewTodoListResponse(t *testing.T) {
	t.Run("nil slice encodes as empty array", func(t *testing.T) {
		resp := NewTodoListResponse(nil)

		assert.NotNil(t, resp.Todos)
		assert.Equal(t, 0, resp.Count)

		encoded, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.Contains(t, string(encoded), `"todos":[]`)
	})
}
