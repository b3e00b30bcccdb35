package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kestrelworks/tasklist-api/internal/store"
)

func TestConnectionError(t *testing.T) {
	t.Parallel()

	t.Run("exhausted retry budget", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("dial tcp 127.0.0.1:5432: connection refused")
		err := &store.ConnectionError{
			Attempts:  30,
			Exhausted: true,
			Cause:     cause,
		}

		assert.Equal(t,
			"database unreachable after 30 attempts: dial tcp 127.0.0.1:5432: connection refused",
			err.Error())
		assert.True(t, errors.Is(err, cause), "should unwrap to the last dial error")
	})

	t.Run("abandoned before exhaustion", func(t *testing.T) {
		t.Parallel()

		err := &store.ConnectionError{
			Attempts:  4,
			Exhausted: false,
			Cause:     errors.New("context canceled"),
		}

		assert.Equal(t,
			"database connection attempt abandoned after 4 attempts: context canceled",
			err.Error())
	})

	t.Run("detected through wrapping", func(t *testing.T) {
		t.Parallel()

		inner := &store.ConnectionError{Attempts: 1, Cause: errors.New("boom")}
		wrapped := fmt.Errorf("acquiring session: %w", inner)

		assert.True(t, store.IsConnectionError(wrapped))

		var connErr *store.ConnectionError
		assert.True(t, errors.As(wrapped, &connErr))
		assert.Equal(t, 1, connErr.Attempts)
	})

	t.Run("plain errors are not connection errors", func(t *testing.T) {
		t.Parallel()

		assert.False(t, store.IsConnectionError(errors.New("boom")))
		assert.False(t, store.IsConnectionError(nil))
	})
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		checker func(error) bool
		want    bool
	}{
		{
			name:    "wrapped not found",
			err:     fmt.Errorf("loading todo: %w", store.ErrNotFound),
			checker: store.IsNotFoundError,
			want:    true,
		},
		{
			name:    "invalid entity direct",
			err:     store.ErrInvalidEntity,
			checker: store.IsInvalidEntityError,
			want:    true,
		},
		{
			name:    "wrapped invalid entity",
			err:     fmt.Errorf("constraint violation: %w", store.ErrInvalidEntity),
			checker: store.IsInvalidEntityError,
			want:    true,
		},
		{
			name:    "unrelated error is not not-found",
			err:     errors.New("boom"),
			checker: store.IsNotFoundError,
			want:    false,
		},
		{
			name:    "query failure is not invalid entity",
			err:     fmt.Errorf("scan: %w", store.ErrQueryFailed),
			checker: store.IsInvalidEntityError,
			want:    false,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.checker(tc.err))
		})
	}
}
