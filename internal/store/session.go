package store

import "context"

// Session is one live, exclusively owned database session. Each operation
// acquires its own session, uses it, and closes it before returning; a
// session is never shared across concurrent operations or cached between
// requests.
type Session interface {
	// Todos returns a TodoStore bound to this session.
	Todos() TodoStore

	// Close releases the underlying connection. It must be called on every
	// exit path, including error paths.
	Close() error
}

// SessionSource produces sessions against the storage backend, absorbing
// database startup races with bounded retry. Acquire blocks until a usable
// session is obtained, the retry budget is exhausted (returning a
// *ConnectionError), or ctx is done.
type SessionSource interface {
	Acquire(ctx context.Context) (Session, error)
}
