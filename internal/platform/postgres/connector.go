package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/juju/clock"
	"github.com/juju/retry"

	"github.com/kestrelworks/tasklist-api/internal/config"
	"github.com/kestrelworks/tasklist-api/internal/platform/logger"
	"github.com/kestrelworks/tasklist-api/internal/redact"
	"github.com/kestrelworks/tasklist-api/internal/store"

	// Register the pgx stdlib driver for database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// dialFunc opens a database handle and verifies it with a ping. Tests inject
// failing implementations to exercise the retry policy without a server.
type dialFunc func(ctx context.Context, dsn string) (*sql.DB, error)

// defaultDial opens a pgx handle and forces an actual connection with a
// ping; sql.Open alone validates nothing.
func defaultDial(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database handle: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("ping failed: %w (also failed to close handle: %v)", err, closeErr)
		}
		return nil, err
	}
	return db, nil
}

// Connector acquires database sessions, retrying failed attempts with a
// fixed pause until its budget runs out. Each acquisition dials fresh; the
// connector holds no connection state between calls, so a database restart
// never poisons later requests.
type Connector struct {
	dsn      string
	redacted string
	attempts int
	delay    time.Duration
	clock    clock.Clock
	dial     dialFunc
	logger   *slog.Logger
}

// Ensure Connector implements store.SessionSource interface
var _ store.SessionSource = (*Connector)(nil)

// NewConnector creates a Connector for the configured database. attempts is
// passed separately so callers can build connectors with different budgets
// from the same endpoint config: the boot and request paths use
// cfg.ConnectAttempts, the health endpoint uses cfg.HealthCheckAttempts.
// If logger is nil, a default logger will be used.
func NewConnector(cfg config.DatabaseConfig, attempts int, logger *slog.Logger) *Connector {
	if attempts <= 0 {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("attempts must be positive for Connector")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &Connector{
		dsn:      cfg.DSN(),
		redacted: cfg.Redacted(),
		attempts: attempts,
		delay:    cfg.ConnectInterval(),
		clock:    clock.WallClock,
		dial:     defaultDial,
		logger:   logger.With(slog.String("component", "connector")),
	}
}

// Acquire implements store.SessionSource. It wraps Connect so callers that
// only need the store interfaces never see the concrete handle type.
func (c *Connector) Acquire(ctx context.Context) (store.Session, error) {
	handle, err := c.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return handle, nil
}

// Connect acquires a database session, retrying up to the configured number
// of attempts with a fixed pause between them. Every failed attempt is
// logged with its attempt number. On failure the returned error is a
// *store.ConnectionError carrying the attempt count and last cause.
//
// cmd/server uses the concrete *Handle at boot to reach the raw *sql.DB for
// schema initialization; everything else goes through Acquire.
func (c *Connector) Connect(ctx context.Context) (*Handle, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	var (
		db           *sql.DB
		attemptsMade int
	)

	err := retry.Call(retry.CallArgs{
		Func: func() error {
			attemptsMade++
			handle, err := c.dial(ctx, c.dsn)
			if err != nil {
				return err
			}
			db = handle
			return nil
		},
		IsFatalError: func(err error) bool {
			// A canceled request should not burn the remaining budget.
			return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		NotifyFunc: func(err error, attempt int) {
			log.Warn("database connection attempt failed",
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", c.attempts),
				slog.Duration("retry_in", c.delay),
				slog.String("target", c.redacted),
				slog.String("error", redact.Error(err)))
		},
		Attempts: c.attempts,
		Delay:    c.delay,
		Clock:    c.clock,
		Stop:     ctx.Done(),
	})
	if err != nil {
		connErr := &store.ConnectionError{
			Attempts:  attemptsMade,
			Exhausted: retry.IsAttemptsExceeded(err),
			Cause:     lastCause(err),
		}
		log.Error("database unreachable",
			slog.Int("attempts", attemptsMade),
			slog.Int("max_attempts", c.attempts),
			slog.Bool("exhausted", connErr.Exhausted),
			slog.String("target", c.redacted),
			slog.String("error", redact.Error(connErr.Cause)))
		return nil, connErr
	}

	log.Debug("database session acquired",
		slog.Int("attempts", attemptsMade))
	return &Handle{db: db, logger: c.logger}, nil
}

// lastCause unwraps the retry package's terminal errors to the final dial
// error; fatal errors come back from retry.Call as themselves.
func lastCause(err error) error {
	if retry.IsAttemptsExceeded(err) || retry.IsRetryStopped(err) {
		return retry.LastError(err)
	}
	return err
}

// Handle is a live, exclusively owned database session. The owner must call
// Close on every exit path; handles are never shared between operations or
// reused across requests.
type Handle struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure Handle implements store.Session interface
var _ store.Session = (*Handle)(nil)

// Todos returns a TodoStore bound to this session.
func (h *Handle) Todos() store.TodoStore {
	return NewPostgresTodoStore(h.db, h.logger)
}

// DB exposes the underlying handle for schema initialization at boot.
func (h *Handle) DB() *sql.DB {
	return h.db
}

// Close releases the session and its underlying connection.
func (h *Handle) Close() error {
	return h.db.Close()
}
