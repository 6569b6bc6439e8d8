package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/streetkicks/storefront/internal/domain"
)

// Gateway executes parameterized statements against PostgreSQL with a
// bounded per-statement timeout and translates engine failure codes
// into the domain storage taxonomy. Connections are scoped to each
// statement by database/sql; no handle escapes a repository call.
type Gateway struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewGateway creates a gateway over the given pool
func NewGateway(db *sqlx.DB, timeout time.Duration) *Gateway {
	return &Gateway{db: db, timeout: timeout}
}

// readCtx bounds a read statement to the configured timeout.
func (g *Gateway) readCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, g.timeout)
}

// writeCtx bounds a write statement but detaches it from caller
// cancellation, so an in-flight write commits or rolls back fully even
// when the client disconnects mid-request.
func (g *Gateway) writeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), g.timeout)
}

// Get runs a single-row read into dest
func (g *Gateway) Get(ctx context.Context, op string, dest interface{}, query string, args ...interface{}) error {
	ctx, cancel := g.readCtx(ctx)
	defer cancel()
	return translateError(op, g.db.GetContext(ctx, dest, query, args...))
}

// Select runs a multi-row read into dest
func (g *Gateway) Select(ctx context.Context, op string, dest interface{}, query string, args ...interface{}) error {
	ctx, cancel := g.readCtx(ctx)
	defer cancel()
	return translateError(op, g.db.SelectContext(ctx, dest, query, args...))
}

// Exec runs a write statement and returns the affected row count
func (g *Gateway) Exec(ctx context.Context, op string, query string, args ...interface{}) (int64, error) {
	ctx, cancel := g.writeCtx(ctx)
	defer cancel()

	result, err := g.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, translateError(op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, translateError(op, err)
	}

	return affected, nil
}

// GetWrite runs a write statement with a RETURNING clause into dest
func (g *Gateway) GetWrite(ctx context.Context, op string, dest interface{}, query string, args ...interface{}) error {
	ctx, cancel := g.writeCtx(ctx)
	defer cancel()
	return translateError(op, g.db.GetContext(ctx, dest, query, args...))
}

// PostgreSQL error classes and codes the taxonomy distinguishes.
const (
	pqUndefinedTable      = "42P01"
	pqInvalidPassword     = "28P01"
	pqInvalidAuthSpec     = "28000"
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqNotNullViolation    = "23502"
	pqCheckViolation      = "23514"
	pqAdminShutdown       = "57P01"
	pqCrashShutdown       = "57P02"
	pqCannotConnectNow    = "57P03"
	pqTooManyConnections  = "53300"
)

// translateError maps an engine failure onto the domain storage
// taxonomy. sql.ErrNoRows keeps its usual ErrNotFound meaning; anything
// without a specific mapping is wrapped so the raw engine text reaches
// logs but never clients.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, domain.ErrUnavailable)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUndefinedTable:
			return fmt.Errorf("%s: %w", op, domain.ErrSchemaMissing)
		case pqInvalidPassword, pqInvalidAuthSpec:
			return fmt.Errorf("%s: %w", op, domain.ErrAccessDenied)
		case pqUniqueViolation, pqForeignKeyViolation, pqNotNullViolation, pqCheckViolation:
			return fmt.Errorf("%s: %w", op, domain.ErrConstraint)
		case pqAdminShutdown, pqCrashShutdown, pqCannotConnectNow, pqTooManyConnections:
			return fmt.Errorf("%s: %w", op, domain.ErrUnavailable)
		}
		return &domain.StorageError{Op: op, Err: err}
	}

	var netErr *net.OpError
	if errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%s: %w", op, domain.ErrUnavailable)
	}

	return &domain.StorageError{Op: op, Err: err}
}
