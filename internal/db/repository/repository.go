package repository

import (
	"context"
	"errors"
	"net"
	"syscall"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mbecker/reloquiz/internal/quiz"
)

// Querier is the subset of pgxpool.Pool the repositories need. Tests
// substitute a stub.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// wrapTransient marks connectivity hiccups so the service layer can
// retry them; everything else passes through untouched.
func wrapTransient(err error) error {
	if err == nil {
		return nil
	}
	if isConnectivityError(err) {
		return &quiz.TransientStoreError{Err: err}
	}
	return err
}

func isConnectivityError(err error) bool {
	if pgconn.SafeToRetry(err) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE)
}
