package postgresengine

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/snowRepo/LMS-sub006/store"
)

const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateLockNotAvailable     = "55P03"
	sqlStateUniqueViolation      = "23505"
)

// classifyDriverError joins the matching store sentinel onto pgx and lib/pq errors.
func classifyDriverError(err error) error {
	switch sqlStateOf(err) {
	case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateLockNotAvailable:
		return errors.Join(store.ErrTransactionConflict, err)

	case sqlStateUniqueViolation:
		return errors.Join(store.ErrUniqueViolation, err)

	default:
		return err
	}
}

func sqlStateOf(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// errorTypeFor extracts a metrics label from a classified error.
func errorTypeFor(err error) string {
	switch {
	case errors.Is(err, store.ErrTransactionConflict):
		return errorTypeConflict
	case errors.Is(err, store.ErrUniqueViolation):
		return errorTypeUniqueViolation
	case errors.Is(err, context.Canceled):
		return errorTypeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return errorTypeTimeout
	default:
		return errorTypeDatabase
	}
}
