package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/snowRepo/LMS-sub006/store"
)

func Test_ClassifyDriverError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "pgx serialization failure", err: &pgconn.PgError{Code: "40001"}, expected: store.ErrTransactionConflict},
		{name: "pgx deadlock", err: &pgconn.PgError{Code: "40P01"}, expected: store.ErrTransactionConflict},
		{name: "pgx lock not available", err: &pgconn.PgError{Code: "55P03"}, expected: store.ErrTransactionConflict},
		{name: "pgx unique violation", err: &pgconn.PgError{Code: "23505"}, expected: store.ErrUniqueViolation},
		{name: "pq serialization failure", err: &pq.Error{Code: "40001"}, expected: store.ErrTransactionConflict},
		{name: "pq unique violation", err: &pq.Error{Code: "23505"}, expected: store.ErrUniqueViolation},
		{name: "wrapped pgx error", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), expected: store.ErrUniqueViolation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			classified := classifyDriverError(tc.err)

			// assert
			assert.ErrorIs(t, classified, tc.expected)
			assert.ErrorIs(t, classified, tc.err)
		})
	}
}

func Test_ClassifyDriverError_LeavesOtherErrorsUntouched(t *testing.T) {
	// arrange
	checkViolation := &pgconn.PgError{Code: "23514"}
	plain := errors.New("connection reset")

	// act + assert
	assert.Same(t, checkViolation, classifyDriverError(checkViolation))
	assert.Equal(t, plain, classifyDriverError(plain))
}

func Test_ErrorTypeFor(t *testing.T) {
	assert.Equal(t, errorTypeConflict, errorTypeFor(errors.Join(store.ErrTransactionConflict, errors.New("x"))))
	assert.Equal(t, errorTypeUniqueViolation, errorTypeFor(store.ErrUniqueViolation))
	assert.Equal(t, errorTypeCanceled, errorTypeFor(context.Canceled))
	assert.Equal(t, errorTypeTimeout, errorTypeFor(context.DeadlineExceeded))
	assert.Equal(t, errorTypeDatabase, errorTypeFor(errors.New("boom")))
}
