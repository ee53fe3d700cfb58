package store

import (
	"errors"
)

var (
	// ErrNilDatabaseConnection is returned when an engine is constructed without a connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrNoRows is returned when a single-row lookup matched nothing.
	ErrNoRows = errors.New("no rows in result set")

	// ErrTransactionConflict is returned when postgres aborted a transaction because of a
	// serialization failure, a deadlock or a lock timeout. The whole transaction may be retried.
	ErrTransactionConflict = errors.New("transaction conflict, retry the transaction")

	// ErrUniqueViolation is returned when a write violated a unique constraint.
	ErrUniqueViolation = errors.New("unique constraint violated")

	ErrBuildingQueryFailed       = errors.New("building query failed")
	ErrQueryingFailed            = errors.New("querying failed")
	ErrExecutingFailed           = errors.New("executing statement failed")
	ErrScanningDBRowFailed       = errors.New("scanning db row failed")
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
	ErrBeginningTxFailed         = errors.New("beginning transaction failed")
	ErrCommittingTxFailed        = errors.New("committing transaction failed")
)
