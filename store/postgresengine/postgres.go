package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/snowRepo/LMS-sub006/store"
	"github.com/snowRepo/LMS-sub006/store/postgresengine/internal/adapters"
)

const (
	// DialectPostgres is the goqu dialect statements for this engine must be built with.
	DialectPostgres = "postgres"

	logMsgBuildStatementFailed = "failed to build sql statement"
	logMsgDBQueryFailed        = "database query execution failed"
	logMsgDBExecFailed         = "database statement execution failed"
	logMsgCloseRowsFailed      = "failed to close database rows"
	logMsgRowsAffectedFailed   = "failed to get rows affected count"
	logMsgBeginTxFailed        = "failed to begin transaction"
	logMsgCommitTxFailed       = "failed to commit transaction"
	logMsgRollbackTxFailed     = "failed to roll back transaction"
	logMsgTxCommitted          = "transaction committed"
	logMsgTxRolledBack         = "transaction rolled back"
	logMsgTxConflict           = "transaction conflict detected"
	logMsgSQLExecuted          = "executed sql for: "
	logMsgOperation            = "store operation: "
	logAttrError               = "error"
	logAttrQuery               = "query"
	logAttrArgCount            = "arg_count"
	logAttrDurationMS          = "duration_ms"
	logAttrRowsAffected        = "rows_affected"
	logActionQuery             = "query"
	logActionExec              = "exec"
)

// Statement is anything that renders to SQL with positional arguments, e.g. goqu datasets
// built with the postgres dialect and Prepared(true).
type Statement interface {
	ToSQL() (string, []any, error)
}

// Rows is an open result set. Callers must Close it.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Querier executes statements, either directly on the pool or inside a transaction.
type Querier interface {
	Query(ctx context.Context, stmt Statement) (Rows, error)
	Exec(ctx context.Context, stmt Statement) (int64, error)
}

// TxFunc is a unit of work executed inside a transaction.
type TxFunc func(ctx context.Context, tx Querier) error

// Engine executes statements and transactions against PostgreSQL.
type Engine struct {
	db               adapters.DBAdapter
	logger           Logger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
	contextualLogger ContextualLogger
}

// NewEngineFromPGXPool creates a new Engine using a pgx Pool with optional configuration.
func NewEngineFromPGXPool(db *pgxpool.Pool, options ...Option) (Engine, error) {
	if db == nil {
		return Engine{}, store.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewPGXAdapter(db), options...)
}

// NewEngineFromPGXPoolAndReplica creates a new Engine using a primary pgx Pool and a replica pool.
// Queries run on the replica only when the context carries store.WithEventualConsistency.
func NewEngineFromPGXPoolAndReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (Engine, error) {
	if db == nil || replica == nil {
		return Engine{}, store.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewEngineFromSQLDB creates a new Engine using a sql.DB with optional configuration.
func NewEngineFromSQLDB(db *sql.DB, options ...Option) (Engine, error) {
	if db == nil {
		return Engine{}, store.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLAdapter(db), options...)
}

// NewEngineFromSQLX creates a new Engine using a sqlx.DB with optional configuration.
func NewEngineFromSQLX(db *sqlx.DB, options ...Option) (Engine, error) {
	if db == nil {
		return Engine{}, store.ErrNilDatabaseConnection
	}

	return newEngine(adapters.NewSQLXAdapter(db), options...)
}

func newEngine(db adapters.DBAdapter, options ...Option) (Engine, error) {
	e := Engine{db: db}

	for _, option := range options {
		if err := option(&e); err != nil {
			return Engine{}, err
		}
	}

	return e, nil
}

// Query executes a read statement outside any transaction.
func (e Engine) Query(ctx context.Context, stmt Statement) (Rows, error) {
	return e.query(ctx, e.db, stmt)
}

// Exec executes a write statement outside any transaction and returns the affected row count.
func (e Engine) Exec(ctx context.Context, stmt Statement) (int64, error) {
	return e.exec(ctx, e.db, stmt)
}

// WithinTransaction runs fn inside a transaction. The transaction commits when fn returns nil
// and rolls back when fn returns an error or panics. Serialization failures, deadlocks and lock
// timeouts surface as store.ErrTransactionConflict.
func (e Engine) WithinTransaction(ctx context.Context, fn TxFunc) error {
	ctx, span := e.startTransactionSpan(ctx)
	start := time.Now()

	dbTx, beginErr := e.db.BeginTx(ctx)
	if beginErr != nil {
		err := errors.Join(store.ErrBeginningTxFailed, classifyDriverError(beginErr))
		e.logError(ctx, logMsgBeginTxFailed, beginErr)
		e.recordErrorMetrics(ctx, operationBegin, errorTypeFor(err))
		e.finishTransactionSpan(span, statusError, time.Since(start), err)

		return err
	}

	committed := false
	defer func() {
		if committed {
			return
		}

		if rollbackErr := dbTx.Rollback(ctx); rollbackErr != nil {
			e.logWarn(ctx, logMsgRollbackTxFailed, logAttrError, rollbackErr.Error())
		}

		if p := recover(); p != nil {
			e.finishTransactionSpan(span, statusError, time.Since(start), fmt.Errorf("panic: %v", p))
			panic(p)
		}
	}()

	if fnErr := fn(ctx, transaction{engine: e, tx: dbTx}); fnErr != nil {
		status := statusRolledBack
		if errors.Is(fnErr, store.ErrTransactionConflict) {
			status = statusConflict
			e.recordConflictMetrics(ctx)
			e.logInfo(ctx, logMsgTxConflict, logAttrError, fnErr.Error())
		}

		e.logDebug(ctx, logMsgOperation+logMsgTxRolledBack, logAttrDurationMS, toMilliseconds(time.Since(start)))
		e.recordDurationMetrics(ctx, metricTransactionDuration, time.Since(start), operationTransaction, status)
		e.finishTransactionSpan(span, status, time.Since(start), fnErr)

		return fnErr
	}

	if commitErr := dbTx.Commit(ctx); commitErr != nil {
		err := errors.Join(store.ErrCommittingTxFailed, classifyDriverError(commitErr))
		committed = true // a failed commit has already ended the transaction
		e.logError(ctx, logMsgCommitTxFailed, commitErr)
		e.recordErrorMetrics(ctx, operationCommit, errorTypeFor(err))
		if errors.Is(err, store.ErrTransactionConflict) {
			e.recordConflictMetrics(ctx)
		}
		e.finishTransactionSpan(span, statusError, time.Since(start), err)

		return err
	}

	committed = true
	duration := time.Since(start)
	e.logInfo(ctx, logMsgOperation+logMsgTxCommitted, logAttrDurationMS, toMilliseconds(duration))
	e.recordDurationMetrics(ctx, metricTransactionDuration, duration, operationTransaction, statusSuccess)
	e.finishTransactionSpan(span, statusSuccess, duration, nil)

	return nil
}

// QueryRow runs stmt and scans the first row into dest. It returns store.ErrNoRows when the
// statement matched nothing.
func QueryRow(ctx context.Context, q Querier, stmt Statement, dest ...any) error {
	rows, err := q.Query(ctx, stmt)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if iterErr := rows.Err(); iterErr != nil {
			return errors.Join(store.ErrQueryingFailed, classifyDriverError(iterErr))
		}

		return store.ErrNoRows
	}

	if scanErr := rows.Scan(dest...); scanErr != nil {
		return errors.Join(store.ErrScanningDBRowFailed, scanErr)
	}

	return nil
}

// transaction implements Querier on an open database transaction.
type transaction struct {
	engine Engine
	tx     adapters.DBTx
}

func (t transaction) Query(ctx context.Context, stmt Statement) (Rows, error) {
	return t.engine.query(ctx, t.tx, stmt)
}

func (t transaction) Exec(ctx context.Context, stmt Statement) (int64, error) {
	return t.engine.exec(ctx, t.tx, stmt)
}

func (e Engine) query(ctx context.Context, db adapters.DBQuerier, stmt Statement) (Rows, error) {
	sqlQuery, args, buildErr := e.build(ctx, stmt)
	if buildErr != nil {
		return nil, buildErr
	}

	start := time.Now()
	rows, queryErr := db.Query(ctx, sqlQuery, args...)
	duration := time.Since(start)
	e.logQueryWithDuration(ctx, sqlQuery, len(args), logActionQuery, duration)

	if queryErr != nil {
		err := errors.Join(store.ErrQueryingFailed, classifyDriverError(queryErr))
		e.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		e.recordErrorMetrics(ctx, operationQuery, errorTypeFor(err))

		return nil, err
	}

	e.recordDurationMetrics(ctx, metricQueryDuration, duration, operationQuery, statusSuccess)

	return &closingRows{DBRows: rows, engine: e, ctx: ctx}, nil
}

func (e Engine) exec(ctx context.Context, db adapters.DBQuerier, stmt Statement) (int64, error) {
	sqlQuery, args, buildErr := e.build(ctx, stmt)
	if buildErr != nil {
		return 0, buildErr
	}

	start := time.Now()
	result, execErr := db.Exec(ctx, sqlQuery, args...)
	duration := time.Since(start)
	e.logQueryWithDuration(ctx, sqlQuery, len(args), logActionExec, duration)

	if execErr != nil {
		err := errors.Join(store.ErrExecutingFailed, classifyDriverError(execErr))
		e.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		e.recordErrorMetrics(ctx, operationExec, errorTypeFor(err))

		return 0, err
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		e.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)

		return 0, errors.Join(store.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	e.recordDurationMetrics(ctx, metricExecDuration, duration, operationExec, statusSuccess)

	return rowsAffected, nil
}

func (e Engine) build(ctx context.Context, stmt Statement) (string, []any, error) {
	sqlQuery, args, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		e.logError(ctx, logMsgBuildStatementFailed, toSQLErr)

		return "", nil, errors.Join(store.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, args, nil
}

// closingRows logs close failures and maps iteration errors onto the store sentinels.
type closingRows struct {
	adapters.DBRows
	engine Engine
	ctx    context.Context //nolint:containedctx // rows live only as long as the query context
}

func (r *closingRows) Err() error {
	if err := r.DBRows.Err(); err != nil {
		return errors.Join(store.ErrQueryingFailed, classifyDriverError(err))
	}

	return nil
}

func (r *closingRows) Close() error {
	if closeErr := r.DBRows.Close(); closeErr != nil {
		r.engine.logWarn(r.ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		return closeErr
	}

	return nil
}
