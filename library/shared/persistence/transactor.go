package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
	"github.com/snowRepo/LMS-sub006/store"
	"github.com/snowRepo/LMS-sub006/store/postgresengine"
)

var dialect = goqu.Dialect(postgresengine.DialectPostgres)

// Transactor implements shell.Transactor on a postgres engine.
type Transactor struct {
	engine postgresengine.Engine
}

// NewTransactor creates a Transactor.
func NewTransactor(engine postgresengine.Engine) Transactor {
	return Transactor{engine: engine}
}

// WithinTransaction runs fn with repositories bound to one database transaction.
func (t Transactor) WithinTransaction(ctx context.Context, fn shell.TxFunc) error {
	return t.engine.WithinTransaction(ctx, func(ctx context.Context, tx postgresengine.Querier) error {
		return fn(ctx, repositoriesOn(tx))
	})
}

// Repositories returns repositories that run every statement in its own implicit transaction.
func (t Transactor) Repositories() shell.Repositories {
	return repositoriesOn(t.engine)
}

func repositoriesOn(q postgresengine.Querier) shell.Repositories {
	return shell.Repositories{
		Libraries:     libraryRepository{q: q},
		Books:         bookRepository{q: q},
		Reservations:  reservationRepository{q: q},
		Borrowings:    borrowingRepository{q: q},
		Users:         userRepository{q: q},
		Notifications: notificationRepository{q: q},
	}
}

// domainError maps the store sentinels onto the domain errors. Other errors are returned unchanged.
func domainError(err error, format string, args ...any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNoRows):
		return fmt.Errorf(format+": %w", append(args, core.ErrNotFound)...)
	case errors.Is(err, store.ErrUniqueViolation):
		return fmt.Errorf(format+": %w: %w", append(args, core.ErrAlreadyExists, err)...)
	default:
		return err
	}
}

// expectOneRow turns an update that matched nothing into core.ErrNotFound.
func expectOneRow(affected int64, err error, format string, args ...any) error {
	if err != nil {
		return domainError(err, format, args...)
	}

	if affected == 0 {
		return domainError(store.ErrNoRows, format, args...)
	}

	return nil
}

// collect runs stmt and scans every row with scan.
func collect[T any](
	ctx context.Context,
	q postgresengine.Querier,
	stmt postgresengine.Statement,
	scan func(rows postgresengine.Rows) (T, error),
) ([]T, error) {

	rows, err := q.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []T
	for rows.Next() {
		item, scanErr := scan(rows)
		if scanErr != nil {
			return nil, errors.Join(store.ErrScanningDBRowFailed, scanErr)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func utc(t time.Time) time.Time {
	return t.UTC()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	converted := t.UTC()

	return &converted
}

// qualified prefixes every column with the table alias.
func qualified(alias string, columns []string) []any {
	out := make([]any, 0, len(columns))
	for _, column := range columns {
		out = append(out, goqu.I(alias+"."+column))
	}

	return out
}
