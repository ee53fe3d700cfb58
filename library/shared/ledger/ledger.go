package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

const (
	// CopyMutationsMetric counts ledger writes by operation.
	CopyMutationsMetric = "ledger_copy_mutations_total"

	// HoldRefusedMetric counts holds refused because no copy was left.
	HoldRefusedMetric = "ledger_hold_refused_total"

	operationHold    = "hold"
	operationRelease = "release"
	operationAdjust  = "adjust_total"

	logMsgReleaseClamped = "ledger release ignored, all copies already available"
	logMsgHoldRefused    = "ledger hold refused"
	logMsgCopiesChanged  = "ledger copies changed"

	logAttrOperation = "operation"
	logAttrBookID    = "book_id"
	logAttrTotal     = "total_copies"
	logAttrAvailable = "available_copies"
)

// Ledger mutates available copies. The zero value works without observability.
type Ledger struct {
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
	metricsCollector shell.MetricsCollector
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger for the Ledger.
func WithLogger(logger shell.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// WithContextualLogger sets the contextual logger for the Ledger.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(l *Ledger) {
		l.contextualLogger = logger
	}
}

// WithMetrics sets the metrics collector for the Ledger.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(l *Ledger) {
		l.metricsCollector = collector
	}
}

// New creates a Ledger.
func New(opts ...Option) Ledger {
	l := Ledger{}

	for _, opt := range opts {
		opt(&l)
	}

	return l
}

// Hold claims one copy of the book. It returns core.ErrUnavailable when the book is inactive or has no
// copy left at lock time.
func (l Ledger) Hold(ctx context.Context, books shell.BookRepository, bookID int64, at time.Time) (core.Book, error) {
	book, err := books.LockByID(ctx, bookID)
	if err != nil {
		return core.Book{}, err
	}

	if !book.CanHold() {
		l.warn(ctx, logMsgHoldRefused, logAttrBookID, book.ID, logAttrAvailable, book.AvailableCopies)
		l.count(ctx, HoldRefusedMetric, operationHold)

		return book, fmt.Errorf("book %q: %w", book.BookID, core.ErrUnavailable)
	}

	return l.save(ctx, books, book, book.TotalCopies, book.AvailableCopies-1, at, operationHold)
}

// Release gives one copy of the book back. A release on a book whose copies are all available is
// ignored and logged, the counter never exceeds the total.
func (l Ledger) Release(ctx context.Context, books shell.BookRepository, bookID int64, at time.Time) (core.Book, error) {
	book, err := books.LockByID(ctx, bookID)
	if err != nil {
		return core.Book{}, err
	}

	if book.AvailableCopies >= book.TotalCopies {
		l.warn(ctx, logMsgReleaseClamped, logAttrBookID, book.ID, logAttrTotal, book.TotalCopies)
		return book, nil
	}

	return l.save(ctx, books, book, book.TotalCopies, book.AvailableCopies+1, at, operationRelease)
}

// Apply executes effect on the book.
func (l Ledger) Apply(
	ctx context.Context,
	books shell.BookRepository,
	effect core.LedgerEffect,
	bookID int64,
	at time.Time,
) error {

	var err error

	switch effect {
	case core.HoldCopy:
		_, err = l.Hold(ctx, books, bookID, at)
	case core.ReleaseCopy:
		_, err = l.Release(ctx, books, bookID, at)
	case core.NoLedgerEffect:
	default:
		err = fmt.Errorf("unknown ledger effect %q", effect)
	}

	return err
}

// AdjustTotal sets the number of physical copies and shifts the available copies by the same delta.
// It returns core.ErrUnavailable when fewer copies would remain than are currently held.
func (l Ledger) AdjustTotal(
	ctx context.Context,
	books shell.BookRepository,
	bookID int64,
	totalCopies int,
	at time.Time,
) (core.Book, error) {

	if totalCopies < 0 {
		return core.Book{}, fmt.Errorf("total copies must not be negative: %w", core.ErrInvalidState)
	}

	book, err := books.LockByID(ctx, bookID)
	if err != nil {
		return core.Book{}, err
	}

	held := book.HeldCopies()
	if totalCopies < held {
		return book, fmt.Errorf("%d copies are held, cannot reduce to %d: %w", held, totalCopies, core.ErrUnavailable)
	}

	return l.save(ctx, books, book, totalCopies, totalCopies-held, at, operationAdjust)
}

func (l Ledger) save(
	ctx context.Context,
	books shell.BookRepository,
	book core.Book,
	total, available int,
	at time.Time,
	operation string,
) (core.Book, error) {

	if err := books.SaveCopies(ctx, book.ID, total, available, at); err != nil {
		return book, err
	}

	book.TotalCopies = total
	book.AvailableCopies = available
	book.UpdatedAt = at

	l.debug(ctx, logMsgCopiesChanged,
		logAttrOperation, operation,
		logAttrBookID, book.ID,
		logAttrTotal, total,
		logAttrAvailable, available,
	)
	l.count(ctx, CopyMutationsMetric, operation)

	return book, nil
}

func (l Ledger) count(ctx context.Context, metric, operation string) {
	if l.metricsCollector == nil {
		return
	}

	labels := map[string]string{logAttrOperation: operation}

	if contextualCollector, ok := l.metricsCollector.(shell.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	l.metricsCollector.IncrementCounter(metric, labels)
}

func (l Ledger) debug(ctx context.Context, msg string, args ...any) {
	if l.contextualLogger != nil {
		l.contextualLogger.DebugContext(ctx, msg, args...)
	} else if l.logger != nil {
		l.logger.Debug(msg, args...)
	}
}

func (l Ledger) warn(ctx context.Context, msg string, args ...any) {
	if l.contextualLogger != nil {
		l.contextualLogger.WarnContext(ctx, msg, args...)
	} else if l.logger != nil {
		l.logger.Warn(msg, args...)
	}
}
