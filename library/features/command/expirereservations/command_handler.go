package expirereservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/ledger"
	"github.com/snowRepo/LMS-sub006/library/shared/notify"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

const (
	logMsgSweepFinished      = "reservation expiry sweep finished"
	logMsgReservationFailure = "reservation expiry failed"

	logAttrReservationID = "reservation_id"
	logAttrCandidates    = "candidates"
	logAttrExpired       = "expired"
	logAttrSkipped       = "skipped"
	logAttrFailed        = "failed"
)

// Report summarizes one sweep run.
type Report struct {
	Candidates int
	Expired    int
	Skipped    int
	Failed     int
}

// CommandHandler runs the expiry sweep. Each candidate is expired in its own retried transaction,
// a failing candidate does not stop the others.
type CommandHandler struct {
	transactor       shell.Transactor
	ledger           ledger.Ledger
	queue            notify.Queue
	retryOptions     []shell.RetryOption
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for every candidate transaction.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithLogger sets the logger used for the sweep summary and per-candidate failures.
func WithLogger(logger shell.Logger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
	}
}

// WithContextualLogger sets a context-aware logger, preferred over WithLogger.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(h *CommandHandler) {
		h.contextualLogger = logger
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(transactor shell.Transactor, ledger ledger.Ledger, queue notify.Queue, opts ...Option) CommandHandler {
	handler := CommandHandler{
		transactor: transactor,
		ledger:     ledger,
		queue:      queue,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle runs the sweep. The result is idempotent when nothing was expired.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	report, retryMetrics, err := h.run(ctx, command)
	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	if report.Expired == 0 {
		return shell.NewIdempotentResult(retryMetrics), nil
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

// Run runs the sweep and returns its report. The error joins the failures of single candidates,
// the report still counts everything that was processed.
func (h CommandHandler) Run(ctx context.Context, command Command) (Report, error) {
	report, _, err := h.run(ctx, command)

	return report, err
}

func (h CommandHandler) run(ctx context.Context, command Command) (Report, shell.RetryMetrics, error) {
	sweepMetrics := shell.RetryMetrics{Attempts: 1, LastErrorType: "none"}

	candidates, err := h.transactor.Repositories().Reservations.ListPendingExpiredBefore(ctx, command.Cutoff())
	if err != nil {
		return Report{}, sweepMetrics, fmt.Errorf("listing overdue reservations: %w", err)
	}

	report := Report{Candidates: len(candidates)}
	var errs []error

	for _, candidate := range candidates {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		var expired core.DomainEvent

		retryMetrics, expireErr := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
			event, execErr := h.expireOne(retryCtx, candidate.ID, command)
			expired = event

			return execErr
		}, h.retryOptions...)

		sweepMetrics.Attempts = max(sweepMetrics.Attempts, retryMetrics.Attempts)
		sweepMetrics.TotalDelay += retryMetrics.TotalDelay

		switch {
		case expireErr != nil:
			report.Failed++
			sweepMetrics.LastErrorType = retryMetrics.LastErrorType
			errs = append(errs, fmt.Errorf("expiring reservation %s: %w", candidate.ReservationID, expireErr))
			h.warn(ctx, logMsgReservationFailure, logAttrReservationID, candidate.ReservationID, shell.LogAttrError, expireErr.Error())
		case expired == nil:
			report.Skipped++
		default:
			report.Expired++
			h.queue.Enqueue(ctx, expired)
		}
	}

	h.info(ctx, logMsgSweepFinished,
		logAttrCandidates, report.Candidates,
		logAttrExpired, report.Expired,
		logAttrSkipped, report.Skipped,
		logAttrFailed, report.Failed,
	)

	return report, sweepMetrics, errors.Join(errs...)
}

// expireOne returns a nil event when the reservation no longer needs expiring.
func (h CommandHandler) expireOne(ctx context.Context, reservationID int64, command Command) (core.DomainEvent, error) {
	var event core.DomainEvent

	err := h.transactor.WithinTransaction(ctx, func(ctx context.Context, repos shell.Repositories) error {
		reservation, err := repos.Reservations.LockByID(ctx, reservationID)
		if err != nil {
			return err
		}

		book, err := repos.Books.LockByID(ctx, reservation.BookID)
		if err != nil {
			return err
		}

		result := Decide(State{Reservation: reservation, Book: book}, command)
		if result.IsIdempotent() {
			return nil
		}

		if err = repos.Reservations.Update(ctx, reservation.Apply(result.Event)); err != nil {
			return err
		}

		if err = h.ledger.Apply(ctx, repos.Books, result.Effect, book.ID, command.Now); err != nil {
			return err
		}

		event = result.Event

		return nil
	})
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (h CommandHandler) info(ctx context.Context, msg string, args ...any) {
	if h.contextualLogger != nil {
		h.contextualLogger.InfoContext(ctx, msg, args...)
		return
	}

	if h.logger != nil {
		h.logger.Info(msg, args...)
	}
}

func (h CommandHandler) warn(ctx context.Context, msg string, args ...any) {
	if h.contextualLogger != nil {
		h.contextualLogger.WarnContext(ctx, msg, args...)
		return
	}

	if h.logger != nil {
		h.logger.Warn(msg, args...)
	}
}
