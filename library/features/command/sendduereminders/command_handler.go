package sendduereminders

import (
	"context"
	"errors"
	"fmt"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/notify"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

const (
	logMsgSweepFinished = "due reminder sweep finished"
	logMsgLoanFailure   = "due reminder failed"

	logAttrBorrowingID = "borrowing_id"
	logAttrCandidates  = "candidates"
	logAttrReminded    = "reminded"
	logAttrSkipped     = "skipped"
	logAttrFailed      = "failed"
)

// Report summarizes one sweep run.
type Report struct {
	Candidates int
	Reminded   int
	Skipped    int
	Failed     int
}

// CommandHandler runs the reminder sweep, one retried transaction per loan.
type CommandHandler struct {
	transactor       shell.Transactor
	queue            notify.Queue
	retryOptions     []shell.RetryOption
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for every loan transaction.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithLogger sets the logger used for the sweep summary and per-loan failures.
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
func NewCommandHandler(transactor shell.Transactor, queue notify.Queue, opts ...Option) CommandHandler {
	handler := CommandHandler{
		transactor: transactor,
		queue:      queue,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle runs the sweep. The result is idempotent when nobody was reminded.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	report, retryMetrics, err := h.run(ctx, command)
	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	if report.Reminded == 0 {
		return shell.NewIdempotentResult(retryMetrics), nil
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

// Run runs the sweep and returns its report together with the joined per-loan failures.
func (h CommandHandler) Run(ctx context.Context, command Command) (Report, error) {
	report, _, err := h.run(ctx, command)

	return report, err
}

func (h CommandHandler) run(ctx context.Context, command Command) (Report, shell.RetryMetrics, error) {
	sweepMetrics := shell.RetryMetrics{Attempts: 1, LastErrorType: "none"}

	candidates, err := h.transactor.Repositories().Borrowings.ListDueForReminder(ctx, command.DueBefore())
	if err != nil {
		return Report{}, sweepMetrics, fmt.Errorf("listing loans due soon: %w", err)
	}

	report := Report{Candidates: len(candidates)}
	var errs []error

	for _, candidate := range candidates {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		var reminded core.DomainEvent

		retryMetrics, remindErr := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
			event, execErr := h.remindOne(retryCtx, candidate.ID, command)
			reminded = event

			return execErr
		}, h.retryOptions...)

		sweepMetrics.Attempts = max(sweepMetrics.Attempts, retryMetrics.Attempts)
		sweepMetrics.TotalDelay += retryMetrics.TotalDelay

		switch {
		case remindErr != nil:
			report.Failed++
			sweepMetrics.LastErrorType = retryMetrics.LastErrorType
			errs = append(errs, fmt.Errorf("reminding loan %d: %w", candidate.ID, remindErr))
			h.warn(ctx, logMsgLoanFailure, logAttrBorrowingID, candidate.ID, shell.LogAttrError, remindErr.Error())
		case reminded == nil:
			report.Skipped++
		default:
			report.Reminded++
			h.queue.Enqueue(ctx, reminded)
		}
	}

	h.info(ctx, logMsgSweepFinished,
		logAttrCandidates, report.Candidates,
		logAttrReminded, report.Reminded,
		logAttrSkipped, report.Skipped,
		logAttrFailed, report.Failed,
	)

	return report, sweepMetrics, errors.Join(errs...)
}

func (h CommandHandler) remindOne(ctx context.Context, borrowingID int64, command Command) (core.DomainEvent, error) {
	var event core.DomainEvent

	err := h.transactor.WithinTransaction(ctx, func(ctx context.Context, repos shell.Repositories) error {
		borrowing, err := repos.Borrowings.LockByID(ctx, borrowingID)
		if err != nil {
			return err
		}

		state := State{Borrowing: borrowing}

		if borrowing.ReservationID != nil {
			reservation, findErr := repos.Reservations.FindByID(ctx, *borrowing.ReservationID)
			if findErr != nil {
				return findErr
			}
			state.Reservation = &reservation
		}

		if state.Book, err = repos.Books.FindByID(ctx, borrowing.BookID); err != nil {
			return err
		}

		result := Decide(state, command)
		if result.IsIdempotent() {
			return nil
		}

		if err = repos.Borrowings.Update(ctx, borrowing.Apply(result.Event)); err != nil {
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
