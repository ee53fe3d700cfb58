package cancelreservation

import (
	"context"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/ledger"
	"github.com/snowRepo/LMS-sub006/library/shared/notify"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

// CommandHandler orchestrates the cancellation workflow with retry:
// Lock reservation -> Lock book -> Decide -> Update -> Release copy, then Enqueue after commit.
type CommandHandler struct {
	transactor   shell.Transactor
	ledger       ledger.Ledger
	queue        notify.Queue
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
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

// Handle executes the command with retry on transaction conflicts.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var cancelled core.DomainEvent

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		event, execErr := h.executeCommand(retryCtx, command)
		cancelled = event

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	h.queue.Enqueue(ctx, cancelled)

	return shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.DomainEvent, error) {
	var event core.DomainEvent

	err := h.transactor.WithinTransaction(ctx, func(ctx context.Context, repos shell.Repositories) error {
		reservation, err := repos.Reservations.LockByID(ctx, command.ReservationID)
		if err != nil {
			return err
		}

		book, err := repos.Books.LockByID(ctx, reservation.BookID)
		if err != nil {
			return err
		}

		result := Decide(State{Reservation: reservation, Book: book}, command)
		if decisionErr := result.HasError(); decisionErr != nil {
			return decisionErr
		}

		if err = repos.Reservations.Update(ctx, reservation.Apply(result.Event)); err != nil {
			return err
		}

		if err = h.ledger.Apply(ctx, repos.Books, result.Effect, book.ID, command.OccurredAt); err != nil {
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
