package reservebook

import (
	"context"
	"errors"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/ledger"
	"github.com/snowRepo/LMS-sub006/library/shared/notify"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

// CommandHandler orchestrates the reservation workflow with retry:
// Lock book -> Load pending -> Decide -> Hold copy -> Insert, then Enqueue after commit.
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

// Handle executes the command with retry on transaction conflicts and enqueues the librarian
// notification once the reservation is committed.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var created core.DomainEvent

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		event, execErr := h.executeCommand(retryCtx, command)
		created = event

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	h.queue.Enqueue(ctx, created)

	return shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.DomainEvent, error) {
	var event core.ReservationCreated

	err := h.transactor.WithinTransaction(ctx, func(ctx context.Context, repos shell.Repositories) error {
		book, err := repos.Books.LockByID(ctx, command.BookID)
		if err != nil {
			return err
		}

		_, pendingErr := repos.Reservations.FindPendingByMemberAndBook(ctx, command.Actor.UserID, book.ID)
		if pendingErr != nil && !errors.Is(pendingErr, core.ErrNotFound) {
			return pendingErr
		}

		result := Decide(State{Book: book, HasPendingForBook: pendingErr == nil}, command)
		if decisionErr := result.HasError(); decisionErr != nil {
			return decisionErr
		}

		if err = h.ledger.Apply(ctx, repos.Books, result.Effect, book.ID, command.OccurredAt); err != nil {
			return err
		}

		reservation, err := repos.Reservations.Insert(ctx, NewReservation(command))
		if err != nil {
			return err
		}

		event = result.Event.(core.ReservationCreated) //nolint:forcetypeassert // Decide only succeeds with ReservationCreated
		event.ReservationID = reservation.ID

		return nil
	})
	if err != nil {
		return nil, err
	}

	return event, nil
}
