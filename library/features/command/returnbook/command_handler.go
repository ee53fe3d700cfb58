package returnbook

import (
	"context"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/ledger"
	"github.com/snowRepo/LMS-sub006/library/shared/notify"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

// CommandHandler orchestrates the return workflow with retry:
// Lock loan -> Lock reservation (if any) -> Lock book -> Decide -> Update -> Release copy,
// then Enqueue after commit.
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

// Handle executes the command with retry on transaction conflicts and notifies the member after commit.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var returned core.DomainEvent

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		event, execErr := h.executeCommand(retryCtx, command)
		returned = event

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	if returned == nil {
		return shell.NewIdempotentResult(retryMetrics), nil
	}

	h.queue.Enqueue(ctx, returned)

	return shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
// It returns a nil event when the loan was already returned.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.DomainEvent, error) {
	var event core.DomainEvent

	err := h.transactor.WithinTransaction(ctx, func(ctx context.Context, repos shell.Repositories) error {
		state, err := h.loadState(ctx, repos, command)
		if err != nil {
			return err
		}

		result := Decide(state, command)
		if decisionErr := result.HasError(); decisionErr != nil {
			return decisionErr
		}

		if result.IsIdempotent() {
			return nil
		}

		if err = repos.Borrowings.Update(ctx, state.Borrowing.Apply(result.Event)); err != nil {
			return err
		}

		if state.Reservation != nil && state.Reservation.Status.CanTransitionTo(core.ReservationReturned) {
			if err = repos.Reservations.Update(ctx, state.Reservation.Apply(result.Event)); err != nil {
				return err
			}
		}

		if err = h.ledger.Apply(ctx, repos.Books, result.Effect, state.Book.ID, command.OccurredAt); err != nil {
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

func (h CommandHandler) loadState(ctx context.Context, repos shell.Repositories, command Command) (State, error) {
	borrowing, err := repos.Borrowings.LockByID(ctx, command.BorrowingID)
	if err != nil {
		return State{}, err
	}

	state := State{Borrowing: borrowing}

	if borrowing.ReservationID != nil {
		reservation, lockErr := repos.Reservations.LockByID(ctx, *borrowing.ReservationID)
		if lockErr != nil {
			return State{}, lockErr
		}

		state.Reservation = &reservation
	}

	state.Book, err = repos.Books.LockByID(ctx, borrowing.BookID)
	if err != nil {
		return State{}, err
	}

	return state, nil
}
