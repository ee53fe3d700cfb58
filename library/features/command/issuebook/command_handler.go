package issuebook

import (
	"context"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/ledger"
	"github.com/snowRepo/LMS-sub006/library/shared/notify"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

// CommandHandler orchestrates the lending workflow with retry:
// Lock reservation (if any) -> Lock book -> Load member -> Decide -> Hold copy (walk-in) -> Insert loan,
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
	var issued core.DomainEvent

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		event, execErr := h.executeCommand(retryCtx, command)
		issued = event

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	h.queue.Enqueue(ctx, issued)

	return shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.DomainEvent, error) {
	var event core.BookIssued

	err := h.transactor.WithinTransaction(ctx, func(ctx context.Context, repos shell.Repositories) error {
		state, err := h.loadState(ctx, repos, command)
		if err != nil {
			return err
		}

		result := Decide(state, command)
		if decisionErr := result.HasError(); decisionErr != nil {
			return decisionErr
		}

		if err = h.ledger.Apply(ctx, repos.Books, result.Effect, state.Book.ID, command.OccurredAt); err != nil {
			return err
		}

		if state.Reservation != nil {
			if err = repos.Reservations.Update(ctx, state.Reservation.Apply(result.Event)); err != nil {
				return err
			}
		}

		borrowing, err := repos.Borrowings.Insert(ctx, NewBorrowing(state, command))
		if err != nil {
			return err
		}

		event = result.Event.(core.BookIssued) //nolint:forcetypeassert // Decide only succeeds with BookIssued
		event.BorrowingID = borrowing.ID

		return nil
	})
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (h CommandHandler) loadState(ctx context.Context, repos shell.Repositories, command Command) (State, error) {
	var state State

	bookID, memberID := command.BookID, command.MemberID

	if !command.IsWalkIn() {
		reservation, err := repos.Reservations.LockByID(ctx, command.ReservationID)
		if err != nil {
			return State{}, err
		}

		state.Reservation = &reservation
		bookID, memberID = reservation.BookID, reservation.MemberID
	}

	book, err := repos.Books.LockByID(ctx, bookID)
	if err != nil {
		return State{}, err
	}

	member, err := repos.Users.FindByID(ctx, memberID)
	if err != nil {
		return State{}, err
	}

	state.Book = book
	state.Member = member

	return state, nil
}
