package addbook

import (
	"context"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

// CommandHandler orchestrates the catalog workflow with retry: Decide -> Insert.
type CommandHandler struct {
	transactor   shell.Transactor
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
func NewCommandHandler(transactor shell.Transactor, opts ...Option) CommandHandler {
	handler := CommandHandler{
		transactor: transactor,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command with retry on transaction conflicts.
// A book id that is already used in the library fails with core.ErrAlreadyExists.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.executeCommand(retryCtx, command)
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) error {
	return h.transactor.WithinTransaction(ctx, func(ctx context.Context, repos shell.Repositories) error {
		result := Decide(command)
		if decisionErr := result.HasError(); decisionErr != nil {
			return decisionErr
		}

		event := result.Event.(core.BookAdded) //nolint:forcetypeassert // Decide only succeeds with BookAdded

		_, err := repos.Books.Insert(ctx, NewBook(event))

		return err
	})
}
