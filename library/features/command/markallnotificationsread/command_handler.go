package markallnotificationsread

import (
	"context"

	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

// CommandHandler marks every unread notification of the actor as read in one statement.
// The result is idempotent when nothing was unread.
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
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	marked := 0

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		marked, execErr = h.transactor.Repositories().Notifications.MarkAllRead(retryCtx, command.Actor.UserID, command.OccurredAt)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	if marked == 0 {
		return shell.NewIdempotentResult(retryMetrics), nil
	}

	return shell.NewSuccessResult(retryMetrics), nil
}
