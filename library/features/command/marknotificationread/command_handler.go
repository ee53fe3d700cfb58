package marknotificationread

import (
	"context"

	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

// CommandHandler orchestrates the workflow with retry: Load -> Decide -> Mark read.
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
	var changed bool

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		changed, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	if !changed {
		return shell.NewIdempotentResult(retryMetrics), nil
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, error) {
	changed := false

	err := h.transactor.WithinTransaction(ctx, func(ctx context.Context, repos shell.Repositories) error {
		notification, err := repos.Notifications.FindByID(ctx, command.NotificationID)
		if err != nil {
			return err
		}

		result := Decide(notification, command)
		if decisionErr := result.HasError(); decisionErr != nil {
			return decisionErr
		}

		if result.IsIdempotent() {
			return nil
		}

		changed = true

		return repos.Notifications.MarkRead(ctx, notification.ID, command.OccurredAt)
	})

	return changed, err
}
