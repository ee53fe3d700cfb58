package sendduereminders

import (
	"time"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	commandType = "SendDueReminders"

	// DefaultWindow is how far ahead of the due date members are reminded.
	DefaultWindow = 24 * time.Hour
)

// Command triggers one run of the reminder sweep at Now.
type Command struct {
	Now    core.OccurredAt
	Window time.Duration
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. A non-positive window falls back to DefaultWindow.
func BuildCommand(now time.Time, window time.Duration) Command {
	if window <= 0 {
		window = DefaultWindow
	}

	return Command{
		Now:    core.ToOccurredAt(now),
		Window: window,
	}
}

// DueBefore is the latest due date that is reminded in this run.
func (c Command) DueBefore() time.Time {
	return c.Now.Add(c.Window)
}
