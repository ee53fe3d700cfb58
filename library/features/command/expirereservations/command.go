package expirereservations

import (
	"time"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	commandType = "ExpireReservations"
)

// Command triggers one run of the expiry sweep at Now.
type Command struct {
	Now core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(now time.Time) Command {
	return Command{
		Now: core.ToOccurredAt(now),
	}
}

// Cutoff is the start of the current day. Pending reservations expiring before it are overdue.
func (c Command) Cutoff() time.Time {
	return core.StartOfDay(c.Now)
}
