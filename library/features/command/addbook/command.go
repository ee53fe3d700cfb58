package addbook

import (
	"strings"
	"time"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const (
	commandType = "AddBook"
)

// Command represents the intent of staff to add a book to a library's catalog.
type Command struct {
	Actor       core.Actor
	LibraryID   int64
	BookRef     string
	Title       string
	AuthorName  string
	TotalCopies int
	OccurredAt  core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. A zero libraryID means the actor's own library.
func BuildCommand(
	actor core.Actor,
	libraryID int64,
	bookRef string,
	title string,
	authorName string,
	totalCopies int,
	occurredAt time.Time,
) Command {

	if libraryID == 0 {
		libraryID = actor.LibraryID
	}

	return Command{
		Actor:       actor,
		LibraryID:   libraryID,
		BookRef:     strings.TrimSpace(bookRef),
		Title:       strings.TrimSpace(title),
		AuthorName:  strings.TrimSpace(authorName),
		TotalCopies: totalCopies,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
