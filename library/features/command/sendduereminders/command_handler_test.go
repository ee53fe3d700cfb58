package sendduereminders_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowRepo/LMS-sub006/library/features/command/issuebook"
	"github.com/snowRepo/LMS-sub006/library/features/command/returnbook"
	"github.com/snowRepo/LMS-sub006/library/features/command/sendduereminders"
	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/ledger"
	"github.com/snowRepo/LMS-sub006/library/shared/notify"
	. "github.com/snowRepo/LMS-sub006/testutil/helper" //nolint:revive
	"github.com/snowRepo/LMS-sub006/testutil/memstore"
)

func Test_Sweep_Reminds_Loans_Due_Within_The_Window_Once(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	book := GivenBook(t, repos, libraryID, 3)
	librarian := GivenLibrarian(t, repos, libraryID)
	dueSoon := GivenMember(t, repos, libraryID)
	dueLater := GivenMember(t, repos, libraryID)
	alreadyBack := GivenMember(t, repos, libraryID)

	issue := issuebook.NewCommandHandler(db, ledger.New(), NewRecordingQueue())
	for member, issuedAt := range map[int64]time.Time{
		dueSoon.ID:     FixedNow.Add(-core.LoanPeriod + 12*time.Hour),
		dueLater.ID:    FixedNow.Add(-core.LoanPeriod + 72*time.Hour),
		alreadyBack.ID: FixedNow.Add(-core.LoanPeriod),
	} {
		_, err := issue.Handle(ctx, issuebook.BuildCommand(librarian.Actor(), book.ID, member, core.LoanPeriod, issuedAt))
		require.NoError(t, err, "error in arranging test data")
	}

	returnHandler := returnbook.NewCommandHandler(db, ledger.New(), NewRecordingQueue())
	loans, err := repos.Borrowings.ListDueForReminder(ctx, FixedNow)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	_, err = returnHandler.Handle(ctx, returnbook.BuildCommand(librarian.Actor(), loans[0].ID, FixedNow))
	require.NoError(t, err)

	handler := sendduereminders.NewCommandHandler(db, notify.NewInlineQueue(notify.NewFanout(repos)))
	command := sendduereminders.BuildCommand(FixedNow, 0)

	// act
	first, err := handler.Run(ctx, command)
	require.NoError(t, err)
	second, err := handler.Run(ctx, command)
	require.NoError(t, err)

	// assert
	assert.Equal(t, sendduereminders.Report{Candidates: 1, Reminded: 1}, first)
	assert.Equal(t, sendduereminders.Report{}, second)

	inbox := Notifications(t, repos, dueSoon.ID)
	require.Len(t, inbox, 1)
	assert.Equal(t, "Book Due Soon", inbox[0].Title)
	assert.Contains(t, inbox[0].Message, "Mar 10, 2025")

	assert.Empty(t, Notifications(t, repos, dueLater.ID))
	assert.Empty(t, Notifications(t, repos, alreadyBack.ID))
}

func Test_BuildCommand_Defaults_The_Window(t *testing.T) {
	command := sendduereminders.BuildCommand(FixedNow, -time.Minute)

	assert.Equal(t, sendduereminders.DefaultWindow, command.Window)
	assert.Equal(t, FixedNow.Add(24*time.Hour), command.DueBefore())
}
