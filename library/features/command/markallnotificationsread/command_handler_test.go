package markallnotificationsread_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowRepo/LMS-sub006/library/features/command/markallnotificationsread"
	"github.com/snowRepo/LMS-sub006/library/shared/core"
	. "github.com/snowRepo/LMS-sub006/testutil/helper" //nolint:revive
	"github.com/snowRepo/LMS-sub006/testutil/memstore"
)

func Test_CommandHandler_MarkAllRead_Only_Touches_The_Actors_Inbox(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	member := GivenMember(t, repos, libraryID)
	other := GivenMember(t, repos, libraryID)
	for _, user := range []core.User{member, member, other} {
		_, err := repos.Notifications.Insert(ctx, core.Notification{
			UserID: user.ID, Title: "t", Message: "m", Type: core.NotificationInfo, CreatedAt: FixedNow,
		})
		require.NoError(t, err)
	}

	handler := markallnotificationsread.NewCommandHandler(db)
	command := markallnotificationsread.BuildCommand(member.Actor(), FixedNow)

	// act
	first, err := handler.Handle(ctx, command)
	require.NoError(t, err)
	second, err := handler.Handle(ctx, command)
	require.NoError(t, err)

	// assert
	assert.False(t, first.Idempotent)
	assert.True(t, second.Idempotent)

	unread, err := repos.Notifications.CountUnread(ctx, member.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	unread, err = repos.Notifications.CountUnread(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
}
