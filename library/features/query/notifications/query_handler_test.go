package notifications_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowRepo/LMS-sub006/library/features/query/notifications"
	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
	. "github.com/snowRepo/LMS-sub006/testutil/helper" //nolint:revive
	"github.com/snowRepo/LMS-sub006/testutil/memstore"
)

func Test_QueryHandler_Returns_The_Inbox_Newest_First_With_Unread_Count(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	member := GivenMember(t, repos, libraryID)
	other := GivenMember(t, repos, libraryID)

	first := givenNotification(t, repos, member.ID, "First")
	second := givenNotification(t, repos, member.ID, "Second")
	givenNotification(t, repos, other.ID, "Not mine")
	require.NoError(t, repos.Notifications.MarkRead(ctx, first.ID, FixedNow))

	handler := notifications.NewQueryHandler(db)

	// act
	inbox, err := handler.Handle(ctx, notifications.BuildQuery(member.Actor(), false, 0))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, inbox.Count)
	assert.Equal(t, 1, inbox.UnreadCount)
	assert.Equal(t, second.ID, inbox.Notifications[0].ID)
	assert.False(t, inbox.Notifications[0].Read)
	assert.JSONEq(t, `{}`, string(inbox.Notifications[0].Payload))
	assert.Equal(t, first.ID, inbox.Notifications[1].ID)
	assert.True(t, inbox.Notifications[1].Read)
}

func Test_QueryHandler_Unread_Only_And_Limit(t *testing.T) {
	// arrange
	ctx := context.Background()
	db := memstore.New()
	repos := db.Repositories()
	libraryID := GivenLibrary(t, repos)
	member := GivenMember(t, repos, libraryID)

	read := givenNotification(t, repos, member.ID, "Read")
	givenNotification(t, repos, member.ID, "Unread 1")
	latest := givenNotification(t, repos, member.ID, "Unread 2")
	require.NoError(t, repos.Notifications.MarkRead(ctx, read.ID, FixedNow))

	handler := notifications.NewQueryHandler(db)

	// act
	unread, err := handler.Handle(ctx, notifications.BuildQuery(member.Actor(), true, 0))
	require.NoError(t, err)
	limited, err := handler.Handle(ctx, notifications.BuildQuery(member.Actor(), false, 1))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, unread.Count)
	assert.Equal(t, 2, unread.UnreadCount)
	require.Equal(t, 1, limited.Count)
	assert.Equal(t, latest.ID, limited.Notifications[0].ID)
}

func Test_BuildQuery_Clamps_The_Limit(t *testing.T) {
	actor := core.Actor{UserID: 1, Role: core.RoleMember}

	assert.Equal(t, notifications.DefaultLimit, notifications.BuildQuery(actor, false, 0).Limit)
	assert.Equal(t, notifications.DefaultLimit, notifications.BuildQuery(actor, false, -3).Limit)
	assert.Equal(t, notifications.MaxLimit, notifications.BuildQuery(actor, false, 10_000).Limit)
	assert.Equal(t, 7, notifications.BuildQuery(actor, false, 7).Limit)
}

func givenNotification(t *testing.T, repos shell.Repositories, userID int64, title string) core.Notification {
	t.Helper()

	notification, err := repos.Notifications.Insert(context.Background(), core.Notification{
		UserID:    userID,
		Title:     title,
		Message:   title,
		Type:      core.NotificationInfo,
		CreatedAt: FixedNow,
	})
	require.NoError(t, err, "error in arranging test data")

	return notification
}
