package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

func Test_Actor_RequireRole(t *testing.T) {
	member := core.Actor{UserID: 1, Role: core.RoleMember}

	assert.NoError(t, member.RequireRole(core.RoleMember))
	assert.ErrorIs(t, member.RequireRole(core.RoleLibrarian, core.RoleSupervisor), core.ErrForbidden)
}

func Test_Actor_CanManageLibrary(t *testing.T) {
	testCases := []struct {
		name      string
		actor     core.Actor
		libraryID int64
		expected  bool
	}{
		{"librarian of the library", core.Actor{Role: core.RoleLibrarian, LibraryID: 5}, 5, true},
		{"librarian of another library", core.Actor{Role: core.RoleLibrarian, LibraryID: 6}, 5, false},
		{"supervisor of the library", core.Actor{Role: core.RoleSupervisor, LibraryID: 5}, 5, true},
		{"librarian without a library", core.Actor{Role: core.RoleLibrarian}, 0, false},
		{"admin", core.Actor{Role: core.RoleAdmin}, 5, true},
		{"member", core.Actor{Role: core.RoleMember, LibraryID: 5}, 5, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.actor.CanManageLibrary(tc.libraryID))
		})
	}
}

func Test_User_Actor_Copies_Library(t *testing.T) {
	libraryID := int64(8)
	user := core.User{ID: 3, UserID: "USR-3", Role: core.RoleLibrarian, LibraryID: &libraryID}

	actor := user.Actor()

	assert.Equal(t, core.Actor{UserID: 3, ExternalUserID: "USR-3", Role: core.RoleLibrarian, LibraryID: 8}, actor)
}

func Test_Actor_ScopeLibrary(t *testing.T) {
	testCases := []struct {
		name      string
		actor     core.Actor
		requested int64
		expected  int64
		err       error
	}{
		{"member defaults to own library", core.Actor{Role: core.RoleMember, LibraryID: 5}, 0, 5, nil},
		{"librarian names own library", core.Actor{Role: core.RoleLibrarian, LibraryID: 5}, 5, 5, nil},
		{"librarian names another library", core.Actor{Role: core.RoleLibrarian, LibraryID: 5}, 6, 0, core.ErrNotFound},
		{"admin names a library", core.Actor{Role: core.RoleAdmin}, 6, 6, nil},
		{"admin without library", core.Actor{Role: core.RoleAdmin}, 0, 0, core.ErrInvalidState},
		{"librarian without library", core.Actor{Role: core.RoleLibrarian}, 0, 0, core.ErrForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			libraryID, err := tc.actor.ScopeLibrary(tc.requested)

			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, tc.expected, libraryID)
		})
	}
}
