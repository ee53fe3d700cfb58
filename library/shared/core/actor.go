package core

import (
	"fmt"
	"slices"
)

// Role is the role of a user.
type Role string

const (
	RoleMember     Role = "member"
	RoleLibrarian  Role = "librarian"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleLibrarian, RoleSupervisor, RoleAdmin:
		return true
	default:
		return false
	}
}

// Actor is the authenticated caller of an operation, resolved once per request.
// LibraryID is zero for admins, who are not bound to a library.
type Actor struct {
	UserID         int64
	ExternalUserID string
	Role           Role
	LibraryID      int64
}

// RequireRole returns ErrForbidden unless the actor has one of roles.
func (a Actor) RequireRole(roles ...Role) error {
	if slices.Contains(roles, a.Role) {
		return nil
	}

	return ErrForbidden
}

// IsStaff reports whether the actor works for a library.
func (a Actor) IsStaff() bool {
	return a.Role == RoleLibrarian || a.Role == RoleSupervisor || a.Role == RoleAdmin
}

// CanManageLibrary reports whether the actor may act on records of libraryID.
// Admins manage every library, librarians and supervisors only their own.
func (a Actor) CanManageLibrary(libraryID int64) bool {
	switch a.Role {
	case RoleAdmin:
		return true
	case RoleLibrarian, RoleSupervisor:
		return a.LibraryID != 0 && a.LibraryID == libraryID
	default:
		return false
	}
}

// ScopeLibrary resolves the library an actor's request is about. Staff bound to a library get
// their own library for a zero requested id, admins must name one. A library the actor cannot
// see is reported as ErrNotFound.
func (a Actor) ScopeLibrary(requested int64) (int64, error) {
	if a.Role == RoleAdmin {
		if requested == 0 {
			return 0, fmt.Errorf("admins must name a library: %w", ErrInvalidState)
		}

		return requested, nil
	}

	if a.LibraryID == 0 {
		return 0, fmt.Errorf("user is not bound to a library: %w", ErrForbidden)
	}

	if requested != 0 && requested != a.LibraryID {
		return 0, fmt.Errorf("library %d: %w", requested, ErrNotFound)
	}

	return a.LibraryID, nil
}
