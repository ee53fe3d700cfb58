package core

// UserStatus tells whether an account can sign in and receive notifications.
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

// User is an account. ID addresses the row, UserID is the external key shown to people.
type User struct {
	ID        int64
	UserID    string
	Name      string
	Email     string
	Role      Role
	LibraryID *int64
	Status    UserStatus
}

// Actor returns the request-scoped view of u.
func (u User) Actor() Actor {
	actor := Actor{UserID: u.ID, ExternalUserID: u.UserID, Role: u.Role}
	if u.LibraryID != nil {
		actor.LibraryID = *u.LibraryID
	}

	return actor
}
