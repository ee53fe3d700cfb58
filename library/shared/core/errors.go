package core

import "errors"

var (
	// ErrNotFound is returned when the target does not exist or is not visible to the actor.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState is returned when a transition is not allowed from the current status.
	ErrInvalidState = errors.New("invalid state for this operation")

	// ErrUnavailable is returned when no copy of the book can be held.
	ErrUnavailable = errors.New("no copies available")

	// ErrAlreadyExists is returned when the member already has a pending reservation for the book.
	ErrAlreadyExists = errors.New("already exists")

	// ErrForbidden is returned when the actor's role does not permit the operation.
	ErrForbidden = errors.New("forbidden")
)
