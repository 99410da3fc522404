package domain

import "errors"

// Sentinel errors shared across services. Controllers translate these to
// HTTP status codes at the delivery boundary; anything not in this set is
// treated as an internal error.
var (
	// ErrNotFound is returned when a referenced event does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrForbidden is returned when the caller is authenticated but not
	// authorized for the action (e.g. a non-organizer deleting an event).
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned when a request fails domain validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyMember is returned when adding a user who already holds a
	// membership row on the event.
	ErrAlreadyMember = errors.New("user is already a member of this event")

	// ErrDuplicateEmail is returned when signing up with an email that is
	// already registered.
	ErrDuplicateEmail = errors.New("email already in use")
)
