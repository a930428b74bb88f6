package user

import "errors"

var (
	// ErrInvalidUser indicates a user without a usable name or initials.
	ErrInvalidUser = errors.New("invalid user")
	// ErrUserNotFound indicates no user with the given initials.
	ErrUserNotFound = errors.New("user not found")
)
