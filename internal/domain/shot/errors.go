package shot

import "errors"

var (
	// ErrShotNotFound indicates the shot doesn't exist in the sequence.
	ErrShotNotFound = errors.New("shot not found")
	// ErrDuplicateShot indicates the number is already taken within the
	// sequence.
	ErrDuplicateShot = errors.New("shot number already exists in sequence")
)
