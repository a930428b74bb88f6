package sequence

import "errors"

var (
	// ErrSequenceNotFound indicates the sequence doesn't exist.
	ErrSequenceNotFound = errors.New("sequence not found")
	// ErrDuplicateSequence indicates the name is already taken within
	// the project.
	ErrDuplicateSequence = errors.New("sequence name already exists")
)
