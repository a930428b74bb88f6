package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist under the
	// repository root.
	ErrProjectNotFound = errors.New("project not found")
)
