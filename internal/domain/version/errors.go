package version

import "errors"

var (
	// ErrVersionNotFound indicates the version doesn't exist.
	ErrVersionNotFound = errors.New("version not found")
	// ErrAllocationConflict indicates version number allocation lost
	// the race on every retry. No partial version is left committed.
	ErrAllocationConflict = errors.New("version number allocation did not converge")
	// ErrDuplicateVersion indicates an insert with an already taken
	// (base_name, take_name, version_number) triple.
	ErrDuplicateVersion = errors.New("version triple already exists")
)
