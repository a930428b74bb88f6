// Package repository defines the sentinel errors of the persistence
// boundary. The SQLite implementation lives in internal/sqlite; domain
// packages declare the narrow repository interfaces they consume.
package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint: a project/sequence name, a shot number within its
	// sequence, an asset identity, or a version
	// (base_name, take_name, version_number) triple.
	ErrDuplicate = errors.New("duplicate entity")

	// ErrForeignKeyViolation is returned when a referenced entity is
	// missing.
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrBusy is returned when the store could not take its write lock
	// in time because another writer held it. Retryable, like
	// ErrDuplicate during version allocation.
	ErrBusy = errors.New("store is busy")
)
