package versiontype

import "errors"

var (
	// ErrTypeNotFound indicates no version type with the given name or
	// code is registered for the project.
	ErrTypeNotFound = errors.New("version type not found")
	// ErrDuplicateType indicates the type name or code is already
	// registered.
	ErrDuplicateType = errors.New("version type already exists")
	// ErrWrongUsage indicates a shot type used for an asset or the
	// other way around.
	ErrWrongUsage = errors.New("version type not valid for this owner")
	// ErrWrongEnvironment indicates the type is not valid for the
	// calling host environment.
	ErrWrongEnvironment = errors.New("version type not valid for environment")
	// ErrInvalidTemplate indicates a missing or malformed naming
	// template.
	ErrInvalidTemplate = errors.New("invalid naming template")
)
