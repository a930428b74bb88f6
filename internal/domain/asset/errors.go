package asset

import "errors"

var (
	// ErrAssetNotFound indicates the asset doesn't exist.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrDuplicateAsset indicates the (base, sub, type) identity is
	// already taken.
	ErrDuplicateAsset = errors.New("asset already exists")
	// ErrShotCodeRequired indicates a shot-dependent asset type whose
	// base name is not a valid shot code.
	ErrShotCodeRequired = errors.New("shot-dependent asset requires a valid shot code as base name")
)
