package naming

import "errors"

var (
	// ErrInvalidName indicates a name became empty or illegal after conditioning.
	ErrInvalidName = errors.New("invalid name")
	// ErrInvalidShotNumber indicates a shot number token that is not digits
	// plus an optional single trailing alternate letter.
	ErrInvalidShotNumber = errors.New("invalid shot number")
	// ErrNoAlternateSlot indicates the alternate letter alphabet is exhausted.
	ErrNoAlternateSlot = errors.New("no alternate shot slot available")
	// ErrNotAnAsset indicates a file name that does not match any known
	// naming grammar. Expected during bulk scans, never fatal.
	ErrNotAnAsset = errors.New("not an asset file name")
)
