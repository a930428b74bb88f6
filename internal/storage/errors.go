package storage

import "errors"

// ErrStorageUnavailable reports a filesystem operation on the shared
// repository that failed or stalled past its deadline, which on network
// mounts usually means the mount is gone.
var ErrStorageUnavailable = errors.New("repository storage unavailable")
