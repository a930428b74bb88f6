package version

import "context"

// Repository provides persistence for versions within one project
// store.
type Repository interface {
	// AllocateAndCreate performs one allocation attempt: the max-lookup
	// for (baseName, takeName) and the insert run in a single
	// transaction. The allocated number is max+1, unless requested is
	// higher, in which case requested is used verbatim (intentional
	// gaps). Returns repository.ErrDuplicate when a concurrent writer
	// won the race and repository.ErrBusy when one held the write lock
	// past the busy timeout; callers retry from the max-lookup either
	// way.
	AllocateAndCreate(ctx context.Context, v *Version, requested int) (int, error)

	// Insert commits a version with its exact number, used by legacy
	// discovery to preserve on-disk numbering.
	Insert(ctx context.Context, v *Version) error

	MaxNumber(ctx context.Context, baseName, takeName string) (int, error)
	ListByOwner(ctx context.Context, kind OwnerKind, ownerID string) ([]Version, error)
	ListByBaseTake(ctx context.Context, baseName, takeName string) ([]Version, error)
}
