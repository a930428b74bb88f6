package sequence

import "context"

// Repository provides persistence for sequences within one project
// store.
type Repository interface {
	Create(ctx context.Context, seq *Sequence) error
	GetByName(ctx context.Context, name string) (*Sequence, error)
	List(ctx context.Context) ([]Sequence, error)
}
