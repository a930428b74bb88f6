package asset

import "context"

// Repository provides persistence for assets within one project store.
type Repository interface {
	Create(ctx context.Context, a *Asset) error
	Get(ctx context.Context, baseName, subName, typeName string) (*Asset, error)
	List(ctx context.Context) ([]Asset, error)
	ListBySequence(ctx context.Context, sequenceID string) ([]Asset, error)
}
