package versiontype

import "context"

// Repository provides persistence for version types within one project
// store.
type Repository interface {
	Create(ctx context.Context, t *Type) error
	GetByName(ctx context.Context, name string) (*Type, error)
	GetByCode(ctx context.Context, code string) (*Type, error)
	List(ctx context.Context) ([]Type, error)
}
