package user

import "context"

// Repository provides persistence for users within one project store.
// Users are upserted on first use so every project store lists exactly
// the people who created versions in it.
type Repository interface {
	Upsert(ctx context.Context, u User) error
	GetByInitials(ctx context.Context, initials string) (User, error)
	List(ctx context.Context) ([]User, error)
}
