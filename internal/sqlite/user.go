package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reelworks/pipetrack/internal/domain/user"
	"github.com/reelworks/pipetrack/internal/repository"
)

// UserRepository implements user.Repository for SQLite
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert inserts a user or refreshes name and email for known
// initials.
func (r *UserRepository) Upsert(ctx context.Context, u user.User) error {
	query := `
		INSERT INTO users (initials, name, email)
		VALUES (?, ?, ?)
		ON CONFLICT(initials) DO UPDATE SET name = excluded.name, email = excluded.email
	`

	_, err := r.db.ExecContext(ctx, query, u.Initials, u.Name, u.Email)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}

// GetByInitials retrieves a user.
func (r *UserRepository) GetByInitials(ctx context.Context, initials string) (user.User, error) {
	query := `SELECT initials, name, email FROM users WHERE initials = ?`

	var u user.User
	err := r.db.QueryRowContext(ctx, query, initials).Scan(&u.Initials, &u.Name, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return user.User{}, repository.ErrNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// List returns all users ordered by initials.
func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	query := `SELECT initials, name, email FROM users ORDER BY initials`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.Initials, &u.Name, &u.Email); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}
