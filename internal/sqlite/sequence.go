package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reelworks/pipetrack/internal/domain/sequence"
	"github.com/reelworks/pipetrack/internal/repository"
)

// SequenceRepository implements sequence.Repository for SQLite
type SequenceRepository struct {
	db *DB
}

// NewSequenceRepository creates a new SequenceRepository
func NewSequenceRepository(db *DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// Create inserts a sequence. The name carries a unique constraint, so
// creating an existing name reports repository.ErrDuplicate.
func (r *SequenceRepository) Create(ctx context.Context, seq *sequence.Sequence) error {
	query := `
		INSERT INTO sequences (id, name, code, no_sub_name_field, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		seq.ID,
		seq.Name,
		seq.Code,
		seq.NoSubNameField,
		seq.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create sequence: %w", err)
	}

	return nil
}

// GetByName retrieves a sequence by its conditioned name.
func (r *SequenceRepository) GetByName(ctx context.Context, name string) (*sequence.Sequence, error) {
	query := `
		SELECT id, name, code, no_sub_name_field, created_at
		FROM sequences
		WHERE name = ?
	`

	var seq sequence.Sequence
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&seq.ID,
		&seq.Name,
		&seq.Code,
		&seq.NoSubNameField,
		&seq.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sequence: %w", err)
	}

	return &seq, nil
}

// List returns all sequences ordered by name.
func (r *SequenceRepository) List(ctx context.Context) ([]sequence.Sequence, error) {
	query := `
		SELECT id, name, code, no_sub_name_field, created_at
		FROM sequences
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sequences: %w", err)
	}
	defer rows.Close()

	var seqs []sequence.Sequence
	for rows.Next() {
		var seq sequence.Sequence
		err := rows.Scan(
			&seq.ID,
			&seq.Name,
			&seq.Code,
			&seq.NoSubNameField,
			&seq.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sequence: %w", err)
		}
		seqs = append(seqs, seq)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sequence rows: %w", err)
	}

	return seqs, nil
}
