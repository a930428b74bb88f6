package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reelworks/pipetrack/internal/domain/shot"
	"github.com/reelworks/pipetrack/internal/repository"
)

// ShotRepository implements shot.Repository for SQLite
type ShotRepository struct {
	db *DB
}

// NewShotRepository creates a new ShotRepository
func NewShotRepository(db *DB) *ShotRepository {
	return &ShotRepository{db: db}
}

// Create inserts a shot. (sequence_id, number) carries a unique
// constraint, so recreating a shot reports repository.ErrDuplicate.
func (r *ShotRepository) Create(ctx context.Context, sh *shot.Shot) error {
	query := `
		INSERT INTO shots (id, sequence_id, number, start_frame, end_frame, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		sh.ID,
		sh.SequenceID,
		sh.Number,
		sh.StartFrame,
		sh.EndFrame,
		sh.Descr,
		sh.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create shot: %w", err)
	}

	return nil
}

// GetByNumber retrieves a shot by its conditioned number within one
// sequence.
func (r *ShotRepository) GetByNumber(ctx context.Context, sequenceID, number string) (*shot.Shot, error) {
	query := `
		SELECT id, sequence_id, number, start_frame, end_frame, description, created_at
		FROM shots
		WHERE sequence_id = ? AND number = ?
	`

	var sh shot.Shot
	err := r.db.QueryRowContext(ctx, query, sequenceID, number).Scan(
		&sh.ID,
		&sh.SequenceID,
		&sh.Number,
		&sh.StartFrame,
		&sh.EndFrame,
		&sh.Descr,
		&sh.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shot: %w", err)
	}

	return &sh, nil
}

// ListBySequence returns the shots of a sequence ordered by number.
func (r *ShotRepository) ListBySequence(ctx context.Context, sequenceID string) ([]shot.Shot, error) {
	query := `
		SELECT id, sequence_id, number, start_frame, end_frame, description, created_at
		FROM shots
		WHERE sequence_id = ?
		ORDER BY CAST(number AS INTEGER), number
	`

	rows, err := r.db.QueryContext(ctx, query, sequenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shots: %w", err)
	}
	defer rows.Close()

	var shots []shot.Shot
	for rows.Next() {
		var sh shot.Shot
		err := rows.Scan(
			&sh.ID,
			&sh.SequenceID,
			&sh.Number,
			&sh.StartFrame,
			&sh.EndFrame,
			&sh.Descr,
			&sh.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shot: %w", err)
		}
		shots = append(shots, sh)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shot rows: %w", err)
	}

	return shots, nil
}

// UpdateFrames sets the frame range of a shot.
func (r *ShotRepository) UpdateFrames(ctx context.Context, id string, startFrame, endFrame int) error {
	query := `
		UPDATE shots
		SET start_frame = ?, end_frame = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, startFrame, endFrame, id)
	if err != nil {
		return fmt.Errorf("failed to update shot frames: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
