package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/reelworks/pipetrack/internal/domain/project"
	"github.com/reelworks/pipetrack/internal/repository"
)

// InfoRepository persists the single project_info row describing the
// project a store belongs to.
type InfoRepository struct {
	db *DB
}

// NewInfoRepository creates a new InfoRepository
func NewInfoRepository(db *DB) *InfoRepository {
	return &InfoRepository{db: db}
}

// Save writes the project row, replacing any previous one. A store
// describes exactly one project.
func (r *InfoRepository) Save(ctx context.Context, proj *project.Project) error {
	structure, err := json.Marshal(proj.Structure)
	if err != nil {
		return fmt.Errorf("failed to encode project structure: %w", err)
	}

	query := `
		INSERT OR REPLACE INTO project_info (
			id, name, code,
			shot_prefix, shot_padding, rev_prefix, rev_padding, ver_prefix, ver_padding,
			fps, width, height, structure, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		proj.ID,
		proj.Name,
		proj.Code,
		proj.Conventions.ShotPrefix,
		proj.Conventions.ShotPadding,
		proj.Conventions.RevPrefix,
		proj.Conventions.RevPadding,
		proj.Conventions.VerPrefix,
		proj.Conventions.VerPadding,
		proj.FPS,
		proj.Width,
		proj.Height,
		string(structure),
		proj.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save project info: %w", err)
	}

	return nil
}

// Get retrieves the project row.
func (r *InfoRepository) Get(ctx context.Context) (*project.Project, error) {
	query := `
		SELECT
			id, name, code,
			shot_prefix, shot_padding, rev_prefix, rev_padding, ver_prefix, ver_padding,
			fps, width, height, structure, created_at
		FROM project_info
		LIMIT 1
	`

	var proj project.Project
	var structure string
	err := r.db.QueryRowContext(ctx, query).Scan(
		&proj.ID,
		&proj.Name,
		&proj.Code,
		&proj.Conventions.ShotPrefix,
		&proj.Conventions.ShotPadding,
		&proj.Conventions.RevPrefix,
		&proj.Conventions.RevPadding,
		&proj.Conventions.VerPrefix,
		&proj.Conventions.VerPadding,
		&proj.FPS,
		&proj.Width,
		&proj.Height,
		&structure,
		&proj.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project info: %w", err)
	}

	if err := json.Unmarshal([]byte(structure), &proj.Structure); err != nil {
		return nil, fmt.Errorf("failed to decode project structure: %w", err)
	}

	return &proj, nil
}
