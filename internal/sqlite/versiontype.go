package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/reelworks/pipetrack/internal/domain/versiontype"
	"github.com/reelworks/pipetrack/internal/repository"
)

// TypeRepository implements versiontype.Repository for SQLite
type TypeRepository struct {
	db *DB
}

// NewTypeRepository creates a new TypeRepository
func NewTypeRepository(db *DB) *TypeRepository {
	return &TypeRepository{db: db}
}

// Create inserts a version type. Both name and code carry unique
// constraints, so reusing either reports repository.ErrDuplicate.
func (r *TypeRepository) Create(ctx context.Context, t *versiontype.Type) error {
	environments, err := json.Marshal(t.Environments)
	if err != nil {
		return fmt.Errorf("failed to encode environments: %w", err)
	}

	query := `
		INSERT INTO version_types (
			id, name, code, filename, path, output_path,
			extra_folders, environments, type_for
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.Code,
		t.Filename,
		t.Path,
		t.OutputPath,
		t.ExtraFolders,
		string(environments),
		string(t.TypeFor),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create version type: %w", err)
	}

	return nil
}

// GetByName retrieves a version type by name.
func (r *TypeRepository) GetByName(ctx context.Context, name string) (*versiontype.Type, error) {
	return r.get(ctx, "name", name)
}

// GetByCode retrieves a version type by code.
func (r *TypeRepository) GetByCode(ctx context.Context, code string) (*versiontype.Type, error) {
	return r.get(ctx, "code", code)
}

func (r *TypeRepository) get(ctx context.Context, column, value string) (*versiontype.Type, error) {
	query := fmt.Sprintf(`
		SELECT id, name, code, filename, path, output_path,
			extra_folders, environments, type_for
		FROM version_types
		WHERE %s = ?
	`, column)

	var t versiontype.Type
	var environments string
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&t.ID,
		&t.Name,
		&t.Code,
		&t.Filename,
		&t.Path,
		&t.OutputPath,
		&t.ExtraFolders,
		&environments,
		&t.TypeFor,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get version type: %w", err)
	}

	if err := json.Unmarshal([]byte(environments), &t.Environments); err != nil {
		return nil, fmt.Errorf("failed to decode environments: %w", err)
	}

	return &t, nil
}

// List returns all version types ordered by name.
func (r *TypeRepository) List(ctx context.Context) ([]versiontype.Type, error) {
	query := `
		SELECT id, name, code, filename, path, output_path,
			extra_folders, environments, type_for
		FROM version_types
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list version types: %w", err)
	}
	defer rows.Close()

	var types []versiontype.Type
	for rows.Next() {
		var t versiontype.Type
		var environments string
		err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Code,
			&t.Filename,
			&t.Path,
			&t.OutputPath,
			&t.ExtraFolders,
			&environments,
			&t.TypeFor,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan version type: %w", err)
		}
		if err := json.Unmarshal([]byte(environments), &t.Environments); err != nil {
			return nil, fmt.Errorf("failed to decode environments: %w", err)
		}
		types = append(types, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating version type rows: %w", err)
	}

	return types, nil
}
