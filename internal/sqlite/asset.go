package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reelworks/pipetrack/internal/domain/asset"
	"github.com/reelworks/pipetrack/internal/repository"
)

// AssetRepository implements asset.Repository for SQLite
type AssetRepository struct {
	db *DB
}

// NewAssetRepository creates a new AssetRepository
func NewAssetRepository(db *DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create inserts an asset. (base_name, sub_name, type_name) carries a
// unique constraint, so recreating an asset reports
// repository.ErrDuplicate.
func (r *AssetRepository) Create(ctx context.Context, a *asset.Asset) error {
	query := `
		INSERT INTO assets (id, sequence_id, base_name, sub_name, type_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.SequenceID,
		a.BaseName,
		a.SubName,
		a.TypeName,
		a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create asset: %w", err)
	}

	return nil
}

// Get retrieves an asset by its identifying triple.
func (r *AssetRepository) Get(ctx context.Context, baseName, subName, typeName string) (*asset.Asset, error) {
	query := `
		SELECT id, sequence_id, base_name, sub_name, type_name, created_at
		FROM assets
		WHERE base_name = ? AND sub_name = ? AND type_name = ?
	`

	var a asset.Asset
	err := r.db.QueryRowContext(ctx, query, baseName, subName, typeName).Scan(
		&a.ID,
		&a.SequenceID,
		&a.BaseName,
		&a.SubName,
		&a.TypeName,
		&a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}

	return &a, nil
}

// List returns all assets ordered by base name.
func (r *AssetRepository) List(ctx context.Context) ([]asset.Asset, error) {
	return r.list(ctx, `
		SELECT id, sequence_id, base_name, sub_name, type_name, created_at
		FROM assets
		ORDER BY base_name, sub_name
	`)
}

// ListBySequence returns the assets tied to one sequence.
func (r *AssetRepository) ListBySequence(ctx context.Context, sequenceID string) ([]asset.Asset, error) {
	return r.list(ctx, `
		SELECT id, sequence_id, base_name, sub_name, type_name, created_at
		FROM assets
		WHERE sequence_id = ?
		ORDER BY base_name, sub_name
	`, sequenceID)
}

func (r *AssetRepository) list(ctx context.Context, query string, args ...any) ([]asset.Asset, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []asset.Asset
	for rows.Next() {
		var a asset.Asset
		err := rows.Scan(
			&a.ID,
			&a.SequenceID,
			&a.BaseName,
			&a.SubName,
			&a.TypeName,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset rows: %w", err)
	}

	return assets, nil
}
