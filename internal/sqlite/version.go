package sqlite

import (
	"context"
	"fmt"

	"github.com/reelworks/pipetrack/internal/domain/version"
	"github.com/reelworks/pipetrack/internal/repository"
)

// VersionRepository implements version.Repository for SQLite
type VersionRepository struct {
	db *DB
}

// NewVersionRepository creates a new VersionRepository
func NewVersionRepository(db *DB) *VersionRepository {
	return &VersionRepository{db: db}
}

// AllocateAndCreate runs one allocation attempt in a single write
// transaction: look up the current maximum for (base_name, take_name),
// pick max+1 (or the requested number when that is higher), insert. The
// unique constraint on (base_name, take_name, version_number) turns a
// lost race into repository.ErrDuplicate, and a write lock held by a
// concurrent allocator past the busy timeout into repository.ErrBusy;
// both tell the caller to retry from the max-lookup.
func (r *VersionRepository) AllocateAndCreate(ctx context.Context, v *version.Version, requested int) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		if isBusy(err) {
			return 0, repository.ErrBusy
		}
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var maxNumber int
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(version_number), 0)
		FROM versions
		WHERE base_name = ? AND take_name = ?
	`, v.BaseName, v.TakeName).Scan(&maxNumber)
	if err != nil {
		if isBusy(err) {
			return 0, repository.ErrBusy
		}
		return 0, fmt.Errorf("failed to query max version number: %w", err)
	}

	number := maxNumber + 1
	if requested > maxNumber {
		number = requested
	}

	_, err = tx.ExecContext(ctx, insertVersionQuery,
		v.ID,
		string(v.OwnerKind),
		v.OwnerID,
		v.TypeID,
		v.BaseName,
		v.TakeName,
		v.RevisionNumber,
		number,
		v.Note,
		v.CreatedBy,
		v.Extension,
		v.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return 0, repository.ErrForeignKeyViolation
		}
		if isBusy(err) {
			return 0, repository.ErrBusy
		}
		return 0, fmt.Errorf("failed to create version: %w", err)
	}

	if err = tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrDuplicate
		}
		if isBusy(err) {
			return 0, repository.ErrBusy
		}
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return number, nil
}

const insertVersionQuery = `
	INSERT INTO versions (
		id, owner_kind, owner_id, type_id, base_name, take_name,
		revision_number, version_number, note, created_by, extension, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Insert commits a version with its exact number, preserving on-disk
// numbering when reconciling legacy files.
func (r *VersionRepository) Insert(ctx context.Context, v *version.Version) error {
	_, err := r.db.ExecContext(ctx, insertVersionQuery,
		v.ID,
		string(v.OwnerKind),
		v.OwnerID,
		v.TypeID,
		v.BaseName,
		v.TakeName,
		v.RevisionNumber,
		v.VersionNumber,
		v.Note,
		v.CreatedBy,
		v.Extension,
		v.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to insert version: %w", err)
	}

	return nil
}

// MaxNumber returns the highest version number for (baseName,
// takeName), zero when none exist.
func (r *VersionRepository) MaxNumber(ctx context.Context, baseName, takeName string) (int, error) {
	var maxNumber int
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(version_number), 0)
		FROM versions
		WHERE base_name = ? AND take_name = ?
	`, baseName, takeName).Scan(&maxNumber)
	if err != nil {
		return 0, fmt.Errorf("failed to query max version number: %w", err)
	}
	return maxNumber, nil
}

// ListByOwner returns the versions of one shot or asset ordered by
// take and number.
func (r *VersionRepository) ListByOwner(ctx context.Context, kind version.OwnerKind, ownerID string) ([]version.Version, error) {
	return r.list(ctx, `
		SELECT id, owner_kind, owner_id, type_id, base_name, take_name,
			revision_number, version_number, note, created_by, extension, created_at
		FROM versions
		WHERE owner_kind = ? AND owner_id = ?
		ORDER BY take_name, version_number
	`, string(kind), ownerID)
}

// ListByBaseTake returns the version line of one (base, take) pair in
// number order.
func (r *VersionRepository) ListByBaseTake(ctx context.Context, baseName, takeName string) ([]version.Version, error) {
	return r.list(ctx, `
		SELECT id, owner_kind, owner_id, type_id, base_name, take_name,
			revision_number, version_number, note, created_by, extension, created_at
		FROM versions
		WHERE base_name = ? AND take_name = ?
		ORDER BY version_number
	`, baseName, takeName)
}

func (r *VersionRepository) list(ctx context.Context, query string, args ...any) ([]version.Version, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	defer rows.Close()

	var versions []version.Version
	for rows.Next() {
		var v version.Version
		var kind string
		err := rows.Scan(
			&v.ID,
			&kind,
			&v.OwnerID,
			&v.TypeID,
			&v.BaseName,
			&v.TakeName,
			&v.RevisionNumber,
			&v.VersionNumber,
			&v.Note,
			&v.CreatedBy,
			&v.Extension,
			&v.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}
		v.OwnerKind = version.OwnerKind(kind)
		versions = append(versions, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating version rows: %w", err)
	}

	return versions, nil
}
