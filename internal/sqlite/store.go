package sqlite

import "fmt"

// Store bundles one open project database with its repositories.
type Store struct {
	db *DB

	Info      *InfoRepository
	Sequences *SequenceRepository
	Shots     *ShotRepository
	Assets    *AssetRepository
	Types     *TypeRepository
	Versions  *VersionRepository
	Users     *UserRepository
}

// OpenStore opens (or creates) the store at path and applies the
// schema.
func OpenStore(path string) (*Store, error) {
	db, err := New(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating store %s: %w", path, err)
	}
	return NewStore(db), nil
}

// NewStore wraps an already open database.
func NewStore(db *DB) *Store {
	return &Store{
		db:        db,
		Info:      NewInfoRepository(db),
		Sequences: NewSequenceRepository(db),
		Shots:     NewShotRepository(db),
		Assets:    NewAssetRepository(db),
		Types:     NewTypeRepository(db),
		Versions:  NewVersionRepository(db),
		Users:     NewUserRepository(db),
	}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
