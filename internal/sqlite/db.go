// Package sqlite implements the per-project metadata store on SQLite.
// Each project directory carries its own database file; opening one
// applies the schema idempotently so fresh and existing stores go
// through the same path.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New opens a SQLite database. The pragmas ride on the DSN so that
// every connection in the pool gets them, not just whichever one runs
// an Exec first: WAL plus a busy timeout lets concurrent writers queue
// at the driver level, and _txlock=immediate makes transactions take
// the write lock up front instead of failing on the read-to-write
// upgrade mid-allocation.
func New(dataSourceName string) (*DB, error) {
	sep := "?"
	if strings.Contains(dataSourceName, "?") {
		sep = "&"
	}
	dsn := dataSourceName + sep + "_txlock=immediate" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=foreign_keys(1)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations applies the store schema. Every statement is
// idempotent, so reopening an existing store is a no-op.
func (db *DB) RunMigrations() error {
	migration := `
-- Project identity and naming conventions, exactly one row
CREATE TABLE IF NOT EXISTS project_info (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    code TEXT NOT NULL,
    shot_prefix TEXT NOT NULL,
    shot_padding INTEGER NOT NULL,
    rev_prefix TEXT NOT NULL,
    rev_padding INTEGER NOT NULL,
    ver_prefix TEXT NOT NULL,
    ver_padding INTEGER NOT NULL,
    fps INTEGER NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    structure TEXT NOT NULL DEFAULT '[]',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sequences (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    code TEXT NOT NULL,
    no_sub_name_field INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS shots (
    id TEXT PRIMARY KEY,
    sequence_id TEXT NOT NULL,
    number TEXT NOT NULL,
    start_frame INTEGER NOT NULL,
    end_frame INTEGER NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (sequence_id, number),
    FOREIGN KEY (sequence_id) REFERENCES sequences(id)
);
CREATE INDEX IF NOT EXISTS idx_sequence_shots ON shots(sequence_id);

CREATE TABLE IF NOT EXISTS version_types (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    code TEXT NOT NULL UNIQUE,
    filename TEXT NOT NULL,
    path TEXT NOT NULL,
    output_path TEXT NOT NULL,
    extra_folders TEXT NOT NULL DEFAULT '',
    environments TEXT NOT NULL DEFAULT '[]',
    type_for TEXT NOT NULL CHECK(type_for IN ('Shot', 'Asset'))
);

CREATE TABLE IF NOT EXISTS assets (
    id TEXT PRIMARY KEY,
    sequence_id TEXT NOT NULL DEFAULT '',
    base_name TEXT NOT NULL,
    sub_name TEXT NOT NULL,
    type_name TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (base_name, sub_name, type_name)
);

-- created_by holds initials without a foreign key so versions
-- reconciled from legacy files can reference people no longer in the
-- user list
CREATE TABLE IF NOT EXISTS versions (
    id TEXT PRIMARY KEY,
    owner_kind TEXT NOT NULL CHECK(owner_kind IN ('shot', 'asset')),
    owner_id TEXT NOT NULL,
    type_id TEXT NOT NULL,
    base_name TEXT NOT NULL,
    take_name TEXT NOT NULL,
    revision_number INTEGER NOT NULL DEFAULT 0,
    version_number INTEGER NOT NULL,
    note TEXT NOT NULL DEFAULT '',
    created_by TEXT NOT NULL,
    extension TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (base_name, take_name, version_number),
    FOREIGN KEY (type_id) REFERENCES version_types(id)
);
CREATE INDEX IF NOT EXISTS idx_owner_versions ON versions(owner_kind, owner_id);
CREATE INDEX IF NOT EXISTS idx_base_take_versions ON versions(base_name, take_name);

CREATE TABLE IF NOT EXISTS users (
    initials TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL DEFAULT ''
);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
