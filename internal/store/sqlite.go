// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/jeranaias/violet/internal/pathtree"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS alias_nodes (
    path TEXT PRIMARY KEY,
    share_count INTEGER NOT NULL CHECK (share_count > 0),
    value TEXT,
    has_value INTEGER NOT NULL DEFAULT 0
);
`

// SQLiteStore keeps the alias registry in a SQLite table, one row per node.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// NewSQLiteStore creates a SQLite store backed by path. The database is
// opened lazily so that loading a missing store does not create it.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Path returns the database file.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Exists reports whether the database file exists.
func (s *SQLiteStore) Exists() bool {
	return fileExists(s.path)
}

func (s *SQLiteStore) open(ctx context.Context) (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	s.db = db
	return db, nil
}

// Load reads every node row and rebuilds the registry.
func (s *SQLiteStore) Load(ctx context.Context) (*pathtree.Tree[string], error) {
	if !s.Exists() {
		return pathtree.New[string](), nil
	}

	db, err := s.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}

	rows, err := db.QueryContext(ctx, `SELECT path, share_count, value, has_value FROM alias_nodes ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	defer rows.Close()

	var records []pathtree.NodeRecord[string]
	for rows.Next() {
		var (
			rec      pathtree.NodeRecord[string]
			value    sql.NullString
			hasValue bool
		)
		if err := rows.Scan(&rec.Path, &rec.ShareCount, &value, &hasValue); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
		}
		if hasValue {
			v := value.String
			rec.Value = &v
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}

	tree, err := pathtree.Restore(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return tree, nil
}

// Save replaces all rows in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, tree *pathtree.Tree[string]) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM alias_nodes`); err != nil {
		return fmt.Errorf("failed to clear aliases: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO alias_nodes (path, share_count, value, has_value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range tree.Nodes() {
		var value sql.NullString
		if rec.Value != nil {
			value = sql.NullString{String: *rec.Value, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, rec.Path, rec.ShareCount, value, rec.Value != nil); err != nil {
			return fmt.Errorf("failed to insert %q: %w", rec.Path, err)
		}
	}

	return tx.Commit()
}

// Delete closes the database and removes its files.
func (s *SQLiteStore) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.Close(); err != nil {
		return err
	}
	for _, p := range []string{s.path, s.path + "-wal", s.path + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Close closes the database if it was opened.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
