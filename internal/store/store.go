// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeranaias/violet/internal/pathtree"
)

// =============================================================================
// STORE INTERFACE
// =============================================================================

// Store persists the alias registry between sessions.
type Store interface {
	// Load reads the persisted registry. A store that does not exist yet
	// loads as an empty registry.
	Load(ctx context.Context) (*pathtree.Tree[string], error)

	// Save replaces the persisted registry with tree.
	Save(ctx context.Context, tree *pathtree.Tree[string]) error

	// Delete removes the persisted registry. Deleting a missing store is not
	// an error.
	Delete(ctx context.Context) error

	// Exists reports whether anything is persisted.
	Exists() bool

	// Path is the file backing the store.
	Path() string

	// Close releases resources held by the store.
	Close() error
}

// =============================================================================
// BACKENDS
// =============================================================================

const (
	// BackendJSON stores the node records in a JSON file
	BackendJSON = "json"

	// BackendSQLite stores the node records in a SQLite database
	BackendSQLite = "sqlite"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendJSON, BackendSQLite}

// DefaultFileName returns the store file name of a backend.
func DefaultFileName(backend string) string {
	if backend == BackendSQLite {
		return "aliases.db"
	}
	return "aliases.json"
}

// Open creates the store for a backend. An empty path selects the default
// file name inside dir.
func Open(backend, dir, path string) (Store, error) {
	if path == "" {
		path = filepath.Join(dir, DefaultFileName(backend))
	}
	switch backend {
	case BackendJSON, "":
		return NewJSONStore(path), nil
	case BackendSQLite:
		return NewSQLiteStore(path), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrUnknownBackend is returned by Open for unsupported backend names.
	ErrUnknownBackend = errors.New("unknown store backend")

	// ErrCorrupt is returned by Load when the persisted data cannot be
	// decoded or does not form a consistent registry.
	ErrCorrupt = errors.New("alias store is corrupt")

	// ErrLocked is returned when another session holds the store lock.
	ErrLocked = errors.New("alias store is locked by another session")
)

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
