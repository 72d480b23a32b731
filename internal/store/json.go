// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jeranaias/violet/internal/pathtree"
	"github.com/jeranaias/violet/internal/util"
)

// JSONStore keeps the alias registry as a JSON array of node records.
type JSONStore struct {
	path string
}

// NewJSONStore creates a JSON store backed by path. The file is only created
// by Save.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the backing file.
func (s *JSONStore) Path() string {
	return s.path
}

// Exists reports whether the backing file exists.
func (s *JSONStore) Exists() bool {
	return fileExists(s.path)
}

// Load reads and validates the registry.
func (s *JSONStore) Load(ctx context.Context) (*pathtree.Tree[string], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return pathtree.New[string](), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var records []pathtree.NodeRecord[string]
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}

	tree, err := pathtree.Restore(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return tree, nil
}

// Save writes the registry atomically with owner-only permissions.
func (s *JSONStore) Save(ctx context.Context, tree *pathtree.Tree[string]) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(tree.Nodes(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode aliases: %w", err)
	}
	return util.AtomicWriteFile(s.path, data, 0600)
}

// Delete removes the backing file.
func (s *JSONStore) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close is a no-op; the file is never held open.
func (s *JSONStore) Close() error {
	return nil
}
