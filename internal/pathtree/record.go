// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pathtree

import (
	"fmt"
	"sort"
)

// NodeRecord is the structural form of one node used for persistence.
type NodeRecord[V any] struct {
	Path       string `json:"path"`
	ShareCount int    `json:"share_count"`
	Value      *V     `json:"value,omitempty"`
}

// Nodes returns a record for every node, sorted by path.
func (t *Tree[V]) Nodes() []NodeRecord[V] {
	records := make([]NodeRecord[V], 0, len(t.nodes))
	for path, n := range t.nodes {
		rec := NodeRecord[V]{Path: path, ShareCount: n.ShareCount}
		if n.HasValue {
			v := n.Value
			rec.Value = &v
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Path < records[j].Path
	})
	return records
}

// Restore builds a tree from records produced by Nodes. Records are checked
// against the share count invariant: every count must equal the number of
// valued nodes the record is a prefix of, and every prefix of a valued node
// must be present.
func Restore[V any](records []NodeRecord[V]) (*Tree[V], error) {
	t := New[V]()
	for _, rec := range records {
		path := Canonical(rec.Path)
		if path == "" {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyPath)
		}
		if path != rec.Path {
			return nil, fmt.Errorf("%w: non-canonical path %q", ErrInvalidRecord, rec.Path)
		}
		if rec.ShareCount <= 0 {
			return nil, fmt.Errorf("%w: share count %d at %q", ErrInvalidRecord, rec.ShareCount, path)
		}
		if _, dup := t.nodes[path]; dup {
			return nil, fmt.Errorf("%w: duplicate path %q", ErrInvalidRecord, path)
		}
		n := &Node[V]{ShareCount: rec.ShareCount}
		if rec.Value != nil {
			n.Value = *rec.Value
			n.HasValue = true
		}
		t.nodes[path] = n
	}

	expected := make(map[string]int, len(t.nodes))
	for path, n := range t.nodes {
		if !n.HasValue {
			continue
		}
		for _, prefix := range Prefixes(Tokenize(path)) {
			expected[prefix]++
		}
	}
	for path, want := range expected {
		n, ok := t.nodes[path]
		if !ok {
			return nil, fmt.Errorf("%w: missing prefix node %q", ErrInvalidRecord, path)
		}
		if n.ShareCount != want {
			return nil, fmt.Errorf("%w: share count %d at %q, want %d", ErrInvalidRecord, n.ShareCount, path, want)
		}
	}
	if len(expected) != len(t.nodes) {
		return nil, fmt.Errorf("%w: orphaned prefix nodes", ErrInvalidRecord)
	}
	return t, nil
}
