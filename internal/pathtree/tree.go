// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pathtree

import (
	"fmt"
	"sort"
)

// =============================================================================
// NODE
// =============================================================================

// Node is one prefix of at least one registered path.
type Node[V any] struct {
	// ShareCount is the number of registered paths passing through this node,
	// including a path ending here.
	ShareCount int

	// Value is the payload; meaningful only when HasValue is true.
	Value V

	// HasValue marks the node as the full path of a registered entry.
	HasValue bool
}

// =============================================================================
// TREE
// =============================================================================

// Tree is a path-keyed registry. The zero value is not usable; use New.
//
// A Tree is not safe for concurrent use.
type Tree[V any] struct {
	nodes map[string]*Node[V]
}

// New creates an empty tree.
func New[V any]() *Tree[V] {
	return &Tree[V]{nodes: make(map[string]*Node[V])}
}

// Set registers value at path. Every prefix of path gains one share; the node
// of the full path receives the value. Registering a path that already holds
// a value only replaces the value.
func (t *Tree[V]) Set(value V, path string) error {
	tokens := Tokenize(path)
	if len(tokens) == 0 {
		return ErrEmptyPath
	}

	hierarchy := Prefixes(tokens)
	full := hierarchy[len(hierarchy)-1]
	if n, ok := t.nodes[full]; ok && n.HasValue {
		n.Value = value
		return nil
	}

	for _, prefix := range hierarchy {
		n, ok := t.nodes[prefix]
		if !ok {
			n = &Node[V]{}
			t.nodes[prefix] = n
		}
		n.ShareCount++
	}
	leaf := t.nodes[full]
	leaf.Value = value
	leaf.HasValue = true
	return nil
}

// SetWithShortcut registers value at path and at the first free shortcut of
// path. Shortcuts are numbered 1, 2, 3... in registration order among paths
// sharing the same acronym and arity. It returns the shortcut used.
func (t *Tree[V]) SetWithShortcut(value V, path string) (string, error) {
	if err := t.Set(value, path); err != nil {
		return "", err
	}

	for serial := 1; ; serial++ {
		shortcut, err := Shortcut(path, serial)
		if err != nil {
			return "", err
		}
		if t.HasValue(shortcut) {
			continue
		}
		if err := t.Set(value, shortcut); err != nil {
			return "", err
		}
		return shortcut, nil
	}
}

// Get returns a copy of the node at path.
func (t *Tree[V]) Get(path string) (Node[V], bool) {
	n, ok := t.nodes[Canonical(path)]
	if !ok {
		return Node[V]{}, false
	}
	return *n, true
}

// Value returns the payload registered at path.
func (t *Tree[V]) Value(path string) (V, bool) {
	n, ok := t.nodes[Canonical(path)]
	if !ok || !n.HasValue {
		var zero V
		return zero, false
	}
	return n.Value, true
}

// ContainsPrefix reports whether a node exists at path, with or without a value.
func (t *Tree[V]) ContainsPrefix(path string) bool {
	_, ok := t.nodes[Canonical(path)]
	return ok
}

// HasValue reports whether a value is registered at path.
func (t *Tree[V]) HasValue(path string) bool {
	n, ok := t.nodes[Canonical(path)]
	return ok && n.HasValue
}

// Remove unregisters the value at path. Prefix nodes still shared by other
// entries survive; a terminal node still shared is demoted to a prefix node.
//
// Share counts for every level are computed before any node is touched, so a
// failed invariant panics without leaving the tree half updated.
func (t *Tree[V]) Remove(path string) error {
	tokens := Tokenize(path)
	if len(tokens) == 0 {
		return ErrEmptyPath
	}

	hierarchy := Prefixes(tokens)
	full := hierarchy[len(hierarchy)-1]
	leaf, ok := t.nodes[full]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, full)
	}
	if !leaf.HasValue {
		return fmt.Errorf("%w: %s", ErrNoValue, full)
	}

	counts := make([]int, len(hierarchy))
	for i, prefix := range hierarchy {
		n, ok := t.nodes[prefix]
		if !ok || n.ShareCount <= 0 {
			panic(fmt.Sprintf("pathtree: share count underflow at %q while removing %q", prefix, full))
		}
		counts[i] = n.ShareCount - 1
	}

	for i, prefix := range hierarchy {
		if counts[i] == 0 {
			delete(t.nodes, prefix)
			continue
		}
		n := t.nodes[prefix]
		n.ShareCount = counts[i]
		if prefix == full {
			var zero V
			n.Value = zero
			n.HasValue = false
		}
	}
	return nil
}

// Len returns the number of nodes, prefixes included.
func (t *Tree[V]) Len() int {
	return len(t.nodes)
}

// Empty reports whether the tree has no nodes.
func (t *Tree[V]) Empty() bool {
	return len(t.nodes) == 0
}

// Paths returns every path holding a value, sorted.
func (t *Tree[V]) Paths() []string {
	paths := make([]string, 0, len(t.nodes))
	for path, n := range t.nodes {
		if n.HasValue {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}
