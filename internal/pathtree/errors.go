// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pathtree

import "errors"

var (
	// ErrEmptyPath is returned when a path tokenizes to nothing.
	ErrEmptyPath = errors.New("path cannot be empty")

	// ErrNotFound is returned when removing a path that has no node.
	ErrNotFound = errors.New("path does not exist")

	// ErrNoValue is returned when removing a path that is only a prefix node.
	ErrNoValue = errors.New("path is a prefix node without a value")

	// ErrInvalidRecord is returned by Restore for records that break the
	// tree invariants.
	ErrInvalidRecord = errors.New("invalid node record")
)
