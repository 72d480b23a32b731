// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the interpreter packages.
//
// # Key Functions
//
// String Utilities:
//   - TruncateWidth: display-width safe truncation
//   - PadRight: column alignment that accounts for wide characters
//   - Capitalize: title-casing of names
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	// Align listing columns
//	line := util.PadRight(path, 40) + shortcut
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0600)
package util
