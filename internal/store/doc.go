// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store persists the alias registry between interpreter sessions.
//
// Two backends share the Store interface: a JSON file written atomically and
// a SQLite database with one row per registry node. Both persist the node
// records of a pathtree.Tree and validate them on load, so a damaged store
// is reported as ErrCorrupt instead of producing an inconsistent registry.
//
// A Lock keeps two sessions from clobbering the same store, and a Watcher
// reports writes made by other processes while a session runs.
package store
