// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pathtree implements the command path matching engine.
//
// A path is a whitespace-separated sequence of tokens. Paths are stored in a
// flattened tree: every leading prefix of a registered path is a node keyed by
// its canonical string, and every node carries a share count of the registered
// paths passing through it. Nodes that are the full path of an entry also
// carry a payload.
//
// # Key Types
//
//   - Tree: generic path registry with share-counted removal
//   - Node: a prefix node with share count and optional payload
//   - Match: a resolved template plus the argument values it captured
//   - NodeRecord: serialized form of a node
//
// # Placeholders
//
// The reserved token <ARG> is a wildcard. Resolve walks an input path token by
// token, preferring literal matches over wildcard ones, and also understands
// quoted multi-word arguments:
//
//	tree := pathtree.New[string]()
//	_ = tree.Set("say", "please say <ARG> and <ARG>")
//	m, ok := pathtree.Resolve(tree, `please say "a b" and c`)
//	// m.Template == "please say <ARG> and <ARG>", m.Args == ["a b", "c"]
//
// # Shortcuts
//
// SetWithShortcut also registers a bracketed acronym for the path, numbered
// when the acronym is already taken by a path of the same arity:
//
//	sc, _ := tree.SetWithShortcut("say", "please say <ARG> and <ARG>")
//	// sc == "[psaaa] <ARG> <ARG>"
package pathtree
