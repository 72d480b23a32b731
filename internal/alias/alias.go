// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package alias manages user-defined aliases for built-in command paths.
//
// An alias maps a new path onto a built-in template with the same number of
// placeholders. Aliases live in their own path tree whose payload is the
// built-in template string; at dispatch time an input matching an alias is
// rewritten into a literal built-in path and matched again.
package alias

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jeranaias/violet/internal/pathtree"
)

var (
	// ErrBuiltinNotFound is returned when the aliased built-in does not exist.
	ErrBuiltinNotFound = errors.New("builtin command does not exist")

	// ErrNoLiteralWord is returned when every token of the alias path is a
	// placeholder. Such an alias would capture any input of its length.
	ErrNoLiteralWord = errors.New("alias needs at least one word that is not <ARG>")

	// ErrShadowsBuiltin is returned when the alias path is itself a built-in.
	ErrShadowsBuiltin = errors.New("alias is an existing builtin command")

	// ErrAliasExists is returned when the alias path is already taken.
	ErrAliasExists = errors.New("alias already exists")

	// ErrArityMismatch is returned when alias and built-in differ in
	// placeholder count.
	ErrArityMismatch = errors.New("alias and builtin must have an equal number of arguments")

	// ErrCannotRemoveBuiltin is returned when removing a built-in path.
	ErrCannotRemoveBuiltin = errors.New("builtin commands cannot be removed")

	// ErrAliasNotFound is returned when removing an alias that does not exist.
	ErrAliasNotFound = errors.New("alias does not exist")

	// ErrReconstructionMismatch is returned when a stored template and the
	// captured arguments disagree in count.
	ErrReconstructionMismatch = errors.New("placeholder and argument counts differ")
)

// Builtins is the view of the command registry the manager needs.
type Builtins interface {
	HasValue(path string) bool
}

// Entry is one alias and the built-in template it stands for.
type Entry struct {
	Alias   string
	Builtin string
}

// Manager applies the alias rules on top of an alias tree.
type Manager struct {
	builtins Builtins
	aliases  *pathtree.Tree[string]
}

// NewManager creates a manager over aliases. A nil tree starts empty.
func NewManager(builtins Builtins, aliases *pathtree.Tree[string]) *Manager {
	if aliases == nil {
		aliases = pathtree.New[string]()
	}
	return &Manager{builtins: builtins, aliases: aliases}
}

// Tree returns the alias tree for persistence.
func (m *Manager) Tree() *pathtree.Tree[string] {
	return m.aliases
}

// Add registers alias for builtin. The alias path must hold at least one
// literal word.
func (m *Manager) Add(alias, builtin string) error {
	tokens := pathtree.Tokenize(alias)
	if len(tokens) == 0 {
		return pathtree.ErrEmptyPath
	}
	if pathtree.ArgCount(alias) == len(tokens) {
		return fmt.Errorf("%w: [%s]", ErrNoLiteralWord, pathtree.Canonical(alias))
	}
	if !m.builtins.HasValue(builtin) {
		return fmt.Errorf("%w: [%s]", ErrBuiltinNotFound, pathtree.Canonical(builtin))
	}
	if m.builtins.HasValue(alias) {
		return fmt.Errorf("%w: [%s]", ErrShadowsBuiltin, pathtree.Canonical(alias))
	}
	if m.aliases.HasValue(alias) {
		return fmt.Errorf("%w: [%s]", ErrAliasExists, pathtree.Canonical(alias))
	}
	if got, want := pathtree.ArgCount(alias), pathtree.ArgCount(builtin); got != want {
		return fmt.Errorf("%w: alias has %d, builtin has %d", ErrArityMismatch, got, want)
	}
	return m.aliases.Set(pathtree.Canonical(builtin), alias)
}

// Remove unregisters alias.
func (m *Manager) Remove(alias string) error {
	if len(pathtree.Tokenize(alias)) == 0 {
		return pathtree.ErrEmptyPath
	}
	if m.builtins.HasValue(alias) {
		return ErrCannotRemoveBuiltin
	}
	if !m.aliases.HasValue(alias) {
		return fmt.Errorf("%w: [%s]", ErrAliasNotFound, pathtree.Canonical(alias))
	}
	return m.aliases.Remove(alias)
}

// List returns every alias with its built-in, sorted by alias.
func (m *Manager) List() []Entry {
	paths := m.aliases.Paths()
	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		builtin, _ := m.aliases.Value(p)
		entries = append(entries, Entry{Alias: p, Builtin: builtin})
	}
	return entries
}

// Paths returns the alias paths, sorted.
func (m *Manager) Paths() []string {
	return m.aliases.Paths()
}

// Len returns the number of registered aliases.
func (m *Manager) Len() int {
	return len(m.aliases.Paths())
}

// Rewrite resolves input against the aliases. When an alias matches, it
// returns the literal built-in path carrying the captured arguments and true.
// Otherwise input is returned unchanged with false.
func (m *Manager) Rewrite(input string) (string, bool, error) {
	match, ok := pathtree.Resolve(m.aliases, input)
	if !ok {
		return input, false, nil
	}
	builtin, ok := m.aliases.Value(match.Template)
	if !ok {
		return input, false, nil
	}
	rewritten, err := Reconstruct(builtin, match.Args)
	if err != nil {
		return "", false, fmt.Errorf("alias [%s]: %w", match.Template, err)
	}
	return rewritten, true, nil
}

// Reconstruct substitutes args into the placeholders of template, left to
// right. Arguments that are not exactly one token are quoted so that the
// result resolves back to the same arguments.
func Reconstruct(template string, args []string) (string, error) {
	tokens := pathtree.Tokenize(template)
	if n := pathtree.ArgCount(template); n != len(args) {
		return "", fmt.Errorf("%w: template has %d, got %d", ErrReconstructionMismatch, n, len(args))
	}

	out := make([]string, len(tokens))
	next := 0
	for i, tok := range tokens {
		if tok != pathtree.Placeholder {
			out[i] = tok
			continue
		}
		out[i] = quoteArg(args[next])
		next++
	}
	return pathtree.Join(out), nil
}

// quoteArg leaves single tokens bare unless they start or end with a quote,
// which the matcher would otherwise read as a quoted span and strip.
func quoteArg(arg string) string {
	if len(pathtree.Tokenize(arg)) == 1 &&
		!strings.HasPrefix(arg, pathtree.Quote) && !strings.HasSuffix(arg, pathtree.Quote) {
		return arg
	}
	return pathtree.Quote + pathtree.Canonical(arg) + pathtree.Quote
}
