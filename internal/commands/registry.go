// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the built-in command set of the interpreter.
package commands

import (
	"fmt"
	"sort"

	"github.com/jeranaias/violet/internal/pathtree"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Kind identifies a built-in command. The set is closed.
type Kind int

const (
	KindExit Kind = iota + 1
	KindCurrentTime
	KindWhatsYourName
	KindSayThisAndThat
	KindAddAlias
	KindRemoveAlias
	KindListAliases
	KindHelp
	KindListCommands
	KindExplainCommand
)

// Command describes one built-in command.
type Command struct {
	// Kind selects the behavior
	Kind Kind

	// Path is the registered template (e.g., "remove alias <ARG>")
	Path string

	// Description is the one-line summary shown in listings
	Description string

	// Help is the Markdown text shown by "explain command"
	Help string

	// Args names the placeholders of Path, in order
	Args []ArgDef

	// Category for grouping in listings
	Category string
}

// ArgDef describes one placeholder of a command path.
type ArgDef struct {
	// Name is used in error messages (e.g., "alias to remove")
	Name string

	// AllowEmpty accepts an empty quoted value ("")
	AllowEmpty bool
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds the built-in commands in a path tree keyed by template and
// shortcut.
type Registry struct {
	tree      *pathtree.Tree[Kind]
	commands  map[Kind]*Command
	shortcuts map[Kind]string
}

// NewRegistry creates a registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		tree:      pathtree.New[Kind](),
		commands:  make(map[Kind]*Command),
		shortcuts: make(map[Kind]string),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command and its shortcut.
func (r *Registry) Register(cmd *Command) error {
	if n := pathtree.ArgCount(cmd.Path); n != len(cmd.Args) {
		return fmt.Errorf("command %q: %d placeholders but %d argument definitions", cmd.Path, n, len(cmd.Args))
	}
	shortcut, err := r.tree.SetWithShortcut(cmd.Kind, cmd.Path)
	if err != nil {
		return fmt.Errorf("command %q: %w", cmd.Path, err)
	}
	cmd.Path = pathtree.Canonical(cmd.Path)
	r.commands[cmd.Kind] = cmd
	r.shortcuts[cmd.Kind] = shortcut
	return nil
}

// HasValue reports whether path is a registered template or shortcut.
func (r *Registry) HasValue(path string) bool {
	return r.tree.HasValue(path)
}

// Lookup returns the command registered at a template or shortcut path.
func (r *Registry) Lookup(path string) (*Command, bool) {
	kind, ok := r.tree.Value(path)
	if !ok {
		return nil, false
	}
	return r.commands[kind], true
}

// Resolve matches input against the registered templates and shortcuts.
func (r *Registry) Resolve(input string) (*Command, []string, bool) {
	m, ok := pathtree.Resolve(r.tree, input)
	if !ok {
		return nil, nil, false
	}
	kind, _ := r.tree.Value(m.Template)
	return r.commands[kind], m.Args, true
}

// Shortcut returns the shortcut registered for a kind.
func (r *Registry) Shortcut(kind Kind) string {
	return r.shortcuts[kind]
}

// All returns all commands sorted by path.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Path < cmds[j].Path
	})
	return cmds
}

// Paths returns every registered template, shortcuts excluded, sorted.
func (r *Registry) Paths() []string {
	var paths []string
	for _, p := range r.tree.Paths() {
		if !pathtree.IsShortcut(p) {
			paths = append(paths, p)
		}
	}
	return paths
}

// ByCategory returns commands grouped by category.
func (r *Registry) ByCategory() map[string][]*Command {
	result := make(map[string][]*Command)
	for _, cmd := range r.All() {
		category := cmd.Category
		if category == "" {
			category = "General"
		}
		result[category] = append(result[category], cmd)
	}
	return result
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	builtins := []*Command{
		{
			Kind:        KindExit,
			Path:        "exit",
			Description: "Save aliases and leave the interpreter",
			Help:        helpExit,
			Category:    "Session",
		},
		{
			Kind:        KindCurrentTime,
			Path:        "what time is it",
			Description: "Show the time according to the system clock",
			Help:        helpCurrentTime,
			Category:    "Chit-chat",
		},
		{
			Kind:        KindWhatsYourName,
			Path:        "what is your name",
			Description: "Introduce the interpreter",
			Help:        helpWhatsYourName,
			Category:    "Chit-chat",
		},
		{
			Kind:        KindSayThisAndThat,
			Path:        "please say <ARG> and <ARG>",
			Description: "Repeat two things back",
			Help:        helpSayThisAndThat,
			Args:        []ArgDef{{Name: "first thing", AllowEmpty: true}, {Name: "second thing", AllowEmpty: true}},
			Category:    "Chit-chat",
		},
		{
			Kind:        KindAddAlias,
			Path:        "add alias <ARG> for builtin <ARG>",
			Description: "Define an alias for a builtin command",
			Help:        helpAddAlias,
			Args:        []ArgDef{{Name: "alias to add"}, {Name: "builtin name"}},
			Category:    "Aliases",
		},
		{
			Kind:        KindRemoveAlias,
			Path:        "remove alias <ARG>",
			Description: "Delete an alias",
			Help:        helpRemoveAlias,
			Args:        []ArgDef{{Name: "alias to remove"}},
			Category:    "Aliases",
		},
		{
			Kind:        KindListAliases,
			Path:        "list aliases",
			Description: "Show every alias and the builtin it runs",
			Help:        helpListAliases,
			Category:    "Aliases",
		},
		{
			Kind:        KindHelp,
			Path:        "help",
			Description: "Explain the basics",
			Help:        helpHelp,
			Category:    "Session",
		},
		{
			Kind:        KindListCommands,
			Path:        "list available commands",
			Description: "Show every builtin command",
			Help:        helpListCommands,
			Category:    "Session",
		},
		{
			Kind:        KindExplainCommand,
			Path:        "explain command <ARG>",
			Description: "Show the help of one command",
			Help:        helpExplainCommand,
			Args:        []ArgDef{{Name: "command to explain"}},
			Category:    "Session",
		},
	}

	for _, cmd := range builtins {
		if err := r.Register(cmd); err != nil {
			panic(err)
		}
	}
}
