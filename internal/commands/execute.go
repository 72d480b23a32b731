// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"time"

	"github.com/jeranaias/violet/internal/pathtree"
)

// =============================================================================
// ACTIONS
// =============================================================================

// ActionKind tells the session what to do after a command ran.
type ActionKind int

const (
	// ActionPrint prints Message and continues
	ActionPrint ActionKind = iota
	// ActionExit prints Message and ends the session
	ActionExit
	// ActionAddAlias registers Alias for Builtin
	ActionAddAlias
	// ActionRemoveAlias removes Alias
	ActionRemoveAlias
	// ActionListAliases lists the aliases
	ActionListAliases
	// ActionListCommands lists the builtin commands
	ActionListCommands
	// ActionExplain shows the help of Target
	ActionExplain
	// ActionHelp shows the general help
	ActionHelp
)

// Action is the outcome of executing a command.
type Action struct {
	Kind    ActionKind
	Message string
	Alias   string
	Builtin string
	Target  string
}

// Env is what commands may read from the session.
type Env struct {
	// Name the interpreter introduces itself with
	Name string

	// ExitMessage printed when leaving
	ExitMessage string

	// Now returns the current time; time.Now when nil
	Now func() time.Time
}

func (e Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// =============================================================================
// EXECUTION
// =============================================================================

// Execute validates args against the command's placeholders and returns the
// action to apply.
func (c *Command) Execute(env Env, args []string) (Action, error) {
	if err := c.validate(args); err != nil {
		return Action{}, err
	}

	switch c.Kind {
	case KindExit:
		return Action{Kind: ActionExit, Message: env.ExitMessage}, nil

	case KindCurrentTime:
		return Action{
			Kind:    ActionPrint,
			Message: fmt.Sprintf("Your system clock says it's %s now!", env.now().Format("03:04 PM")),
		}, nil

	case KindWhatsYourName:
		return Action{
			Kind:    ActionPrint,
			Message: fmt.Sprintf("My name is %s! Nice to meet you ^_^", env.Name),
		}, nil

	case KindSayThisAndThat:
		return Action{
			Kind:    ActionPrint,
			Message: fmt.Sprintf("Gotcha. Saying %s and %s!", args[0], args[1]),
		}, nil

	case KindAddAlias:
		return Action{Kind: ActionAddAlias, Alias: args[0], Builtin: args[1]}, nil

	case KindRemoveAlias:
		return Action{Kind: ActionRemoveAlias, Alias: args[0]}, nil

	case KindListAliases:
		return Action{Kind: ActionListAliases}, nil

	case KindHelp:
		return Action{Kind: ActionHelp, Message: c.Help}, nil

	case KindListCommands:
		return Action{Kind: ActionListCommands}, nil

	case KindExplainCommand:
		return Action{Kind: ActionExplain, Target: args[0]}, nil
	}

	return Action{}, fmt.Errorf("command %q has no behavior", c.Path)
}

// validate checks count, placeholder misuse and emptiness, in that order.
func (c *Command) validate(args []string) error {
	if len(args) != len(c.Args) {
		return &ArgumentError{
			Command:  c.Path,
			Reason:   ReasonWrongCount,
			Expected: len(c.Args),
			Got:      len(args),
		}
	}
	for i, arg := range args {
		if arg == pathtree.Placeholder {
			return &ArgumentError{Command: c.Path, Arg: c.Args[i].Name, Reason: ReasonPlaceholderMisused}
		}
	}
	for i, arg := range args {
		if arg == "" && !c.Args[i].AllowEmpty {
			return &ArgumentError{Command: c.Path, Arg: c.Args[i].Name, Reason: ReasonEmpty}
		}
	}
	return nil
}
