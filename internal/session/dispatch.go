// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/violet/internal/commands"
	"github.com/jeranaias/violet/internal/util"
)

// Result describes what one input line did.
type Result struct {
	// Command that ran, nil for blank lines and failures
	Command *commands.Command

	// Action returned by the command
	Action commands.Action

	// Exit is true when the session should end
	Exit bool
}

// Dispatch runs one input line: alias rewrite, builtin match, execution and
// the resulting action. Problems are printed to the session output and also
// returned; they never end the session.
func (s *Session) Dispatch(line string) (Result, error) {
	parsed := s.parser.Parse(line)
	if parsed.Empty() {
		return Result{}, nil
	}

	if parsed.Error != nil {
		s.reportParseError(parsed.Error)
		return Result{}, parsed.Error
	}

	if parsed.Aliased {
		s.logger.Debug("alias rewrite", zap.String("input", parsed.Input), zap.String("line", parsed.Line))
	}

	action, err := parsed.Command.Execute(s.env, parsed.Args)
	if err != nil {
		s.out.Error("ERROR: " + err.Error())
		return Result{Command: parsed.Command}, err
	}

	result := Result{Command: parsed.Command, Action: action}
	if err := s.apply(action); err != nil {
		return result, err
	}
	result.Exit = action.Kind == commands.ActionExit
	return result, nil
}

func (s *Session) reportParseError(err error) {
	var notFound *commands.NotFoundError
	if errors.As(err, &notFound) {
		s.out.Error(notFound.Error())
		if notFound.Suggestion != "" {
			s.out.Print(fmt.Sprintf("Did you mean: %s", notFound.Suggestion))
		}
		return
	}
	s.out.Error("ERROR: " + err.Error())
}

// =============================================================================
// ACTIONS
// =============================================================================

func (s *Session) apply(action commands.Action) error {
	switch action.Kind {
	case commands.ActionPrint:
		s.out.Print(action.Message)

	case commands.ActionExit:
		// Close prints the exit message after persisting

	case commands.ActionAddAlias:
		if err := s.aliases.Add(action.Alias, action.Builtin); err != nil {
			s.out.Error("ERROR: " + err.Error())
			return err
		}
		s.MarkDirty()
		s.logger.Info("alias added", zap.String("alias", action.Alias), zap.String("builtin", action.Builtin))
		s.out.Print(fmt.Sprintf("Alias [%s] now runs [%s].", action.Alias, action.Builtin))

	case commands.ActionRemoveAlias:
		if err := s.aliases.Remove(action.Alias); err != nil {
			s.out.Error("ERROR: " + err.Error())
			return err
		}
		s.MarkDirty()
		s.logger.Info("alias removed", zap.String("alias", action.Alias))
		s.out.Print(fmt.Sprintf("Alias [%s] removed.", action.Alias))

	case commands.ActionListAliases:
		s.listAliases()

	case commands.ActionListCommands:
		s.listCommands()

	case commands.ActionExplain:
		cmd, ok := s.registry.Lookup(action.Target)
		if !ok {
			err := fmt.Errorf("can't explain command %q which doesn't exist", action.Target)
			s.out.Error("ERROR: " + err.Error() + ".")
			return err
		}
		s.out.Markdown(cmd.Help)

	case commands.ActionHelp:
		s.out.Markdown(action.Message)
	}
	return nil
}

func (s *Session) listAliases() {
	entries := s.aliases.List()
	if len(entries) == 0 {
		s.out.Print("No aliases defined. Add one with: add alias <ARG> for builtin <ARG>")
		return
	}

	width := 0
	for _, e := range entries {
		width = max(width, util.StringWidth(e.Alias))
	}

	var b strings.Builder
	b.WriteString("Aliases:\n\n")
	for _, e := range entries {
		b.WriteString("- ")
		b.WriteString(util.PadRight(e.Alias, width))
		b.WriteString(" -> ")
		b.WriteString(e.Builtin)
		b.WriteString("\n")
	}
	s.out.Print(strings.TrimRight(b.String(), "\n"))
}

func (s *Session) listCommands() {
	cmds := s.registry.All()
	if len(cmds) == 0 {
		s.out.Print("No commands available!")
		return
	}

	width := 0
	for _, cmd := range cmds {
		width = max(width, util.StringWidth(cmd.Path))
	}

	var b strings.Builder
	b.WriteString("Available commands:\n\n")
	for _, cmd := range cmds {
		b.WriteString("- ")
		b.WriteString(util.PadRight(cmd.Path, width))
		b.WriteString("  ")
		b.WriteString(s.registry.Shortcut(cmd.Kind))
		b.WriteString("\n")
	}
	b.WriteString("\nTo explain an individual command, please run:\n")
	b.WriteString(s.cfg.Interpreter.Prompt + "explain command <ARG>\n")
	b.WriteString("where <ARG> is the command you want explained.\n")
	b.WriteString("If the command consists of several words, enclose it in quotation marks \" when passing it to explain command.")
	s.out.Print(b.String())
}
