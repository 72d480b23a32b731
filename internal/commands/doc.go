// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the built-in command set of the interpreter.
//
// Commands are registered as path templates where <ARG> stands for one
// argument, together with a generated bracketed shortcut. Input lines are
// parsed by going through the user's aliases first and then matching the
// builtin templates.
//
// # Key Types
//
//   - Registry: the closed set of built-in commands and their shortcuts
//   - Parser: alias rewrite followed by template matching
//   - Action: what the session must do after a command ran
//   - Completer: tab completion over templates and aliases
//
// # Built-in Commands
//
//   - exit [e]
//   - what time is it [wtii]
//   - what is your name [wiyn]
//   - please say <ARG> and <ARG> [psaaa]
//   - add alias <ARG> for builtin <ARG> [aaafba]
//   - remove alias <ARG> [raa]
//   - list aliases [la]
//   - help [h]
//   - list available commands [lac]
//   - explain command <ARG> [eca]
//
// # Usage
//
//	registry := commands.NewRegistry()
//	parser := commands.NewParser(registry, aliases)
//	result := parser.Parse(`please say "good morning" and bye`)
//	if result.Error == nil {
//	    action, err := result.Command.Execute(env, result.Args)
//	    ...
//	}
package commands
