// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the violet command line.
//
// The root command starts the interactive interpreter. Subcommands inspect
// the saved state without starting a session.
//
// # Usage
//
//	violet                          Start the interpreter
//	violet -c "what is your name"   Run one line and exit
//	violet --store sqlite           Keep aliases in a SQLite database
//	violet aliases                  Print the saved aliases
//	violet shortcuts                Print the shortcut of every command
//
// # Exit codes
//
// Execute maps errors to the Exit* codes in errors.go: configuration errors,
// a store held by another session and a failed -c line each get their own
// code.
package cli
