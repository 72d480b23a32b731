// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import "fmt"

// Reason classifies an ArgumentError.
type Reason int

const (
	// ReasonWrongCount means the input carried a different number of arguments
	ReasonWrongCount Reason = iota
	// ReasonEmpty means a required argument was an empty quoted string
	ReasonEmpty
	// ReasonPlaceholderMisused means <ARG> itself was passed as an argument
	ReasonPlaceholderMisused
)

// ArgumentError represents a structural problem with a command's arguments.
type ArgumentError struct {
	Command  string
	Arg      string
	Reason   Reason
	Expected int
	Got      int
}

func (e *ArgumentError) Error() string {
	switch e.Reason {
	case ReasonWrongCount:
		return fmt.Sprintf("%s: expected %d arguments, got %d", e.Command, e.Expected, e.Got)
	case ReasonEmpty:
		return fmt.Sprintf("argument named [%s] is empty, which is not allowed in this context", e.Arg)
	case ReasonPlaceholderMisused:
		return fmt.Sprintf("keyword <ARG> used in the wrong context for argument [%s]", e.Arg)
	}
	return e.Command + ": invalid arguments"
}

// NotFoundError is returned when a line matches no command or alias.
type NotFoundError struct {
	Input string

	// Suggestion is the closest known path, or ""
	Suggestion string
}

func (e *NotFoundError) Error() string {
	return e.Input + ": command does not exist."
}
