// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"fmt"
	"io"
)

// Output receives everything a session prints. The CLI supplies a styled
// implementation; PlainOutput writes text as is.
type Output interface {
	// Print writes a regular message
	Print(text string)

	// Error writes an error or warning message
	Error(text string)

	// Markdown writes help text
	Markdown(text string)
}

// PlainOutput writes unstyled lines to W.
type PlainOutput struct {
	W io.Writer
}

// Print implements Output.
func (o PlainOutput) Print(text string) {
	fmt.Fprintln(o.W, text)
}

// Error implements Output.
func (o PlainOutput) Error(text string) {
	fmt.Fprintln(o.W, text)
}

// Markdown implements Output.
func (o PlainOutput) Markdown(text string) {
	fmt.Fprintln(o.W, text)
}
