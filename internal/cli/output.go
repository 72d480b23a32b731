// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// output.go - Styled session output for the terminal.

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/violet/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	hintStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)
)

// =============================================================================
// TERMINAL OUTPUT
// =============================================================================

// TerminalOutput implements session.Output for a terminal. Without colors it
// writes the text unchanged.
type TerminalOutput struct {
	out      io.Writer
	errOut   io.Writer
	color    bool
	renderer *glamour.TermRenderer
}

// NewTerminalOutput creates the output. markdown enables glamour rendering of
// help texts and only applies when colors are enabled.
func NewTerminalOutput(out, errOut io.Writer, color, markdown bool) *TerminalOutput {
	o := &TerminalOutput{out: out, errOut: errOut, color: color}
	if color && markdown {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(min(GetTerminalWidth(), 100)-2),
		)
		// Fall back to plain text if the renderer cannot be built
		if err == nil {
			o.renderer = renderer
		}
	}
	return o
}

// Print writes a regular message. INFO lines, alias changes, suggestions and
// the welcome banner are styled.
func (o *TerminalOutput) Print(text string) {
	if o.color {
		switch {
		case strings.HasPrefix(text, "INFO:"):
			text = styles.RenderInfo(text)
		case strings.HasPrefix(text, "Alias ["):
			text = styles.RenderSuccess(text)
		case strings.HasPrefix(text, "Did you mean:"):
			text = hintStyle.Render(text)
		case strings.HasPrefix(text, "Welcome to "):
			text = welcomeStyle.Render(text)
		}
	}
	fmt.Fprintln(o.out, text)
}

// Error writes an error or warning to the error stream.
func (o *TerminalOutput) Error(text string) {
	if o.color {
		if strings.HasPrefix(text, "WARNING:") {
			text = styles.RenderWarning(text)
		} else {
			text = styles.RenderError(text)
		}
	}
	fmt.Fprintln(o.errOut, text)
}

// Markdown writes help text, rendered when a renderer is available.
func (o *TerminalOutput) Markdown(text string) {
	if o.renderer != nil {
		if rendered, err := o.renderer.Render(text); err == nil {
			fmt.Fprint(o.out, rendered)
			return
		}
	}
	fmt.Fprintln(o.out, text)
}
