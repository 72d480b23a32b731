// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Interactive read-eval-print loop for violet.
//
// Input lines come from liner, which provides line editing, history
// navigation and tab completion over command paths and aliases.
// Ctrl+C and Ctrl+D end the session like the exit command does.

package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/jeranaias/violet/internal/session"
)

// =============================================================================
// LINE INPUT
// =============================================================================

// LineReader supplies input lines to Run. It returns io.EOF or
// liner.ErrPromptAborted when the user ends the session.
type LineReader interface {
	ReadInput() (string, error)
}

// REPL provides input history and line editing for the interpreter.
type REPL struct {
	line        *liner.State
	prompt      string
	historyFile string
}

// NewREPL creates a line editor printing prompt. An empty historyFile
// disables history persistence. complete may be nil.
func NewREPL(prompt, historyFile string, complete func(string) []string) *REPL {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	if complete != nil {
		line.SetCompleter(complete)
	}

	r := &REPL{
		line:        line,
		prompt:      prompt,
		historyFile: historyFile,
	}
	r.LoadHistory()
	return r
}

// LoadHistory loads command history from the history file.
func (r *REPL) LoadHistory() {
	if r.historyFile == "" {
		return
	}
	if f, err := os.Open(r.historyFile); err == nil {
		_, _ = r.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads one line. Non-blank lines are added to the history.
func (r *REPL) ReadInput() (string, error) {
	input, err := r.line.Prompt(r.prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history with owner-only permissions.
func (r *REPL) SaveHistory() error {
	if r.historyFile == "" {
		return nil
	}
	f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = r.line.WriteHistory(f)
	return err
}

// Close saves history and restores the terminal.
func (r *REPL) Close() error {
	histErr := r.SaveHistory()
	return errors.Join(histErr, r.line.Close())
}

// =============================================================================
// LOOP
// =============================================================================

// Run dispatches lines from in until the exit command runs, the input ends
// or ctx is cancelled. A read failing after cancellation ends the loop
// normally. Command errors were already printed by the session and do not
// stop the loop. Run never closes the session.
func Run(ctx context.Context, s *session.Session, in LineReader, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := in.ReadInput()
		if err != nil {
			if ctx.Err() != nil {
				logger.Debug("input interrupted", zap.Error(err))
				return nil
			}
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				logger.Debug("input ended", zap.Error(err))
				return nil
			}
			return err
		}

		res, err := s.Dispatch(line)
		if err != nil {
			logger.Debug("command failed", zap.String("line", line), zap.Error(err))
			continue
		}
		if res.Exit {
			return nil
		}
	}
}
