// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jeranaias/violet/internal/alias"
	"github.com/jeranaias/violet/internal/config"
	"github.com/jeranaias/violet/internal/session"
)

var testInfo = BuildInfo{Version: "1.2.3", GitCommit: "abc123", BuildDate: "today", Author: "Jesse Morgan"}

// isolate points the config directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("VIOLET_HOME", dir)
	for _, key := range []string{
		"VIOLET_NAME", "VIOLET_PROMPT", "VIOLET_STORE", "VIOLET_STORE_PATH",
		"VIOLET_LOG_LEVEL", "VIOLET_LOG_FILE", "VIOLET_NO_COLOR", "FORCE_COLOR",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")
	return dir
}

func runViolet(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := NewRootCommand(testInfo)
	root.SetArgs(append([]string{"--no-color"}, args...))
	root.SetOut(&buf)
	root.SetErr(&buf)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

// =============================================================================
// ROOT COMMAND TESTS
// =============================================================================

func TestRootCommand_RunsOneLine(t *testing.T) {
	isolate(t)

	out, err := runViolet(t, "-c", "what is your name")
	require.NoError(t, err)
	assert.Contains(t, out, "My name is Violet! Nice to meet you ^_^")
	assert.Contains(t, out, "Bye! See you next time ^_^")
	assert.NotContains(t, out, "Welcome to")
}

func TestRootCommand_AliasesPersistAcrossRuns(t *testing.T) {
	for _, backend := range []string{"json", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			dir := isolate(t)

			_, err := runViolet(t, "--store", backend, "-c", "add alias ciao for builtin exit")
			require.NoError(t, err)
			if backend == "json" {
				assert.FileExists(t, filepath.Join(dir, "aliases.json"))
			} else {
				assert.FileExists(t, filepath.Join(dir, "aliases.db"))
			}

			out, err := runViolet(t, "--store", backend, "aliases")
			require.NoError(t, err)
			assert.Contains(t, out, "ciao -> exit")

			out, err = runViolet(t, "--store", backend, "-c", "ciao")
			require.NoError(t, err)
			assert.Contains(t, out, "INFO: loaded the saved aliases successfully!")
		})
	}
}

func TestRootCommand_StorePathFlag(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "mine.json")

	_, err := runViolet(t, "--store-path", path, "-c", "add alias ciao for builtin exit")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestRootCommand_FailedLine(t *testing.T) {
	isolate(t)

	out, err := runViolet(t, "-c", "hepl")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, ExitCode(err))
	assert.Contains(t, out, "hepl: command does not exist.")
	assert.Contains(t, out, "Did you mean: help")
}

func TestRootCommand_InvalidBackend(t *testing.T) {
	isolate(t)

	_, err := runViolet(t, "--store", "yaml", "-c", "exit")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, ExitCode(err))
}

func TestRootCommand_UnknownFlag(t *testing.T) {
	isolate(t)

	_, err := runViolet(t, "--frobnicate")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, ExitCode(err))
}

func TestRootCommand_ConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[interpreter]
name = "robot"
exit_message = "Powering down."
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	out, err := runViolet(t, "--config", path, "-c", "what is your name")
	require.NoError(t, err)
	assert.Contains(t, out, "My name is Robot!")
	assert.Contains(t, out, "Powering down.")
}

func TestRootCommand_Shortcuts(t *testing.T) {
	isolate(t)

	out, err := runViolet(t, "shortcuts")
	require.NoError(t, err)
	assert.Contains(t, out, "Aliases:")
	assert.Contains(t, out, "Session:")
	assert.Contains(t, out, "[psaaa] <ARG> <ARG>")
	assert.Contains(t, out, "please say <ARG> and <ARG>")
}

func TestRootCommand_Version(t *testing.T) {
	isolate(t)

	out, err := runViolet(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "violet 1.2.3 (commit abc123")
}

func TestRootCommand_EmptyAliases(t *testing.T) {
	isolate(t)

	out, err := runViolet(t, "aliases")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved aliases.")
}

func TestRootCommand_InitConfig(t *testing.T) {
	dir := isolate(t)

	out, err := runViolet(t, "--store", "sqlite", "init-config")
	require.NoError(t, err)
	path := filepath.Join(dir, "config.toml")
	assert.Contains(t, out, "Wrote "+path)

	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "never", cfg.UI.Color)

	_, err = runViolet(t, "init-config")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, ExitCode(err))

	_, err = runViolet(t, "init-config", "--force")
	require.NoError(t, err)
	cfg, err = config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Store.Backend)
}

func TestRootCommand_InitConfigExplicitPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "violet.toml")

	_, err := runViolet(t, "--config", path, "init-config")
	require.NoError(t, err)

	out, err := runViolet(t, "--config", path, "-c", "what is your name")
	require.NoError(t, err)
	assert.Contains(t, out, "My name is Violet!")
}

// =============================================================================
// REPL LOOP TESTS
// =============================================================================

type scriptedReader struct {
	lines []string
	err   error
	read  int
}

func (r *scriptedReader) ReadInput() (string, error) {
	if r.read >= len(r.lines) {
		if r.err != nil {
			return "", r.err
		}
		return "", io.EOF
	}
	line := r.lines[r.read]
	r.read++
	return line, nil
}

func newTestSession(t *testing.T) (*session.Session, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg := config.Default()
	s, err := session.New(context.Background(), cfg, nil, nil, session.PlainOutput{W: &buf})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, &buf
}

func TestRun_StopsAtExit(t *testing.T) {
	s, out := newTestSession(t)
	in := &scriptedReader{lines: []string{"what is your name", "hepl", "[e]", "what is your name"}}

	require.NoError(t, Run(context.Background(), s, in, nil))
	assert.Equal(t, 3, in.read)
	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("My name is")))
	assert.Contains(t, out.String(), "Did you mean: help")
}

func TestRun_EndsOnEOFAndAbort(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"eof", io.EOF},
		{"ctrl-c", liner.ErrPromptAborted},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestSession(t)
			in := &scriptedReader{lines: []string{"what is your name"}, err: tc.err}
			assert.NoError(t, Run(context.Background(), s, in, nil))
			assert.Equal(t, 1, in.read)
		})
	}
}

func TestRun_ReturnsReadErrors(t *testing.T) {
	s, _ := newTestSession(t)
	boom := errors.New("terminal gone")
	in := &scriptedReader{err: boom}

	assert.ErrorIs(t, Run(context.Background(), s, in, nil), boom)
}

func TestRun_CancelledContext(t *testing.T) {
	s, _ := newTestSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := &scriptedReader{lines: []string{"what is your name"}}

	assert.NoError(t, Run(ctx, s, in, nil))
	assert.Equal(t, 0, in.read)
}

// blockingReader blocks like a terminal prompt until it is closed.
type blockingReader struct {
	closed chan struct{}
	closes int
}

func (r *blockingReader) ReadInput() (string, error) {
	<-r.closed
	return "", os.ErrClosed
}

func (r *blockingReader) Close() error {
	r.closes++
	close(r.closed)
	return nil
}

func TestRun_SignalUnblocksPrompt(t *testing.T) {
	s, out := newTestSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	in := &blockingReader{closed: make(chan struct{})}

	done := make(chan struct{})
	watcherDone := make(chan struct{})
	go func() {
		interruptOnCancel(ctx, done, in, zap.NewNop())
		close(watcherDone)
	}()

	runErr := make(chan error, 1)
	go func() { runErr <- Run(ctx, s, in, nil) }()

	cancel()
	select {
	case err := <-runErr:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	close(done)
	<-watcherDone
	assert.Equal(t, 1, in.closes)

	// The session is left for the caller to close
	_, err := s.Dispatch("what is your name")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "My name is")
}

func TestInterruptOnCancel_LeavesInputOpenWhenDone(t *testing.T) {
	in := &blockingReader{closed: make(chan struct{})}
	done := make(chan struct{})
	close(done)

	interruptOnCancel(context.Background(), done, in, zap.NewNop())
	assert.Zero(t, in.closes)
}

// =============================================================================
// OUTPUT TESTS
// =============================================================================

func TestTerminalOutput_Plain(t *testing.T) {
	var out, errOut bytes.Buffer
	o := NewTerminalOutput(&out, &errOut, false, true)

	o.Print("INFO: saved")
	o.Error("ERROR: broken")
	o.Markdown("**help**")

	assert.Equal(t, "INFO: saved\n**help**\n", out.String())
	assert.Equal(t, "ERROR: broken\n", errOut.String())
}

func TestTerminalOutput_ColoredKeepsText(t *testing.T) {
	var out, errOut bytes.Buffer
	o := NewTerminalOutput(&out, &errOut, true, false)

	o.Print("INFO: saved")
	o.Print("Alias [hi] now runs [exit].")
	o.Print("Did you mean: help")
	o.Error("WARNING: changed")
	o.Error("ERROR: broken")

	assert.Contains(t, out.String(), "[i] INFO: saved")
	assert.Contains(t, out.String(), "[OK] Alias [hi] now runs [exit].")
	assert.Contains(t, out.String(), "Did you mean: help")
	assert.Contains(t, errOut.String(), "[!] WARNING: changed")
	assert.Contains(t, errOut.String(), "[X] ERROR: broken")
}

func TestPrintAliases(t *testing.T) {
	var buf bytes.Buffer
	printAliases(&buf, []alias.Entry{
		{Alias: "ciao", Builtin: "exit"},
		{Alias: "hi <ARG> <ARG>", Builtin: "please say <ARG> and <ARG>"},
	}, 30)

	assert.Equal(t, "ciao           -> exit\nhi <ARG> <ARG> -> please sa...\n", buf.String())
}

// =============================================================================
// ERROR TESTS
// =============================================================================

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitGeneralError, ExitCode(errors.New("boom")))
	assert.Equal(t, ExitConfigError, ExitCode(configError(errors.New("bad"))))
	assert.Equal(t, ExitStoreError, ExitCode(storeError(errors.New("bad"))))

	wrapped := &ExitError{Code: ExitCommandError, Err: io.EOF}
	assert.ErrorIs(t, wrapped, io.EOF)
	assert.Equal(t, "EOF", wrapped.Error())
	assert.Equal(t, "exit status 6", (&ExitError{Code: ExitCommandError}).Error())
}

func TestColorsEnabled(t *testing.T) {
	t.Setenv("FORCE_COLOR", "")
	assert.False(t, ColorsEnabled("never"))
	assert.True(t, ColorsEnabled("always"))

	t.Setenv("FORCE_COLOR", "1")
	assert.True(t, ColorsEnabled("auto"))
}
