// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Exit codes and error wrapping for the violet CLI.

package cli

import (
	"errors"
	"fmt"

	"github.com/jeranaias/violet/internal/store"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid flags or arguments
	ExitUsageError = 2
	// ExitConfigError indicates a configuration file or settings error
	ExitConfigError = 3
	// ExitStoreError indicates the alias store could not be opened or read
	ExitStoreError = 4
	// ExitLockedError indicates another session holds the alias store
	ExitLockedError = 5
	// ExitCommandError indicates the line passed with -c failed
	ExitCommandError = 6
)

// =============================================================================
// EXIT ERROR
// =============================================================================

// ExitError carries the exit code for an error. Silent errors were already
// reported to the user and are not printed again.
type ExitError struct {
	Code   int
	Err    error
	Silent bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func configError(err error) error {
	return &ExitError{Code: ExitConfigError, Err: err}
}

func storeError(err error) error {
	if errors.Is(err, store.ErrLocked) {
		return &ExitError{Code: ExitLockedError, Err: err}
	}
	return &ExitError{Code: ExitStoreError, Err: err}
}

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitGeneralError
}
