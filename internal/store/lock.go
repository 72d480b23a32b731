// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// Lock is an exclusive advisory lock on a store. It lives in a sibling file
// named after the store with a ".lock" suffix.
type Lock struct {
	path string
	f    *os.File
}

// AcquireLock takes the lock of the store at storePath without waiting.
// It returns ErrLocked when another process holds it.
func AcquireLock(storePath string) (*Lock, error) {
	path := storePath + ".lock"
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := lockFile(f); err != nil {
		f.Close()
		return nil, err
	}

	// Record the owner for humans inspecting a stuck lock
	_ = f.Truncate(0)
	_, _ = fmt.Fprintf(f, "%d\n", os.Getpid())

	return &Lock{path: path, f: f}, nil
}

// Path returns the lock file.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks and removes the lock file. It is safe to call twice.
func (l *Lock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	unlockErr := unlockFile(l.f)
	closeErr := l.f.Close()
	l.f = nil
	os.Remove(l.path)

	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}
