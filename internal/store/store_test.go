// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jeranaias/violet/internal/pathtree"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sampleTree(t *testing.T) *pathtree.Tree[string] {
	t.Helper()
	tree := pathtree.New[string]()
	require.NoError(t, tree.Set("please say <ARG> and <ARG>", "hi <ARG> <ARG>"))
	require.NoError(t, tree.Set("exit", "hi"))
	require.NoError(t, tree.Set("exit", "get me out"))
	return tree
}

func assertSameAliases(t *testing.T, want, got *pathtree.Tree[string]) {
	t.Helper()
	assert.Equal(t, want.Paths(), got.Paths())
	assert.Equal(t, want.Nodes(), got.Nodes())
}

// =============================================================================
// BACKEND TESTS
// =============================================================================

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	return map[string]Store{
		BackendJSON:   NewJSONStore(filepath.Join(dir, "aliases.json")),
		BackendSQLite: NewSQLiteStore(filepath.Join(dir, "aliases.db")),
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			tree := sampleTree(t)

			require.NoError(t, s.Save(ctx, tree))
			assert.True(t, s.Exists())

			loaded, err := s.Load(ctx)
			require.NoError(t, err)
			assertSameAliases(t, tree, loaded)

			// Saving replaces, it does not merge
			require.NoError(t, loaded.Remove("hi <ARG> <ARG>"))
			require.NoError(t, s.Save(ctx, loaded))

			reloaded, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"get me out", "hi"}, reloaded.Paths())
		})
	}
}

func TestStore_LoadMissing(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			tree, err := s.Load(ctx)
			require.NoError(t, err)
			assert.True(t, tree.Empty())
			assert.False(t, s.Exists(), "loading must not create the store")
		})
	}
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			require.NoError(t, s.Delete(ctx), "deleting a missing store")
			require.NoError(t, s.Save(ctx, sampleTree(t)))
			require.NoError(t, s.Delete(ctx))
			assert.False(t, s.Exists())
			assert.NoFileExists(t, s.Path())
		})
	}
}

func TestStore_LoadCorrupt(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			require.NoError(t, os.WriteFile(s.Path(), []byte("definitely not an alias store, not even close"), 0600))

			_, err := s.Load(ctx)
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestJSONStore_InconsistentRecords(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "aliases.json"))
	data := `[{"path":"exit","share_count":2,"value":"bye"}]`
	require.NoError(t, os.WriteFile(s.Path(), []byte(data), 0600))

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestJSONStore_FileFormat(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "aliases.json"))
	tree := pathtree.New[string]()
	require.NoError(t, tree.Set("exit", "bye now"))
	require.NoError(t, s.Save(context.Background(), tree))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"path":"bye","share_count":1},
		{"path":"bye now","share_count":1,"value":"exit"}
	]`, string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(s.Path())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}

func TestStore_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewJSONStore(filepath.Join(t.TempDir(), "aliases.json"))
	assert.ErrorIs(t, s.Save(ctx, sampleTree(t)), context.Canceled)
	assert.False(t, s.Exists())
}

// =============================================================================
// OPEN TESTS
// =============================================================================

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(BackendJSON, dir, "")
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, s)
	assert.Equal(t, filepath.Join(dir, "aliases.json"), s.Path())

	s, err = Open(BackendSQLite, dir, "")
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	assert.Equal(t, filepath.Join(dir, "aliases.db"), s.Path())

	custom := filepath.Join(dir, "mine.json")
	s, err = Open(BackendJSON, dir, custom)
	require.NoError(t, err)
	assert.Equal(t, custom, s.Path())

	_, err = Open("yaml", dir, "")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

// =============================================================================
// LOCK TESTS
// =============================================================================

func TestLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.json")

	lock, err := AcquireLock(path)
	require.NoError(t, err)
	assert.FileExists(t, lock.Path())

	_, err = AcquireLock(path)
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, lock.Release())
	require.NoError(t, lock.Release(), "second release")
	assert.NoFileExists(t, lock.Path())

	again, err := AcquireLock(path)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

// =============================================================================
// WATCHER TESTS
// =============================================================================

func TestWatcher_DetectsExternalWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.json")

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0600))
	assert.Never(t, w.Changed, 200*time.Millisecond, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("[]"), 0600))
	assert.Eventually(t, w.Changed, 2*time.Second, 20*time.Millisecond)
}

func TestWatcher_CloseStopsGoroutine(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "aliases.db"), nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.False(t, w.Changed())
}
