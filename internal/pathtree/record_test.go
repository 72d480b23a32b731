// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pathtree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodes_RoundTrip(t *testing.T) {
	tree := New[string]()
	require.NoError(t, tree.Set("please say <ARG> and <ARG>", "hi <ARG> <ARG>"))
	require.NoError(t, tree.Set("exit", "hi"))
	require.NoError(t, tree.Set("help", "get me out"))

	data, err := json.Marshal(tree.Nodes())
	require.NoError(t, err)

	var records []NodeRecord[string]
	require.NoError(t, json.Unmarshal(data, &records))

	restored, err := Restore(records)
	require.NoError(t, err)
	assert.Equal(t, tree.Nodes(), restored.Nodes())

	n, ok := restored.Get("hi")
	require.True(t, ok)
	assert.Equal(t, 2, n.ShareCount)
	assert.Equal(t, "exit", n.Value)

	m, ok := Resolve(restored, "hi x y")
	require.True(t, ok)
	assert.Equal(t, "hi <ARG> <ARG>", m.Template)
}

func TestNodes_PrefixHasNoValue(t *testing.T) {
	tree := New[string]()
	require.NoError(t, tree.Set("v", "a b"))

	records := tree.Nodes()
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].Path)
	assert.Nil(t, records[0].Value)
	require.NotNil(t, records[1].Value)
	assert.Equal(t, "v", *records[1].Value)
}

func TestRestore_RejectsInconsistentRecords(t *testing.T) {
	v := "value"
	tests := []struct {
		name    string
		records []NodeRecord[string]
	}{
		{"empty path", []NodeRecord[string]{{Path: "  ", ShareCount: 1, Value: &v}}},
		{"non-canonical path", []NodeRecord[string]{{Path: "a  b", ShareCount: 1, Value: &v}}},
		{"zero share count", []NodeRecord[string]{{Path: "a", ShareCount: 0, Value: &v}}},
		{"duplicate", []NodeRecord[string]{{Path: "a", ShareCount: 1, Value: &v}, {Path: "a", ShareCount: 1, Value: &v}}},
		{"missing prefix", []NodeRecord[string]{{Path: "a b", ShareCount: 1, Value: &v}}},
		{"wrong count", []NodeRecord[string]{{Path: "a", ShareCount: 3}, {Path: "a b", ShareCount: 1, Value: &v}}},
		{"orphan prefix", []NodeRecord[string]{{Path: "a", ShareCount: 1}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Restore(tc.records)
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestRestore_Empty(t *testing.T) {
	tree, err := Restore[string](nil)
	require.NoError(t, err)
	assert.True(t, tree.Empty())
}
