// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package json

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalIndent(t *testing.T) {
	out, err := MarshalIndent(map[string]any{"url": "http://localhost:5173"}, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"url\": \"http://localhost:5173\"\n}", string(out))
	assert.True(t, Valid(out))
	assert.False(t, Valid([]byte("{")))
}

func TestEncoderDecoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewEncoder(&buf).Encode([]string{"a.css", "b.js"}))

	var got []string
	require.NoError(t, NewDecoder(&buf).Decode(&got))
	assert.Equal(t, []string{"a.css", "b.js"}, got)
}
