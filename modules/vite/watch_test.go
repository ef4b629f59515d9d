// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package vite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestWatcher(t *testing.T) {
	v := newBuildVite(t, `{"app.js": {"file": "app.1.js"}}`)
	watcher, err := NewManifestWatcher(v)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	path, err := v.AssetPath("app.js")
	require.NoError(t, err)
	assert.Equal(t, "/assets/app.1.js", path)

	writeFile(t, v.ManifestPath(), `{"app.js": {"file": "app.2.js"}}`)
	assert.Eventually(t, func() bool {
		path, err := v.AssetPath("app.js")
		return err == nil && path == "/assets/app.2.js"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestManifestWatcherMissingDirectory(t *testing.T) {
	opts := testOptions(t)
	_, err := NewManifestWatcher(New(opts))
	assert.Error(t, err)
}
