// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Algomation-AI/vitebridge/modules/vite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBuild(t *testing.T, manifest string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".vite"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".vite", "manifest.json"), []byte(manifest), 0o644))
	return dir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), append([]string{"vitebridge"}, args...), &stdout, &stderr)
	return stdout.String(), err
}

const cliManifest = `{
  "app.js": {"file": "app.abc123.js", "isEntry": true, "imports": ["_vendor.js"]},
  "_vendor.js": {"file": "vendor.1.js"}
}`

func TestTagsCommand(t *testing.T) {
	dir := setupBuild(t, cliManifest)
	hot := filepath.Join(dir, "hot.json")

	out, err := runCLI(t, "--build-dir", dir, "--hot-file", hot, "--assets-url", "https://cdn.example.com", "tags", "app.js")
	require.NoError(t, err)
	assert.Equal(t, `<link rel="modulepreload" href="https://cdn.example.com/app.abc123.js"/>
<link rel="modulepreload" href="https://cdn.example.com/vendor.1.js"/>
<script type="module" src="https://cdn.example.com/app.abc123.js"></script>
`, out)

	_, err = runCLI(t, "--build-dir", dir, "--hot-file", hot, "tags")
	assert.EqualError(t, err, "missing entrypoint name")

	_, err = runCLI(t, "--build-dir", dir, "--hot-file", hot, "tags", "missing.js")
	assert.True(t, vite.IsErrChunkNotFound(err))
}

func TestAssetCommand(t *testing.T) {
	dir := setupBuild(t, cliManifest)
	hot := filepath.Join(dir, "hot.json")

	out, err := runCLI(t, "--build-dir", dir, "--hot-file", hot, "asset", "app.js")
	require.NoError(t, err)
	assert.Equal(t, "/assets/app.abc123.js\n", out)

	_, err = runCLI(t, "--build-dir", dir, "--hot-file", hot, "hot", "http://localhost:5173")
	require.NoError(t, err)
	out, err = runCLI(t, "--build-dir", dir, "--hot-file", hot, "asset", "app.js")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5173/app.js\n", out)

	_, err = runCLI(t, "--build-dir", dir, "--hot-file", hot, "hot", "--clean")
	require.NoError(t, err)
	assert.NoFileExists(t, hot)
}

func TestManifestCommand(t *testing.T) {
	dir := setupBuild(t, cliManifest)
	hot := filepath.Join(dir, "hot.json")

	_, err := runCLI(t, "--build-dir", dir, "--hot-file", hot, "manifest", "--check")
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.abc123.js"), make([]byte, 2048), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vendor.1.js"), make([]byte, 1024), 0o644))
	out, err := runCLI(t, "--build-dir", dir, "--hot-file", hot, "manifest", "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "2 chunks, 1 entries, 2 files (3.0 KiB)")

	out, err = runCLI(t, "--build-dir", dir, "--hot-file", hot, "manifest")
	require.NoError(t, err)
	assert.Contains(t, out, `"file": "vendor.1.js"`)

	broken := setupBuild(t, `{"app.js": {"file": "app.js", "imports": ["_gone.js"]}}`)
	_, err = runCLI(t, "--build-dir", broken, "--hot-file", hot, "manifest", "--check")
	assert.True(t, vite.IsErrChunkNotFound(err))
}

func TestConfigFile(t *testing.T) {
	dir := setupBuild(t, cliManifest)
	conf := filepath.Join(dir, "app.ini")
	require.NoError(t, os.WriteFile(conf, []byte("[vite]\nBUILD_DIRECTORY = "+dir+"\nHOT_FILE = "+filepath.Join(dir, "hot.json")+"\nASSETS_URL = /static/\n\n[log]\nLEVEL = error\n"), 0o644))

	out, err := runCLI(t, "--config", conf, "asset", "app.js")
	require.NoError(t, err)
	assert.Equal(t, "/static/app.abc123.js\n", out)

	require.NoError(t, os.WriteFile(conf, []byte("[vite]\nHOT_MODE = maybe\n"), 0o644))
	_, err = runCLI(t, "--config", conf, "asset", "app.js")
	assert.Error(t, err)
}
