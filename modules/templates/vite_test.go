// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package templates

import (
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Algomation-AI/vitebridge/modules/vite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVite(t *testing.T, manifest, hotURL string) *vite.Vite {
	t.Helper()
	dir := t.TempDir()
	opts := vite.DefaultOptions()
	opts.BuildDirectory = dir
	opts.HotFile = filepath.Join(dir, "hot.json")
	if manifest != "" {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, ".vite"), 0o755))
		require.NoError(t, os.WriteFile(opts.ManifestPath(), []byte(manifest), 0o644))
	}
	if hotURL != "" {
		require.NoError(t, vite.WriteHotFile(opts.HotFile, hotURL))
	}
	return vite.New(opts)
}

func render(t *testing.T, v *vite.Vite, tmpl string, data any) (string, error) {
	t.Helper()
	parsed, err := template.New("page").Funcs(NewFuncMap(v)).Parse(tmpl)
	require.NoError(t, err)
	var sb strings.Builder
	err = parsed.Execute(&sb, data)
	return sb.String(), err
}

const testManifest = `{"app.js": {"file": "app.abc123.js", "css": ["app.1.css"]}, "app.css": {"file": "app.1.css"}}`

func TestViteFunc(t *testing.T) {
	v := newTestVite(t, testManifest, "")

	out, err := render(t, v, `<head>{{vite "app.js"}}</head>`, nil)
	require.NoError(t, err)
	assert.Equal(t, "<head>"+strings.Join([]string{
		`<link rel="preload" as="style" href="/assets/app.1.css"/>`,
		`<link rel="modulepreload" href="/assets/app.abc123.js"/>`,
		`<link rel="stylesheet" href="/assets/app.1.css"/>`,
		`<script type="module" src="/assets/app.abc123.js"></script>`,
	}, "\n")+"</head>", out)

	out, err = render(t, v, `{{viteWith .Attrs "app.js"}}`, map[string]any{
		"Attrs": map[string]any{"nonce": "r4nd", "defer": true},
	})
	require.NoError(t, err)
	assert.Contains(t, out, `<script type="module" defer nonce="r4nd" src="/assets/app.abc123.js"></script>`)
	assert.Contains(t, out, `<link rel="stylesheet" href="/assets/app.1.css"/>`)
}

func TestViteFuncErrors(t *testing.T) {
	v := newTestVite(t, testManifest, "")

	_, err := render(t, v, `{{vite}}`, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing entrypoint name")

	_, err = render(t, v, `{{vite "missing.js"}}`, nil)
	require.Error(t, err)
	assert.True(t, vite.IsErrChunkNotFound(err))
	assert.Contains(t, err.Error(), `"missing.js"`)
}

func TestAssetFunc(t *testing.T) {
	v := newTestVite(t, testManifest, "")
	out, err := render(t, v, `<img src="{{asset "app.css"}}">`, nil)
	require.NoError(t, err)
	assert.Equal(t, `<img src="/assets/app.1.css">`, out)

	hot := newTestVite(t, "", "http://localhost:5173")
	out, err = render(t, hot, `{{asset "resources/logo.png"}}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5173/resources/logo.png", out)
}

func TestReactRefreshFunc(t *testing.T) {
	build := newTestVite(t, testManifest, "")
	out, err := render(t, build, `[{{viteReactRefresh}}]`, nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)

	hot := newTestVite(t, "", "http://localhost:5173")
	out, err = render(t, hot, `{{viteReactRefresh .}}`, map[string]any{"nonce": "n"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<script type="module" nonce="n">`))
	assert.Contains(t, out, "import RefreshRuntime from 'http://localhost:5173/@react-refresh'")
}

func TestViteManifestFunc(t *testing.T) {
	v := newTestVite(t, testManifest, "")
	out, err := render(t, v, `<script>const m = {{viteManifest}};</script>`, nil)
	require.NoError(t, err)
	assert.Contains(t, out, `"app.js":{"file":"app.abc123.js","css":["app.1.css"]}`)

	hot := newTestVite(t, testManifest, "http://localhost:5173")
	_, err = render(t, hot, `{{viteManifest}}`, nil)
	assert.True(t, vite.IsErrManifestModeViolation(err))
}

func TestViteTagsJSONFunc(t *testing.T) {
	v := newTestVite(t, testManifest, "")
	out, err := render(t, v, `<script>const tags = {{viteTagsJSON "app.js"}};</script>`, nil)
	require.NoError(t, err)
	assert.Equal(t, `<script>const tags = [`+strings.Join([]string{
		`{"tag":"link","attributes":{"rel":"preload","as":"style","href":"/assets/app.1.css"}}`,
		`{"tag":"link","attributes":{"rel":"modulepreload","href":"/assets/app.abc123.js"}}`,
		`{"tag":"link","attributes":{"rel":"stylesheet","href":"/assets/app.1.css"}}`,
		`{"tag":"script","attributes":{"type":"module","src":"/assets/app.abc123.js"}}`,
	}, ",")+`];</script>`, out)

	_, err = render(t, v, `{{viteTagsJSON}}`, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing entrypoint name")

	_, err = render(t, v, `{{viteTagsJSON "missing.js"}}`, nil)
	assert.True(t, vite.IsErrChunkNotFound(err))
}

func TestViteJSONManifestIndent(t *testing.T) {
	v := newTestVite(t, `{"app.js": {"file": "app.1.js"}}`, "")
	out, err := NewViteJSON(v).ManifestIndent()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"app.js\": {\n    \"file\": \"app.1.js\"\n  }\n}", out)

	out, err = render(t, v, `<pre>{{(ViteJSON).ManifestIndent}}</pre>`, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "&#34;file&#34;: &#34;app.1.js&#34;")

	hot := newTestVite(t, testManifest, "http://localhost:5173")
	_, err = NewViteJSON(hot).ManifestIndent()
	assert.True(t, vite.IsErrManifestModeViolation(err))
}
