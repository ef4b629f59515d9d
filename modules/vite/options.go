// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package vite

import (
	"path/filepath"
	"strings"
)

// Options configures a Vite resolver.
type Options struct {
	// BuildDirectory contains the manifest and the hashed assets.
	BuildDirectory string
	// ManifestFile is relative to BuildDirectory unless absolute.
	ManifestFile string
	// HotFile is written by the dev server while it runs.
	HotFile string
	// AssetsURL prefixes build mode URLs, for example a CDN origin.
	AssetsURL string
	HotMode   HotMode

	// DisableManifestCache re-reads the manifest on every call.
	DisableManifestCache bool
	// ManifestCache lets several resolvers share parsed manifests.
	ManifestCache *ManifestCache

	ScriptAttributes SetAttributes
	StyleAttributes  SetAttributes

	// ModuleGraph is consulted in hot mode to collect stylesheets imported by
	// script entrypoints.
	ModuleGraph ModuleGraph
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		BuildDirectory: "public/assets",
		ManifestFile:   ".vite/manifest.json",
		HotFile:        "public/assets/hot.json",
		AssetsURL:      "/assets",
	}
}

// ManifestPath returns the location of the manifest file.
func (o Options) ManifestPath() string {
	if filepath.IsAbs(o.ManifestFile) {
		return o.ManifestFile
	}
	return filepath.Join(o.BuildDirectory, o.ManifestFile)
}

func normalizeAssetsURL(u string) string {
	return strings.TrimRight(u, "/")
}
