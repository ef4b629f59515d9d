// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package vite

import (
	"path/filepath"

	"github.com/Algomation-AI/vitebridge/modules/log"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultManifestCacheSize = 8

// ManifestCache keeps parsed manifests keyed by absolute path. The first
// successful read of a path wins; failed reads are never stored.
type ManifestCache struct {
	disabled bool
	entries  *lru.Cache[string, Manifest]
}

// NewManifestCache returns a cache holding up to size manifests. A size below
// one falls back to the default.
func NewManifestCache(size int) *ManifestCache {
	if size < 1 {
		size = defaultManifestCacheSize
	}
	entries, err := lru.New[string, Manifest](size)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return &ManifestCache{entries: entries}
}

// NewDisabledManifestCache returns a cache that reads from disk on every Load.
func NewDisabledManifestCache() *ManifestCache {
	return &ManifestCache{disabled: true}
}

// Enabled reports whether loaded manifests are kept.
func (c *ManifestCache) Enabled() bool {
	return c != nil && !c.disabled
}

// Load returns the manifest at path, reading it on the first call.
func (c *ManifestCache) Load(path string) (Manifest, error) {
	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}

	if c.Enabled() {
		if manifest, ok := c.entries.Get(key); ok {
			manifestCacheHits.Inc()
			return manifest, nil
		}
	}

	manifest, err := ReadManifestFile(path)
	manifestReads.Inc()
	if err != nil {
		return nil, err
	}
	log.Debug("vite: read manifest %s (%d chunks, cached: %t)", key, len(manifest), c.Enabled())

	if c.Enabled() {
		// the first stored manifest wins over concurrent readers
		c.entries.ContainsOrAdd(key, manifest)
		if cached, ok := c.entries.Get(key); ok {
			return cached, nil
		}
	}
	return manifest, nil
}

// Purge drops every cached manifest.
func (c *ManifestCache) Purge() {
	if c.Enabled() {
		c.entries.Purge()
	}
}
