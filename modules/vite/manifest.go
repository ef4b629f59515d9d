// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package vite

import (
	"fmt"
	"os"
	"slices"
	"sort"
)

// Chunk is one entry of the build manifest.
type Chunk struct {
	File           string   `json:"file"`
	Src            string   `json:"src,omitempty"`
	Name           string   `json:"name,omitempty"`
	IsEntry        bool     `json:"isEntry,omitempty"`
	IsDynamicEntry bool     `json:"isDynamicEntry,omitempty"`
	CSS            []string `json:"css,omitempty"`
	Assets         []string `json:"assets,omitempty"`
	Imports        []string `json:"imports,omitempty"`
	DynamicImports []string `json:"dynamicImports,omitempty"`
	Integrity      string   `json:"integrity,omitempty"`
}

// Manifest maps source paths to their emitted chunks. Absent css or imports
// lists decode to nil and are treated as empty.
type Manifest map[string]*Chunk

// ParseManifest decodes and validates manifest content. path is only used in errors.
func ParseManifest(path string, data []byte) (Manifest, error) {
	var manifest Manifest
	if err := validateDocument(manifestSchema, data, &manifest); err != nil {
		return nil, ErrManifestParse{Path: path, Err: err}
	}
	if manifest == nil {
		manifest = Manifest{}
	}
	return manifest, nil
}

// ReadManifestFile reads and parses the manifest at path without any caching.
func ReadManifestFile(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrManifestNotFound{Path: path, Err: err}
	}
	return ParseManifest(path, data)
}

// Chunk returns the chunk stored under key.
func (m Manifest) Chunk(key string) (*Chunk, error) {
	chunk, ok := m[key]
	if !ok || chunk == nil {
		return nil, ErrChunkNotFound{Key: key}
	}
	return chunk, nil
}

// ChunkByFile returns the first chunk, in key order, whose emitted file is file.
func (m Manifest) ChunkByFile(file string) (*Chunk, error) {
	for _, key := range m.Keys() {
		if chunk := m[key]; chunk != nil && chunk.File == file {
			return chunk, nil
		}
	}
	return nil, ErrChunkNotFound{Key: file}
}

// Keys returns the manifest keys sorted.
func (m Manifest) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entries returns the keys of chunks flagged as entries.
func (m Manifest) Entries() []string {
	var entries []string
	for _, key := range m.Keys() {
		if m[key] != nil && m[key].IsEntry {
			entries = append(entries, key)
		}
	}
	return entries
}

// HasFile reports whether file is emitted by the build, as a chunk, a
// stylesheet or a static asset.
func (m Manifest) HasFile(file string) bool {
	for _, chunk := range m {
		if chunk == nil {
			continue
		}
		if chunk.File == file || slices.Contains(chunk.CSS, file) || slices.Contains(chunk.Assets, file) {
			return true
		}
	}
	return false
}

// Files returns every file emitted by the build, sorted and without duplicates.
func (m Manifest) Files() []string {
	var files []string
	for _, chunk := range m {
		if chunk == nil {
			continue
		}
		files = append(files, chunk.File)
		files = append(files, chunk.CSS...)
		files = append(files, chunk.Assets...)
	}
	slices.Sort(files)
	return slices.Compact(files)
}

// Validate checks that every chunk has a file and every import points to an
// existing key. Tag generation performs the same checks lazily.
func (m Manifest) Validate() error {
	for _, key := range m.Keys() {
		chunk := m[key]
		if chunk == nil || chunk.File == "" {
			return fmt.Errorf("chunk %q: file is required", key)
		}
		for _, imp := range chunk.Imports {
			if _, ok := m[imp]; !ok {
				return fmt.Errorf("chunk %q: import %w", key, ErrChunkNotFound{Key: imp})
			}
		}
		for _, imp := range chunk.DynamicImports {
			if _, ok := m[imp]; !ok {
				return fmt.Errorf("chunk %q: dynamic import %w", key, ErrChunkNotFound{Key: imp})
			}
		}
	}
	return nil
}
