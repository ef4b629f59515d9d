// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package vite

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	styleFileRegex   = regexp.MustCompile(`\.(css|less|sass|scss|styl|stylus|pcss|postcss)($|\?)`)
	vueStyleModuleRe = regexp.MustCompile(`\?vue&type=style`)
)

// IsCSSPath reports whether path names a stylesheet, ignoring a query string.
func IsCSSPath(path string) bool {
	return styleFileRegex.MatchString(path)
}

// ModuleNode is one module known to the dev server.
type ModuleNode struct {
	// ID is the resolved file id, usually an absolute path with forward slashes.
	ID string
	// URL is the public URL the dev server serves the module from.
	URL             string
	ImportedModules []*ModuleNode
}

// IsStyle reports whether the module is a stylesheet or a Vue style block.
func (m *ModuleNode) IsStyle() bool {
	return IsCSSPath(m.URL) || (m.ID != "" && vueStyleModuleRe.MatchString(m.ID))
}

// ModuleGraph is the live module graph of a dev server.
type ModuleGraph interface {
	// Root is the directory entrypoints are relative to.
	Root() string
	ModuleByID(id string) *ModuleNode
	// Len is zero until the dev server evaluated at least one module.
	Len() int
}

// MemoryGraph is a ModuleGraph held in memory.
type MemoryGraph struct {
	mu   sync.RWMutex
	root string
	byID map[string]*ModuleNode
}

// NewMemoryGraph returns an empty graph rooted at root.
func NewMemoryGraph(root string) *MemoryGraph {
	return &MemoryGraph{root: root, byID: make(map[string]*ModuleNode)}
}

// Root implements ModuleGraph.
func (g *MemoryGraph) Root() string {
	return g.root
}

// ModuleByID implements ModuleGraph.
func (g *MemoryGraph) ModuleByID(id string) *ModuleNode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.byID[id]
}

// Len implements ModuleGraph.
func (g *MemoryGraph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.byID)
}

// Add registers a module, returning the existing node when id is known.
func (g *MemoryGraph) Add(id, url string) *ModuleNode {
	g.mu.Lock()
	defer g.mu.Unlock()
	if node, ok := g.byID[id]; ok {
		if url != "" {
			node.URL = url
		}
		return node
	}
	node := &ModuleNode{ID: id, URL: url}
	g.byID[id] = node
	return node
}

// Link records that importer imports imported. Both must have been added.
func (g *MemoryGraph) Link(importerID, importedID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	importer, ok := g.byID[importerID]
	if !ok {
		return fmt.Errorf("module %q is not in the graph", importerID)
	}
	imported, ok := g.byID[importedID]
	if !ok {
		return fmt.Errorf("module %q imported by %q is not in the graph", importedID, importerID)
	}
	importer.ImportedModules = append(importer.ImportedModules, imported)
	return nil
}

type graphSnapshot struct {
	Root    string           `yaml:"root"`
	Modules []moduleSnapshot `yaml:"modules"`
}

type moduleSnapshot struct {
	ID      string   `yaml:"id"`
	URL     string   `yaml:"url"`
	Imports []string `yaml:"imports"`
}

// LoadModuleGraph decodes a graph snapshot. JSON snapshots work as well since
// the decoder is YAML. Import cycles are allowed.
func LoadModuleGraph(r io.Reader) (*MemoryGraph, error) {
	var snap graphSnapshot
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&snap); err != nil {
		return nil, fmt.Errorf("invalid module graph snapshot: %w", err)
	}

	graph := NewMemoryGraph(snap.Root)
	for i, mod := range snap.Modules {
		if mod.ID == "" {
			return nil, fmt.Errorf("invalid module graph snapshot: modules[%d].id is required", i)
		}
		graph.Add(mod.ID, mod.URL)
	}
	for _, mod := range snap.Modules {
		for _, imp := range mod.Imports {
			if err := graph.Link(mod.ID, imp); err != nil {
				return nil, fmt.Errorf("invalid module graph snapshot: %w", err)
			}
		}
	}
	return graph, nil
}

func entryModuleID(root, entrypoint string) string {
	return filepath.ToSlash(filepath.Join(root, entrypoint))
}

// orderedSet keeps first insertion order.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) Add(v string) bool {
	if _, ok := s.seen[v]; ok {
		return false
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

// collectCSS walks the graph depth first from mod. A style module is
// collected only when its importer is not a style module itself, and every
// module URL is visited at most once.
func collectCSS(mod, importer *ModuleNode, styleURLs, visited *orderedSet) {
	if mod == nil || mod.URL == "" {
		return
	}
	if !visited.Add(mod.URL) {
		return
	}

	if mod.IsStyle() && (importer == nil || !importer.IsStyle()) {
		styleURLs.Add(moduleRequestPath(mod.URL))
	}

	for _, dep := range mod.ImportedModules {
		collectCSS(dep, mod, styleURLs, visited)
	}
}

// moduleRequestPath maps a module URL to the path the dev server answers on.
func moduleRequestPath(url string) string {
	switch {
	case strings.HasPrefix(url, "/"), isAbsoluteURL(url):
		return url
	case strings.HasPrefix(url, "\x00"):
		return "/@id/__x00__" + url[1:]
	default:
		return "/@id/" + url
	}
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "//")
}
