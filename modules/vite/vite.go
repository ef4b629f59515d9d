// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package vite

import (
	"slices"
	"strings"
	"sync"

	"github.com/Algomation-AI/vitebridge/modules/log"
)

const (
	hmrClientPath    = "@vite/client"
	reactRefreshPath = "@react-refresh"
)

// Vite resolves entrypoints into tags and URLs, either against a running dev
// server or against the build manifest. One instance is meant to live for the
// whole process and be shared by all callers.
type Vite struct {
	opts      Options
	assetsURL string
	hot       *HotDetector
	manifests *ManifestCache

	graphMu sync.RWMutex
	graph   ModuleGraph
}

// New creates a resolver.
func New(opts Options) *Vite {
	cache := opts.ManifestCache
	if opts.DisableManifestCache {
		cache = NewDisabledManifestCache()
	} else if cache == nil {
		cache = NewManifestCache(defaultManifestCacheSize)
	}

	v := &Vite{
		opts:      opts,
		assetsURL: normalizeAssetsURL(opts.AssetsURL),
		hot:       NewHotDetector(opts.HotFile, opts.HotMode),
		manifests: cache,
		graph:     opts.ModuleGraph,
	}
	log.Debug("vite: build directory %q, manifest %q, hot file %q (mode %s), assets url %q",
		opts.BuildDirectory, opts.ManifestPath(), opts.HotFile, opts.HotMode, v.assetsURL)
	return v
}

// IsHot reports whether the dev server is running. It is evaluated on every call.
func (v *Vite) IsHot() bool {
	return v.hot.IsHot()
}

// AssetsURL returns the configured assets prefix without a trailing slash.
func (v *Vite) AssetsURL() string {
	return v.assetsURL
}

// BuildDirectory returns the directory holding the built assets.
func (v *Vite) BuildDirectory() string {
	return v.opts.BuildDirectory
}

// ManifestPath returns the manifest file location.
func (v *Vite) ManifestPath() string {
	return v.opts.ManifestPath()
}

// SetModuleGraph replaces the dev server module graph. nil disables stylesheet collection.
func (v *Vite) SetModuleGraph(graph ModuleGraph) {
	v.graphMu.Lock()
	v.graph = graph
	v.graphMu.Unlock()
}

func (v *Vite) moduleGraph() ModuleGraph {
	v.graphMu.RLock()
	defer v.graphMu.RUnlock()
	return v.graph
}

// Manifest returns the build manifest. It fails with ErrManifestModeViolation
// while the dev server is running.
func (v *Vite) Manifest() (Manifest, error) {
	if v.IsHot() {
		return nil, ErrManifestModeViolation{Op: "manifest"}
	}
	return v.manifests.Load(v.ManifestPath())
}

// AssetPath returns the URL of a single asset without expanding its imports.
// In hot mode the manifest is never consulted.
func (v *Vite) AssetPath(asset string) (string, error) {
	if v.IsHot() {
		base, err := v.hot.DevServerURL()
		if err != nil {
			return "", err
		}
		return hotAssetURL(base, asset), nil
	}

	manifest, err := v.manifests.Load(v.ManifestPath())
	if err != nil {
		return "", err
	}
	chunk, err := manifest.Chunk(asset)
	if err != nil {
		return "", err
	}
	return v.assetURL(chunk.File), nil
}

// GenerateEntryPointsTags returns the tags needed to load entrypoints. attrs
// apply to every script and stylesheet tag derived from an entrypoint. Either
// every entrypoint resolves or an error is returned and no tags at all.
func (v *Vite) GenerateEntryPointsTags(entrypoints []string, attrs Attributes) (Elements, error) {
	var (
		tags Elements
		err  error
		mode string
	)
	if v.IsHot() {
		mode = modeLabelHot
		tags, err = v.generateTagsForHotMode(entrypoints, attrs)
	} else {
		mode = modeLabelManifest
		tags, err = v.generateTagsWithManifest(entrypoints, attrs)
	}

	tagGenerations.WithLabelValues(mode).Inc()
	if err != nil {
		tagGenerationErrors.WithLabelValues(mode).Inc()
		return nil, err
	}
	log.Trace("vite: %d tags for %v (%s)", len(tags), entrypoints, mode)
	return tags, nil
}

// ReactHMRScript returns the React refresh preamble, or nil outside hot mode.
func (v *Vite) ReactHMRScript(attrs Attributes) (*Element, error) {
	if !v.IsHot() {
		return nil, nil
	}
	base, err := v.hot.DevServerURL()
	if err != nil {
		return nil, err
	}

	scriptAttrs := Attributes{{Key: "type", Value: "module"}}
	scriptAttrs.Merge(attrs)
	return newScriptElement(scriptAttrs,
		"import RefreshRuntime from '"+hotAssetURL(base, reactRefreshPath)+"'",
		"RefreshRuntime.injectIntoGlobalHook(window)",
		"window.$RefreshReg$ = () => {}",
		"window.$RefreshSig$ = () => (type) => type",
		"window.__vite_plugin_react_preamble_installed__ = true",
	), nil
}

func (v *Vite) assetURL(file string) string {
	return v.assetsURL + "/" + file
}

func hotAssetURL(base, asset string) string {
	return base + "/" + strings.TrimPrefix(asset, "/")
}

// makeTag builds a script or stylesheet tag for src. Defaults come first, then
// the configured attributes, then extra, and the URL is always set last.
func (v *Vite) makeTag(src, url string, extra Attributes) *Element {
	if IsCSSPath(src) {
		attrs := Attributes{{Key: "rel", Value: "stylesheet"}}
		attrs.Merge(unwrapAttributes(v.opts.StyleAttributes, src, url))
		attrs.Merge(extra)
		attrs.Set("href", url)
		return newLinkElement(attrs)
	}

	attrs := Attributes{{Key: "type", Value: "module"}}
	attrs.Merge(unwrapAttributes(v.opts.ScriptAttributes, src, url))
	attrs.Merge(extra)
	attrs.Set("src", url)
	return newScriptElement(attrs)
}

func (v *Vite) generateTagsForHotMode(entrypoints []string, attrs Attributes) (Elements, error) {
	base, err := v.hot.DevServerURL()
	if err != nil {
		return nil, err
	}

	entrypoints = uniqBy(entrypoints, func(entrypoint string) string { return entrypoint })
	tags := make(Elements, 0, len(entrypoints))
	for _, entrypoint := range entrypoints {
		tags = append(tags, v.makeTag(entrypoint, hotAssetURL(base, entrypoint), attrs))
	}

	// stylesheets come first to avoid a flash of unstyled content, the
	// order is insertion order and no sorting happens in hot mode
	result := v.collectGraphStyles(base, entrypoints)

	hmrAttrs := Attributes{{Key: "type", Value: "module"}}
	hmrAttrs.Merge(attrs)
	hmrAttrs.Set("src", hotAssetURL(base, hmrClientPath))
	result = append(result, newScriptElement(hmrAttrs))

	return append(result, tags...), nil
}

func (v *Vite) collectGraphStyles(base string, entrypoints []string) Elements {
	graph := v.moduleGraph()
	if graph == nil || graph.Len() == 0 {
		return nil
	}

	styleURLs := newOrderedSet()
	visited := newOrderedSet()
	for _, entrypoint := range entrypoints {
		if IsCSSPath(entrypoint) {
			continue
		}
		mod := graph.ModuleByID(entryModuleID(graph.Root(), entrypoint))
		if mod == nil {
			log.Trace("vite: entrypoint %s is not in the module graph yet", entrypoint)
			continue
		}
		collectCSS(mod, nil, styleURLs, visited)
	}

	elements := make(Elements, 0, len(styleURLs.items))
	for _, href := range styleURLs.items {
		if !isAbsoluteURL(href) {
			href = base + href
		}
		elements = append(elements, newLinkElement(Attributes{
			{Key: "rel", Value: "stylesheet"},
			{Key: "as", Value: "style"},
			{Key: "href", Value: href},
		}))
	}
	return elements
}

// preloadEntry is a preload hint collected while walking the manifest.
type preloadEntry struct {
	path  string
	isCSS bool
}

// tagEntry is a script or stylesheet collected while walking the manifest.
// Tags are only materialized after deduplication so that attribute callbacks
// run once per asset.
type tagEntry struct {
	src       string
	url       string
	integrity string
	withAttrs bool
}

type manifestWalk struct {
	v        *Vite
	manifest Manifest
	preloads []preloadEntry
	tags     []tagEntry
	visited  *orderedSet
}

func (w *manifestWalk) preload(file string, isCSS bool) {
	w.preloads = append(w.preloads, preloadEntry{path: w.v.assetURL(file), isCSS: isCSS})
}

func (w *manifestWalk) tag(file, integrity string, withAttrs bool) {
	w.tags = append(w.tags, tagEntry{src: file, url: w.v.assetURL(file), integrity: integrity, withAttrs: withAttrs})
}

func (w *manifestWalk) entrypoint(key string) error {
	chunk, err := w.manifest.Chunk(key)
	if err != nil {
		return err
	}
	w.visited.Add(key)

	w.preload(chunk.File, IsCSSPath(chunk.File))
	w.tag(chunk.File, chunk.Integrity, true)

	for _, css := range chunk.CSS {
		if _, err := w.manifest.ChunkByFile(css); err != nil {
			return err
		}
		w.preload(css, true)
		w.tag(css, "", false)
	}

	return w.imports(chunk)
}

// imports walks static imports depth first. Each manifest key is expanded at
// most once per call, which keeps import cycles finite.
func (w *manifestWalk) imports(chunk *Chunk) error {
	for _, key := range chunk.Imports {
		imported, err := w.manifest.Chunk(key)
		if err != nil {
			return err
		}
		if !w.visited.Add(key) {
			continue
		}

		w.preload(imported.File, IsCSSPath(imported.File))

		for _, css := range imported.CSS {
			cssChunk, err := w.manifest.ChunkByFile(css)
			if err != nil {
				return err
			}
			w.preload(css, true)
			w.tag(css, cssChunk.Integrity, true)
		}

		if err := w.imports(imported); err != nil {
			return err
		}
	}
	return nil
}

func (v *Vite) generateTagsWithManifest(entrypoints []string, attrs Attributes) (Elements, error) {
	manifest, err := v.manifests.Load(v.ManifestPath())
	if err != nil {
		return nil, err
	}

	walk := &manifestWalk{v: v, manifest: manifest, visited: newOrderedSet()}
	for _, entrypoint := range entrypoints {
		if err := walk.entrypoint(entrypoint); err != nil {
			return nil, err
		}
	}

	preloads := uniqBy(walk.preloads, func(p preloadEntry) string { return p.path })
	slices.SortStableFunc(preloads, func(a, b preloadEntry) int {
		return cssFirst(a.isCSS, b.isCSS)
	})

	tags := uniqBy(walk.tags, func(t tagEntry) string { return t.url })
	slices.SortStableFunc(tags, func(a, b tagEntry) int {
		return cssFirst(IsCSSPath(a.src), IsCSSPath(b.src))
	})

	result := make(Elements, 0, len(preloads)+len(tags))
	for _, p := range preloads {
		result = append(result, makePreloadTag(p))
	}
	for _, t := range tags {
		var extra Attributes
		if t.withAttrs {
			extra = attrs.Clone()
		}
		if t.integrity != "" {
			extra.Set("integrity", t.integrity)
		}
		result = append(result, v.makeTag(t.src, t.url, extra))
	}
	return result, nil
}

func makePreloadTag(p preloadEntry) *Element {
	if p.isCSS {
		return newLinkElement(Attributes{
			{Key: "rel", Value: "preload"},
			{Key: "as", Value: "style"},
			{Key: "href", Value: p.path},
		})
	}
	return newLinkElement(Attributes{
		{Key: "rel", Value: "modulepreload"},
		{Key: "href", Value: p.path},
	})
}

func cssFirst(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}

// uniqBy keeps the first item for every key, preserving order.
func uniqBy[T any](items []T, key func(T) string) []T {
	seen := newOrderedSet()
	out := make([]T, 0, len(items))
	for _, item := range items {
		if seen.Add(key(item)) {
			out = append(out, item)
		}
	}
	return out
}
