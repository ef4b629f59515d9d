// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package templates

import (
	"errors"
	"html/template"

	"github.com/Algomation-AI/vitebridge/modules/vite"
)

var errMissingEntrypoint = errors.New("missing entrypoint name")

// ViteUtils exposes a resolver to templates.
type ViteUtils struct {
	v *vite.Vite
}

func NewViteUtils(v *vite.Vite) *ViteUtils {
	return &ViteUtils{v: v}
}

// Tags renders the tags of one or more entrypoints.
func (vu *ViteUtils) Tags(entrypoints ...string) (template.HTML, error) {
	return vu.TagsWith(nil, entrypoints...)
}

// TagsWith renders entrypoint tags with extra attributes, for instance a nonce.
func (vu *ViteUtils) TagsWith(attrs map[string]any, entrypoints ...string) (template.HTML, error) {
	if len(entrypoints) == 0 {
		return "", errMissingEntrypoint
	}
	tags, err := vu.v.GenerateEntryPointsTags(entrypoints, vite.AttributesFromMap(attrs))
	if err != nil {
		return "", err
	}
	return tags.HTML(), nil
}

// Asset returns the URL of a single asset.
func (vu *ViteUtils) Asset(path string) (string, error) {
	return vu.v.AssetPath(path)
}

// ReactRefresh renders the React refresh preamble in hot mode and nothing otherwise.
func (vu *ViteUtils) ReactRefresh(attrs ...map[string]any) (template.HTML, error) {
	var merged vite.Attributes
	for _, m := range attrs {
		merged.Merge(vite.AttributesFromMap(m))
	}
	script, err := vu.v.ReactHMRScript(merged)
	if err != nil || script == nil {
		return "", err
	}
	return script.HTML(), nil
}

// Manifest returns the build manifest as a JavaScript value.
func (vu *ViteUtils) Manifest() (template.JS, error) {
	return NewViteJSON(vu.v).Manifest()
}

// NewFuncMap returns the template functions backed by v.
func NewFuncMap(v *vite.Vite) template.FuncMap {
	vu := NewViteUtils(v)
	vj := NewViteJSON(v)
	return template.FuncMap{
		"vite":             vu.Tags,
		"viteWith":         vu.TagsWith,
		"asset":            vu.Asset,
		"viteReactRefresh": vu.ReactRefresh,
		"viteManifest":     vu.Manifest,
		"viteTagsJSON":     vj.Tags,
		"ViteUtils":        func() *ViteUtils { return vu },
		"ViteJSON":         func() *ViteJSON { return vj },
	}
}
