// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package templates

import (
	"bytes"
	"html/template"

	"github.com/Algomation-AI/vitebridge/modules/json"
	"github.com/Algomation-AI/vitebridge/modules/vite"
)

// ViteJSON encodes resolver output for inline scripts.
type ViteJSON struct {
	v *vite.Vite
}

func NewViteJSON(v *vite.Vite) *ViteJSON {
	return &ViteJSON{v: v}
}

// Tags returns the tag descriptors of the entrypoints as a JavaScript array.
// Attributes are objects whose keys keep their rendering order.
func (vj *ViteJSON) Tags(entrypoints ...string) (template.JS, error) {
	if len(entrypoints) == 0 {
		return "", errMissingEntrypoint
	}
	tags, err := vj.v.GenerateEntryPointsTags(entrypoints, nil)
	if err != nil {
		return "", err
	}
	return encodeJS(tags)
}

// Manifest returns the build manifest as a JavaScript object.
func (vj *ViteJSON) Manifest() (template.JS, error) {
	manifest, err := vj.v.Manifest()
	if err != nil {
		return "", err
	}
	return encodeJS(manifest)
}

// ManifestIndent returns the build manifest as indented JSON text.
func (vj *ViteJSON) ManifestIndent() (string, error) {
	js, err := vj.Manifest()
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, []byte(js), "", "  "); err != nil {
		return "", err
	}
	return out.String(), nil
}

func encodeJS(v any) (template.JS, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(out), nil
}
