// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"strings"

	"github.com/Algomation-AI/vitebridge/modules/util"
)

// HTMLAttribute is one entry of an attribute list setting. A bare key without
// "=" renders as a boolean attribute.
type HTMLAttribute struct {
	Key   string
	Value string
	Bare  bool
}

// Vite asset settings
var Vite = struct {
	BuildDirectory   string
	ManifestFile     string
	HotFile          string
	AssetsURL        string
	CacheManifest    bool
	HotMode          string
	ScriptAttributes []HTMLAttribute
	StyleAttributes  []HTMLAttribute
	ModuleGraphFile  string
}{
	BuildDirectory: "public/assets",
	ManifestFile:   ".vite/manifest.json",
	HotFile:        "public/assets/hot.json",
	AssetsURL:      "/assets",
	CacheManifest:  true,
	HotMode:        "auto",
}

func loadViteFrom(rootCfg ConfigProvider) (err error) {
	sec := rootCfg.Section("vite")
	Vite.BuildDirectory = sec.Key("BUILD_DIRECTORY").MustString("public/assets")
	Vite.ManifestFile = sec.Key("MANIFEST_FILE").MustString(".vite/manifest.json")
	Vite.HotFile = sec.Key("HOT_FILE").MustString("public/assets/hot.json")
	Vite.AssetsURL = sec.Key("ASSETS_URL").MustString("/assets")
	Vite.CacheManifest = sec.Key("CACHE_MANIFEST").MustBool(true)
	Vite.ModuleGraphFile = sec.Key("MODULE_GRAPH_FILE").String()

	Vite.HotMode = strings.ToLower(strings.TrimSpace(sec.Key("HOT_MODE").MustString("auto")))
	switch Vite.HotMode {
	case "auto", "on", "off":
	default:
		return util.NewInvalidArgumentErrorf("[vite] HOT_MODE: expected auto, on or off, got %q", Vite.HotMode)
	}

	if Vite.ScriptAttributes, err = parseAttributeList("SCRIPT_ATTRIBUTES", sec.Key("SCRIPT_ATTRIBUTES").String()); err != nil {
		return err
	}
	if Vite.StyleAttributes, err = parseAttributeList("STYLE_ATTRIBUTES", sec.Key("STYLE_ATTRIBUTES").String()); err != nil {
		return err
	}
	return nil
}

// parseAttributeList parses `crossorigin=anonymous, defer` into attributes,
// keeping the written order.
func parseAttributeList(name, s string) ([]HTMLAttribute, error) {
	var attrs []HTMLAttribute
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key, value, hasValue := strings.Cut(item, "=")
		key = strings.TrimSpace(key)
		if key == "" || strings.ContainsAny(key, " \t\"'<>/") {
			return nil, util.NewInvalidArgumentErrorf("[vite] %s: invalid attribute %q", name, item)
		}
		attrs = append(attrs, HTMLAttribute{
			Key:   key,
			Value: strings.Trim(strings.TrimSpace(value), `"`),
			Bare:  !hasValue,
		})
	}
	return attrs, nil
}
