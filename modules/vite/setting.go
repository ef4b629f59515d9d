// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package vite

import (
	"fmt"
	"os"

	"github.com/Algomation-AI/vitebridge/modules/log"
	"github.com/Algomation-AI/vitebridge/modules/setting"
)

// OptionsFromSetting converts the loaded [vite] section into Options.
func OptionsFromSetting() Options {
	opts := Options{
		BuildDirectory:       setting.Vite.BuildDirectory,
		ManifestFile:         setting.Vite.ManifestFile,
		HotFile:              setting.Vite.HotFile,
		AssetsURL:            setting.Vite.AssetsURL,
		HotMode:              ParseHotMode(setting.Vite.HotMode),
		DisableManifestCache: !setting.Vite.CacheManifest,
	}
	if attrs := settingAttributes(setting.Vite.ScriptAttributes); attrs != nil {
		opts.ScriptAttributes = attrs
	}
	if attrs := settingAttributes(setting.Vite.StyleAttributes); attrs != nil {
		opts.StyleAttributes = attrs
	}
	return opts
}

func settingAttributes(list []setting.HTMLAttribute) StaticAttributes {
	if len(list) == 0 {
		return nil
	}
	attrs := make(StaticAttributes, 0, len(list))
	for _, a := range list {
		if a.Bare {
			attrs = append(attrs, Attribute{Key: a.Key, Value: true})
			continue
		}
		attrs = append(attrs, Attribute{Key: a.Key, Value: a.Value})
	}
	return attrs
}

// NewFromSetting creates a resolver from the loaded settings, reading the
// module graph snapshot when one is configured.
func NewFromSetting() (*Vite, error) {
	opts := OptionsFromSetting()
	if setting.Vite.ModuleGraphFile != "" {
		graph, err := LoadModuleGraphFile(setting.Vite.ModuleGraphFile)
		if err != nil {
			return nil, err
		}
		opts.ModuleGraph = graph
	}
	return New(opts), nil
}

// LoadModuleGraphFile reads a module graph snapshot from disk.
func LoadModuleGraphFile(path string) (*MemoryGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open module graph snapshot: %w", err)
	}
	defer f.Close()

	graph, err := LoadModuleGraph(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug("vite: loaded %d modules from %s", graph.Len(), path)
	return graph, nil
}
