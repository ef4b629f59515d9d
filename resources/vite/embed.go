// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package vite

import (
	"embed"
	"fmt"
)

//go:embed schemas/manifest.schema.json schemas/hotfile.schema.json
var schemaFiles embed.FS

var (
	manifestSchemaJSON []byte
	hotFileSchemaJSON  []byte
)

func init() {
	manifestSchemaJSON = mustRead("schemas/manifest.schema.json")
	hotFileSchemaJSON = mustRead("schemas/hotfile.schema.json")
}

func mustRead(name string) []byte {
	data, err := schemaFiles.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("vite schema %s missing: %v", name, err))
	}
	return data
}

// ManifestSchema returns the embedded build manifest schema content.
func ManifestSchema() []byte {
	return manifestSchemaJSON
}

// HotFileSchema returns the embedded hot file schema content.
func HotFileSchema() []byte {
	return hotFileSchemaJSON
}
