// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package vite

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/Algomation-AI/vitebridge/modules/json"
	viteresources "github.com/Algomation-AI/vitebridge/resources/vite"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

type lazySchema struct {
	name   string
	source func() []byte
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

func (s *lazySchema) load() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(s.name, bytes.NewReader(s.source())); err != nil {
			s.err = err
			return
		}
		s.schema, s.err = compiler.Compile(s.name)
	})
	return s.schema, s.err
}

var (
	manifestSchema = &lazySchema{name: "vite-manifest.schema.json", source: viteresources.ManifestSchema}
	hotFileSchema  = &lazySchema{name: "vite-hotfile.schema.json", source: viteresources.HotFileSchema}
)

// validateDocument decodes data generically, checks it against the schema and
// then binds it to v.
func validateDocument(s *lazySchema, data []byte, v any) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("not valid JSON: %w", err)
	}

	schema, err := s.load()
	if err != nil {
		return fmt.Errorf("load %s: %w", s.name, err)
	}
	if err := schema.Validate(doc); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return fmt.Errorf("schema validation failed: %s", validationErr)
		}
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return json.Unmarshal(data, v)
}
