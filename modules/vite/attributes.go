// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package vite

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/Algomation-AI/vitebridge/modules/json"
)

// Attribute is a single HTML attribute. Value is a string, a bool flag, or nil.
// true renders the bare name; false and nil omit the attribute.
type Attribute struct {
	Key   string
	Value any
}

// Attributes is an ordered attribute list. Rendering follows slice order.
type Attributes []Attribute

// AttributesFromMap converts an unordered map into Attributes sorted by key.
func AttributesFromMap(m map[string]any) Attributes {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make(Attributes, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, Attribute{Key: k, Value: m[k]})
	}
	return attrs
}

// Get returns the value stored for key.
func (a Attributes) Get(key string) (any, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return nil, false
}

// Set replaces the value of an existing key in place or appends a new one.
func (a *Attributes) Set(key string, value any) {
	for i := range *a {
		if (*a)[i].Key == key {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, Attribute{Key: key, Value: value})
}

// Merge sets every attribute of other on a, in other's order.
func (a *Attributes) Merge(other Attributes) {
	for _, attr := range other {
		a.Set(attr.Key, attr.Value)
	}
}

// Clone returns a copy that can be modified independently.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	return append(make(Attributes, 0, len(a)), a...)
}

// String renders the attributes as they appear inside a tag. Values are
// written verbatim, escaping is left to the caller.
func (a Attributes) String() string {
	var sb strings.Builder
	for _, attr := range a {
		switch v := attr.Value.(type) {
		case nil:
			continue
		case bool:
			if !v {
				continue
			}
			writeSep(&sb)
			sb.WriteString(attr.Key)
		case string:
			writeSep(&sb)
			sb.WriteString(attr.Key)
			sb.WriteString(`="`)
			sb.WriteString(v)
			sb.WriteByte('"')
		default:
			writeSep(&sb)
			fmt.Fprintf(&sb, `%s="%v"`, attr.Key, v)
		}
	}
	return sb.String()
}

// MarshalJSON encodes the attributes as an object whose keys keep slice order.
func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(attr.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(attr.Value)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", attr.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeSep(sb *strings.Builder) {
	if sb.Len() > 0 {
		sb.WriteByte(' ')
	}
}

// AttributeParams is passed to an AttributeFunc for every asset.
type AttributeParams struct {
	// Src is the asset path as requested (entrypoint or manifest file).
	Src string
	// URL is the resolved URL that ends up in src or href.
	URL string
}

// SetAttributes is either StaticAttributes or an AttributeFunc.
type SetAttributes interface {
	resolve(params AttributeParams) Attributes
}

// StaticAttributes applies the same attributes to every asset.
type StaticAttributes Attributes

func (s StaticAttributes) resolve(AttributeParams) Attributes {
	return Attributes(s)
}

// AttributeFunc computes attributes per asset. It is invoked exactly once per
// asset per tag generation call.
type AttributeFunc func(params AttributeParams) Attributes

func (f AttributeFunc) resolve(params AttributeParams) Attributes {
	if f == nil {
		return nil
	}
	return f(params)
}

func unwrapAttributes(set SetAttributes, src, url string) Attributes {
	if set == nil {
		return nil
	}
	return set.resolve(AttributeParams{Src: src, URL: url})
}
