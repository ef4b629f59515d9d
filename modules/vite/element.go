// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package vite

import (
	"html/template"
	"strings"
)

// Tag names produced by the generator.
const (
	TagScript = "script"
	TagLink   = "link"
)

// Element describes one generated tag. Children only apply to scripts.
type Element struct {
	Tag        string     `json:"tag"`
	Attributes Attributes `json:"attributes,omitempty"`
	Children   []string   `json:"children,omitempty"`
}

// String renders the element as HTML.
func (e *Element) String() string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(e.Tag)
	if attrs := e.Attributes.String(); attrs != "" {
		sb.WriteByte(' ')
		sb.WriteString(attrs)
	}
	if e.Tag == TagLink {
		sb.WriteString("/>")
		return sb.String()
	}
	sb.WriteByte('>')
	sb.WriteString(strings.Join(e.Children, "\n"))
	sb.WriteString("</")
	sb.WriteString(e.Tag)
	sb.WriteByte('>')
	return sb.String()
}

// HTML renders the element for html/template output.
func (e *Element) HTML() template.HTML {
	return template.HTML(e.String()) //nolint:gosec // attribute values come from build configuration
}

// Attr is a shortcut for reading a string attribute.
func (e *Element) Attr(key string) string {
	v, _ := e.Attributes.Get(key)
	s, _ := v.(string)
	return s
}

// Elements is an ordered list of generated tags.
type Elements []*Element

// Strings renders every element.
func (es Elements) Strings() []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.String())
	}
	return out
}

// HTML joins the rendered elements with newlines.
func (es Elements) HTML() template.HTML {
	return template.HTML(strings.Join(es.Strings(), "\n")) //nolint:gosec // see Element.HTML
}

func newScriptElement(attrs Attributes, children ...string) *Element {
	if children == nil {
		children = []string{}
	}
	return &Element{Tag: TagScript, Attributes: attrs, Children: children}
}

func newLinkElement(attrs Attributes) *Element {
	return &Element{Tag: TagLink, Attributes: attrs}
}
