// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package vite

import (
	"html/template"
	"testing"

	"github.com/Algomation-AI/vitebridge/modules/json"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementString(t *testing.T) {
	script := newScriptElement(Attributes{{Key: "type", Value: "module"}, {Key: "src", Value: "/app.js"}})
	assert.Equal(t, `<script type="module" src="/app.js"></script>`, script.String())
	assert.Equal(t, "/app.js", script.Attr("src"))
	assert.Empty(t, script.Attr("missing"))
	assert.NotNil(t, script.Children)

	inline := newScriptElement(Attributes{{Key: "type", Value: "module"}}, "a()", "b()")
	assert.Equal(t, "<script type=\"module\">a()\nb()</script>", inline.String())

	link := newLinkElement(Attributes{{Key: "rel", Value: "stylesheet"}, {Key: "href", Value: "/app.css"}})
	assert.Equal(t, `<link rel="stylesheet" href="/app.css"/>`, link.String())

	assert.Equal(t, "<script></script>", newScriptElement(nil).String())
}

func TestElementsHTML(t *testing.T) {
	elements := Elements{
		newLinkElement(Attributes{{Key: "rel", Value: "stylesheet"}, {Key: "href", Value: "/a.css"}}),
		newScriptElement(Attributes{{Key: "src", Value: "/a.js"}}),
	}
	assert.Equal(t, []string{`<link rel="stylesheet" href="/a.css"/>`, `<script src="/a.js"></script>`}, elements.Strings())
	assert.Equal(t, template.HTML("<link rel=\"stylesheet\" href=\"/a.css\"/>\n<script src=\"/a.js\"></script>"), elements.HTML())
	assert.Equal(t, template.HTML(`<script src="/a.js"></script>`), elements[1].HTML())
}

func TestElementsJSON(t *testing.T) {
	tags := Elements{
		newLinkElement(Attributes{{Key: "rel", Value: "modulepreload"}, {Key: "href", Value: "/assets/app.1.js"}}),
		newScriptElement(Attributes{{Key: "type", Value: "module"}, {Key: "defer", Value: true}, {Key: "src", Value: "/assets/app.1.js"}}),
		newScriptElement(nil, "init()"),
	}
	out, err := json.Marshal(tags)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"tag":"link","attributes":{"rel":"modulepreload","href":"/assets/app.1.js"}},
		{"tag":"script","attributes":{"type":"module","defer":true,"src":"/assets/app.1.js"}},
		{"tag":"script","children":["init()"]}
	]`, string(out))
	assert.Contains(t, string(out), `{"type":"module","defer":true,"src":"/assets/app.1.js"}`)
}
