// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package assets

import (
	"net/http"
	"strings"

	"github.com/Algomation-AI/vitebridge/modules/json"
	"github.com/Algomation-AI/vitebridge/modules/log"
	"github.com/Algomation-AI/vitebridge/modules/vite"

	"github.com/go-chi/chi/v5"
)

const (
	cacheImmutable = "public, max-age=31536000, immutable"
	cacheNoCache   = "no-cache"
)

// Handler serves built assets and exposes the resolver over HTTP.
type Handler struct {
	v *vite.Vite
}

func NewHandler(v *vite.Vite) *Handler {
	return &Handler{v: v}
}

// TagsResponse is returned by Tags.
type TagsResponse struct {
	Mode string   `json:"mode"`
	Tags []string `json:"tags"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("router: failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Tags renders the tags of the entrypoints passed as repeated entry parameters.
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	var entrypoints []string
	for _, entry := range r.URL.Query()["entry"] {
		if entry = strings.TrimSpace(entry); entry != "" {
			entrypoints = append(entrypoints, entry)
		}
	}
	if len(entrypoints) == 0 {
		writeError(w, http.StatusBadRequest, "entry is required")
		return
	}

	mode := "manifest"
	if h.v.IsHot() {
		mode = "hot"
	}
	tags, err := h.v.GenerateEntryPointsTags(entrypoints, nil)
	if err != nil {
		if vite.IsErrChunkNotFound(err) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Error("router: GenerateEntryPointsTags(%v): %v", entrypoints, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, TagsResponse{Mode: mode, Tags: tags.Strings()})
}

// Manifest returns the build manifest. It is unavailable while the dev server runs.
func (h *Handler) Manifest(w http.ResponseWriter, r *http.Request) {
	manifest, err := h.v.Manifest()
	if err != nil {
		switch {
		case vite.IsErrManifestModeViolation(err):
			writeError(w, http.StatusConflict, err.Error())
		case vite.IsErrManifestNotFound(err):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			log.Error("router: Manifest: %v", err)
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, manifest)
}

// Serve returns a file server for the build directory mounted under prefix.
// Files emitted by the build are hashed and may be cached forever.
func (h *Handler) Serve(prefix string) http.Handler {
	files := http.StripPrefix(prefix, http.FileServer(http.Dir(h.v.BuildDirectory())))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		if name == "" || strings.HasSuffix(name, "/") || hasHiddenSegment(name) {
			http.NotFound(w, r)
			return
		}

		if h.isBuildFile(name) {
			w.Header().Set("Cache-Control", cacheImmutable)
		} else {
			w.Header().Set("Cache-Control", cacheNoCache)
		}
		files.ServeHTTP(w, r)
	})
}

func (h *Handler) isBuildFile(name string) bool {
	if h.v.IsHot() {
		return false
	}
	manifest, err := h.v.Manifest()
	if err != nil {
		log.Trace("router: no manifest for %s: %v", name, err)
		return false
	}
	return manifest.HasFile(name)
}

// hasHiddenSegment rejects paths like .vite/manifest.json.
func hasHiddenSegment(name string) bool {
	for _, seg := range strings.Split(name, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
