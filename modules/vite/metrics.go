// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package vite

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "vitebridge"

var (
	manifestReads = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "manifest_reads_total",
		Help:      "Number of times a build manifest was read from disk",
	})
	manifestCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "manifest_cache_hits_total",
		Help:      "Number of manifest lookups served from memory",
	})
	tagGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "tag_generations_total",
		Help:      "Number of entrypoint tag generation calls",
	}, []string{"mode"})
	tagGenerationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "tag_generation_errors_total",
		Help:      "Number of failed entrypoint tag generation calls",
	}, []string{"mode"})
)

const (
	modeLabelHot      = "hot"
	modeLabelManifest = "manifest"
)
