// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package vite

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Algomation-AI/vitebridge/modules/log"

	"github.com/fsnotify/fsnotify"
)

// ManifestWatcher drops cached manifests when the build rewrites the manifest file.
type ManifestWatcher struct {
	v       *Vite
	target  string
	watcher *fsnotify.Watcher
}

// NewManifestWatcher starts watching the directory of v's manifest. The
// directory has to exist.
func NewManifestWatcher(v *Vite) (*ManifestWatcher, error) {
	target, err := filepath.Abs(v.ManifestPath())
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	return &ManifestWatcher{v: v, target: target, watcher: watcher}, nil
}

// Run purges the manifest cache on every change until ctx is done.
func (w *ManifestWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) {
				continue
			}
			if name, err := filepath.Abs(ev.Name); err != nil || name != w.target {
				continue
			}
			log.Debug("vite: %s changed (%s), purging cached manifests", w.target, ev.Op)
			w.v.manifests.Purge()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("vite: manifest watcher: %v", err)
		}
	}
}
