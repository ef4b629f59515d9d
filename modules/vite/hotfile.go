// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package vite

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/Algomation-AI/vitebridge/modules/json"
)

// HotFile is the content written by the dev server while it is running.
type HotFile struct {
	URL string `json:"url"`
}

// HotMode selects how hot mode is detected.
type HotMode int

const (
	// HotModeAuto checks for the hot file on every call.
	HotModeAuto HotMode = iota
	// HotModeOn always uses the dev server.
	HotModeOn
	// HotModeOff always uses the build manifest.
	HotModeOff
)

// ParseHotMode converts "auto", "on" or "off" (and boolean spellings) into a HotMode.
func ParseHotMode(s string) HotMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1", "dev":
		return HotModeOn
	case "off", "false", "0", "build":
		return HotModeOff
	default:
		return HotModeAuto
	}
}

func (m HotMode) String() string {
	switch m {
	case HotModeOn:
		return "on"
	case HotModeOff:
		return "off"
	default:
		return "auto"
	}
}

// HotDetector decides between dev and build mode.
type HotDetector struct {
	path string
	mode HotMode
}

// NewHotDetector returns a detector for the hot file at path.
func NewHotDetector(path string, mode HotMode) *HotDetector {
	return &HotDetector{path: path, mode: mode}
}

// Path returns the hot file location.
func (d *HotDetector) Path() string {
	return d.path
}

// IsHot reports whether the dev server is active. In auto mode this is an
// existence check of the hot file, repeated on every call.
func (d *HotDetector) IsHot() bool {
	switch d.mode {
	case HotModeOn:
		return true
	case HotModeOff:
		return false
	}
	if d.path == "" {
		return false
	}
	_, err := os.Stat(d.path)
	return err == nil
}

// DevServerURL returns the dev server base URL without a trailing slash. When
// hot mode is forced and no hot file exists the result is empty, which makes
// generated URLs root-relative.
func (d *HotDetector) DevServerURL() (string, error) {
	if d.mode == HotModeOn {
		if _, err := os.Stat(d.path); d.path == "" || errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
	}

	hot, err := ReadHotFile(d.path)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(hot.URL, "/"), nil
}

// ReadHotFile reads and validates the hot file at path.
func ReadHotFile(path string) (*HotFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrHotFileUnreadable{Path: path, Err: err}
	}
	var hot HotFile
	if err := validateDocument(hotFileSchema, data, &hot); err != nil {
		return nil, ErrHotFileUnreadable{Path: path, Err: err}
	}
	return &hot, nil
}

// WriteHotFile writes the hot file the way the dev server plugin does.
func WriteHotFile(path, url string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(HotFile{URL: url}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// CleanHotFile removes the hot file if it exists.
func CleanHotFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
