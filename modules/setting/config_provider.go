// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

// ConfigKey is the subset of *ini.Key the loaders rely on.
type ConfigKey interface {
	Name() string
	String() string
	Strings(delim string) []string
	MustString(defaultVal string) string
	MustBool(defaultVal ...bool) bool
	MustInt(defaultVal ...int) int
	In(defaultVal string, candidates []string) string
}

type ConfigSection interface {
	Name() string
	HasKey(key string) bool
	Key(key string) ConfigKey
}

// ConfigProvider represents a loaded configuration file
type ConfigProvider interface {
	Section(section string) ConfigSection
	HasSection(section string) bool
	// File is empty when the configuration did not come from disk.
	File() string
}

type iniConfigProvider struct {
	file string
	ini  *ini.File
}

type iniConfigSection struct {
	sec *ini.Section
}

var _ ConfigProvider = (*iniConfigProvider)(nil)

func (s *iniConfigSection) Name() string {
	return s.sec.Name()
}

func (s *iniConfigSection) HasKey(key string) bool {
	return s.sec.HasKey(key)
}

func (s *iniConfigSection) Key(key string) ConfigKey {
	return s.sec.Key(key)
}

func iniLoadOptions() ini.LoadOptions {
	return ini.LoadOptions{
		IgnoreInlineComment: true,
	}
}

// NewConfigProviderFromData reads an in-memory INI document, mostly for tests.
func NewConfigProviderFromData(configContent string) (ConfigProvider, error) {
	cfg, err := ini.LoadSources(iniLoadOptions(), []byte(configContent))
	if err != nil {
		return nil, err
	}
	return &iniConfigProvider{ini: cfg}, nil
}

// NewConfigProviderFromFile loads the configuration file at file. An empty
// path or a file that does not exist yields an empty configuration, so that
// defaults apply.
func NewConfigProviderFromFile(file string) (ConfigProvider, error) {
	cfg := ini.Empty(iniLoadOptions())
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %q: %w", file, err)
		}
		if err == nil {
			if err := cfg.Append(data); err != nil {
				return nil, fmt.Errorf("failed to load config file %q: %w", file, err)
			}
		}
	}
	return &iniConfigProvider{file: file, ini: cfg}, nil
}

func (p *iniConfigProvider) Section(section string) ConfigSection {
	return &iniConfigSection{sec: p.ini.Section(section)}
}

func (p *iniConfigProvider) HasSection(section string) bool {
	return p.ini.HasSection(section)
}

func (p *iniConfigProvider) File() string {
	return p.file
}
