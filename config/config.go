// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: JSON configuration store for pixelterm.
// Usage: config.Load() for typed settings; Default() for the backing store.

package config

import (
	"sync"
)

const systemConfigName = "pixelterm.json"

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

// Store is one config file on disk plus the defaults merged into it.
// A Store with an empty path never touches the filesystem.
type Store struct {
	mu   sync.RWMutex
	path string
	cfg  Config
	err  error
}

// NewStore loads path, seeding it from the embedded defaults when the
// file is missing or empty. Load problems are kept in Err; the store
// still serves defaults.
func NewStore(path string) *Store {
	s := &Store{path: path}
	s.err = s.load()
	return s
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Config returns a copy of the current configuration.
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone()
}

// Err returns the most recent load error.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Reload re-reads the file.
func (s *Store) Reload() error {
	err := s.load()
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	return err
}

// Replace swaps the in-memory configuration. Missing keys are filled
// from the defaults.
func (s *Store) Replace(cfg Config) {
	next := cfg.Clone()
	if next == nil {
		next = make(Config)
	}
	applySystemDefaults(next)
	s.mu.Lock()
	s.cfg = next
	s.mu.Unlock()
}

// Set stores one value.
func (s *Store) Set(sectionName, key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	section := s.cfg.Section(sectionName)
	if section == nil {
		section = make(Section)
		s.cfg[sectionName] = section
	}
	section[key] = value
}

// Save writes the configuration to its file.
func (s *Store) Save() error {
	if s.path == "" {
		return errNoPath
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return writeConfig(s.path, s.cfg)
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Default returns the store for the user's pixelterm.json.
func Default() *Store {
	defaultOnce.Do(func() {
		path, err := systemConfigPath()
		if err != nil {
			defaultStore = NewStore("")
			defaultStore.err = err
			return
		}
		defaultStore = NewStore(path)
	})
	return defaultStore
}

// System returns the user configuration.
func System() Config { return Default().Config() }

// Err returns the most recent load error of the user configuration.
func Err() error { return Default().Err() }

// Reload re-reads the user configuration.
func Reload() error { return Default().Reload() }

// SaveSystem persists the user configuration.
func SaveSystem() error { return Default().Save() }

// SetSystem replaces the user configuration in memory.
func SetSystem(cfg Config) { Default().Replace(cfg) }
