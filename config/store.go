// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Reading and writing config files.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

var errNoPath = errors.New("config store has no file")

// load replaces s.cfg with the file contents merged over the defaults.
// A missing or empty file is created from the embedded defaults.
func (s *Store) load() error {
	var (
		cfg    Config
		exists bool
		err    error
	)
	if s.path != "" {
		cfg, exists, err = readConfig(s.path)
		if err != nil {
			log.Printf("Config: Failed to read config %s: %v", s.path, err)
			cfg = nil
		}
	}

	seed := !exists || len(cfg) == 0
	if seed {
		cfg = defaultSystemConfig()
		if cfg == nil {
			cfg = make(Config)
		}
	}
	applySystemDefaults(cfg)

	if seed && err == nil && s.path != "" {
		if werr := writeConfig(s.path, cfg); werr != nil {
			log.Printf("Config: Failed to write default config: %v", werr)
			err = werr
		}
	} else if err == nil && exists {
		log.Printf("Config: Loaded config from %s", s.path)
	}

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return err
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(data) == 0 {
		return nil, true, nil
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
