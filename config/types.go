// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types.go
// Summary: Typed lookups over loosely typed JSON config data.
// Notes: Values decoded from JSON arrive as float64, strings or bools;
// hand-edited files sometimes quote numbers, so strings are parsed too.

package config

import (
	"strconv"
)

// Section returns the named section or nil if missing or not an object.
func (c Config) Section(sectionName string) Section {
	switch v := c[sectionName].(type) {
	case Section:
		return v
	case map[string]interface{}:
		return Section(v)
	}
	return nil
}

// RegisterDefaults adds the keys of defaults that the section lacks.
func (c Config) RegisterDefaults(sectionName string, defaults Section) {
	if c == nil {
		return
	}
	section := c.Section(sectionName)
	if section == nil {
		section = make(Section, len(defaults))
		c[sectionName] = section
	}
	for key, value := range defaults {
		if _, ok := section[key]; !ok {
			section[key] = value
		}
	}
}

func lookup[T any](c Config, sectionName, key string, def T, conv func(interface{}) (T, bool)) T {
	raw, ok := c.Section(sectionName)[key]
	if !ok {
		return def
	}
	if v, ok := conv(raw); ok {
		return v
	}
	return def
}

// GetString retrieves a string value.
func (c Config) GetString(sectionName, key, defaultValue string) string {
	return lookup(c, sectionName, key, defaultValue, func(raw interface{}) (string, bool) {
		s, ok := raw.(string)
		return s, ok
	})
}

// GetInt retrieves an integer value.
func (c Config) GetInt(sectionName, key string, defaultValue int) int {
	return lookup(c, sectionName, key, defaultValue, asInt)
}

// GetBool retrieves a boolean value.
func (c Config) GetBool(sectionName, key string, defaultValue bool) bool {
	return lookup(c, sectionName, key, defaultValue, asBool)
}

func asInt(raw interface{}) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	}
	return 0, false
}

func asBool(raw interface{}) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(v)
		return b, err == nil
	case int:
		return v != 0, true
	case float64:
		return v != 0, true
	}
	return false, false
}
