// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/clone.go
// Summary: Copies config maps so callers never share the live store.

package config

// Clone returns a copy of c whose sections are fresh maps. Values inside
// sections are scalars, so copying one level is enough.
func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	out := make(Config, len(c))
	for name, value := range c {
		if section := c.Section(name); section != nil {
			out[name] = copySection(section)
			continue
		}
		out[name] = value
	}
	return out
}

func copySection(s Section) Section {
	out := make(Section, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
