// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/settings.go
// Summary: Typed views of the pixelterm config sections.
// Usage: Read once at startup by cmd/pixelterm, then overridden by flags.

package config

import "time"

// Display controls the frame loop and output driver.
type Display struct {
	FPS        int
	Blink      time.Duration
	Driver     string
	Scale      int
	StatusLine bool
}

// Input selects where protocol bytes come from.
type Input struct {
	Source  string
	Command string
	Buffer  int
}

// Recording controls the sqlite session recorder.
type Recording struct {
	Enabled bool
	Path    string
}

// Settings groups every section.
type Settings struct {
	Display   Display
	Input     Input
	Recording Recording
}

// Load reads typed settings from the user configuration.
func Load() Settings {
	return FromConfig(System())
}

// FromConfig extracts typed settings, falling back to defaults for
// missing or invalid values.
func FromConfig(cfg Config) Settings {
	s := Settings{
		Display: Display{
			FPS:        cfg.GetInt("display", "fps", 60),
			Blink:      time.Duration(cfg.GetInt("display", "blink_ms", 300)) * time.Millisecond,
			Driver:     cfg.GetString("display", "driver", "tcell"),
			Scale:      cfg.GetInt("display", "scale", 8),
			StatusLine: cfg.GetBool("display", "status_line", true),
		},
		Input: Input{
			Source:  cfg.GetString("input", "source", "keyboard"),
			Command: cfg.GetString("input", "command", ""),
			Buffer:  cfg.GetInt("input", "buffer", 4096),
		},
		Recording: Recording{
			Enabled: cfg.GetBool("recording", "enabled", false),
			Path:    cfg.GetString("recording", "path", ""),
		},
	}
	if s.Display.FPS <= 0 {
		s.Display.FPS = 60
	}
	if s.Display.Blink <= 0 {
		s.Display.Blink = 300 * time.Millisecond
	}
	if s.Display.Scale <= 0 {
		s.Display.Scale = 8
	}
	if s.Input.Buffer <= 0 {
		s.Input.Buffer = 4096
	}
	return s
}

// Apply writes s into st so it can be saved.
func (s Settings) Apply(st *Store) {
	st.Set("display", "fps", s.Display.FPS)
	st.Set("display", "blink_ms", int(s.Display.Blink/time.Millisecond))
	st.Set("display", "driver", s.Display.Driver)
	st.Set("display", "scale", s.Display.Scale)
	st.Set("display", "status_line", s.Display.StatusLine)
	st.Set("input", "source", s.Input.Source)
	st.Set("input", "command", s.Input.Command)
	st.Set("input", "buffer", s.Input.Buffer)
	st.Set("recording", "enabled", s.Recording.Enabled)
	st.Set("recording", "path", s.Recording.Path)
}
