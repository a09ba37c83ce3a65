// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values filled into partial configuration files.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("display", Section{
		"fps":         60,
		"blink_ms":    300,
		"driver":      "tcell",
		"scale":       8,
		"status_line": true,
	})
	cfg.RegisterDefaults("input", Section{
		"source":  "keyboard",
		"command": "",
		"buffer":  4096,
	})
	cfg.RegisterDefaults("recording", Section{
		"enabled": false,
		"path":    "",
	})
}
