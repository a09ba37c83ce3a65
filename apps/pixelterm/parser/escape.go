// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pixelterm/parser/escape.go
// Summary: Handling of the single argument byte that follows ESC.
// Usage: Called by the Interpreter once an escape argument arrives.

package parser

import "github.com/framegrace/pixelterm/apps/pixelterm/color"

// Escape arguments.
const (
	EscResetGreen byte = 1
	EscResetGray  byte = 2
	escSetColor   byte = 0x80
	escGraphics   byte = 0x40
)

// dispatchEscape runs an escape command. The reset arguments are tested
// first since their values also fall inside the bit tests below.
func (p *Interpreter) dispatchEscape(arg byte) {
	switch {
	case arg == EscResetGray:
		p.mode = ModeText
		p.text.Reset(color.Gray)
	case arg == EscResetGreen:
		p.mode = ModeText
		p.text.Reset(color.Green)
	case arg&escSetColor != 0:
		p.text.SetColor(color.Decode(arg & payloadMask))
	case arg&escGraphics != 0:
		p.mode = ModeGraphics
	}
}
