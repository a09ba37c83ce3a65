// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pixelterm/parser/parser.go
// Summary: Byte-at-a-time protocol interpreter for the pixel terminal.
// Usage: Fed one byte per tick by the runtime loop; read by the renderer.
// Notes: Every byte value has a defined meaning, so Feed never fails.

package parser

import "github.com/framegrace/pixelterm/apps/pixelterm/color"

// Mode selects which screen receives input and gets rendered.
type Mode int

const (
	ModeText Mode = iota
	ModeGraphics
)

func (m Mode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeGraphics:
		return "graphics"
	default:
		return "unknown"
	}
}

// Protocol bytes.
const (
	KeyEscape    byte = 27
	KeyReturn    byte = 13
	KeyDelete    byte = 127
	KeyHardReset byte = 255
	firstPrint   byte = 32
)

// Graphics command selectors held in the top two bits of a byte.
const (
	cmdMask       byte = 0xc0
	cmdControl    byte = 0xc0
	cmdSetY       byte = 0x80
	cmdSetX       byte = 0x40
	cmdPixelWrite byte = 0x00
)

// Interpreter owns both screens and routes input bytes between them.
type Interpreter struct {
	mode     Mode
	escape   bool
	text     *TextScreen
	graphics *GraphicsScreen
}

// NewInterpreter returns an interpreter in text mode with blank screens.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		mode:     ModeText,
		text:     NewTextScreen(),
		graphics: NewGraphicsScreen(),
	}
}

// Feed processes a single input byte. Hard reset wins over everything,
// then a pending escape argument, then ESC itself; only the remaining
// bytes are routed by mode.
func (p *Interpreter) Feed(b byte) {
	switch {
	case b == KeyHardReset:
		p.HardReset()
	case p.escape:
		// A zero argument leaves the escape armed.
		if b == 0 {
			return
		}
		p.escape = false
		p.dispatchEscape(b)
	case b == KeyEscape:
		p.escape = true
	case p.mode == ModeGraphics:
		p.feedGraphics(b)
	default:
		p.feedText(b)
	}
}

// Write feeds every byte of data. It always consumes the whole slice.
func (p *Interpreter) Write(data []byte) (int, error) {
	for _, b := range data {
		p.Feed(b)
	}
	return len(data), nil
}

func (p *Interpreter) feedText(b byte) {
	switch {
	case b == KeyReturn:
		p.text.NewLine()
	case b == KeyDelete:
		p.text.Backspace()
	case b >= firstPrint:
		p.text.WriteChar(b)
	}
}

func (p *Interpreter) feedGraphics(b byte) {
	if b == 0 {
		return
	}
	payload := b & payloadMask
	switch b & cmdMask {
	case cmdControl:
		if payload == 0 {
			p.mode = ModeText
			return
		}
		p.graphics.WriteAndAdvance(color.Black)
	case cmdSetY:
		p.graphics.SetPointerY(payload)
	case cmdSetX:
		p.graphics.SetPointerX(payload)
	case cmdPixelWrite:
		p.graphics.WriteAndAdvance(color.Decode(payload))
	}
}

// HardReset returns to text mode and clears both screens.
func (p *Interpreter) HardReset() {
	p.mode = ModeText
	p.escape = false
	p.text.Reset(color.Gray)
	p.graphics.Reset()
}

// Mode reports the active mode.
func (p *Interpreter) Mode() Mode {
	return p.mode
}

// EscapePending reports whether the next byte is an escape argument.
func (p *Interpreter) EscapePending() bool {
	return p.escape
}

// Text returns the text screen.
func (p *Interpreter) Text() *TextScreen {
	return p.text
}

// Graphics returns the graphics screen.
func (p *Interpreter) Graphics() *GraphicsScreen {
	return p.graphics
}
