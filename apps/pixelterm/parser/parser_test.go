// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pixelterm/parser/parser_test.go
// Summary: Protocol-level tests for text, escape and graphics dispatch.
// Usage: Run with `go test` to verify byte routing.

package parser

import (
	"testing"

	"github.com/framegrace/pixelterm/apps/pixelterm/color"
)

func TestTextModeControlBytes(t *testing.T) {
	h := NewTestHarness()
	h.SendText("ab")
	h.Send(KeyReturn)
	h.SendText("cd")
	h.AssertText(t, 0, 0, "ab")
	h.AssertText(t, 0, 1, "cd")
	h.AssertCursor(t, 2, 1)

	h.Send(KeyDelete)
	h.AssertCursor(t, 1, 1)
	h.AssertChar(t, 1, 1, Blank)
	h.AssertChar(t, 0, 1, 'c')
}

func TestTextModeIgnoresLowBytes(t *testing.T) {
	h := NewTestHarness()
	for _, b := range []byte{0, 1, 2, 8, 9, 10, 12, 26, 28, 31} {
		h.Send(b)
	}
	h.AssertCursor(t, 0, 0)
	h.AssertLineBlank(t, 0)
	h.AssertMode(t, ModeText)
	if h.Interpreter().EscapePending() {
		t.Fatalf("escape must not be armed")
	}
}

func TestTextModeWritesHighBytes(t *testing.T) {
	h := NewTestHarness()
	h.Send(128, 200, 254)
	h.AssertText(t, 0, 0, "\x80\xc8\xfe")
	h.AssertCursor(t, 3, 0)
}

func TestEscapeEntersAndControlExitsGraphics(t *testing.T) {
	h := NewTestHarness()
	h.Send(KeyEscape, 0x40)
	h.AssertMode(t, ModeGraphics)
	h.Send(0xc0)
	h.AssertMode(t, ModeText)
}

func TestEscapeCommands(t *testing.T) {
	tests := []struct {
		name      string
		arg       byte
		wantMode  Mode
		wantColor color.RGB
		cleared   bool
	}{
		{"reset green", EscResetGreen, ModeText, color.Green, true},
		{"reset gray", EscResetGray, ModeText, color.Gray, true},
		{"set color red", 0x80 | 0x03, ModeText, color.RGB{R: 255, G: 0, B: 0}, false},
		{"set color white", 0xbf, ModeText, color.White, false},
		{"set color ignores bit 6", 0xc1, ModeText, color.RGB{R: 63, G: 0, B: 0}, false},
		{"graphics", 0x40, ModeGraphics, color.Gray, false},
		{"graphics with payload", 0x7f, ModeGraphics, color.Gray, false},
		{"unknown argument", 0x20, ModeText, color.Gray, false},
		{"escape as argument", KeyEscape, ModeText, color.Gray, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTestHarness()
			h.SendText("xy")
			h.Send(KeyEscape, tt.arg)
			h.AssertMode(t, tt.wantMode)
			if h.Interpreter().EscapePending() {
				t.Fatalf("escape still pending")
			}
			if got := h.Interpreter().Text().Color(); got != tt.wantColor {
				t.Fatalf("color %v, want %v", got, tt.wantColor)
			}
			if tt.cleared {
				h.AssertCursor(t, 0, 0)
				h.AssertLineBlank(t, 0)
			} else {
				h.AssertCursor(t, 2, 0)
				h.AssertText(t, 0, 0, "xy")
			}
		})
	}
}

func TestEscapeColorAppliesToNewCells(t *testing.T) {
	h := NewTestHarness()
	h.SendText("a")
	h.Send(KeyEscape, 0x80|0x0c)
	h.SendText("b")
	h.AssertCell(t, 0, 0, Cell{Char: 'a', Color: color.Gray})
	h.AssertCell(t, 1, 0, Cell{Char: 'b', Color: color.Green})
}

func TestEscapeArgumentZeroKeepsEscapeArmed(t *testing.T) {
	h := NewTestHarness()
	h.Send(KeyEscape, 0)
	if !h.Interpreter().EscapePending() {
		t.Fatalf("escape should remain armed after a zero argument")
	}
	h.SendText("A") // 0x41 has bit 0x40 set
	h.AssertMode(t, ModeGraphics)
	h.AssertCursor(t, 0, 0)
}

func TestGraphicsPixelWrite(t *testing.T) {
	h := NewTestHarness()
	h.Send(KeyEscape, 0x40)
	h.Send(0x40|5, 0x80|5, 0x3f)
	h.AssertPixel(t, 5, 5, color.White)
	h.AssertPointer(t, 6, 5)
}

func TestGraphicsCommands(t *testing.T) {
	h := NewTestHarness()
	h.Send(KeyEscape, 0x40)

	h.Send(0x40|10, 0x80|20)
	h.AssertPointer(t, 10, 20)

	// Byte 0 is a no-op in graphics mode.
	h.Send(0)
	h.AssertPointer(t, 10, 20)
	h.AssertPixel(t, 10, 20, color.Black)

	h.Send(0x01)
	h.AssertPixel(t, 10, 20, color.RGB{R: 63, G: 0, B: 0})
	h.AssertPointer(t, 11, 20)

	// Non-zero control payload writes black.
	h.Send(0x40|10, 0xc1)
	h.AssertPixel(t, 10, 20, color.Black)
	h.AssertPointer(t, 11, 20)
}

func TestEscapeInGraphicsMode(t *testing.T) {
	h := NewTestHarness()
	h.Send(KeyEscape, 0x40)
	h.Send(0x40|3, 0x80|4)

	// ESC arms the escape in graphics mode too, so it never draws.
	h.Send(KeyEscape)
	h.AssertMode(t, ModeGraphics)
	if !h.Interpreter().EscapePending() {
		t.Fatalf("escape should be armed")
	}
	h.AssertPixel(t, 3, 4, color.Black)
	h.AssertPointer(t, 3, 4)

	// A color argument changes the text color and stays in graphics.
	h.Send(0x80 | 0x30)
	h.AssertMode(t, ModeGraphics)
	if got := h.Interpreter().Text().Color(); got != (color.RGB{R: 0, G: 0, B: 255}) {
		t.Fatalf("color %v", got)
	}
	h.Send(0x15)
	h.AssertPixel(t, 3, 4, color.Decode(0x15))

	// A reset argument leaves graphics mode.
	h.Send(KeyEscape, EscResetGreen)
	h.AssertMode(t, ModeText)
	h.AssertPixel(t, 3, 4, color.Decode(0x15))
}

func TestGraphicsPointerWraps(t *testing.T) {
	h := NewTestHarness()
	h.Send(KeyEscape, 0x40)
	h.Send(0x40|63, 0x80|7, 0x3f)
	h.AssertPointer(t, 0, 8)
	h.Send(0x40|63, 0x80|63, 0x3f)
	h.AssertPointer(t, 0, 0)
}

func TestGraphicsModeLeavesTextUntouched(t *testing.T) {
	h := NewTestHarness()
	h.SendText("hi")
	h.Send(KeyEscape, 0x40)
	h.SendText("abc")
	h.Send(0xc0)
	h.AssertText(t, 0, 0, "hi")
	h.AssertCursor(t, 2, 0)
}

func TestHardReset(t *testing.T) {
	setups := map[string][]byte{
		"text":           []byte("hello\rworld"),
		"escape pending": {'a', 'b', KeyEscape},
		"graphics":       {'a', KeyEscape, 0x40, 0x40 | 9, 0x80 | 9, 0x3f, 0x2a},
		"colored text":   {KeyEscape, 0x83, 'r', 'e', 'd'},
	}
	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			h := NewTestHarness()
			h.Send(setup...)
			h.Send(KeyHardReset)

			h.AssertMode(t, ModeText)
			if h.Interpreter().EscapePending() {
				t.Fatalf("escape still pending")
			}
			h.AssertCursor(t, 0, 0)
			h.AssertPointer(t, 0, 0)
			for y := 0; y < TextRows; y++ {
				h.AssertLineBlank(t, y)
			}
			h.AssertPixel(t, 9, 9, color.Black)
			h.AssertPixel(t, 10, 9, color.Black)
			if got := h.Interpreter().Text().Color(); got != color.Gray {
				t.Fatalf("color %v, want gray", got)
			}
			if t.Failed() {
				t.Log(h.Dump())
			}
		})
	}
}

func TestWriteConsumesAll(t *testing.T) {
	p := NewInterpreter()
	n, err := p.Write([]byte("hello"))
	if err != nil || n != 5 {
		t.Fatalf("Write = %d, %v", n, err)
	}
	if got := p.Text().Lines()[0]; got != "hello     " {
		t.Fatalf("row 0 = %q", got)
	}
}

func TestModeString(t *testing.T) {
	if ModeText.String() != "text" || ModeGraphics.String() != "graphics" || Mode(7).String() != "unknown" {
		t.Fatalf("unexpected mode names")
	}
}
