// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pixelterm/parser/testharness.go
// Summary: Test harness for driving the Interpreter with byte sequences.
// Usage: Used by test files to send protocol bytes and verify screen state.

package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/framegrace/pixelterm/apps/pixelterm/color"
)

// TestHarness wraps an Interpreter with assertion helpers.
type TestHarness struct {
	interp *Interpreter
}

// NewTestHarness creates a harness around a fresh interpreter.
func NewTestHarness() *TestHarness {
	return &TestHarness{interp: NewInterpreter()}
}

// Interpreter exposes the wrapped interpreter.
func (h *TestHarness) Interpreter() *Interpreter {
	return h.interp
}

// Send feeds raw bytes.
// Example: h.Send(27, 0x40) enters graphics mode.
func (h *TestHarness) Send(bytes ...byte) {
	for _, b := range bytes {
		h.interp.Feed(b)
	}
}

// SendText feeds each byte of text.
func (h *TestHarness) SendText(text string) {
	h.Send([]byte(text)...)
}

// AssertMode verifies the active mode.
func (h *TestHarness) AssertMode(t *testing.T, expected Mode) {
	t.Helper()
	if got := h.interp.Mode(); got != expected {
		t.Errorf("Mode: expected %v, got %v", expected, got)
	}
}

// AssertCursor verifies the text cursor position.
func (h *TestHarness) AssertCursor(t *testing.T, expectedX, expectedY int) {
	t.Helper()
	x, y := h.interp.Text().Cursor()
	if x != expectedX || y != expectedY {
		t.Errorf("Cursor position: expected (%d,%d), got (%d,%d)", expectedX, expectedY, x, y)
	}
}

// AssertPointer verifies the graphics write pointer.
func (h *TestHarness) AssertPointer(t *testing.T, expectedX, expectedY int) {
	t.Helper()
	x, y := h.interp.Graphics().Pointer()
	if x != expectedX || y != expectedY {
		t.Errorf("Pointer position: expected (%d,%d), got (%d,%d)", expectedX, expectedY, x, y)
	}
}

// AssertChar verifies the character stored at a cell (ignores color).
func (h *TestHarness) AssertChar(t *testing.T, x, y int, expected byte) {
	t.Helper()
	if got := h.interp.Text().Cell(x, y).Char; got != expected {
		t.Errorf("Cell[%d,%d] char: expected %q, got %q", x, y, expected, got)
	}
}

// AssertCell verifies both character and color of a cell.
func (h *TestHarness) AssertCell(t *testing.T, x, y int, expected Cell) {
	t.Helper()
	got := h.interp.Text().Cell(x, y)
	if got != expected {
		t.Errorf("Cell[%d,%d]: expected {%q %v}, got {%q %v}", x, y,
			expected.Char, expected.Color, got.Char, got.Color)
	}
}

// AssertText verifies a run of characters starting at x, y.
func (h *TestHarness) AssertText(t *testing.T, x, y int, expected string) {
	t.Helper()
	for i := 0; i < len(expected); i++ {
		h.AssertChar(t, x+i, y, expected[i])
	}
}

// AssertLineBlank verifies an entire row holds blank black cells.
func (h *TestHarness) AssertLineBlank(t *testing.T, y int) {
	t.Helper()
	for x := 0; x < TextColumns; x++ {
		h.AssertCell(t, x, y, blankCell)
	}
}

// AssertPixel verifies a graphics buffer pixel.
func (h *TestHarness) AssertPixel(t *testing.T, x, y int, expected color.RGB) {
	t.Helper()
	if got := h.interp.Graphics().Pixel(x, y); got != expected {
		t.Errorf("Pixel[%d,%d]: expected %v, got %v", x, y, expected, got)
	}
}

// Dump renders the text grid with the cursor marked, for failure messages.
func (h *TestHarness) Dump() string {
	text := h.interp.Text()
	cx, cy := text.Cursor()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Text %dx%d (cursor at %d,%d, mode %v)\n", TextColumns, TextRows, cx, cy, h.interp.Mode()))
	sb.WriteString(strings.Repeat("=", TextColumns) + "\n")
	for y, line := range text.Lines() {
		if y == cy {
			line = line[:cx] + "[" + line[cx+1:]
		}
		sb.WriteString(fmt.Sprintf("%s |%d\n", line, y))
	}
	sb.WriteString(strings.Repeat("=", TextColumns) + "\n")
	return sb.String()
}
