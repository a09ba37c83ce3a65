// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pixelterm/parser/text_screen.go
// Summary: Text grid with cursor movement, wrapping and scroll-on-overflow.
// Usage: Mutated by the Interpreter in text mode; read by the renderer.
// Notes: Cursor movement is toroidal except when writing, which scrolls.

package parser

import (
	"strings"

	"github.com/framegrace/pixelterm/apps/pixelterm/color"
)

const (
	// TextColumns and TextRows give the grid size in glyph cells.
	TextColumns = 10
	TextRows    = 8

	lastColumn = TextColumns - 1
	lastRow    = TextRows - 1

	// Blank is stored in cleared cells.
	Blank byte = ' '
)

// Cell is a single character position on the text screen.
type Cell struct {
	Char  byte
	Color color.RGB
}

var blankCell = Cell{Char: Blank, Color: color.Black}

// TextScreen holds the character grid and the cursor.
type TextScreen struct {
	cells            [TextRows][TextColumns]Cell
	cursorX, cursorY int
	currentColor     color.RGB
	scrolls          int
}

// NewTextScreen returns a blank screen writing in gray.
func NewTextScreen() *TextScreen {
	s := &TextScreen{}
	s.Reset(color.Gray)
	return s
}

// Reset clears every cell, homes the cursor and sets the write color.
func (s *TextScreen) Reset(fg color.RGB) {
	for row := range s.cells {
		s.clearRow(row)
	}
	s.cursorX, s.cursorY = 0, 0
	s.currentColor = fg
}

// WriteChar stores c in the current color at the cursor and advances.
func (s *TextScreen) WriteChar(c byte) {
	s.put(Cell{Char: c, Color: s.currentColor})
}

// put stores cell at the cursor, then advances one column, wrapping to
// the next row and scrolling when the grid overflows.
func (s *TextScreen) put(cell Cell) {
	s.cells[s.cursorY][s.cursorX] = cell
	s.cursorX++
	if s.cursorX > lastColumn {
		s.cursorX = 0
		s.cursorY++
		s.ScrollIfNeeded()
	}
}

// ScrollIfNeeded shifts the grid up one row when the cursor has run
// past the last row. Overflow is never more than one row.
func (s *TextScreen) ScrollIfNeeded() {
	if s.cursorY <= lastRow {
		return
	}
	for row := 0; row < lastRow; row++ {
		s.cells[row] = s.cells[row+1]
	}
	s.clearRow(lastRow)
	s.cursorY--
	s.scrolls++
}

func (s *TextScreen) clearRow(row int) {
	for col := range s.cells[row] {
		s.cells[row][col] = blankCell
	}
}

// NewLine moves to column 0 of the next row, scrolling if needed.
func (s *TextScreen) NewLine() {
	s.cursorY++
	s.cursorX = 0
	s.ScrollIfNeeded()
}

// Backspace erases the cell left of the cursor and leaves the cursor on it.
func (s *TextScreen) Backspace() {
	s.MoveLeft()
	s.put(blankCell)
	s.MoveLeft()
}

// MoveLeft wraps from column 0 to the last column of the previous row.
func (s *TextScreen) MoveLeft() {
	s.cursorX--
	if s.cursorX < 0 {
		s.cursorX = lastColumn
		s.MoveUp()
	}
}

// MoveRight wraps from the last column to column 0 of the next row.
func (s *TextScreen) MoveRight() {
	s.cursorX++
	if s.cursorX > lastColumn {
		s.cursorX = 0
		s.MoveDown()
	}
}

// MoveUp wraps from the top row to the bottom row.
func (s *TextScreen) MoveUp() {
	s.cursorY--
	if s.cursorY < 0 {
		s.cursorY = lastRow
	}
}

// MoveDown wraps from the bottom row to the top row.
func (s *TextScreen) MoveDown() {
	s.cursorY++
	if s.cursorY > lastRow {
		s.cursorY = 0
	}
}

// MoveTo places the cursor, clamping to the grid.
func (s *TextScreen) MoveTo(column, row int) {
	s.cursorX = clamp(column, 0, lastColumn)
	s.cursorY = clamp(row, 0, lastRow)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SetColor changes the color used for subsequent writes.
func (s *TextScreen) SetColor(c color.RGB) {
	s.currentColor = c
}

// Color returns the current write color.
func (s *TextScreen) Color() color.RGB {
	return s.currentColor
}

// Cursor returns the cursor column and row.
func (s *TextScreen) Cursor() (column, row int) {
	return s.cursorX, s.cursorY
}

// Cell returns the cell at column, row. Out-of-range positions yield a
// blank cell.
func (s *TextScreen) Cell(column, row int) Cell {
	if column < 0 || column > lastColumn || row < 0 || row > lastRow {
		return blankCell
	}
	return s.cells[row][column]
}

// Scrolls reports how many times the grid has scrolled since creation.
func (s *TextScreen) Scrolls() int {
	return s.scrolls
}

// Lines returns the grid contents, one string per row.
func (s *TextScreen) Lines() []string {
	lines := make([]string, TextRows)
	var b strings.Builder
	for row := range s.cells {
		b.Reset()
		for _, cell := range s.cells[row] {
			b.WriteByte(cell.Char)
		}
		lines[row] = b.String()
	}
	return lines
}
