// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pixelterm/parser/text_screen_test.go
// Summary: Tests for text grid writes, wrapping, scrolling and cursor moves.

package parser

import (
	"testing"

	"github.com/framegrace/pixelterm/apps/pixelterm/color"
)

// TestWriteSequenceFillsGrid writes every printable byte and checks the
// grid holds the tail of the stream in row-major order.
func TestWriteSequenceFillsGrid(t *testing.T) {
	var seq []byte
	for b := 32; b <= 254; b++ {
		seq = append(seq, byte(b))
	}

	for _, n := range []int{1, 9, 10, 11, 79, 80, 81, 150, len(seq)} {
		s := NewTextScreen()
		for _, b := range seq[:n] {
			s.WriteChar(b)
		}

		scrolls := n/TextColumns - lastRow
		if scrolls < 0 {
			scrolls = 0
		}
		if s.Scrolls() != scrolls {
			t.Fatalf("n=%d: expected %d scrolls, got %d", n, scrolls, s.Scrolls())
		}
		for row := 0; row < TextRows; row++ {
			for col := 0; col < TextColumns; col++ {
				idx := (scrolls+row)*TextColumns + col
				want := Blank
				if idx < n {
					want = seq[idx]
				}
				if got := s.Cell(col, row).Char; got != want {
					t.Fatalf("n=%d: cell[%d,%d] = %q, want %q", n, col, row, got, want)
				}
			}
		}
		cx, cy := s.Cursor()
		if cx != n%TextColumns || cy != n/TextColumns-scrolls {
			t.Fatalf("n=%d: cursor (%d,%d)", n, cx, cy)
		}
	}
}

func TestEightyOneCharsScrollOnce(t *testing.T) {
	s := NewTextScreen()
	for i := 0; i < TextColumns*TextRows+1; i++ {
		s.WriteChar(byte('A' + i/TextColumns))
	}
	if s.Scrolls() != 1 {
		t.Fatalf("expected exactly one scroll, got %d", s.Scrolls())
	}
	lines := s.Lines()
	want := []string{
		"BBBBBBBBBB",
		"CCCCCCCCCC",
		"DDDDDDDDDD",
		"EEEEEEEEEE",
		"FFFFFFFFFF",
		"GGGGGGGGGG",
		"HHHHHHHHHH",
		"I         ",
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("row %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestScrollClearsLastRowToBlack(t *testing.T) {
	s := NewTextScreen()
	s.SetColor(color.White)
	for i := 0; i < TextColumns*TextRows; i++ {
		s.WriteChar('x')
	}
	for col := 0; col < TextColumns; col++ {
		if got := s.Cell(col, lastRow); got != blankCell {
			t.Fatalf("last row cell %d = %+v, want blank", col, got)
		}
		if got := s.Cell(col, 0); got.Color != color.White {
			t.Fatalf("row 0 cell %d color = %v", col, got.Color)
		}
	}
}

func TestScrollIfNeededNoopInBounds(t *testing.T) {
	s := NewTextScreen()
	s.WriteChar('a')
	s.MoveTo(3, lastRow)
	s.ScrollIfNeeded()
	if s.Scrolls() != 0 || s.Cell(0, 0).Char != 'a' {
		t.Fatalf("unexpected scroll: %v", s.Lines())
	}
}

func TestBackspaceAfterWrite(t *testing.T) {
	tests := []struct {
		name     string
		col, row int
	}{
		{"origin", 0, 0},
		{"middle", 4, 3},
		{"last column wraps", lastColumn, 2},
		{"bottom row", 5, lastRow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewTextScreen()
			s.MoveTo(tt.col, tt.row)
			s.WriteChar('Q')
			s.Backspace()
			cx, cy := s.Cursor()
			if cx != tt.col || cy != tt.row {
				t.Fatalf("cursor (%d,%d), want (%d,%d)", cx, cy, tt.col, tt.row)
			}
			if got := s.Cell(tt.col, tt.row); got != blankCell {
				t.Fatalf("cell not cleared: %+v", got)
			}
		})
	}
}

func TestBackspaceAtOriginWrapsAndScrolls(t *testing.T) {
	s := NewTextScreen()
	s.WriteChar('a')
	s.MoveTo(0, 0)
	s.Backspace()
	// Moving left from the origin lands on the bottom-right cell; writing
	// the blank there overflows the grid.
	if s.Scrolls() != 1 {
		t.Fatalf("expected one scroll, got %d", s.Scrolls())
	}
	cx, cy := s.Cursor()
	if cx != lastColumn || cy != lastRow-1 {
		t.Fatalf("cursor (%d,%d)", cx, cy)
	}
	if s.Cell(0, 0).Char != Blank {
		t.Fatalf("row 0 should have scrolled away")
	}
}

func TestCursorMovesWrap(t *testing.T) {
	tests := []struct {
		name         string
		startX       int
		startY       int
		move         func(*TextScreen)
		wantX, wantY int
	}{
		{"left inside", 3, 3, (*TextScreen).MoveLeft, 2, 3},
		{"left from col 0 goes up", 0, 3, (*TextScreen).MoveLeft, lastColumn, 2},
		{"left from origin wraps to bottom", 0, 0, (*TextScreen).MoveLeft, lastColumn, lastRow},
		{"right inside", 3, 3, (*TextScreen).MoveRight, 4, 3},
		{"right from last col goes down", lastColumn, 3, (*TextScreen).MoveRight, 0, 4},
		{"right from bottom-right wraps to origin", lastColumn, lastRow, (*TextScreen).MoveRight, 0, 0},
		{"up from top wraps", 5, 0, (*TextScreen).MoveUp, 5, lastRow},
		{"down from bottom wraps", 5, lastRow, (*TextScreen).MoveDown, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewTextScreen()
			s.MoveTo(tt.startX, tt.startY)
			tt.move(s)
			x, y := s.Cursor()
			if x != tt.wantX || y != tt.wantY {
				t.Fatalf("cursor (%d,%d), want (%d,%d)", x, y, tt.wantX, tt.wantY)
			}
			if s.Scrolls() != 0 {
				t.Fatalf("cursor moves must not scroll")
			}
		})
	}
}

func TestMoveToClamps(t *testing.T) {
	s := NewTextScreen()
	s.MoveTo(42, -3)
	x, y := s.Cursor()
	if x != lastColumn || y != 0 {
		t.Fatalf("cursor (%d,%d)", x, y)
	}
}

func TestNewLineAtBottomScrolls(t *testing.T) {
	s := NewTextScreen()
	s.WriteChar('a')
	s.MoveTo(4, lastRow)
	s.NewLine()
	x, y := s.Cursor()
	if x != 0 || y != lastRow {
		t.Fatalf("cursor (%d,%d)", x, y)
	}
	if s.Scrolls() != 1 || s.Cell(0, 0).Char != Blank {
		t.Fatalf("expected scroll to discard row 0: %v", s.Lines())
	}
}

func TestResetClearsGrid(t *testing.T) {
	s := NewTextScreen()
	for i := 0; i < 25; i++ {
		s.WriteChar('z')
	}
	s.Reset(color.Green)
	x, y := s.Cursor()
	if x != 0 || y != 0 {
		t.Fatalf("cursor (%d,%d)", x, y)
	}
	if s.Color() != color.Green {
		t.Fatalf("color %v", s.Color())
	}
	for row := 0; row < TextRows; row++ {
		for col := 0; col < TextColumns; col++ {
			if s.Cell(col, row) != blankCell {
				t.Fatalf("cell [%d,%d] not blank", col, row)
			}
		}
	}
}
