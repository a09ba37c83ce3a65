// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package parser

import (
	"testing"

	"github.com/framegrace/pixelterm/apps/pixelterm/color"
)

func TestWriteAndAdvance(t *testing.T) {
	tests := []struct {
		name         string
		x, y         uint8
		wantX, wantY int
	}{
		{"inside row", 5, 5, 6, 5},
		{"end of row wraps to next", 63, 10, 0, 11},
		{"bottom-right wraps to origin", 63, 63, 0, 0},
		{"last row keeps row", 10, 63, 11, 63},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGraphicsScreen()
			g.SetPointerX(tt.x)
			g.SetPointerY(tt.y)
			g.WriteAndAdvance(color.White)
			if got := g.Pixel(int(tt.x), int(tt.y)); got != color.White {
				t.Fatalf("pixel = %v", got)
			}
			x, y := g.Pointer()
			if x != tt.wantX || y != tt.wantY {
				t.Fatalf("pointer (%d,%d), want (%d,%d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestFullFrameWrapsOnce(t *testing.T) {
	g := NewGraphicsScreen()
	for i := 0; i < Width*Height; i++ {
		g.WriteAndAdvance(color.Decode(uint8(i % 64)))
	}
	x, y := g.Pointer()
	if x != 0 || y != 0 {
		t.Fatalf("pointer (%d,%d) after full frame", x, y)
	}
	if got := g.Pixel(1, 0); got != color.Decode(1) {
		t.Fatalf("pixel (1,0) = %v", got)
	}
	if got := g.Pixel(63, 63); got != color.Decode(63) {
		t.Fatalf("pixel (63,63) = %v", got)
	}
}

func TestSetPointerMasksPayload(t *testing.T) {
	g := NewGraphicsScreen()
	g.SetPointerX(0xff)
	g.SetPointerY(0x41)
	x, y := g.Pointer()
	if x != 63 || y != 1 {
		t.Fatalf("pointer (%d,%d)", x, y)
	}
}

func TestGraphicsReset(t *testing.T) {
	g := NewGraphicsScreen()
	g.SetPointerX(20)
	g.SetPointerY(30)
	g.WriteAndAdvance(color.Green)
	g.Reset()
	x, y := g.Pointer()
	if x != 0 || y != 0 {
		t.Fatalf("pointer (%d,%d)", x, y)
	}
	if g.Pixel(20, 30) != color.Black {
		t.Fatalf("buffer not cleared")
	}
}

func TestPixelOutOfRange(t *testing.T) {
	g := NewGraphicsScreen()
	if g.Pixel(-1, 0) != color.Black || g.Pixel(0, Height) != color.Black {
		t.Fatalf("out of range pixels must read black")
	}
}
