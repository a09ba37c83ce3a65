// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pixelterm/parser/graphics_screen.go
// Summary: Raw pixel buffer with an auto-advancing write pointer.
// Usage: Mutated by the Interpreter in graphics mode; read by the renderer.

package parser

import "github.com/framegrace/pixelterm/apps/pixelterm/color"

const (
	// Width and Height give the pixel matrix size.
	Width  = 64
	Height = 64

	payloadMask = 0x3f
)

// GraphicsScreen is the pixel buffer shown while in graphics mode.
type GraphicsScreen struct {
	pixels [Height][Width]color.RGB
	x, y   int
}

// NewGraphicsScreen returns a black buffer with the pointer at the origin.
func NewGraphicsScreen() *GraphicsScreen {
	return &GraphicsScreen{}
}

// Reset blacks out the buffer and homes the pointer.
func (g *GraphicsScreen) Reset() {
	g.pixels = [Height][Width]color.RGB{}
	g.x, g.y = 0, 0
}

// SetPointerX sets the pointer column from a 6-bit payload.
func (g *GraphicsScreen) SetPointerX(v uint8) {
	g.x = int(v & payloadMask)
}

// SetPointerY sets the pointer row from a 6-bit payload.
func (g *GraphicsScreen) SetPointerY(v uint8) {
	g.y = int(v & payloadMask)
}

// WriteAndAdvance stores c at the pointer and moves it on in row-major
// order, wrapping at the right and bottom edges.
func (g *GraphicsScreen) WriteAndAdvance(c color.RGB) {
	g.pixels[g.y][g.x] = c
	g.x++
	if g.x >= Width {
		g.x = 0
		g.y++
		if g.y >= Height {
			g.y = 0
		}
	}
}

// Pointer returns the current write position.
func (g *GraphicsScreen) Pointer() (x, y int) {
	return g.x, g.y
}

// Pixel returns the color at x, y, or black outside the buffer.
func (g *GraphicsScreen) Pixel(x, y int) color.RGB {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return color.Black
	}
	return g.pixels[y][x]
}
