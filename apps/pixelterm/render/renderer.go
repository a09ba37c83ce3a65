// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pixelterm/render/renderer.go
// Summary: Projects interpreter state onto a pixel canvas once per frame.
// Usage: Called by the runtime loop after input and blink updates.
// Notes: The canvas is cleared by the caller; only lit pixels are painted.

package render

import (
	"github.com/framegrace/pixelterm/apps/pixelterm/color"
	"github.com/framegrace/pixelterm/apps/pixelterm/parser"
)

const (
	// GlyphWidth and GlyphHeight give the size of one text cell in pixels.
	GlyphWidth  = 6
	GlyphHeight = 8

	// TextOriginX centres the 60 pixel wide text area on the matrix.
	TextOriginX = 2

	cursorChar byte = '_'
)

// Glyph is a character bitmap stored column by column; bit n of a column
// lights pixel row n.
type Glyph [GlyphWidth]uint8

// GlyphSource looks up the bitmap for a character code.
type GlyphSource interface {
	Glyph(c byte) Glyph
}

// Canvas is the surface frames are painted on.
type Canvas interface {
	SetPixel(x, y int, c color.RGB)
	// Present shows the painted frame. When clear is set the canvas is
	// reset to its background afterwards, ready for the next frame.
	Present(clear bool) error
}

// Renderer paints either the text or the graphics screen.
type Renderer struct {
	glyphs GlyphSource
	canvas Canvas
}

// NewRenderer binds a glyph table to a canvas.
func NewRenderer(glyphs GlyphSource, canvas Canvas) *Renderer {
	return &Renderer{glyphs: glyphs, canvas: canvas}
}

// Render paints the active screen of p. The text cursor is drawn only
// when cursorVisible is set.
func (r *Renderer) Render(p *parser.Interpreter, cursorVisible bool) {
	switch p.Mode() {
	case parser.ModeGraphics:
		r.renderGraphics(p.Graphics())
	case parser.ModeText:
		r.renderText(p.Text(), cursorVisible)
	}
}

func (r *Renderer) renderGraphics(g *parser.GraphicsScreen) {
	for y := 0; y < parser.Height; y++ {
		for x := 0; x < parser.Width; x++ {
			r.canvas.SetPixel(x, y, g.Pixel(x, y))
		}
	}
}

func (r *Renderer) renderText(s *parser.TextScreen, cursorVisible bool) {
	for row := 0; row < parser.TextRows; row++ {
		for col := 0; col < parser.TextColumns; col++ {
			cell := s.Cell(col, row)
			r.renderChar(cell.Char, col, row, cell.Color)
		}
	}
	if cursorVisible {
		col, row := s.Cursor()
		r.renderChar(cursorChar, col, row, s.Color())
	}
}

func (r *Renderer) renderChar(c byte, col, row int, fg color.RGB) {
	x0 := TextOriginX + col*GlyphWidth
	y0 := row * GlyphHeight
	glyph := r.glyphs.Glyph(c)
	for px, bits := range glyph {
		for py := 0; py < GlyphHeight; py++ {
			if bits&(1<<py) != 0 {
				r.canvas.SetPixel(x0+px, y0+py, fg)
			}
		}
	}
}
