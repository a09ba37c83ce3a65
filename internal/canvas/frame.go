// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/canvas/frame.go
// Summary: Fixed-size pixel frame shared by the canvas drivers.

package canvas

import (
	"github.com/framegrace/pixelterm/apps/pixelterm/color"
	"github.com/framegrace/pixelterm/apps/pixelterm/parser"
)

// Frame is a matrix-sized back buffer.
type Frame struct {
	pixels [parser.Height][parser.Width]color.RGB
}

// NewFrame returns a frame filled with background.
func NewFrame(background color.RGB) *Frame {
	f := &Frame{}
	f.Fill(background)
	return f
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return parser.Width }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return parser.Height }

// Set writes a pixel; coordinates outside the frame are dropped.
func (f *Frame) Set(x, y int, c color.RGB) {
	if x < 0 || x >= parser.Width || y < 0 || y >= parser.Height {
		return
	}
	f.pixels[y][x] = c
}

// At reads a pixel, returning black outside the frame.
func (f *Frame) At(x, y int) color.RGB {
	if x < 0 || x >= parser.Width || y < 0 || y >= parser.Height {
		return color.Black
	}
	return f.pixels[y][x]
}

// Fill sets every pixel to c.
func (f *Frame) Fill(c color.RGB) {
	for y := range f.pixels {
		for x := range f.pixels[y] {
			f.pixels[y][x] = c
		}
	}
}
