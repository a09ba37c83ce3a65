// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/canvas/image.go
// Summary: Off-screen canvas producing image snapshots of presented frames.
// Usage: Headless output driver and PNG snapshot tool.

package canvas

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/framegrace/pixelterm/apps/pixelterm/color"
)

// ImageCanvas keeps the last presented frame in memory.
type ImageCanvas struct {
	back       *Frame
	front      *Frame
	background color.RGB
	frames     int
}

// NewImageCanvas returns a canvas with both buffers set to background.
func NewImageCanvas(background color.RGB) *ImageCanvas {
	return &ImageCanvas{
		back:       NewFrame(background),
		front:      NewFrame(background),
		background: background,
	}
}

// SetPixel implements render.Canvas.
func (c *ImageCanvas) SetPixel(x, y int, col color.RGB) {
	c.back.Set(x, y, col)
}

// Present makes the painted frame the visible one.
func (c *ImageCanvas) Present(clear bool) error {
	*c.front = *c.back
	c.frames++
	if clear {
		c.back.Fill(c.background)
	}
	return nil
}

// Frames returns how many frames have been presented.
func (c *ImageCanvas) Frames() int {
	return c.frames
}

// At returns a pixel of the last presented frame.
func (c *ImageCanvas) At(x, y int) color.RGB {
	return c.front.At(x, y)
}

// Image returns the presented frame at native resolution.
func (c *ImageCanvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.front.Width(), c.front.Height()))
	for y := 0; y < c.front.Height(); y++ {
		for x := 0; x < c.front.Width(); x++ {
			img.Set(x, y, c.front.At(x, y))
		}
	}
	return img
}

// Snapshot returns the presented frame enlarged by scale with hard
// pixel edges.
func (c *ImageCanvas) Snapshot(scale int) *image.RGBA {
	src := c.Image()
	if scale <= 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// WritePNG encodes a scaled snapshot to w.
func (c *ImageCanvas) WritePNG(w io.Writer, scale int) error {
	if err := png.Encode(w, c.Snapshot(scale)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes a scaled snapshot to path.
func (c *ImageCanvas) SavePNG(path string, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := c.WritePNG(f, scale); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
