// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pixelterm/color/color.go
// Summary: Quantized RGB colors and the 6-bit packed color codec.
// Usage: Shared by the interpreter, renderer and canvas drivers.

package color

import (
	"fmt"
	stdcolor "image/color"
)

// RGB is a 24-bit color. Colors produced by Decode only use the
// quantized levels 0, 63, 127 and 255 per channel.
type RGB struct {
	R, G, B uint8
}

// Predefined colors used by the protocol.
var (
	Black = RGB{}
	White = RGB{255, 255, 255}
	Gray  = RGB{127, 127, 127}
	Green = RGB{0, 255, 0}
)

// levels is deliberately non-linear.
var levels = [4]uint8{0, 63, 127, 255}

// Decode expands a packed value into a quantized color.
// Bits 0-1 carry red, 2-3 green and 4-5 blue; higher bits are ignored.
func Decode(packed uint8) RGB {
	return RGB{
		R: levels[packed&0x03],
		G: levels[(packed>>2)&0x03],
		B: levels[(packed>>4)&0x03],
	}
}

// RGBA implements image/color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return stdcolor.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Hex returns the color packed as 0xRRGGBB.
func (c RGB) Hex() int32 {
	return int32(c.R)<<16 | int32(c.G)<<8 | int32(c.B)
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
