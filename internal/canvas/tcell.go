// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/canvas/tcell.go
// Summary: Canvas that shows the pixel matrix inside a terminal via tcell.
// Usage: Default output driver of cmd/pixelterm.
// Notes: Two matrix rows share one terminal row using an upper half block.

package canvas

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/pixelterm/apps/pixelterm/color"
)

const upperHalfBlock = '▀'

// TcellCanvas paints frames onto a tcell.Screen.
type TcellCanvas struct {
	screen     tcell.Screen
	frame      *Frame
	background color.RGB
	status     string
	showStatus bool
}

// NewTcellCanvas wraps screen. The screen must already be initialised.
func NewTcellCanvas(screen tcell.Screen, background color.RGB) *TcellCanvas {
	c := &TcellCanvas{
		screen:     screen,
		frame:      NewFrame(background),
		background: background,
		showStatus: true,
	}
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset))
	screen.Clear()
	return c
}

// ShowStatus toggles the status line under the matrix.
func (c *TcellCanvas) ShowStatus(show bool) {
	c.showStatus = show
}

// SetStatus replaces the status line text shown on the next Present.
func (c *TcellCanvas) SetStatus(text string) {
	c.status = text
}

// SetPixel implements render.Canvas.
func (c *TcellCanvas) SetPixel(x, y int, col color.RGB) {
	c.frame.Set(x, y, col)
}

// Present draws the frame centred on the screen and flushes it.
func (c *TcellCanvas) Present(clear bool) error {
	w, h := c.screen.Size()
	rows := c.frame.Height() / 2
	offX := max((w-c.frame.Width())/2, 0)
	offY := max((h-rows-1)/2, 0)

	for row := 0; row < rows; row++ {
		for x := 0; x < c.frame.Width(); x++ {
			top := c.frame.At(x, row*2)
			bottom := c.frame.At(x, row*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewHexColor(top.Hex())).
				Background(tcell.NewHexColor(bottom.Hex()))
			c.screen.SetContent(offX+x, offY+row, upperHalfBlock, nil, style)
		}
	}
	if c.showStatus {
		c.drawStatus(offX, offY+rows, c.frame.Width())
	}
	c.screen.Show()

	if clear {
		c.frame.Fill(c.background)
	}
	return nil
}

func (c *TcellCanvas) drawStatus(x, y, width int) {
	text := runewidth.Truncate(c.status, width, "…")
	text = runewidth.FillRight(text, width)
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	col := x
	for _, r := range text {
		c.screen.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
}
