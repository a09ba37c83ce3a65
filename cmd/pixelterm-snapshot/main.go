// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/pixelterm-snapshot/main.go
// Summary: Feeds a byte file through the interpreter and writes one PNG frame.
// Usage: pixelterm-snapshot -in stream.bin -out frame.png [-scale 8] [-cursor]

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/framegrace/pixelterm/apps/pixelterm/color"
	"github.com/framegrace/pixelterm/apps/pixelterm/font"
	"github.com/framegrace/pixelterm/apps/pixelterm/parser"
	"github.com/framegrace/pixelterm/apps/pixelterm/render"
	"github.com/framegrace/pixelterm/internal/canvas"
)

func main() {
	in := flag.String("in", "", "Input byte stream (- for stdin)")
	out := flag.String("out", "frame.png", "Output PNG path")
	scale := flag.Int("scale", 8, "Pixels per matrix pixel")
	cursor := flag.Bool("cursor", false, "Draw the text cursor")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: pixelterm-snapshot -in FILE [-out PNG] [-scale N] [-cursor]")
		os.Exit(2)
	}

	var (
		data []byte
		err  error
	)
	if *in == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(*in)
	}
	if err != nil {
		log.Fatalf("pixelterm-snapshot: read input: %v", err)
	}

	img, interp, err := snapshot(data, *cursor)
	if err != nil {
		log.Fatalf("pixelterm-snapshot: %v", err)
	}
	if err := img.SavePNG(*out, *scale); err != nil {
		log.Fatalf("pixelterm-snapshot: %v", err)
	}
	log.Printf("%d bytes, mode %v, wrote %s", len(data), interp.Mode(), *out)
}

// snapshot feeds every byte of data and renders the resulting frame.
func snapshot(data []byte, cursor bool) (*canvas.ImageCanvas, *parser.Interpreter, error) {
	interp := parser.NewInterpreter()
	for _, b := range data {
		interp.Feed(b)
	}
	img := canvas.NewImageCanvas(color.Black)
	render.NewRenderer(font.Font6x8{}, img).Render(interp, cursor)
	if err := img.Present(false); err != nil {
		return nil, nil, err
	}
	return img, interp, nil
}
