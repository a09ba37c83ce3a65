// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/loop.go
// Summary: Fixed-cadence frame loop driving the pixel terminal.
// Usage: Built by cmd/pixelterm around a byte source and a canvas.
// Notes: Single goroutine; each tick consumes at most one input byte.

package pixelruntime

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/framegrace/pixelterm/apps/pixelterm/parser"
	"github.com/framegrace/pixelterm/apps/pixelterm/render"
	"github.com/framegrace/pixelterm/config"
	"github.com/framegrace/pixelterm/internal/source"
)

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 60

const rateWindow = time.Second

// Recorder receives every byte fed to the interpreter.
type Recorder interface {
	Record(b byte, at time.Time) error
}

// Options tune a Loop.
type Options struct {
	FPS   int
	Blink time.Duration
	// ExitOnDrain stops Run once a finite source has delivered everything.
	ExitOnDrain bool
	Recorder    Recorder
}

// Loop owns the interpreter and runs poll, feed, blink, render, present.
type Loop struct {
	interp      *parser.Interpreter
	renderer    *render.Renderer
	blink       *render.BlinkTimer
	source      source.ByteSource
	canvas      render.Canvas
	recorder    Recorder
	rate        *RateMonitor
	interval    time.Duration
	exitOnDrain bool
	frames      int64
	reload      chan config.Display
}

// NewLoop wires the components. start seeds the blink timer.
func NewLoop(interp *parser.Interpreter, glyphs render.GlyphSource, src source.ByteSource, canvas render.Canvas, opts Options, start time.Time) *Loop {
	return &Loop{
		interp:      interp,
		renderer:    render.NewRenderer(glyphs, canvas),
		blink:       render.NewBlinkTimer(start, opts.Blink),
		source:      src,
		canvas:      canvas,
		recorder:    opts.Recorder,
		rate:        NewRateMonitor(rateWindow, 0),
		interval:    frameInterval(opts.FPS),
		exitOnDrain: opts.ExitOnDrain,
		reload:      make(chan config.Display, 1),
	}
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// Reload queues new display settings for the running loop. Only the
// latest pending update is kept. Safe to call from any goroutine.
func (l *Loop) Reload(d config.Display) {
	for {
		select {
		case l.reload <- d:
			return
		default:
		}
		select {
		case <-l.reload:
		default:
		}
	}
}

// Apply switches the loop to d at time now: the blink timer restarts
// with the new interval, the frame interval follows FPS, and canvases
// with a status line show or hide it. Run applies queued reloads itself;
// call Apply directly only when no Run is active.
func (l *Loop) Apply(d config.Display, now time.Time) {
	l.blink = render.NewBlinkTimer(now, d.Blink)
	l.interval = frameInterval(d.FPS)
	if s, ok := l.canvas.(interface{ ShowStatus(bool) }); ok {
		s.ShowStatus(d.StatusLine)
	}
	log.Printf("Loop: applied fps=%d blink=%v status=%v", d.FPS, l.blink.Interval(), d.StatusLine)
}

// Interval returns the current frame interval.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Tick runs one frame at time now.
func (l *Loop) Tick(now time.Time) error {
	if b, ok := l.source.Poll(); ok {
		debugLog.Printf("Loop: byte %#02x mode=%v escape=%v", b, l.interp.Mode(), l.interp.EscapePending())
		l.rate.Record(now)
		if l.recorder != nil {
			if err := l.recorder.Record(b, now); err != nil {
				log.Printf("Loop: recording disabled: %v", err)
				l.recorder = nil
			}
		}
		l.interp.Feed(b)
	}

	l.blink.Advance(now)
	l.renderer.Render(l.interp, l.blink.Visible())
	if s, ok := l.canvas.(interface{ SetStatus(string) }); ok {
		s.SetStatus(l.Status(now))
	}
	l.frames++
	if err := l.canvas.Present(true); err != nil {
		return fmt.Errorf("present frame %d: %w", l.frames, err)
	}
	return nil
}

// Run ticks until ctx is cancelled, presenting fails, or the source
// drains with ExitOnDrain set.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	log.Printf("Loop: running at %v per frame", l.interval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Loop: stopped after %d frames", l.frames)
			return nil
		case d := <-l.reload:
			l.Apply(d, time.Now())
			ticker.Reset(l.interval)
		case now := <-ticker.C:
			if err := l.Tick(now); err != nil {
				return err
			}
			if l.exitOnDrain && l.Drained() {
				log.Printf("Loop: input drained after %d frames", l.frames)
				return nil
			}
		}
	}
}

// Drained reports whether a finite source has nothing left to deliver.
func (l *Loop) Drained() bool {
	d, ok := l.source.(source.Drainer)
	return ok && d.Drained()
}

// Status summarises the loop for the status line.
func (l *Loop) Status(now time.Time) string {
	rate := l.rate.Rate(now)
	switch l.interp.Mode() {
	case parser.ModeGraphics:
		x, y := l.interp.Graphics().Pointer()
		return fmt.Sprintf("gfx %2d,%2d  %4.0f B/s  %d B", x, y, rate, l.rate.Total())
	default:
		x, y := l.interp.Text().Cursor()
		return fmt.Sprintf("text %d,%d  %4.0f B/s  %d B", x, y, rate, l.rate.Total())
	}
}

// Frames returns the number of ticks run.
func (l *Loop) Frames() int64 {
	return l.frames
}

// Interpreter exposes the interpreter state.
func (l *Loop) Interpreter() *parser.Interpreter {
	return l.interp
}
