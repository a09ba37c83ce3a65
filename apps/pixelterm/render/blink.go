// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/pixelterm/render/blink.go
// Summary: Cursor blink timer driven by caller-supplied timestamps.
// Usage: Advanced once per frame by the runtime loop before rendering.

package render

import "time"

// DefaultBlinkInterval is the time between cursor visibility toggles.
const DefaultBlinkInterval = 300 * time.Millisecond

// BlinkTimer toggles visibility each time its deadline passes.
type BlinkTimer struct {
	interval time.Duration
	deadline time.Time
	visible  bool
}

// NewBlinkTimer returns a hidden timer whose first toggle is due one
// interval after start. A non-positive interval selects the default.
func NewBlinkTimer(start time.Time, interval time.Duration) *BlinkTimer {
	if interval <= 0 {
		interval = DefaultBlinkInterval
	}
	return &BlinkTimer{
		interval: interval,
		deadline: start.Add(interval),
	}
}

// Advance toggles visibility if now has reached the deadline and
// re-arms the deadline one interval after now.
func (b *BlinkTimer) Advance(now time.Time) {
	if now.Before(b.deadline) {
		return
	}
	b.visible = !b.visible
	b.deadline = now.Add(b.interval)
}

// Visible reports whether the cursor should be drawn.
func (b *BlinkTimer) Visible() bool {
	return b.visible
}

// Deadline returns when the next toggle is due.
func (b *BlinkTimer) Deadline() time.Time {
	return b.deadline
}

// Interval returns the time between toggles.
func (b *BlinkTimer) Interval() time.Duration {
	return b.interval
}
