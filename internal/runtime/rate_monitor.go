// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/rate_monitor.go
// Summary: Input byte rate over a fixed trailing window, for the status line.
//
// Not thread-safe; owned by the frame loop.

package pixelruntime

import (
	"sort"
	"time"
)

const defaultRateLimit = 1000

// RateMonitor counts arrivals within a trailing window. Arrival times
// must be non-decreasing, which frame timestamps are.
type RateMonitor struct {
	window time.Duration
	limit  int
	// arrivals is ordered oldest first and may hold up to 2*limit entries
	// before it is compacted.
	arrivals []time.Time
	total    int64
}

// NewRateMonitor measures over window and counts at most limit recent
// arrivals. A non-positive limit selects 1000.
func NewRateMonitor(window time.Duration, limit int) *RateMonitor {
	if limit <= 0 {
		limit = defaultRateLimit
	}
	return &RateMonitor{
		window:   window,
		limit:    limit,
		arrivals: make([]time.Time, 0, 2*limit),
	}
}

// Record adds an arrival at t.
func (rm *RateMonitor) Record(t time.Time) {
	if len(rm.arrivals) == 2*rm.limit {
		n := copy(rm.arrivals, rm.arrivals[rm.limit:])
		rm.arrivals = rm.arrivals[:n]
	}
	rm.arrivals = append(rm.arrivals, t)
	rm.total++
}

// Rate returns arrivals per second in the window ending at now.
func (rm *RateMonitor) Rate(now time.Time) float64 {
	if rm.window <= 0 {
		return 0
	}
	recent := rm.arrivals
	if len(recent) > rm.limit {
		recent = recent[len(recent)-rm.limit:]
	}
	cutoff := now.Add(-rm.window)
	first := sort.Search(len(recent), func(i int) bool {
		return recent[i].After(cutoff)
	})
	return float64(len(recent)-first) / rm.window.Seconds()
}

// Total returns every arrival ever recorded.
func (rm *RateMonitor) Total() int64 {
	return rm.total
}
