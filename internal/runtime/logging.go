// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/logging.go
// Summary: Optional per-byte trace logging for the frame loop.

package pixelruntime

import (
	"io"
	"log"
)

var debugLog = log.New(io.Discard, "", log.LstdFlags|log.Lmicroseconds)

// SetVerboseLogging sends per-byte traces to w. Passing nil disables them.
func SetVerboseLogging(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	debugLog.SetOutput(w)
}
