// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/panic_logger.go
// Summary: Restores the terminal on panic and appends the trace to a crash log.

package pixelruntime

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"
)

// PanicLogger reports panics after releasing the terminal. The crash
// entry includes the loop status so the protocol state can be rebuilt.
type PanicLogger struct {
	path    string
	cleanup func()
	loop    *Loop
	onExit  []func() error
}

// NewPanicLogger appends crash reports to path when it is non-empty.
// cleanup runs first, typically tcell's Fini.
func NewPanicLogger(path string, cleanup func()) *PanicLogger {
	return &PanicLogger{path: path, cleanup: cleanup}
}

// Attach adds the loop's status to later reports.
func (p *PanicLogger) Attach(l *Loop) {
	p.loop = l
}

// OnExit registers fn to run after the crash report is written and
// before the process exits, whatever the caller's defer order. Used to
// flush the session recorder.
func (p *PanicLogger) OnExit(fn func() error) {
	p.onExit = append(p.onExit, fn)
}

// Recover must be deferred directly. It exits with status 2 on panic.
func (p *PanicLogger) Recover(where string) {
	r := recover()
	if r == nil {
		return
	}
	p.handle(where, r)
	os.Exit(2)
}

func (p *PanicLogger) handle(where string, r interface{}) {
	if p.cleanup != nil {
		p.cleanup()
	}
	report := p.report(where, r, time.Now())
	log.Print(report)
	fmt.Fprintln(os.Stderr, report)
	if err := p.persist(report); err != nil {
		log.Printf("Panic: unable to write crash log: %v", err)
	}
	for _, fn := range p.onExit {
		if err := fn(); err != nil {
			log.Printf("Panic: exit hook failed: %v", err)
		}
	}
}

func (p *PanicLogger) report(where string, r interface{}, now time.Time) string {
	buf := make([]byte, 1<<16)
	n := runtime.Stack(buf, false)
	state := "loop not started"
	if p.loop != nil {
		state = fmt.Sprintf("%s, frame %d", p.loop.Status(now), p.loop.Frames())
	}
	return fmt.Sprintf("[%s] panic in %s: %v\nstate: %s\n%s",
		now.Format(time.RFC3339Nano), where, r, state, buf[:n])
}

func (p *PanicLogger) persist(report string) error {
	if p.path == "" {
		return nil
	}
	f, err := os.OpenFile(p.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.WriteString(f, report+"\n")
	return err
}
