// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/source/stdin.go
// Summary: Standard input as a byte source, in raw mode when it is a tty.

package source

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

const ctrlC = 0x03

// StdinSource reads os.Stdin. A terminal is switched to raw mode so
// every key reaches the interpreter unmodified.
type StdinSource struct {
	*ReaderSource
	fd          int
	state       *term.State
	onInterrupt func()
}

// OpenStdin wraps os.Stdin. onInterrupt is called when Ctrl-C arrives on
// a raw terminal, since raw mode disables the signal.
func OpenStdin(buffer int, onInterrupt func()) (*StdinSource, error) {
	s := &StdinSource{
		fd:          int(os.Stdin.Fd()),
		onInterrupt: onInterrupt,
	}
	if term.IsTerminal(s.fd) {
		state, err := term.MakeRaw(s.fd)
		if err != nil {
			return nil, fmt.Errorf("raw mode: %w", err)
		}
		s.state = state
	}
	s.ReaderSource = NewReaderSource(os.Stdin, nil, buffer)
	return s, nil
}

// Raw reports whether the terminal was switched to raw mode.
func (s *StdinSource) Raw() bool {
	return s.state != nil
}

// Poll returns the next byte, intercepting Ctrl-C on a raw terminal.
func (s *StdinSource) Poll() (byte, bool) {
	b, ok := s.ReaderSource.Poll()
	if ok && b == ctrlC && s.state != nil && s.onInterrupt != nil {
		s.onInterrupt()
		return 0, false
	}
	return b, ok
}

// Close restores the terminal state.
func (s *StdinSource) Close() error {
	s.ReaderSource.Close()
	if s.state != nil {
		return term.Restore(s.fd, s.state)
	}
	return nil
}
