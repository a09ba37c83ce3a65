// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/source/source.go
// Summary: Non-blocking byte sources feeding the pixel terminal.
// Usage: Polled once per frame by the runtime loop.
// Notes: Blocking reads happen on a helper goroutine; Poll never waits.

package source

import (
	"errors"
	"io"
	"log"
	"os"
	"sync"
)

// ByteSource yields at most one byte per call without blocking.
type ByteSource interface {
	Poll() (byte, bool)
	Close() error
}

// Drainer is implemented by sources that can run out of input.
type Drainer interface {
	Drained() bool
}

// DefaultBuffer is the channel capacity between reader and poller.
const DefaultBuffer = 4096

// ReaderSource streams bytes from an io.Reader.
type ReaderSource struct {
	ch        chan byte
	closer    io.Closer
	drained   bool
	done      chan struct{}
	closeOnce sync.Once

	mu  sync.Mutex
	err error
}

// NewReaderSource starts reading r in the background. closer, if not
// nil, is closed by Close.
func NewReaderSource(r io.Reader, closer io.Closer, buffer int) *ReaderSource {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	s := &ReaderSource{
		ch:     make(chan byte, buffer),
		closer: closer,
		done:   make(chan struct{}),
	}
	go s.pump(r)
	return s
}

func (s *ReaderSource) pump(r io.Reader) {
	defer close(s.ch)
	buf := make([]byte, 512)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				log.Printf("Source: read error: %v", err)
				s.mu.Lock()
				s.err = err
				s.mu.Unlock()
			}
			return
		}
	}
}

// Poll returns the next byte if one has arrived.
func (s *ReaderSource) Poll() (byte, bool) {
	select {
	case b, ok := <-s.ch:
		if !ok {
			s.drained = true
			return 0, false
		}
		return b, true
	default:
		return 0, false
	}
}

// Drained reports whether the reader hit end of input and every byte
// has been polled.
func (s *ReaderSource) Drained() bool {
	return s.drained
}

// Err returns the read error that stopped the source, if any.
func (s *ReaderSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close stops the reader goroutine and releases the underlying reader.
func (s *ReaderSource) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		if s.closer != nil {
			err = s.closer.Close()
		}
	})
	return err
}

// OpenFile streams the contents of path.
func OpenFile(path string, buffer int) (*ReaderSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewReaderSource(f, f, buffer), nil
}

// ChanSource is fed by the program itself, e.g. from keyboard events.
type ChanSource struct {
	ch        chan byte
	closeOnce sync.Once
	done      chan struct{}
}

// NewChanSource returns an empty source with the given capacity.
func NewChanSource(buffer int) *ChanSource {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &ChanSource{
		ch:   make(chan byte, buffer),
		done: make(chan struct{}),
	}
}

// Push queues bytes, dropping them if the source is closed or full.
func (s *ChanSource) Push(bytes ...byte) {
	for _, b := range bytes {
		select {
		case <-s.done:
			return
		case s.ch <- b:
		default:
			log.Printf("Source: input buffer full, dropping %#x", b)
		}
	}
}

// Poll returns the next queued byte.
func (s *ChanSource) Poll() (byte, bool) {
	select {
	case b := <-s.ch:
		return b, true
	default:
		return 0, false
	}
}

// Close stops accepting bytes.
func (s *ChanSource) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}
