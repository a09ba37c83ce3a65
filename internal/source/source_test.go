// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package source

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

// pollAll drains a source, waiting briefly for the reader goroutine.
func pollAll(t *testing.T, s ByteSource, want int) []byte {
	t.Helper()
	var got []byte
	deadline := time.Now().Add(2 * time.Second)
	for len(got) < want && time.Now().Before(deadline) {
		if b, ok := s.Poll(); ok {
			got = append(got, b)
			continue
		}
		time.Sleep(time.Millisecond)
	}
	return got
}

func TestReaderSourceDeliversInOrder(t *testing.T) {
	data := []byte{27, 0x40, 0x3f, 255, 'h', 'i'}
	s := NewReaderSource(bytes.NewReader(data), nil, 2)
	defer s.Close()

	got := pollAll(t, s, len(data))
	if !bytes.Equal(got, data) {
		t.Fatalf("got %v, want %v", got, data)
	}

	deadline := time.Now().Add(2 * time.Second)
	for !s.Drained() && time.Now().Before(deadline) {
		s.Poll()
		time.Sleep(time.Millisecond)
	}
	if !s.Drained() {
		t.Fatalf("source should be drained at EOF")
	}
	if s.Err() != nil {
		t.Fatalf("unexpected error: %v", s.Err())
	}
}

func TestReaderSourcePollDoesNotBlock(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	s := NewReaderSource(r, r, 0)
	defer s.Close()

	if _, ok := s.Poll(); ok {
		t.Fatalf("expected no byte")
	}
	w.Write([]byte{'x'})
	got := pollAll(t, s, 1)
	if len(got) != 1 || got[0] != 'x' {
		t.Fatalf("got %v", got)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.bin")
	if err := os.WriteFile(path, []byte("abc"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := OpenFile(path, 0)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer s.Close()
	if got := pollAll(t, s, 3); string(got) != "abc" {
		t.Fatalf("got %q", got)
	}

	if _, err := OpenFile(filepath.Join(t.TempDir(), "missing"), 0); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestChanSource(t *testing.T) {
	s := NewChanSource(2)
	s.Push(1, 2, 3) // third byte dropped
	if b, ok := s.Poll(); !ok || b != 1 {
		t.Fatalf("first poll %v %v", b, ok)
	}
	if b, ok := s.Poll(); !ok || b != 2 {
		t.Fatalf("second poll %v %v", b, ok)
	}
	if _, ok := s.Poll(); ok {
		t.Fatalf("expected empty source")
	}
	s.Close()
	s.Push(4)
	if _, ok := s.Poll(); ok {
		t.Fatalf("closed source accepted input")
	}
}

func TestKeyBytes(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want []byte
	}{
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), []byte{13}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), []byte{127}},
		{"escape", tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone), []byte{27}},
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), []byte{'q'}},
		{"latin-1 rune", tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone), []byte{0xe9}},
		{"wide rune dropped", tcell.NewEventKey(tcell.KeyRune, '世', tcell.ModNone), nil},
		{"f1 green reset", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), []byte{27, 1}},
		{"f2 gray reset", tcell.NewEventKey(tcell.KeyF2, 0, tcell.ModNone), []byte{27, 2}},
		{"f10 graphics", tcell.NewEventKey(tcell.KeyF10, 0, tcell.ModNone), []byte{27, 0x40}},
		{"f12 hard reset", tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone), []byte{255}},
		{"arrow ignored", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyBytes(tt.ev); !bytes.Equal(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyboardHandleKey(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	quit := make(chan struct{}, 1)
	k := NewKeyboard(screen, 8, func() { quit <- struct{}{} })
	defer k.Close()

	k.HandleKey(tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone))
	if got := pollAll(t, k, 2); !bytes.Equal(got, []byte{27, 1}) {
		t.Fatalf("got %v", got)
	}

	k.HandleKey(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	select {
	case <-quit:
	default:
		t.Fatalf("ctrl-c did not quit")
	}

	screen.InjectKey(tcell.KeyRune, 'z', tcell.ModNone)
	if got := pollAll(t, k, 1); !bytes.Equal(got, []byte{'z'}) {
		t.Fatalf("injected key: got %v", got)
	}
	screen.Fini()
}
