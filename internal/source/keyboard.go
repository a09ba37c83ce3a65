// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/source/keyboard.go
// Summary: Turns tcell key events into protocol bytes.
// Usage: Input source when the tcell canvas owns the terminal.

package source

import "github.com/gdamore/tcell/v2"

// Protocol bytes produced by special keys.
const (
	keyReturn    = 13
	keyDelete    = 127
	keyEscape    = 27
	keyHardReset = 255
)

// Keyboard is a byte source fed from a tcell screen's event queue.
type Keyboard struct {
	*ChanSource
	screen tcell.Screen
	onQuit func()
}

// NewKeyboard starts consuming events from screen. onQuit is called for
// Ctrl-C. The goroutine ends when the screen is finalised.
func NewKeyboard(screen tcell.Screen, buffer int, onQuit func()) *Keyboard {
	k := &Keyboard{
		ChanSource: NewChanSource(buffer),
		screen:     screen,
		onQuit:     onQuit,
	}
	go k.run()
	return k
}

func (k *Keyboard) run() {
	for {
		ev := k.screen.PollEvent()
		if ev == nil {
			return
		}
		if key, ok := ev.(*tcell.EventKey); ok {
			k.HandleKey(key)
		}
	}
}

// HandleKey queues the bytes for one key press.
func (k *Keyboard) HandleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		if k.onQuit != nil {
			k.onQuit()
		}
		return
	}
	if bytes := KeyBytes(ev); bytes != nil {
		k.Push(bytes...)
	}
}

// KeyBytes maps a key press to protocol bytes. Function keys send the
// escape shortcuts: F1 green reset, F2 gray reset, F10 graphics mode,
// F12 hard reset.
func KeyBytes(ev *tcell.EventKey) []byte {
	switch ev.Key() {
	case tcell.KeyEnter:
		return []byte{keyReturn}
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		return []byte{keyDelete}
	case tcell.KeyEsc:
		return []byte{keyEscape}
	case tcell.KeyF1:
		return []byte{keyEscape, 1}
	case tcell.KeyF2:
		return []byte{keyEscape, 2}
	case tcell.KeyF10:
		return []byte{keyEscape, 0x40}
	case tcell.KeyF12:
		return []byte{keyHardReset}
	case tcell.KeyRune:
		if r := ev.Rune(); r >= 0 && r < keyHardReset {
			return []byte{byte(r)}
		}
	}
	return nil
}
