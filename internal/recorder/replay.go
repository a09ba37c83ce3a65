// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/recorder/replay.go
// Summary: Byte source that plays back a recorded session.

package recorder

import (
	"fmt"
	"time"
)

type timedByte struct {
	offset time.Duration
	value  byte
}

// Replay releases recorded bytes no earlier than their original offset
// from the start of playback.
type Replay struct {
	events []timedByte
	next   int
	start  time.Time
	now    func() time.Time
	speed  float64
}

// Replay loads session id. now supplies the clock; nil uses time.Now.
// speed scales playback, 2 plays twice as fast; values <= 0 mean 1.
func (s *Store) Replay(id int64, now func() time.Time, speed float64) (*Replay, error) {
	rows, err := s.db.Query("SELECT offset_ns, value FROM input WHERE session_id = ? ORDER BY seq", id)
	if err != nil {
		return nil, fmt.Errorf("load session %d: %w", id, err)
	}
	defer rows.Close()

	var events []timedByte
	for rows.Next() {
		var offset int64
		var value int
		if err := rows.Scan(&offset, &value); err != nil {
			return nil, err
		}
		events = append(events, timedByte{offset: time.Duration(offset), value: byte(value)})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		var exists int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM sessions WHERE id = ?", id).Scan(&exists); err != nil {
			return nil, err
		}
		if exists == 0 {
			return nil, fmt.Errorf("session %d not found", id)
		}
	}

	if now == nil {
		now = time.Now
	}
	if speed <= 0 {
		speed = 1
	}
	return &Replay{events: events, start: now(), now: now, speed: speed}, nil
}

// Poll returns the next byte once its time has come.
func (r *Replay) Poll() (byte, bool) {
	if r.next >= len(r.events) {
		return 0, false
	}
	elapsed := time.Duration(float64(r.now().Sub(r.start)) * r.speed)
	ev := r.events[r.next]
	if elapsed < ev.offset {
		return 0, false
	}
	r.next++
	return ev.value, true
}

// Drained reports whether every byte has been released.
func (r *Replay) Drained() bool {
	return r.next >= len(r.events)
}

// Len returns the number of recorded bytes.
func (r *Replay) Len() int {
	return len(r.events)
}

// Close implements source.ByteSource.
func (r *Replay) Close() error {
	return nil
}
