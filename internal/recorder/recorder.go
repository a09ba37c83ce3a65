// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/recorder/recorder.go
// Summary: SQLite log of input byte streams for later replay.
//
// Each run of the terminal can be recorded as a session: every byte fed to
// the interpreter is stored with its offset from the session start. A
// Replay turns a stored session back into a byte source that releases
// bytes on their original schedule.

package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS sessions (
    id      INTEGER PRIMARY KEY AUTOINCREMENT,
    label   TEXT NOT NULL,
    started INTEGER NOT NULL           -- UnixNano
);

CREATE TABLE IF NOT EXISTS input (
    session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
    seq        INTEGER NOT NULL,
    offset_ns  INTEGER NOT NULL,
    value      INTEGER NOT NULL,
    PRIMARY KEY (session_id, seq)
);
`

// DefaultBatchSize is the number of bytes buffered before a flush.
const DefaultBatchSize = 256

// Store is an open recording database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=foreign_keys(ON)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := checkSchemaVersion(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func checkSchemaVersion(db *sql.DB) error {
	var version int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case err == sql.ErrNoRows:
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion)
		if err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	case version != schemaVersion:
		return fmt.Errorf("unsupported recording schema version %d", version)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SessionInfo describes a stored session.
type SessionInfo struct {
	ID      int64
	Label   string
	Started time.Time
	Bytes   int
}

// Sessions lists stored sessions, newest first.
func (s *Store) Sessions() ([]SessionInfo, error) {
	rows, err := s.db.Query(`
		SELECT s.id, s.label, s.started, COUNT(i.seq)
		FROM sessions s LEFT JOIN input i ON i.session_id = s.id
		GROUP BY s.id
		ORDER BY s.started DESC, s.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionInfo
	for rows.Next() {
		var info SessionInfo
		var started int64
		if err := rows.Scan(&info.ID, &info.Label, &started, &info.Bytes); err != nil {
			return nil, err
		}
		info.Started = time.Unix(0, started)
		out = append(out, info)
	}
	return out, rows.Err()
}

// Delete removes a session and its input.
func (s *Store) Delete(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	if _, err := tx.Exec("DELETE FROM input WHERE session_id = ?", id); err != nil {
		tx.Rollback()
		return fmt.Errorf("delete input: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM sessions WHERE id = ?", id); err != nil {
		tx.Rollback()
		return fmt.Errorf("delete session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	return nil
}

type pendingByte struct {
	seq    int64
	offset time.Duration
	value  byte
}

// Session records input for one run.
type Session struct {
	store     *Store
	id        int64
	start     time.Time
	seq       int64
	batch     []pendingByte
	batchSize int
}

// Begin starts a new session.
func (s *Store) Begin(label string, start time.Time) (*Session, error) {
	res, err := s.db.Exec("INSERT INTO sessions (label, started) VALUES (?, ?)", label, start.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("begin session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	log.Printf("Recorder: session %d (%s) started", id, label)
	return &Session{
		store:     s,
		id:        id,
		start:     start,
		batch:     make([]pendingByte, 0, DefaultBatchSize),
		batchSize: DefaultBatchSize,
	}, nil
}

// ID returns the session id.
func (r *Session) ID() int64 {
	return r.id
}

// Record appends a byte received at time at.
func (r *Session) Record(b byte, at time.Time) error {
	r.batch = append(r.batch, pendingByte{seq: r.seq, offset: at.Sub(r.start), value: b})
	r.seq++
	if len(r.batch) >= r.batchSize {
		return r.Flush()
	}
	return nil
}

// Flush writes buffered bytes in one transaction.
func (r *Session) Flush() error {
	if len(r.batch) == 0 {
		return nil
	}
	tx, err := r.store.db.Begin()
	if err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO input (session_id, seq, offset_ns, value) VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("flush: %w", err)
	}
	defer stmt.Close()
	for _, p := range r.batch {
		if _, err := stmt.Exec(r.id, p.seq, int64(p.offset), int(p.value)); err != nil {
			tx.Rollback()
			return fmt.Errorf("flush: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	r.batch = r.batch[:0]
	return nil
}

// Close flushes remaining bytes.
func (r *Session) Close() error {
	err := r.Flush()
	log.Printf("Recorder: session %d closed after %d bytes", r.id, r.seq)
	return err
}
