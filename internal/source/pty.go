// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/source/pty.go
// Summary: Runs a program on a pseudo terminal and streams its output.

package source

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
)

// CommandSource is the output of a child process running on a pty sized
// like the text grid.
type CommandSource struct {
	*ReaderSource
	cmd  *exec.Cmd
	ptmx *os.File
}

// StartCommand launches name with args. The child sees a cols x rows
// terminal.
func StartCommand(cols, rows, buffer int, name string, args ...string) (*CommandSource, error) {
	cmd := exec.Command(name, args...)
	cmd.Env = append(os.Environ(), "TERM=dumb",
		fmt.Sprintf("COLUMNS=%d", cols),
		fmt.Sprintf("LINES=%d", rows),
	)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", name, err)
	}
	log.Printf("Source: started %s (pid %d)", name, cmd.Process.Pid)

	return &CommandSource{
		ReaderSource: NewReaderSource(ptmx, ptmx, buffer),
		cmd:          cmd,
		ptmx:         ptmx,
	}, nil
}

// Write sends input to the child.
func (s *CommandSource) Write(p []byte) (int, error) {
	return s.ptmx.Write(p)
}

// Close terminates the child and releases the pty.
func (s *CommandSource) Close() error {
	err := s.ReaderSource.Close()
	if s.cmd.Process != nil {
		s.cmd.Process.Signal(syscall.SIGTERM)
		if waitErr := s.cmd.Wait(); waitErr != nil {
			log.Printf("Source: %s exited: %v", s.cmd.Path, waitErr)
		}
	}
	return err
}
