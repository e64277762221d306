// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package capture

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Stderr and Stdout are the conventional stream numbers accepted by Begin.
const (
	Stdout = 1
	Stderr = 2
)

// Session is one active (or finished) capture of a stream.
type Session struct {
	fd     int
	saved  int      // dup of the stream's original destination
	tmp    *os.File // backing store receiving redirected writes
	final  []byte
	closed bool
}

// Begin redirects fd into a fresh temp file and returns the Session that
// undoes it. The original destination is preserved via a duplicated
// descriptor that Close releases unconditionally. Nesting Begin on the same
// fd is unsupported: the inner Close restores to the outer capture's backing
// store, not the true original.
func Begin(fd int) (*Session, error) {
	saved, err := unix.Dup(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to preserve stream %d: %w", fd, err)
	}

	tmp, err := os.CreateTemp("", "bldctl-capture-*")
	if err != nil {
		_ = unix.Close(saved)
		return nil, fmt.Errorf("failed to create backing store: %w", err)
	}

	if err := unix.Dup3(int(tmp.Fd()), fd, 0); err != nil {
		_ = unix.Close(saved)
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to redirect stream %d: %w", fd, err)
	}

	return &Session{fd: fd, saved: saved, tmp: tmp}, nil
}

// Bytes returns the captured content. Mid-scope it is a snapshot of what has
// been written so far, read by path so the shared write offset on the
// redirected descriptor is left alone. After Close it is the cached final
// content.
func (s *Session) Bytes() ([]byte, error) {
	if s.closed {
		return s.final, nil
	}
	return os.ReadFile(s.tmp.Name())
}

// Text is Bytes decoded with DecodeBestEffort.
func (s *Session) Text() (string, error) {
	b, err := s.Bytes()
	if err != nil {
		return "", err
	}
	return DecodeBestEffort(b), nil
}

// Close restores fd to its preserved destination and caches the final
// captured bytes so Bytes and Text keep working. The preserved descriptor
// and the backing store are released on every path; a failure to restore the
// stream is still reported after cleanup. Close is idempotent.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var restoreErr error
	if err := unix.Dup3(s.saved, s.fd, 0); err != nil {
		restoreErr = fmt.Errorf("failed to restore stream %d: %w", s.fd, err)
	}

	// Keep the output around for retrieval after the backing store is gone.
	if b, err := os.ReadFile(s.tmp.Name()); err == nil {
		s.final = b
	}

	_ = unix.Close(s.saved)
	_ = s.tmp.Close()
	_ = os.Remove(s.tmp.Name())

	return restoreErr
}

// Capture runs fn with fd captured and returns whatever was written there.
// The stream is restored on every exit path, including a panicking fn.
func Capture(fd int, fn func() error) (captured []byte, err error) {
	session, err := Begin(fd)
	if err != nil {
		return nil, err
	}
	defer func() {
		closeErr := session.Close()
		captured, _ = session.Bytes()
		if err == nil {
			err = closeErr
		}
	}()

	err = fn()
	return
}
