// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/mmap/mmap.go
// Summary: Read-only, whole-file memory mapping used as the viewer's backing buffer.
// Usage: Call MapFile once at startup; the returned Buffer lives for the session.

// Package mmap maps a file read-only into the address space and exposes its
// contents as an immutable byte view.
package mmap

import (
	"errors"
	"fmt"
	"os"
)

// Buffer is a read-only mapping of an entire file.
//
// The mapping is never resized, moved or unmapped by this package. The
// owner (normally the application object) keeps it for the whole session;
// the kernel tears it down at process exit.
type Buffer struct {
	path string
	file *os.File // kept open for the lifetime of the mapping
	data []byte
}

// Bytes returns the mapped contents. The memory is mapped without write
// permission: writing through the slice faults.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the mapped length in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// At returns the byte at index i. It panics if i is out of range, like a
// slice index.
func (b *Buffer) At(i int) byte {
	return b.data[i]
}

// Path returns the path the buffer was mapped from.
func (b *Buffer) Path() string {
	return b.path
}

// Error reports a failure to open or map a file.
type Error struct {
	Op   string // "open" or "mmap"
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return e.Op + " " + e.Path
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Causes wrapped in a mapping Error.
var (
	ErrEmptyFile   = errors.New("empty file")
	ErrNotRegular  = errors.New("not a regular file")
	ErrTooLarge    = errors.New("file too large to map")
	ErrUnsupported = errors.New("memory mapping not supported on this platform")
)

// IsOpenError reports whether err came from opening the file rather than
// from establishing the mapping.
func IsOpenError(err error) bool {
	var me *Error
	return errors.As(err, &me) && me.Op == "open"
}

// MapFile opens path read-only and maps its whole contents.
func MapFile(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Op: "open", Path: path, Err: unwrapPathError(err)}
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &Error{Op: "open", Path: path, Err: unwrapPathError(err)}
	}
	if !fi.Mode().IsRegular() {
		f.Close()
		return nil, &Error{Op: "mmap", Path: path, Err: ErrNotRegular}
	}

	size := fi.Size()
	if size == 0 {
		f.Close()
		return nil, &Error{Op: "mmap", Path: path, Err: ErrEmptyFile}
	}
	if int64(int(size)) != size {
		f.Close()
		return nil, &Error{Op: "mmap", Path: path, Err: ErrTooLarge}
	}

	data, err := mapRegion(f, int(size))
	if err != nil {
		f.Close()
		return nil, &Error{Op: "mmap", Path: path, Err: err}
	}

	return &Buffer{path: path, file: f, data: data}, nil
}

// unwrapPathError strips the *os.PathError layer so the path is not
// reported twice.
func unwrapPathError(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
