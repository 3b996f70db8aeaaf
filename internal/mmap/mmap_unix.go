// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/mmap/mmap_unix.go
// Summary: mmap(2) backed mapping for unix platforms.

//go:build unix

package mmap

import (
	"os"

	"golang.org/x/sys/unix"
)

func mapRegion(f *os.File, length int) ([]byte, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, length, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	// Best effort: the viewer mostly walks forward through the file.
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)
	return data, nil
}
