// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/mmap/mmap_other.go
// Summary: Fallback for platforms without a file mapping facility.

//go:build !unix && !windows

package mmap

import "os"

func mapRegion(f *os.File, length int) ([]byte, error) {
	return nil, ErrUnsupported
}
