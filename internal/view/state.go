// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/view/state.go
// Summary: The (offset, width, height) triple and the pure clamp that keeps it valid.
// Usage: Model runs Clamp after every field change; callers may use it directly for previews.

package view

import (
	"fmt"
	"math"
	"math/bits"
)

const (
	// BytesPerPixel is the size of one RGBA8 pixel.
	BytesPerPixel = 4

	DefaultWidth  = 1920
	DefaultHeight = 1080

	// SoftDimensionMax is the slider ceiling for width and height. Values
	// above it stay reachable one step at a time.
	SoftDimensionMax = 10000
)

// State is the view triple. The zero value is not valid; pass it through
// Clamp (or use DefaultState) first.
type State struct {
	Offset uint64
	Width  uint32
	Height uint32
}

// DefaultState is the state a session starts from before any flags apply.
func DefaultState() State {
	return State{Offset: 0, Width: DefaultWidth, Height: DefaultHeight}
}

func (s State) String() string {
	return fmt.Sprintf("offset=%d width=%d height=%d", s.Offset, s.Width, s.Height)
}

// FrameBytes returns width*height*4, saturating at math.MaxUint64.
func FrameBytes(width, height uint32) uint64 {
	pixels := uint64(width) * uint64(height)
	hi, n := bits.Mul64(pixels, BytesPerPixel)
	if hi != 0 {
		return math.MaxUint64
	}
	return n
}

// MaxOffset is the largest offset at which a width x height frame still
// fits in length bytes. It is 0 when the frame does not fit at all.
func MaxOffset(width, height uint32, length uint64) uint64 {
	fb := FrameBytes(width, height)
	if fb >= length {
		return 0
	}
	return length - fb
}

// Clamp returns s corrected against a buffer of length bytes.
//
// The order is fixed: dimensions are floored at 1 first, the frame size is
// derived from the corrected dimensions, and only then is the offset pulled
// back to the last position where the frame fits (0 if it never fits).
func Clamp(s State, length uint64) State {
	if s.Width < 1 {
		s.Width = 1
	}
	if s.Height < 1 {
		s.Height = 1
	}
	if maxOffset := MaxOffset(s.Width, s.Height, length); s.Offset > maxOffset {
		s.Offset = maxOffset
	}
	return s
}

// Range is an inclusive [Min, Max] interval.
type Range[T uint32 | uint64] struct {
	Min, Max T
}

// Contains reports whether v lies inside the range.
func (r Range[T]) Contains(v T) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp forces v into the range.
func (r Range[T]) Clamp(v T) T {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

func dimensionRange(current uint32) Range[uint32] {
	upper := uint32(SoftDimensionMax)
	if current >= upper {
		upper = current
		if current < math.MaxUint32 {
			upper++
		}
	}
	return Range[uint32]{Min: 1, Max: upper}
}

// addSigned adds d to v, saturating at 0 and math.MaxUint64.
func addSigned(v uint64, d int64) uint64 {
	if d >= 0 {
		sum, carry := bits.Add64(v, uint64(d), 0)
		if carry != 0 {
			return math.MaxUint64
		}
		return sum
	}
	mag := uint64(-(d + 1)) + 1
	if mag > v {
		return 0
	}
	return v - mag
}

func saturate32(v uint64) uint32 {
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
