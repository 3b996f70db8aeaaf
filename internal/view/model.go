// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/view/model.go
// Summary: Bounds-safe view model over a mapped buffer.
// Usage: The viewer owns one Model per session and feeds it one Change per UI event.

// Package view keeps the offset/width/height triple consistent with the
// length of the buffer being inspected and hands out zero-copy frames.
package view

import "fmt"

// Source is the byte buffer a Model borrows. Its contents and length must
// not change while the Model is in use.
type Source interface {
	Bytes() []byte
}

// Bytes adapts a plain slice to Source.
type Bytes []byte

func (b Bytes) Bytes() []byte { return b }

// Field names one member of the view triple.
type Field int

const (
	FieldOffset Field = iota
	FieldWidth
	FieldHeight
)

func (f Field) String() string {
	switch f {
	case FieldOffset:
		return "offset"
	case FieldWidth:
		return "width"
	case FieldHeight:
		return "height"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Change is a single "parameter changed" event.
type Change struct {
	Field Field
	Value uint64
}

func (c Change) String() string {
	return fmt.Sprintf("%s=%d", c.Field, c.Value)
}

// Model owns the view triple for one buffer.
//
// It is not safe for concurrent mutation; confine it to the goroutine that
// processes UI events. Frames it returns may be read from anywhere.
type Model struct {
	src    Source
	length uint64
	state  State
}

// NewModel returns a model over src starting from initial, clamped.
func NewModel(src Source, initial State) *Model {
	m := &Model{
		src:    src,
		length: uint64(len(src.Bytes())),
	}
	m.commit(initial)
	return m
}

// State returns the current (always valid) triple.
func (m *Model) State() State {
	return m.state
}

// Len returns the length of the underlying buffer.
func (m *Model) Len() int {
	return int(m.length)
}

// FrameBytes returns the byte size of the current frame.
func (m *Model) FrameBytes() uint64 {
	return FrameBytes(m.state.Width, m.state.Height)
}

// Stride returns the number of bytes in one image row.
func (m *Model) Stride() uint64 {
	return uint64(m.state.Width) * BytesPerPixel
}

// SetOffset replaces the offset and re-clamps the triple.
func (m *Model) SetOffset(offset uint64) {
	next := m.state
	next.Offset = offset
	m.commit(next)
}

// SetWidth replaces the width and re-clamps the triple.
func (m *Model) SetWidth(width uint32) {
	next := m.state
	next.Width = width
	m.commit(next)
}

// SetHeight replaces the height and re-clamps the triple.
func (m *Model) SetHeight(height uint32) {
	next := m.state
	next.Height = height
	m.commit(next)
}

// Apply routes c to the matching setter and returns the resulting state.
// Width and height values above math.MaxUint32 saturate.
func (m *Model) Apply(c Change) State {
	debugLog.Printf("change %s", c)
	switch c.Field {
	case FieldOffset:
		m.SetOffset(c.Value)
	case FieldWidth:
		m.SetWidth(saturate32(c.Value))
	case FieldHeight:
		m.SetHeight(saturate32(c.Value))
	default:
		debugLog.Printf("ignoring change to unknown %s", c.Field)
	}
	return m.state
}

// Step nudges field by delta, saturating at the field's current range.
func (m *Model) Step(field Field, delta int64) State {
	switch field {
	case FieldOffset:
		r := m.OffsetRange()
		m.SetOffset(r.Clamp(addSigned(m.state.Offset, delta)))
	case FieldWidth:
		r := m.WidthRange()
		m.SetWidth(r.Clamp(saturate32(addSigned(uint64(m.state.Width), delta))))
	case FieldHeight:
		r := m.HeightRange()
		m.SetHeight(r.Clamp(saturate32(addSigned(uint64(m.state.Height), delta))))
	}
	return m.state
}

// Value returns the current value of field.
func (m *Model) Value(field Field) uint64 {
	switch field {
	case FieldOffset:
		return m.state.Offset
	case FieldWidth:
		return uint64(m.state.Width)
	case FieldHeight:
		return uint64(m.state.Height)
	}
	return 0
}

// OffsetRange returns [0, len-frameBytes], saturating at 0. It is derived
// from the current dimensions on every call.
func (m *Model) OffsetRange() Range[uint64] {
	return Range[uint64]{Min: 0, Max: MaxOffset(m.state.Width, m.state.Height, m.length)}
}

// WidthRange returns [1, max(SoftDimensionMax, width+1)].
func (m *Model) WidthRange() Range[uint32] {
	return dimensionRange(m.state.Width)
}

// HeightRange returns [1, max(SoftDimensionMax, height+1)].
func (m *Model) HeightRange() Range[uint32] {
	return dimensionRange(m.state.Height)
}

// FieldRange returns the range of field widened to uint64.
func (m *Model) FieldRange(field Field) Range[uint64] {
	switch field {
	case FieldWidth:
		r := m.WidthRange()
		return Range[uint64]{Min: uint64(r.Min), Max: uint64(r.Max)}
	case FieldHeight:
		r := m.HeightRange()
		return Range[uint64]{Min: uint64(r.Min), Max: uint64(r.Max)}
	default:
		return m.OffsetRange()
	}
}

// Frame returns the current pixel bytes without copying. When the frame
// is larger than the whole buffer the returned Pix is short; see Frame.
func (m *Model) Frame() Frame {
	buf := m.src.Bytes()
	start := m.state.Offset
	end := m.length
	if fb := m.FrameBytes(); fb <= m.length-start {
		end = start + fb
	}
	return Frame{
		Pix:    buf[start:end:end],
		Offset: start,
		Width:  m.state.Width,
		Height: m.state.Height,
	}
}

func (m *Model) commit(next State) {
	clamped := Clamp(next, m.length)
	if clamped != next {
		debugLog.Printf("clamped %s to %s (len=%d)", next, clamped, m.length)
	}
	m.state = clamped
}
