// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/view/frame.go
// Summary: Zero-copy RGBA8 frame over a slice of the mapped buffer.

package view

import (
	"image"
	"image/color"
)

// Frame is a width x height RGBA8 image aliasing the mapped buffer.
//
// Pix normally holds exactly FrameBytes(Width, Height) bytes. When the
// requested image is larger than the whole buffer, Pix holds the entire
// buffer instead and the frame is short: pixels past the end of Pix do not
// exist and report as transparent.
//
// Frame implements image.Image with straight (non-premultiplied) alpha.
type Frame struct {
	Pix    []byte
	Offset uint64
	Width  uint32
	Height uint32
}

// Complete reports whether every pixel of the frame is backed by data.
func (f Frame) Complete() bool {
	return uint64(len(f.Pix)) == FrameBytes(f.Width, f.Height)
}

// Stride returns the number of bytes per row.
func (f Frame) Stride() int {
	return int(f.Width) * BytesPerPixel
}

// FullRows returns how many rows are completely backed by data.
func (f Frame) FullRows() int {
	if f.Width == 0 {
		return 0
	}
	rows := uint64(len(f.Pix)) / (uint64(f.Width) * BytesPerPixel)
	if rows > uint64(f.Height) {
		rows = uint64(f.Height)
	}
	return int(rows)
}

// PixelAt returns the pixel at (x, y) and whether it is backed by data.
func (f Frame) PixelAt(x, y int) (color.NRGBA, bool) {
	if x < 0 || y < 0 || uint64(x) >= uint64(f.Width) || uint64(y) >= uint64(f.Height) {
		return color.NRGBA{}, false
	}
	// Reject rows past the data before multiplying; y*Width*4 can exceed
	// 64 bits for dimensions the model accepts.
	stride := uint64(f.Width) * BytesPerPixel
	if uint64(y) > uint64(len(f.Pix))/stride {
		return color.NRGBA{}, false
	}
	i := uint64(y)*stride + uint64(x)*BytesPerPixel
	if i+BytesPerPixel > uint64(len(f.Pix)) {
		return color.NRGBA{}, false
	}
	p := f.Pix[i : i+BytesPerPixel : i+BytesPerPixel]
	return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}, true
}

func (f Frame) ColorModel() color.Model {
	return color.NRGBAModel
}

func (f Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(f.Width), int(f.Height))
}

func (f Frame) At(x, y int) color.Color {
	c, _ := f.PixelAt(x, y)
	return c
}

// Image wraps a complete frame as an *image.NRGBA sharing Pix. It returns
// false for short frames.
func (f Frame) Image() (*image.NRGBA, bool) {
	if !f.Complete() {
		return nil, false
	}
	return &image.NRGBA{
		Pix:    f.Pix,
		Stride: f.Stride(),
		Rect:   f.Bounds(),
	}, true
}

var _ image.Image = Frame{}
