// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/viewer/summary.go
// Summary: Plain-text description of the clamped view state for -info.

package viewer

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// Summary writes a plain-text description of the clamped view state and
// the ranges a UI would offer.
func (a *App) Summary(w io.Writer) error {
	s := a.model.State()
	f := a.model.Frame()
	or, wr, hr := a.model.OffsetRange(), a.model.WidthRange(), a.model.HeightRange()

	frame := humanize.IBytes(a.model.FrameBytes())
	if !f.Complete() {
		frame += fmt.Sprintf(" (short: %s of %s bytes available)",
			humanize.Comma(int64(len(f.Pix))), humanize.Comma(int64(a.model.Len())))
	}

	_, err := fmt.Fprintf(w,
		"file:   %s\nsize:   %s (%s bytes)\nstate:  %s\nframe:  %s\noffset: %d..%d\nwidth:  %d..%d\nheight: %d..%d\n",
		a.src.Path(),
		humanize.IBytes(uint64(a.model.Len())), humanize.Comma(int64(a.model.Len())),
		s,
		frame,
		or.Min, or.Max,
		wr.Min, wr.Max,
		hr.Min, hr.Max,
	)
	return err
}
