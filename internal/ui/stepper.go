// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/ui/stepper.go
// Summary: Bounded numeric control: label, slider track, [-], value, [+].
// Usage: One Stepper per view parameter; range and value are re-read on every draw.

package ui

import (
	"math"
	"math/bits"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Bounded is the numeric value a Stepper edits. Bounds may change after
// any Set, so the Stepper never caches them.
type Bounded interface {
	Value() uint64
	Bounds() (lo, hi uint64)
	Set(v uint64)
}

// Stepper is a one-row numeric control.
//
// Keys: Left/- and Right/+ nudge by one, PgUp/PgDn by Page(), Home/End jump
// to the bounds. Mouse: [-] and [+] nudge, the track sets the value
// proportionally and follows drags.
type Stepper struct {
	BaseWidget
	Label      string
	LabelWidth int
	Source     Bounded
	Page       func() uint64 // PgUp/PgDn step; nil means 10
	OnChange   func(v uint64)

	Style        tcell.Style
	FocusStyle   tcell.Style
	TrackStyle   tcell.Style
	KnobStyle    tcell.Style
	DisabledText tcell.Style

	// geometry of the last draw, in absolute cells
	trackX, trackW int
	minusX, plusX  int
	held           bool
}

// NewStepper creates a focusable stepper at the given position.
func NewStepper(x, y, w int, label string, src Bounded) *Stepper {
	s := &Stepper{
		Label:        label,
		LabelWidth:   runewidth.StringWidth(label),
		Source:       src,
		Style:        tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
		FocusStyle:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy).Bold(true),
		TrackStyle:   tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack),
		KnobStyle:    tcell.StyleDefault.Foreground(tcell.ColorAqua).Background(tcell.ColorBlack),
		DisabledText: tcell.StyleDefault.Foreground(tcell.ColorDimGray).Background(tcell.ColorBlack),
		minusX:       -1,
		plusX:        -1,
	}
	s.Place(Rect{X: x, Y: y, W: w, H: 1})
	s.SetFocusable(true)
	return s
}

func (s *Stepper) Draw(p *Painter) {
	lo, hi := s.Source.Bounds()
	v := s.Source.Value()
	x, y := s.Rect.X, s.Rect.Y
	end := s.Rect.X + s.Rect.W

	p.Fill(Rect{X: x, Y: y, W: s.Rect.W, H: 1}, ' ', s.Style)

	labelStyle := s.Style
	if s.IsFocused() {
		labelStyle = s.FocusStyle
	}
	x += p.DrawText(x, y, runewidth.FillRight(s.Label, s.LabelWidth), labelStyle)
	x++

	// Right-hand cluster: " [-] <value> [+]", value padded to the widest bound.
	value := strconv.FormatUint(v, 10)
	valueW := max(len(value), len(strconv.FormatUint(hi, 10)))
	clusterW := 1 + 3 + 1 + valueW + 1 + 3

	s.trackX, s.trackW = x, end-clusterW-x
	if s.trackW > 0 {
		s.drawTrack(p, y, v, lo, hi)
	} else {
		s.trackW = 0
	}

	cx := max(x, end-clusterW) + 1
	minusStyle, plusStyle := s.Style, s.Style
	if v <= lo {
		minusStyle = s.DisabledText
	}
	if v >= hi {
		plusStyle = s.DisabledText
	}
	s.minusX = cx
	cx += p.DrawText(cx, y, "[-]", minusStyle) + 1
	cx += p.DrawText(cx, y, runewidth.FillLeft(value, valueW), labelStyle) + 1
	s.plusX = cx
	p.DrawText(cx, y, "[+]", plusStyle)
}

func (s *Stepper) drawTrack(p *Painter, y int, v, lo, hi uint64) {
	knob := 0
	if hi > lo && s.trackW > 1 {
		knob = int(mulDiv(v-lo, uint64(s.trackW-1), hi-lo))
	}
	for i := 0; i < s.trackW; i++ {
		switch {
		case i == knob:
			p.SetCell(s.trackX+i, y, '●', s.KnobStyle)
		case i < knob:
			p.SetCell(s.trackX+i, y, '━', s.KnobStyle)
		default:
			p.SetCell(s.trackX+i, y, '─', s.TrackStyle)
		}
	}
}

func (s *Stepper) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyLeft:
		s.Nudge(-1)
	case tcell.KeyRight:
		s.Nudge(1)
	case tcell.KeyPgUp:
		s.Nudge(-s.page())
	case tcell.KeyPgDn:
		s.Nudge(s.page())
	case tcell.KeyHome:
		lo, _ := s.Source.Bounds()
		s.set(lo)
	case tcell.KeyEnd:
		_, hi := s.Source.Bounds()
		s.set(hi)
	case tcell.KeyRune:
		switch ev.Rune() {
		case '-', 'h':
			s.Nudge(-1)
		case '+', '=', 'l':
			s.Nudge(1)
		default:
			return false
		}
	default:
		return false
	}
	return true
}

func (s *Stepper) HandleMouse(ev *tcell.EventMouse) bool {
	if ev.Buttons()&tcell.Button1 == 0 {
		s.held = false
		return false
	}
	x, y := ev.Position()
	if y != s.Rect.Y {
		return false
	}
	firstPress := !s.held
	s.held = true

	switch {
	case s.trackW > 0 && x >= s.trackX && x < s.trackX+s.trackW:
		lo, hi := s.Source.Bounds()
		if s.trackW == 1 || hi <= lo {
			s.set(lo)
		} else {
			s.set(lo + mulDiv(uint64(x-s.trackX), hi-lo, uint64(s.trackW-1)))
		}
		return true
	case firstPress && x >= s.minusX && x < s.minusX+3:
		s.Nudge(-1)
		return true
	case firstPress && x >= s.plusX && x < s.plusX+3:
		s.Nudge(1)
		return true
	}
	return false
}

// Nudge moves the value by delta, saturating at the current bounds.
func (s *Stepper) Nudge(delta int64) {
	lo, hi := s.Source.Bounds()
	v := s.Source.Value()
	var next uint64
	if delta < 0 {
		mag := uint64(-(delta + 1)) + 1
		if v < lo+mag || lo+mag < lo {
			next = lo
		} else {
			next = v - mag
		}
	} else {
		next = v + uint64(delta)
		if next < v || next > hi {
			next = hi
		}
	}
	if next < lo {
		next = lo
	}
	if next == v {
		return
	}
	s.set(next)
}

func (s *Stepper) set(v uint64) {
	s.Source.Set(v)
	if s.OnChange != nil {
		s.OnChange(s.Source.Value())
	}
}

func (s *Stepper) page() int64 {
	if s.Page == nil {
		return 10
	}
	p := s.Page()
	if p == 0 {
		return 1
	}
	if p > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(p)
}

// mulDiv returns a*b/c without intermediate overflow, saturating if the
// quotient does not fit in 64 bits.
func mulDiv(a, b, c uint64) uint64 {
	if c == 0 {
		return 0
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= c {
		return math.MaxUint64
	}
	q, _ := bits.Div64(hi, lo, c)
	return q
}
