// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/ui/status.go
// Summary: Single-row status bar with left and right aligned text.

package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// StatusBar draws Left() at the left edge and, if it still fits, Right()
// flush right. Both are evaluated on every draw.
type StatusBar struct {
	BaseWidget
	Left  func() string
	Right func() string
	Style tcell.Style
}

func NewStatusBar(x, y, w int) *StatusBar {
	s := &StatusBar{
		Style: tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	}
	s.Place(Rect{X: x, Y: y, W: w, H: 1})
	return s
}

func (s *StatusBar) Draw(p *Painter) {
	p.Fill(s.Rect, ' ', s.Style)
	if s.Rect.W <= 0 {
		return
	}
	var left, right string
	if s.Left != nil {
		left = runewidth.Truncate(" "+s.Left(), s.Rect.W, "…")
	}
	if s.Right != nil {
		right = s.Right() + " "
	}
	used := p.DrawText(s.Rect.X, s.Rect.Y, left, s.Style)
	if rw := runewidth.StringWidth(right); right != "" && used+1+rw <= s.Rect.W {
		p.DrawText(s.Rect.X+s.Rect.W-rw, s.Rect.Y, right, s.Style)
	}
}
