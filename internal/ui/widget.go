// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/ui/widget.go
// Summary: Widget contract and the BaseWidget helper embedded by concrete widgets.
// Usage: The viewer places every widget with Place on resize; the Manager owns focus.

package ui

import "github.com/gdamore/tcell/v2"

// Widget is a rectangular, optionally focusable element of the screen.
// Hit testing uses Bounds, so a widget receives the mouse anywhere inside
// its rectangle.
type Widget interface {
	Bounds() Rect
	Place(r Rect)
	Draw(p *Painter)
	Focusable() bool
	SetFocused(on bool)
	HandleKey(ev *tcell.EventKey) bool
}

// MouseAware widgets can consume mouse events directly.
type MouseAware interface {
	HandleMouse(ev *tcell.EventMouse) bool
}

// BaseWidget carries the rectangle and focus state. Embedders provide Draw
// and usually HandleKey.
type BaseWidget struct {
	Rect      Rect
	focused   bool
	focusable bool
}

// Place moves and resizes the widget. Negative sizes collapse to zero.
func (b *BaseWidget) Place(r Rect) {
	r.W, r.H = max(r.W, 0), max(r.H, 0)
	b.Rect = r
}

func (b *BaseWidget) Bounds() Rect        { return b.Rect }
func (b *BaseWidget) Focusable() bool     { return b.focusable }
func (b *BaseWidget) SetFocusable(f bool) { b.focusable = f }
func (b *BaseWidget) IsFocused() bool     { return b.focused }

// SetFocused is ignored for non-focusable widgets.
func (b *BaseWidget) SetFocused(on bool) {
	b.focused = on && b.focusable
}

func (b *BaseWidget) HandleKey(*tcell.EventKey) bool { return false }
