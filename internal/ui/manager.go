// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/ui/manager.go
// Summary: Owns a flat widget list, routes input and composes a cell buffer.
// Usage: The viewer lays widgets out on resize and calls Render after every event.

package ui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Manager owns a small widget list and composes it into a buffer.
type Manager struct {
	W, H    int
	widgets []Widget // later entries draw on top
	focused Widget
	bgStyle tcell.Style
	pressed Widget // receives mouse events until the button is released

	mu       sync.Mutex // protects notifier
	notifier chan<- bool
}

func NewManager(bg tcell.Style) *Manager {
	return &Manager{bgStyle: bg}
}

func (u *Manager) SetRefreshNotifier(ch chan<- bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.notifier = ch
}

// RequestRefresh asks the host loop for a redraw without blocking.
func (u *Manager) RequestRefresh() {
	u.mu.Lock()
	ch := u.notifier
	u.mu.Unlock()

	if ch == nil {
		return
	}
	select {
	case ch <- true:
	default:
	}
}

func (u *Manager) Resize(w, h int) {
	u.W, u.H = max(w, 0), max(h, 0)
}

// AddWidget appends w. The first focusable widget added receives focus.
func (u *Manager) AddWidget(w Widget) {
	u.widgets = append(u.widgets, w)
	if u.focused == nil && w.Focusable() {
		u.Focus(w)
	}
}

func (u *Manager) Focus(w Widget) {
	if w == nil || !w.Focusable() || u.focused == w {
		return
	}
	if u.focused != nil {
		u.focused.SetFocused(false)
	}
	u.focused = w
	w.SetFocused(true)
}

func (u *Manager) Focused() Widget {
	return u.focused
}

// CycleFocus moves focus to the next (or previous) focusable widget.
func (u *Manager) CycleFocus(forward bool) bool {
	var focusable []Widget
	current := -1
	for _, w := range u.widgets {
		if !w.Focusable() {
			continue
		}
		if w == u.focused {
			current = len(focusable)
		}
		focusable = append(focusable, w)
	}
	if len(focusable) == 0 {
		return false
	}
	next := 0
	if current >= 0 {
		step := 1
		if !forward {
			step = len(focusable) - 1
		}
		next = (current + step) % len(focusable)
	} else if !forward {
		next = len(focusable) - 1
	}
	u.Focus(focusable[next])
	return true
}

// HandleKey gives the focused widget the first chance at ev, then handles
// Tab/Backtab focus traversal.
func (u *Manager) HandleKey(ev *tcell.EventKey) bool {
	if u.focused != nil && u.focused.HandleKey(ev) {
		return true
	}
	switch ev.Key() {
	case tcell.KeyTab:
		return u.CycleFocus(ev.Modifiers()&tcell.ModShift == 0)
	case tcell.KeyBacktab:
		return u.CycleFocus(false)
	}
	return false
}

// HandleMouse routes ev to the topmost widget under the pointer. A primary
// button press also focuses that widget. While a button is held the widget
// that saw the press keeps receiving events so drags leave it gracefully.
func (u *Manager) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	target := u.pressed
	if target == nil {
		target = u.topmostAt(x, y)
	}
	if ev.Buttons()&tcell.Button1 != 0 {
		if u.pressed == nil && target != nil {
			u.pressed = target
			u.Focus(target)
		}
	} else {
		u.pressed = nil
	}
	if target == nil {
		return false
	}
	if ma, ok := target.(MouseAware); ok {
		return ma.HandleMouse(ev)
	}
	return false
}

func (u *Manager) topmostAt(x, y int) Widget {
	for i := len(u.widgets) - 1; i >= 0; i-- {
		if u.widgets[i].Bounds().Contains(x, y) {
			return u.widgets[i]
		}
	}
	return nil
}

// Render composes every widget into a fresh W x H buffer.
func (u *Manager) Render() [][]Cell {
	if u.W == 0 || u.H == 0 {
		return [][]Cell{}
	}
	buf := NewBuffer(u.W, u.H, u.bgStyle)
	for _, w := range u.widgets {
		w.Draw(NewPainter(buf, w.Bounds()))
	}
	return buf
}
