package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

type miniWidget struct {
	BaseWidget
	ch     rune
	keys   int
	clicks int
}

func newMini(x, y, w, h int, ch rune, focusable bool) *miniWidget {
	m := &miniWidget{ch: ch}
	m.Place(Rect{X: x, Y: y, W: w, H: h})
	m.SetFocusable(focusable)
	return m
}

func (m *miniWidget) Draw(p *Painter) {
	p.Fill(m.Rect, m.ch, tcell.StyleDefault)
}

func (m *miniWidget) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyRune {
		return false
	}
	m.keys++
	return true
}

func (m *miniWidget) HandleMouse(ev *tcell.EventMouse) bool {
	if ev.Buttons()&tcell.Button1 != 0 {
		m.clicks++
	}
	return true
}

func TestManagerRendersWidgetsInOrder(t *testing.T) {
	u := NewManager(tcell.StyleDefault)
	u.Resize(6, 2)
	u.AddWidget(newMini(0, 0, 4, 2, 'a', false))
	u.AddWidget(newMini(2, 1, 10, 1, 'b', false))

	buf := u.Render()
	if len(buf) != 2 || len(buf[0]) != 6 {
		t.Fatalf("unexpected buffer size %dx%d", len(buf[0]), len(buf))
	}
	if got := rowText(buf, 0, 0, 6); got != "aaaa  " {
		t.Fatalf("unexpected row 0 %q", got)
	}
	if got := rowText(buf, 1, 0, 6); got != "aabbbb" {
		t.Fatalf("unexpected row 1 %q", got)
	}
}

func TestManagerEmptyRender(t *testing.T) {
	u := NewManager(tcell.StyleDefault)
	if buf := u.Render(); len(buf) != 0 {
		t.Fatalf("expected empty buffer before resize, got %d rows", len(buf))
	}
}

func TestManagerFocusCycling(t *testing.T) {
	u := NewManager(tcell.StyleDefault)
	a := newMini(0, 0, 1, 1, 'a', true)
	skip := newMini(1, 0, 1, 1, 's', false)
	b := newMini(2, 0, 1, 1, 'b', true)
	u.AddWidget(a)
	u.AddWidget(skip)
	u.AddWidget(b)

	if u.Focused() != a || !a.IsFocused() {
		t.Fatalf("expected first focusable widget to receive focus")
	}
	u.HandleKey(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	if u.Focused() != b || a.IsFocused() || !b.IsFocused() {
		t.Fatalf("expected Tab to move focus to b")
	}
	u.HandleKey(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	if u.Focused() != a {
		t.Fatalf("expected Tab to wrap to a")
	}
	u.HandleKey(tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone))
	if u.Focused() != b {
		t.Fatalf("expected Backtab to move focus to b")
	}
}

func TestManagerRoutesKeysToFocused(t *testing.T) {
	u := NewManager(tcell.StyleDefault)
	a := newMini(0, 0, 1, 1, 'a', true)
	b := newMini(1, 0, 1, 1, 'b', true)
	u.AddWidget(a)
	u.AddWidget(b)

	if !u.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Fatalf("expected key to be handled")
	}
	if a.keys != 1 || b.keys != 0 {
		t.Fatalf("expected key delivered to a only, got a=%d b=%d", a.keys, b.keys)
	}
	if u.HandleKey(tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone)) {
		t.Fatalf("expected F1 to be unhandled")
	}
}

func TestManagerMouseFocusesAndCaptures(t *testing.T) {
	u := NewManager(tcell.StyleDefault)
	u.Resize(10, 2)
	a := newMini(0, 0, 5, 1, 'a', true)
	b := newMini(0, 1, 5, 1, 'b', true)
	u.AddWidget(a)
	u.AddWidget(b)

	u.HandleMouse(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone))
	if u.Focused() != b || b.clicks != 1 {
		t.Fatalf("expected click to focus b and reach it")
	}
	// Dragging over a keeps delivering to b until release.
	u.HandleMouse(tcell.NewEventMouse(1, 0, tcell.Button1, tcell.ModNone))
	if a.clicks != 0 || b.clicks != 2 {
		t.Fatalf("expected drag to stay with b, got a=%d b=%d", a.clicks, b.clicks)
	}
	u.HandleMouse(tcell.NewEventMouse(1, 0, tcell.ButtonNone, tcell.ModNone))
	u.HandleMouse(tcell.NewEventMouse(1, 0, tcell.Button1, tcell.ModNone))
	if a.clicks != 1 || u.Focused() != a {
		t.Fatalf("expected new press to go to a")
	}
	u.HandleMouse(tcell.NewEventMouse(1, 0, tcell.ButtonNone, tcell.ModNone))
	if u.HandleMouse(tcell.NewEventMouse(9, 1, tcell.ButtonNone, tcell.ModNone)) {
		t.Fatalf("expected miss to be unhandled")
	}
}

func TestManagerRequestRefreshDoesNotBlock(t *testing.T) {
	u := NewManager(tcell.StyleDefault)
	u.RequestRefresh()

	ch := make(chan bool, 1)
	u.SetRefreshNotifier(ch)
	u.RequestRefresh()
	u.RequestRefresh()
	if len(ch) != 1 {
		t.Fatalf("expected one pending refresh, got %d", len(ch))
	}
}

func TestBaseWidgetPlaceAndFocus(t *testing.T) {
	m := newMini(0, 0, 0, 0, 'm', false)
	m.Place(Rect{X: 2, Y: 3, W: -4, H: 5})
	if got := m.Bounds(); got != (Rect{X: 2, Y: 3, W: 0, H: 5}) {
		t.Fatalf("expected negative width to collapse, got %+v", got)
	}
	m.SetFocused(true)
	if m.IsFocused() {
		t.Fatalf("non-focusable widget must not take focus")
	}
	m.SetFocusable(true)
	m.SetFocused(true)
	if !m.IsFocused() {
		t.Fatalf("expected focusable widget to take focus")
	}
}
