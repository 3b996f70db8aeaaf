// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/viewer/app.go
// Summary: The memview application: one mapped buffer, one view model, one screen of widgets.
// Usage: cmd/memview builds an App from the mapped file and hands it to Run.

// Package viewer wires the view model to the terminal widgets.
package viewer

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/memview/internal/ui"
	"github.com/framegrace/memview/internal/view"
)

// Source is the buffer the App owns for the session. *mmap.Buffer
// satisfies it.
type Source interface {
	view.Source
	Path() string
}

// Options seeds the initial view state and the renderer.
type Options struct {
	Offset uint64
	Width  uint32
	Height uint32
	Fit    bool
	Alpha  bool
}

// DefaultOptions mirrors view.DefaultState with 1:1 rendering.
func DefaultOptions() Options {
	s := view.DefaultState()
	return Options{Offset: s.Offset, Width: s.Width, Height: s.Height}
}

func (o Options) state() view.State {
	return view.State{Offset: o.Offset, Width: o.Width, Height: o.Height}
}

const (
	controlRows = 3
	labelWidth  = 7
)

// App is the top-level session object. It owns the buffer and the model
// for as long as it lives; nothing else holds them.
type App struct {
	src   Source
	model *view.Model
	opts  Options

	ui     *ui.Manager
	offset *ui.Stepper
	width  *ui.Stepper
	height *ui.Stepper
	image  *ui.Image
	status *ui.StatusBar

	done bool
}

// New creates the application over src.
func New(src Source, opts Options) *App {
	a := &App{
		src:   src,
		model: view.NewModel(src, opts.state()),
		opts:  opts,
		ui:    ui.NewManager(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorSilver)),
	}

	a.offset = ui.NewStepper(0, 0, 0, "offset:", fieldControl{a.model, view.FieldOffset})
	a.offset.Page = a.model.Stride
	a.width = ui.NewStepper(0, 1, 0, "width:", fieldControl{a.model, view.FieldWidth})
	a.height = ui.NewStepper(0, 2, 0, "height:", fieldControl{a.model, view.FieldHeight})
	for _, s := range []*ui.Stepper{a.offset, a.width, a.height} {
		s.LabelWidth = labelWidth
		s.OnChange = a.changed
	}

	a.image = ui.NewImage(0, controlRows, 0, 0, a.model)
	a.image.Fit = opts.Fit
	a.image.Alpha = opts.Alpha

	a.status = ui.NewStatusBar(0, 0, 0)
	a.status.Left = a.statusText
	a.status.Right = func() string {
		return "Tab focus  ←/→ ±1  PgUp/PgDn page  j/k row  J/K frame  f fit  a alpha  q quit"
	}

	a.ui.AddWidget(a.offset)
	a.ui.AddWidget(a.width)
	a.ui.AddWidget(a.height)
	a.ui.AddWidget(a.image)
	a.ui.AddWidget(a.status)
	return a
}

// Model exposes the view model, mainly for tests and the summary.
func (a *App) Model() *view.Model { return a.model }

// Title names the window after the file.
func (a *App) Title() string {
	return "memview: " + filepath.Base(a.src.Path())
}

// Done reports whether the user asked to quit.
func (a *App) Done() bool { return a.done }

func (a *App) SetRefreshNotifier(ch chan<- bool) {
	a.ui.SetRefreshNotifier(ch)
}

// Resize lays the widgets out: three control rows, the image, a status row.
func (a *App) Resize(cols, rows int) {
	a.ui.Resize(cols, rows)
	for i, s := range []*ui.Stepper{a.offset, a.width, a.height} {
		s.Place(ui.Rect{X: 0, Y: i, W: cols, H: 1})
	}
	a.image.Place(ui.Rect{X: 0, Y: controlRows, W: cols, H: rows - controlRows - 1})
	a.status.Place(ui.Rect{X: 0, Y: rows - 1, W: cols, H: 1})
	debugLog.Printf("resize %dx%d", cols, rows)
}

func (a *App) Render() [][]ui.Cell {
	return a.ui.Render()
}

// HandleKey applies global bindings first, then lets the focused widget
// and focus traversal have the key.
func (a *App) HandleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.done = true
		return
	case tcell.KeyUp:
		if a.ui.Focused() != a.image || a.image.Fit {
			a.ui.CycleFocus(false)
			return
		}
	case tcell.KeyDown:
		if a.ui.Focused() != a.image || a.image.Fit {
			a.ui.CycleFocus(true)
			return
		}
	case tcell.KeyRune:
		if a.handleRune(ev.Rune()) {
			return
		}
	}
	a.ui.HandleKey(ev)
}

func (a *App) handleRune(r rune) bool {
	switch r {
	case 'q':
		a.done = true
	case 'f':
		a.image.Fit = !a.image.Fit
		a.image.ResetPan()
	case 'a':
		a.image.Alpha = !a.image.Alpha
	case 'r':
		a.model.Apply(view.Change{Field: view.FieldWidth, Value: uint64(a.opts.Width)})
		a.model.Apply(view.Change{Field: view.FieldHeight, Value: uint64(a.opts.Height)})
		a.model.Apply(view.Change{Field: view.FieldOffset, Value: a.opts.Offset})
		a.image.ResetPan()
	case 'j':
		a.model.Step(view.FieldOffset, clampInt64(a.model.Stride()))
	case 'k':
		a.model.Step(view.FieldOffset, -clampInt64(a.model.Stride()))
	case 'J':
		a.model.Step(view.FieldOffset, clampInt64(a.model.FrameBytes()))
	case 'K':
		a.model.Step(view.FieldOffset, -clampInt64(a.model.FrameBytes()))
	default:
		return false
	}
	debugLog.Printf("key %q -> %s", r, a.model.State())
	return true
}

func (a *App) HandleMouse(ev *tcell.EventMouse) {
	a.ui.HandleMouse(ev)
}

func (a *App) changed(uint64) {
	debugLog.Printf("state %s", a.model.State())
}

func (a *App) statusText() string {
	s := a.model.State()
	f := a.model.Frame()
	text := fmt.Sprintf("%s  %s  @%s (0x%X)  %dx%d  frame %s",
		filepath.Base(a.src.Path()),
		humanize.IBytes(uint64(a.model.Len())),
		humanize.Comma(int64(min(s.Offset, math.MaxInt64))),
		s.Offset,
		s.Width, s.Height,
		humanize.IBytes(a.model.FrameBytes()),
	)
	if !f.Complete() {
		text += fmt.Sprintf("  [short: %d/%d rows]", f.FullRows(), s.Height)
	}
	if a.image.Fit {
		text += fmt.Sprintf("  fit 1/%d", a.image.Scale(f))
	}
	return text
}

// fieldControl adapts one model field to ui.Bounded.
type fieldControl struct {
	model *view.Model
	field view.Field
}

func (c fieldControl) Value() uint64 { return c.model.Value(c.field) }

func (c fieldControl) Bounds() (uint64, uint64) {
	r := c.model.FieldRange(c.field)
	return r.Min, r.Max
}

func (c fieldControl) Set(v uint64) {
	c.model.Apply(view.Change{Field: c.field, Value: v})
}

func clampInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}
