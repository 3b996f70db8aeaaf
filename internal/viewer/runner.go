// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/viewer/runner.go
// Summary: Drives a Program inside a local tcell screen.
// Usage: Run(app) blocks until the user quits; tests swap the screen via SetScreenFactory.

package viewer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/memview/internal/ui"
)

// Program is what Run drives. *App implements it.
type Program interface {
	Resize(cols, rows int)
	Render() [][]ui.Cell
	HandleKey(ev *tcell.EventKey)
	SetRefreshNotifier(ch chan<- bool)
}

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// Run owns the terminal until the program is done or Ctrl-C is pressed.
// All program methods are called from the calling goroutine.
func Run(p Program) error {
	screen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.Clear()
	screen.HideCursor()
	screen.EnableMouse()
	defer screen.DisableMouse()

	if t, ok := p.(interface{ Title() string }); ok {
		screen.SetTitle(t.Title())
	}

	width, height := screen.Size()
	p.Resize(width, height)

	refreshCh := make(chan bool, 1)
	p.SetRefreshNotifier(refreshCh)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			select {
			case <-refreshCh:
				screen.PostEvent(tcell.NewEventInterrupt(nil))
			case <-stop:
				return
			}
		}
	}()

	draw := func() {
		screen.Clear()
		buffer := p.Render()
		for y := 0; y < len(buffer); y++ {
			row := buffer[y]
			for x := 0; x < len(row); x++ {
				cell := row[x]
				screen.SetContent(x, y, cell.Ch, nil, cell.Style)
			}
		}
		screen.Show()
	}

	done := func() bool {
		d, ok := p.(interface{ Done() bool })
		return ok && d.Done()
	}

	draw()

	for {
		ev := screen.PollEvent()
		switch tev := ev.(type) {
		case nil:
			// Screen finalized underneath us.
			return nil
		case *tcell.EventInterrupt:
			draw()
		case *tcell.EventResize:
			w, h := tev.Size()
			p.Resize(w, h)
			screen.Sync()
			draw()
		case *tcell.EventKey:
			if tev.Key() == tcell.KeyCtrlC {
				return nil
			}
			p.HandleKey(tev)
			if done() {
				return nil
			}
			draw()
		case *tcell.EventMouse:
			if mh, ok := p.(interface{ HandleMouse(*tcell.EventMouse) }); ok {
				mh.HandleMouse(tev)
				draw()
			}
		}
	}
}
