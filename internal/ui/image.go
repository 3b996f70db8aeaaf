// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/ui/image.go
// Summary: Paints an RGBA8 frame with upper-half-block glyphs, two pixels per cell.
// Usage: Bound to the view model's Frame; supports 1:1 panning and fit-to-area.

package ui

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/framegrace/memview/internal/view"
)

const upperHalfBlock = '▀'

// FrameSource supplies the frame to paint. *view.Model satisfies it.
type FrameSource interface {
	Frame() view.Frame
}

var (
	checkerLight = colorful.Color{R: 0.40, G: 0.40, B: 0.40}
	checkerDark  = colorful.Color{R: 0.25, G: 0.25, B: 0.25}
	missingLight = colorful.Color{R: 0.22, G: 0.05, B: 0.05}
	missingDark  = colorful.Color{R: 0.12, G: 0.02, B: 0.02}
)

// Image renders a view.Frame.
//
// Each cell shows two vertically stacked pixels: the foreground colour of
// '▀' is the upper pixel and the background the lower one. Pixels inside
// the image but past the end of a short frame are drawn as a dark red
// checker; cells beyond the image are left in Background.
type Image struct {
	BaseWidget
	Source     FrameSource
	Fit        bool // downscale to the widget instead of 1:1
	Alpha      bool // blend over a checkerboard instead of ignoring alpha
	Background tcell.Style

	panX, panY int // top-left pixel in 1:1 mode; panY is always even
}

func NewImage(x, y, w, h int, src FrameSource) *Image {
	img := &Image{
		Source:     src,
		Background: tcell.StyleDefault.Background(tcell.ColorBlack),
	}
	img.Place(Rect{X: x, Y: y, W: w, H: h})
	img.SetFocusable(true)
	return img
}

// Pan returns the pixel shown in the top-left cell in 1:1 mode.
func (im *Image) Pan() (int, int) { return im.panX, im.panY }

// ResetPan scrolls back to the top-left corner.
func (im *Image) ResetPan() { im.panX, im.panY = 0, 0 }

// Scale returns the nearest-neighbour step used for the given frame: 1 in
// 1:1 mode, otherwise the smallest integer step that fits the widget.
func (im *Image) Scale(f view.Frame) uint64 {
	if !im.Fit || im.Rect.W <= 0 || im.Rect.H <= 0 {
		return 1
	}
	sx := ceilDiv(uint64(f.Width), uint64(im.Rect.W))
	sy := ceilDiv(uint64(f.Height), uint64(im.Rect.H)*2)
	return max(sx, sy, 1)
}

func (im *Image) Draw(p *Painter) {
	p.Fill(im.Rect, ' ', im.Background)
	f := im.Source.Frame()
	im.clampPan(f)
	scale := im.Scale(f)

	for cy := 0; cy < im.Rect.H; cy++ {
		for cx := 0; cx < im.Rect.W; cx++ {
			px, pyTop, inside := im.pixelFor(f, cx, cy*2, scale)
			if !inside {
				continue
			}
			_, pyBottom, bottomInside := im.pixelFor(f, cx, cy*2+1, scale)

			top := im.resolve(f, px, pyTop)
			style := tcell.StyleDefault.Foreground(top)
			if bottomInside {
				style = style.Background(im.resolve(f, px, pyBottom))
			} else {
				_, bg, _ := im.Background.Decompose()
				style = style.Background(bg)
			}
			p.SetCell(im.Rect.X+cx, im.Rect.Y+cy, upperHalfBlock, style)
		}
	}
}

// pixelFor maps cell column cx and pixel row py (relative to the widget)
// to frame coordinates.
func (im *Image) pixelFor(f view.Frame, cx, py int, scale uint64) (int, int, bool) {
	var x, y uint64
	if scale > 1 {
		x, y = uint64(cx)*scale, uint64(py)*scale
	} else {
		x, y = uint64(cx+im.panX), uint64(py+im.panY)
	}
	if x >= uint64(f.Width) || y >= uint64(f.Height) {
		return 0, 0, false
	}
	return int(x), int(y), true
}

func (im *Image) resolve(f view.Frame, x, y int) tcell.Color {
	c, ok := f.PixelAt(x, y)
	if !ok {
		return toTcell(checker(x, y, missingLight, missingDark))
	}
	if !im.Alpha {
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return toTcell(blendOver(c, checker(x, y, checkerLight, checkerDark)))
}

func (im *Image) clampPan(f view.Frame) {
	maxX := max(int64(f.Width)-int64(im.Rect.W), 0)
	maxY := max(int64(f.Height)-int64(im.Rect.H)*2, 0)
	im.panX = int(min(max(int64(im.panX), 0), maxX))
	im.panY = int(min(max(int64(im.panY), 0), maxY)) &^ 1
}

// HandleKey pans in 1:1 mode: arrows move one column or one cell row
// (two pixels), PgUp/PgDn a screenful, Home returns to the origin.
func (im *Image) HandleKey(ev *tcell.EventKey) bool {
	if im.Fit {
		return false
	}
	switch ev.Key() {
	case tcell.KeyLeft:
		im.panX--
	case tcell.KeyRight:
		im.panX++
	case tcell.KeyUp:
		im.panY -= 2
	case tcell.KeyDown:
		im.panY += 2
	case tcell.KeyPgUp:
		im.panY -= im.Rect.H * 2
	case tcell.KeyPgDn:
		im.panY += im.Rect.H * 2
	case tcell.KeyHome:
		im.ResetPan()
	default:
		return false
	}
	im.clampPan(im.Source.Frame())
	return true
}

// HandleMouse pans with the wheel in 1:1 mode.
func (im *Image) HandleMouse(ev *tcell.EventMouse) bool {
	if im.Fit {
		return false
	}
	switch btn := ev.Buttons(); {
	case btn&tcell.WheelUp != 0:
		im.panY -= 2
	case btn&tcell.WheelDown != 0:
		im.panY += 2
	case btn&tcell.WheelLeft != 0:
		im.panX--
	case btn&tcell.WheelRight != 0:
		im.panX++
	default:
		return false
	}
	im.clampPan(im.Source.Frame())
	return true
}

func checker(x, y int, light, dark colorful.Color) colorful.Color {
	if (x/4+y/4)%2 == 0 {
		return light
	}
	return dark
}

// blendOver composites a straight-alpha pixel over bg.
func blendOver(c color.NRGBA, bg colorful.Color) colorful.Color {
	fg := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	return bg.BlendRgb(fg, float64(c.A)/255)
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func ceilDiv(a, b uint64) uint64 {
	if b == 0 {
		return 0
	}
	return a/b + min(a%b, 1)
}
