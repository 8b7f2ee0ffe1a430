// Package view maps between the normalized breakout field and window
// pixels, and turns sampled device state into input frames. It has no
// graphics dependency so the window host's logic can be tested headless.
package view

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// HUDHeight is the strip above the field that holds the score line.
const HUDHeight = 24

// Layout is the window size in pixels. The field fills everything below
// the HUD strip.
type Layout struct {
	W, H int
}

// FieldHeight returns the field height in pixels.
func (l Layout) FieldHeight() int {
	return max(0, l.H-HUDHeight)
}

// Pointer converts a window pixel (top-left origin) into a field event.
// Y is flipped so it grows upward from the field bottom.
func (l Layout) Pointer(kind core.PointerKind, x, y int) core.PointerEvent {
	return core.PointerEvent{
		Kind:   kind,
		X:      float64(x),
		Y:      float64(l.H - y),
		FieldW: float64(l.W),
		FieldH: float64(l.FieldHeight()),
	}
}

// Rect maps a normalized field rect to a pixel rect with a top-left origin.
func (l Layout) Rect(r core.Rect) (x, y, w, h float32) {
	fw := float32(l.W)
	fh := float32(l.FieldHeight())
	x = float32(r.Left()) * fw
	y = HUDHeight + float32(1-r.Top())*fh
	w = float32(r.W) * fw
	h = float32(r.H) * fh
	return x, y, w, h
}

// Controls is the raw device state sampled once per frame.
type Controls struct {
	Left, Right bool
	Pause       bool
	Restart     bool
	Confirm     bool
	Pointer     bool // Mouse button or touch held
	X, Y        int  // Pointer position in window pixels
}

func (c Controls) direction() core.Action {
	switch {
	case c.Left && !c.Right:
		return core.ActionLeft
	case c.Right && !c.Left:
		return core.ActionRight
	}
	return core.ActionNone
}

// Translate turns two consecutive samples into an input frame. Held
// direction keys repeat every frame and releasing them sends ActionStop.
// Toggle keys fire on the press edge only.
func Translate(prev, cur Controls, l Layout) core.InputFrame {
	in := core.NewInputFrame()

	if dir := cur.direction(); dir != core.ActionNone {
		in.Set(dir)
	} else if prev.direction() != core.ActionNone {
		in.Set(core.ActionStop)
	}

	if cur.Pause && !prev.Pause {
		in.Set(core.ActionPause)
	}
	if cur.Restart && !prev.Restart {
		in.Set(core.ActionRestart)
	}
	if cur.Confirm && !prev.Confirm {
		in.Set(core.ActionConfirm)
	}

	switch {
	case cur.Pointer && !prev.Pointer:
		in.AddPointer(l.Pointer(core.PointerDown, cur.X, cur.Y))
	case cur.Pointer && (cur.X != prev.X || cur.Y != prev.Y):
		in.AddPointer(l.Pointer(core.PointerMove, cur.X, cur.Y))
	case !cur.Pointer && prev.Pointer:
		in.AddPointer(l.Pointer(core.PointerUp, prev.X, prev.Y))
	}

	return in
}

// Pressed reports whether the frame carries a pointer press.
func Pressed(in core.InputFrame) bool {
	for _, ev := range in.Pointer {
		if ev.Kind == core.PointerDown {
			return true
		}
	}
	return false
}

var palette = map[core.Color]color.RGBA{
	core.ColorRed:           colornames.Crimson,
	core.ColorGreen:         colornames.Limegreen,
	core.ColorYellow:        colornames.Gold,
	core.ColorBlue:          colornames.Dodgerblue,
	core.ColorMagenta:       colornames.Magenta,
	core.ColorCyan:          colornames.Darkturquoise,
	core.ColorWhite:         colornames.Whitesmoke,
	core.ColorBrightRed:     colornames.Red,
	core.ColorBrightGreen:   colornames.Lime,
	core.ColorBrightYellow:  colornames.Yellow,
	core.ColorBrightBlue:    colornames.Deepskyblue,
	core.ColorBrightMagenta: colornames.Violet,
	core.ColorBrightCyan:    colornames.Cyan,
	core.ColorBrightWhite:   colornames.White,
	core.ColorOrange:        colornames.Darkorange,
	core.ColorGray:          colornames.Gray,
	core.ColorPink:          colornames.Hotpink,
	core.ColorPurple:        colornames.Mediumpurple,
}

// Color returns the window colour for a cell colour. Unknown colours draw
// white.
func Color(c core.Color) color.RGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return colornames.White
}

// Background is the window fill colour.
var Background = colornames.Midnightblue
