// Package core provides fundamental types and utilities for the breakout game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect is an axis-aligned box in normalized play-field coordinates.
// X, Y is the bottom-left corner; y grows upward (0 = bottom of the field).
type Rect struct {
	X, Y float64 // Bottom-left corner
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Left returns the x-coordinate of the left edge.
func (r Rect) Left() float64 {
	return r.X
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y
}

// Top returns the y-coordinate of the top edge.
func (r Rect) Top() float64 {
	return r.Y + r.H
}

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 {
	return r.X + r.W/2
}

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 {
	return r.Y + r.H/2
}

// Overlaps returns true if the two rectangles share a non-zero area.
// Rectangles that only touch along an edge do not overlap.
func Overlaps(a, b Rect) bool {
	if a.Right() <= b.Left() || b.Right() <= a.Left() {
		return false
	}
	if a.Top() <= b.Bottom() || b.Top() <= a.Bottom() {
		return false
	}
	return true
}

// Axis selects which velocity component a collision reflects.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// String returns the axis name.
func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// ReflectAxis picks the axis to reflect a moving rectangle on after it
// entered other. The leading edge in the direction of travel is compared
// against the facing edge of other, each normalized by other's size; the
// smaller relative penetration wins, ties reflect on Y.
//
// This is a per-tick heuristic, not a time-of-impact solve. A degenerate
// other (zero width or height) always reflects on Y.
func ReflectAxis(moving, other Rect, vx, vy float64) Axis {
	if other.W <= 0 || other.H <= 0 {
		return AxisY
	}

	var yDepth float64
	if vy > 0 {
		yDepth = moving.Top() - other.Bottom()
	} else {
		yDepth = other.Top() - moving.Bottom()
	}

	var xDepth float64
	if vx > 0 {
		xDepth = moving.Right() - other.Left()
	} else {
		xDepth = other.Right() - moving.Left()
	}

	if xDepth/other.W < yDepth/other.H {
		return AxisX
	}
	return AxisY
}

// ClampF restricts val to [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	return min(max(val, lo), hi)
}
