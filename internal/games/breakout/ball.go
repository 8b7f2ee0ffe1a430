package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// FieldContext is what the ball needs to see of the play field during one
// update: the field bounds, the paddle rectangle and the block field.
type FieldContext struct {
	Bounds core.Rect
	Paddle core.Rect
	Blocks *BlockField
}

// Ball is the bouncing ball. X, Y is the bottom-left corner; velocity is in
// field units per second.
type Ball struct {
	X, Y   float64
	VX, VY float64
	Size   float64

	deflection float64
}

// BallEvents reports what happened to the ball during one update.
type BallEvents struct {
	Walls  int    // Number of wall reflections
	Lost   bool   // Ball fell below the field
	Paddle bool   // Ball bounced off the paddle
	Block  *Block // Block destroyed this tick, if any
}

// NewBall creates a ball sized from config. Call Launch before use.
func NewBall(cfg config.BallConfig) *Ball {
	return &Ball{Size: cfg.Size, deflection: cfg.Deflection}
}

// Launch places the ball at (x, y) with the given velocity.
func (b *Ball) Launch(x, y, vx, vy float64) {
	b.X, b.Y = x, y
	b.VX, b.VY = vx, vy
}

// Rect returns the ball's bounding box.
func (b *Ball) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.Size, b.Size)
}

// Update integrates the ball by dt seconds and resolves collisions in order:
// walls, bottom-out, paddle, blocks. Bottom-out returns immediately with
// Lost set; the session decides what that means.
func (b *Ball) Update(dt float64, field FieldContext) BallEvents {
	var ev BallEvents

	b.X += b.VX * dt
	b.Y += b.VY * dt

	r := b.Rect()
	bounds := field.Bounds

	// Each wall forces a sign, so repeated hits cannot trap the ball outside.
	if r.Right() > bounds.Right() {
		b.VX = -math.Abs(b.VX)
		ev.Walls++
	}
	if r.Left() < bounds.Left() {
		b.VX = math.Abs(b.VX)
		ev.Walls++
	}
	if r.Top() > bounds.Top() {
		b.VY = -math.Abs(b.VY)
		ev.Walls++
	}
	if r.Bottom() < bounds.Bottom() {
		ev.Lost = true
		return ev
	}

	if core.Overlaps(r, field.Paddle) {
		b.VY = math.Abs(b.VY)
		if field.Paddle.W > 0 {
			b.VX += b.deflection * ((r.CenterX() - field.Paddle.CenterX()) / field.Paddle.W)
		}
		ev.Paddle = true
	}

	if field.Blocks != nil {
		if idx, ok := field.Blocks.Query(r); ok {
			blk := field.Blocks.Resolve(b, idx)
			ev.Block = &blk
		}
	}

	return ev
}
