// Package config provides YAML/TOML game configuration loading, validation
// and presets for the breakout game.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a configuration cannot drive a simulation.
var ErrInvalidConfig = errors.New("invalid config")

// Paddle control modes.
const (
	ControlDirectional = "directional"
	ControlDrag        = "drag"
)

// BreakoutConfig contains all configuration for the breakout game.
type BreakoutConfig struct {
	Paddle PaddleConfig `yaml:"paddle" toml:"paddle"`
	Ball   BallConfig   `yaml:"ball" toml:"ball"`
	Blocks BlocksConfig `yaml:"blocks" toml:"blocks"`
	Input  InputConfig  `yaml:"input" toml:"input"`
}

// PaddleConfig defines the player's paddle.
type PaddleConfig struct {
	Control        string  `yaml:"control" toml:"control"`
	Width          float64 `yaml:"width" toml:"width"`
	Height         float64 `yaml:"height" toml:"height"`
	Y              float64 `yaml:"y" toml:"y"`
	Responsiveness float64 `yaml:"responsiveness" toml:"responsiveness"`
	Speed          float64 `yaml:"speed" toml:"speed"`
	Overhang       float64 `yaml:"overhang" toml:"overhang"`
}

// BallConfig defines the ball and its launch.
type BallConfig struct {
	Size       float64 `yaml:"size" toml:"size"`
	StartX     float64 `yaml:"start_x" toml:"start_x"`
	StartY     float64 `yaml:"start_y" toml:"start_y"`
	SpeedY     float64 `yaml:"speed_y" toml:"speed_y"`
	SpreadX    float64 `yaml:"spread_x" toml:"spread_x"`
	Deflection float64 `yaml:"deflection" toml:"deflection"`
}

// BlocksConfig defines the block grid built on every reset.
type BlocksConfig struct {
	Cols    int      `yaml:"cols" toml:"cols"`
	Rows    int      `yaml:"rows" toml:"rows"`
	Width   float64  `yaml:"width" toml:"width"`
	Height  float64  `yaml:"height" toml:"height"`
	OriginX float64  `yaml:"origin_x" toml:"origin_x"`
	OriginY float64  `yaml:"origin_y" toml:"origin_y"`
	StepX   float64  `yaml:"step_x" toml:"step_x"`
	StepY   float64  `yaml:"step_y" toml:"step_y"`
	Palette []string `yaml:"palette" toml:"palette"`
}

// InputConfig defines how host input reaches the paddle.
type InputConfig struct {
	ControlRegion   float64 `yaml:"control_region" toml:"control_region"`
	KeyReleaseTicks int     `yaml:"key_release_ticks" toml:"key_release_ticks"`
}

// Validate checks that every size the simulation divides by is positive and
// that the paddle fits inside the field.
func (c BreakoutConfig) Validate() error {
	checks := []struct {
		name string
		val  float64
	}{
		{"paddle.width", c.Paddle.Width},
		{"paddle.height", c.Paddle.Height},
		{"paddle.responsiveness", c.Paddle.Responsiveness},
		{"paddle.speed", c.Paddle.Speed},
		{"ball.size", c.Ball.Size},
		{"ball.speed_y", c.Ball.SpeedY},
		{"blocks.width", c.Blocks.Width},
		{"blocks.height", c.Blocks.Height},
	}
	for _, ch := range checks {
		if ch.val <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidConfig, ch.name, ch.val)
		}
	}

	if c.Paddle.Width >= 1 {
		return fmt.Errorf("%w: paddle.width must be below 1, got %g", ErrInvalidConfig, c.Paddle.Width)
	}
	if c.Paddle.Overhang < 0 {
		return fmt.Errorf("%w: paddle.overhang must not be negative", ErrInvalidConfig)
	}
	if c.Ball.SpreadX < 0 {
		return fmt.Errorf("%w: ball.spread_x must not be negative", ErrInvalidConfig)
	}
	if c.Blocks.Cols <= 0 || c.Blocks.Rows <= 0 {
		return fmt.Errorf("%w: blocks grid must be at least 1x1, got %dx%d",
			ErrInvalidConfig, c.Blocks.Cols, c.Blocks.Rows)
	}
	if len(c.Blocks.Palette) == 0 {
		return fmt.Errorf("%w: blocks.palette is empty", ErrInvalidConfig)
	}

	switch c.Paddle.Control {
	case ControlDirectional, ControlDrag:
	default:
		return fmt.Errorf("%w: unknown paddle.control %q", ErrInvalidConfig, c.Paddle.Control)
	}

	if c.Input.ControlRegion <= 0 || c.Input.ControlRegion > 1 {
		return fmt.Errorf("%w: input.control_region must be in (0, 1], got %g",
			ErrInvalidConfig, c.Input.ControlRegion)
	}
	return nil
}
