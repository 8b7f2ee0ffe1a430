package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the canonical breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Paddle: PaddleConfig{
			Control:        ControlDirectional,
			Width:          0.10,
			Height:         0.05,
			Y:              0.05,
			Responsiveness: 8.0,
			Speed:          1.5,
			Overhang:       0,
		},
		Ball: BallConfig{
			Size:       0.03,
			StartX:     0.5,
			StartY:     0.3,
			SpeedY:     0.5,
			SpreadX:    0.3,
			Deflection: 0.1,
		},
		Blocks: BlocksConfig{
			Cols:    10,
			Rows:    5,
			Width:   0.08,
			Height:  0.06,
			OriginX: 0.05,
			OriginY: 0.6,
			StepX:   0.09,
			StepY:   0.08,
			Palette: []string{"orange", "green", "blue", "pink", "purple", "yellow"},
		},
		Input: InputConfig{
			ControlRegion:   0.5,
			KeyReleaseTicks: 30,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultBreakoutYAML
}
