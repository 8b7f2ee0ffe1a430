package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty resolves a CLI value; the empty string means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
}

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Paddle.Width = 0.14
		cfg.Ball.SpeedY = 0.4
		cfg.Ball.SpreadX = 0.2
	case DifficultyHard:
		cfg.Paddle.Width = 0.08
		cfg.Ball.SpeedY = 0.65
		cfg.Ball.Deflection = 0.15
	}
}

// Layout is a named paddle tuning. The canonical layout keeps the paddle
// fully inside the field; the others reproduce alternative tunings.
type Layout string

const (
	LayoutClassic Layout = "classic" // bounds [0, 1-w], speed 1.5
	LayoutMobile  Layout = "mobile"  // bounds [-0.02, 0.92], speed 1.5
	LayoutRelaxed Layout = "relaxed" // bounds [0, 1-w], speed 0.5
)

// ParseLayout resolves a CLI value; the empty string means classic.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case "", LayoutClassic:
		return LayoutClassic, nil
	case LayoutMobile, LayoutRelaxed:
		return Layout(s), nil
	}
	return "", fmt.Errorf("unknown layout %q (want classic, mobile or relaxed)", s)
}

// ApplyLayout modifies the paddle tuning for a layout.
func ApplyLayout(cfg *BreakoutConfig, layout Layout) {
	switch layout {
	case LayoutMobile:
		cfg.Paddle.Overhang = 0.02
		cfg.Paddle.Speed = 1.5
	case LayoutRelaxed:
		cfg.Paddle.Overhang = 0
		cfg.Paddle.Speed = 0.5
	}
}
