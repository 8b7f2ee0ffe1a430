package breakout

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func newTestPaddle(control string) *Paddle {
	cfg := config.DefaultBreakoutConfig().Paddle
	cfg.Control = control
	return NewPaddle(cfg)
}

func TestPaddleStartsCentered(t *testing.T) {
	p := newTestPaddle(config.ControlDirectional)
	if !approxEqual(p.Position(), 0.45) {
		t.Errorf("Position() = %v, expected 0.45", p.Position())
	}
	if p.Mode() != InputIdle || p.Direction() != DirNone {
		t.Errorf("new paddle should be idle, got mode=%v dir=%v", p.Mode(), p.Direction())
	}
}

func TestPaddleDragEasing(t *testing.T) {
	p := newTestPaddle(config.ControlDrag)
	p.position = 0.5

	// Pointer at 35% of the field puts the target at 0.35 - 0.05
	p.BeginInput(35, 100)
	if !approxEqual(p.Target(), 0.3) {
		t.Fatalf("Target() = %v, expected 0.3", p.Target())
	}
	if p.Mode() != InputDragging {
		t.Fatalf("Mode() = %v, expected dragging", p.Mode())
	}

	p.Update(0.1)
	if !approxEqual(p.Position(), 0.34) {
		t.Errorf("Position() = %v, expected 0.34", p.Position())
	}
}

func TestPaddleDragMoveAndRelease(t *testing.T) {
	p := newTestPaddle(config.ControlDrag)

	// Move before any press is ignored
	p.MoveInput(90, 100)
	if !approxEqual(p.Target(), 0.45) {
		t.Errorf("MoveInput without a press changed target to %v", p.Target())
	}

	p.BeginInput(50, 100)
	p.MoveInput(80, 100)
	if !approxEqual(p.Target(), 0.75) {
		t.Errorf("Target() = %v, expected 0.75", p.Target())
	}

	p.Update(0.05)
	stopped := p.Position()
	p.EndInput()
	p.Update(0.05)
	if p.Position() != stopped {
		t.Errorf("paddle moved after release: %v -> %v", stopped, p.Position())
	}
	if p.Mode() != InputIdle {
		t.Errorf("Mode() = %v, expected idle after release", p.Mode())
	}
}

func TestPaddleDirectionalPointerSide(t *testing.T) {
	tests := []struct {
		name     string
		pointerX float64
		expected Direction
	}{
		{"left of centre", 20, DirLeft},
		{"right of centre", 80, DirRight},
		{"beyond left edge", -30, DirLeft},
		{"beyond right edge", 400, DirRight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPaddle(config.ControlDirectional)
			p.BeginInput(tc.pointerX, 100)
			if p.Direction() != tc.expected {
				t.Errorf("Direction() = %v, expected %v", p.Direction(), tc.expected)
			}
			p.EndInput()
			if p.Direction() != DirNone {
				t.Errorf("Direction() after release = %v, expected none", p.Direction())
			}
		})
	}
}

func TestPaddleDirectionalSpeed(t *testing.T) {
	p := newTestPaddle(config.ControlDirectional)
	p.KeyInput(DirRight)
	p.Update(0.1)
	if !approxEqual(p.Position(), 0.6) {
		t.Errorf("Position() = %v, expected 0.6", p.Position())
	}

	p.KeyInput(DirNone)
	p.Update(0.1)
	if !approxEqual(p.Position(), 0.6) {
		t.Errorf("released paddle moved to %v", p.Position())
	}
}

func TestPaddleKeysIgnoredInDrag(t *testing.T) {
	p := newTestPaddle(config.ControlDrag)
	p.KeyInput(DirLeft)
	p.Update(0.5)
	if p.Direction() != DirNone || !approxEqual(p.Position(), 0.45) {
		t.Errorf("drag paddle reacted to keys: dir=%v pos=%v", p.Direction(), p.Position())
	}
}

func TestPaddleBoundsInvariant(t *testing.T) {
	for _, control := range []string{config.ControlDrag, config.ControlDirectional} {
		t.Run(control, func(t *testing.T) {
			p := newTestPaddle(control)
			lo, hi := p.Bounds()
			if lo != 0 || !approxEqual(hi, 0.9) {
				t.Fatalf("Bounds() = [%v, %v], expected [0, 0.9]", lo, hi)
			}

			rng := NewSimpleRNG(99)
			for i := range 5000 {
				switch rng.Intn(5) {
				case 0:
					p.BeginInput(Uniform(rng, -50, 150), 100)
				case 1:
					p.MoveInput(Uniform(rng, -50, 150), 100)
				case 2:
					p.EndInput()
				case 3:
					p.KeyInput(Direction(rng.Intn(3)))
				}
				p.Update(Uniform(rng, 0, 0.5))

				if p.Position() < lo || p.Position() > hi {
					t.Fatalf("step %d: position %v outside [%v, %v]", i, p.Position(), lo, hi)
				}
				if p.Target() < lo || p.Target() > hi {
					t.Fatalf("step %d: target %v outside [%v, %v]", i, p.Target(), lo, hi)
				}
			}
		})
	}
}

func TestPaddleOverhang(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	config.ApplyLayout(&cfg, config.LayoutMobile)
	p := NewPaddle(cfg.Paddle)

	p.KeyInput(DirLeft)
	for range 100 {
		p.Update(1.0 / 60)
	}
	if !approxEqual(p.Position(), -0.02) {
		t.Errorf("Position() = %v, expected -0.02", p.Position())
	}

	p.KeyInput(DirRight)
	for range 100 {
		p.Update(1.0 / 60)
	}
	if !approxEqual(p.Position(), 0.92) {
		t.Errorf("Position() = %v, expected 0.92", p.Position())
	}
}

func TestPaddleZeroFieldWidth(t *testing.T) {
	p := newTestPaddle(config.ControlDrag)
	p.BeginInput(10, 0)
	if p.Mode() != InputIdle {
		t.Error("zero-width field should be ignored")
	}
}
