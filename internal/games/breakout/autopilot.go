package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Autopilot steers the paddle toward the ball for headless play.
type Autopilot struct {
	// Skill in (0, 1]: the autopilot only reacts once the ball has dropped
	// below this height while falling. 1 tracks the ball everywhere.
	Skill float64

	// DeadZone is how far off-centre the ball may be before directional
	// control starts moving.
	DeadZone float64
}

// NewAutopilot creates an autopilot with the given skill.
func NewAutopilot(skill float64) *Autopilot {
	return &Autopilot{
		Skill:    core.ClampF(skill, 0.05, 1),
		DeadZone: 0.01,
	}
}

// Steer feeds one tick of input to s, using the same entry points a host
// would.
func (a *Autopilot) Steer(s *Session) {
	if s.Phase() != PhaseRunning {
		return
	}

	ball := s.Ball().Rect()
	paddle := s.Paddle()

	// Only chase a falling ball once it is low enough
	if s.Ball().VY > 0 || ball.Bottom() > a.Skill {
		if paddle.Control() != config.ControlDrag {
			s.KeyUp()
		}
		return
	}

	aim := ball.CenterX()
	if paddle.Control() == config.ControlDrag {
		if paddle.Mode() != InputDragging {
			s.PointerDown(aim, 0, 1, 1)
			return
		}
		s.PointerMove(aim, 1)
		return
	}

	diff := aim - paddle.Rect().CenterX()
	switch {
	case diff > a.DeadZone:
		s.KeyDown(DirRight)
	case diff < -a.DeadZone:
		s.KeyDown(DirLeft)
	default:
		s.KeyUp()
	}
}
