package breakout

import (
	"errors"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Phase is the round state.
type Phase int

const (
	PhaseIdle    Phase = iota // Reset, waiting for Start
	PhaseRunning              // Round in progress
	PhaseWon                  // Every block destroyed
	PhaseLost                 // Ball fell below the field
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends the round.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// ErrRoundOver is returned by Start after the round has ended.
var ErrRoundOver = errors.New("breakout: round is over, reset first")

// CollisionKind identifies what the ball hit.
type CollisionKind int

const (
	CollisionWall CollisionKind = iota
	CollisionPaddle
	CollisionBlock
)

// String returns the collision kind name.
func (k CollisionKind) String() string {
	switch k {
	case CollisionWall:
		return "wall"
	case CollisionPaddle:
		return "paddle"
	case CollisionBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Collision is reported to the Listener for every bounce.
type Collision struct {
	Kind  CollisionKind
	Block Block // Set for CollisionBlock
}

// Listener receives session events. Calls happen on the goroutine that
// calls Session.Update.
type Listener interface {
	OnCollision(c Collision)
	OnRoundEnd(p Phase)
}

// Session owns the paddle, ball and block field of one game and runs the
// round state machine. It is not safe for concurrent use; hosts deliver
// input on the goroutine that calls Update.
type Session struct {
	cfg    config.BreakoutConfig
	rng    Rand
	bounds core.Rect

	paddle *Paddle
	ball   *Ball
	blocks *BlockField

	phase     Phase
	ticking   bool
	ended     bool // terminal signal already emitted this round
	destroyed int
	ticks     int

	listener Listener
}

// NewSession creates a session and resets it. An invalid config falls back
// to the defaults; a nil rng uses a SimpleRNG seeded with 1.
func NewSession(cfg config.BreakoutConfig, rng Rand) *Session {
	if cfg.Validate() != nil {
		cfg = config.DefaultBreakoutConfig()
	}
	if rng == nil {
		rng = NewSimpleRNG(1)
	}

	s := &Session{
		cfg:    cfg,
		rng:    rng,
		bounds: core.NewRect(0, 0, 1, 1),
		paddle: NewPaddle(cfg.Paddle),
		ball:   NewBall(cfg.Ball),
		blocks: NewBlockField(cfg.Blocks),
	}
	s.Reset()
	return s
}

// SetListener installs l as the event receiver. Pass nil to remove it.
func (s *Session) SetListener(l Listener) {
	s.listener = l
}

// Reset starts a new round: fresh ball launch, centred paddle with no held
// input, a full block grid. The session is left Idle and not ticking.
func (s *Session) Reset() {
	s.Stop()

	spread := s.cfg.Ball.SpreadX
	s.ball.Launch(
		s.cfg.Ball.StartX,
		s.cfg.Ball.StartY,
		Uniform(s.rng, -spread, spread),
		s.cfg.Ball.SpeedY,
	)
	s.paddle.Reset()
	s.blocks.Reset(s.rng)

	s.phase = PhaseIdle
	s.ended = false
	s.destroyed = 0
	s.ticks = 0
}

// Reseed points the random source at a new seed. The next Reset draws
// from it, so Reseed followed by Reset matches a fresh session.
func (s *Session) Reseed(seed int64) {
	if r, ok := s.rng.(*SimpleRNG); ok {
		r.Reseed(seed)
		return
	}
	s.rng = NewSimpleRNG(seed)
}

// Start begins or resumes ticking. Starting a finished round returns
// ErrRoundOver.
func (s *Session) Start() error {
	switch s.phase {
	case PhaseIdle:
		s.phase = PhaseRunning
	case PhaseWon, PhaseLost:
		return ErrRoundOver
	}
	s.ticking = true
	return nil
}

// Stop halts ticking without touching entity state. Safe to call at any time.
func (s *Session) Stop() {
	s.ticking = false
}

// Update advances the round by dt seconds. It does nothing unless the round
// is running and ticking.
func (s *Session) Update(dt float64) {
	if s.phase != PhaseRunning || !s.ticking {
		return
	}
	s.ticks++

	ev := s.ball.Update(dt, FieldContext{
		Bounds: s.bounds,
		Paddle: s.paddle.Rect(),
		Blocks: s.blocks,
	})
	s.report(ev)
	if ev.Lost {
		s.finish(PhaseLost)
		return
	}

	s.paddle.Update(dt)

	if s.blocks.IsEmpty() {
		s.finish(PhaseWon)
	}
}

func (s *Session) report(ev BallEvents) {
	if ev.Block != nil {
		s.destroyed++
	}
	if s.listener == nil {
		return
	}
	for range ev.Walls {
		s.listener.OnCollision(Collision{Kind: CollisionWall})
	}
	if ev.Paddle {
		s.listener.OnCollision(Collision{Kind: CollisionPaddle})
	}
	if ev.Block != nil {
		s.listener.OnCollision(Collision{Kind: CollisionBlock, Block: *ev.Block})
	}
}

// finish moves to a terminal phase, stops ticking, then notifies once.
func (s *Session) finish(p Phase) {
	if s.ended {
		return
	}
	s.ended = true
	s.phase = p
	s.Stop()
	if s.listener != nil {
		s.listener.OnRoundEnd(p)
	}
}

// PointerDown starts a paddle gesture. y is measured upward from the field
// bottom; presses above the control region or while the round is not
// running or is paused are ignored. Reports whether the press was taken.
func (s *Session) PointerDown(x, y, fieldW, fieldH float64) bool {
	if s.phase != PhaseRunning || !s.ticking || fieldH <= 0 {
		return false
	}
	if y/fieldH >= s.cfg.Input.ControlRegion {
		return false
	}
	s.paddle.BeginInput(x, fieldW)
	return true
}

// PointerMove forwards a drag sample to the paddle.
func (s *Session) PointerMove(x, fieldW float64) {
	s.paddle.MoveInput(x, fieldW)
}

// PointerUp releases the paddle gesture.
func (s *Session) PointerUp() {
	s.paddle.EndInput()
}

// KeyDown holds a direction.
func (s *Session) KeyDown(d Direction) {
	s.paddle.KeyInput(d)
}

// KeyUp releases the held direction.
func (s *Session) KeyUp() {
	s.paddle.KeyInput(DirNone)
}

// HandlePointer routes a host pointer event.
func (s *Session) HandlePointer(ev core.PointerEvent) {
	switch ev.Kind {
	case core.PointerDown:
		s.PointerDown(ev.X, ev.Y, ev.FieldW, ev.FieldH)
	case core.PointerMove:
		s.PointerMove(ev.X, ev.FieldW)
	case core.PointerUp:
		s.PointerUp()
	}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Ticking reports whether the host should keep calling Update.
func (s *Session) Ticking() bool { return s.ticking }

// Paddle returns the paddle for reading.
func (s *Session) Paddle() *Paddle { return s.paddle }

// Ball returns the ball for reading.
func (s *Session) Ball() *Ball { return s.ball }

// Blocks returns the block field for reading.
func (s *Session) Blocks() *BlockField { return s.blocks }

// Destroyed returns the number of blocks destroyed this round.
func (s *Session) Destroyed() int { return s.destroyed }

// Ticks returns the number of updates run this round.
func (s *Session) Ticks() int { return s.ticks }

// Config returns the session configuration.
func (s *Session) Config() config.BreakoutConfig { return s.cfg }
