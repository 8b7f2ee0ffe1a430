package breakout

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

// recorder is a Listener that records events and the ticking state seen at
// the moment the round ended.
type recorder struct {
	s             *Session
	collisions    []Collision
	ends          []Phase
	tickingAtEnd  bool
	phaseAtNotify Phase
}

func (r *recorder) OnCollision(c Collision) {
	r.collisions = append(r.collisions, c)
}

func (r *recorder) OnRoundEnd(p Phase) {
	r.ends = append(r.ends, p)
	r.tickingAtEnd = r.s.Ticking()
	r.phaseAtNotify = r.s.Phase()
}

func newTestSession(t *testing.T, cfg config.BreakoutConfig, seed int64) (*Session, *recorder) {
	t.Helper()
	s := NewSession(cfg, NewSimpleRNG(seed))
	rec := &recorder{s: s}
	s.SetListener(rec)
	return s, rec
}

func TestSessionResetState(t *testing.T) {
	s, _ := newTestSession(t, config.DefaultBreakoutConfig(), 1)

	if s.Phase() != PhaseIdle || s.Ticking() {
		t.Errorf("new session should be idle and not ticking, got %v ticking=%v", s.Phase(), s.Ticking())
	}
	b := s.Ball()
	if b.X != 0.5 || b.Y != 0.3 || b.VY != 0.5 {
		t.Errorf("ball = (%v, %v) vy=%v, expected (0.5, 0.3) vy=0.5", b.X, b.Y, b.VY)
	}
	if b.VX < -0.3 || b.VX > 0.3 {
		t.Errorf("VX = %v outside [-0.3, 0.3]", b.VX)
	}
	if s.Blocks().Len() != 50 {
		t.Errorf("Blocks().Len() = %d, expected 50", s.Blocks().Len())
	}
}

func TestSessionStartStop(t *testing.T) {
	s, _ := newTestSession(t, config.DefaultBreakoutConfig(), 1)

	// Update before Start does nothing
	before := s.Snapshot()
	s.Update(tick)
	after := s.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("Update on an idle session changed state")
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if s.Phase() != PhaseRunning || !s.Ticking() {
		t.Fatalf("after Start: phase=%v ticking=%v", s.Phase(), s.Ticking())
	}

	s.Update(tick)
	if s.Ticks() != 1 {
		t.Errorf("Ticks() = %d, expected 1", s.Ticks())
	}

	s.Stop()
	s.Stop()
	if s.Ticking() || s.Phase() != PhaseRunning {
		t.Errorf("Stop should halt ticking and keep the phase, got %v ticking=%v", s.Phase(), s.Ticking())
	}

	paused := s.Snapshot()
	s.Update(tick)
	stillPaused := s.Snapshot()
	if paused.Hash() != stillPaused.Hash() {
		t.Error("Update while stopped changed state")
	}

	if err := s.Start(); err != nil || !s.Ticking() {
		t.Errorf("Start should resume a stopped round, err=%v", err)
	}
}

func TestSessionWinExactlyOnce(t *testing.T) {
	s, rec := newTestSession(t, config.DefaultBreakoutConfig(), 7)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	for !s.Blocks().IsEmpty() {
		target := s.Blocks().Blocks()[0].Rect
		s.Ball().Launch(target.CenterX()-0.015, target.CenterY()-0.015, 0.1, 0.5)

		before := s.Blocks().Len()
		s.Update(0)
		if got := s.Blocks().Len(); got != before-1 {
			t.Fatalf("block count went %d -> %d, expected exactly one fewer", before, got)
		}
	}

	if s.Phase() != PhaseWon {
		t.Fatalf("Phase() = %v, expected won", s.Phase())
	}
	if len(rec.ends) != 1 || rec.ends[0] != PhaseWon {
		t.Fatalf("round end notifications = %v, expected exactly one won", rec.ends)
	}
	if rec.tickingAtEnd {
		t.Error("session was still ticking when the win was reported")
	}
	if rec.phaseAtNotify != PhaseWon {
		t.Errorf("phase at notify = %v, expected won", rec.phaseAtNotify)
	}
	if s.Destroyed() != 50 {
		t.Errorf("Destroyed() = %d, expected 50", s.Destroyed())
	}

	blocks := 0
	for _, c := range rec.collisions {
		if c.Kind == CollisionBlock {
			blocks++
		}
	}
	if blocks != 50 {
		t.Errorf("block collisions = %d, expected 50", blocks)
	}

	s.Update(tick)
	s.Stop()
	if len(rec.ends) != 1 {
		t.Errorf("extra round end notifications: %v", rec.ends)
	}
	if err := s.Start(); !errors.Is(err, ErrRoundOver) {
		t.Errorf("Start() after win = %v, expected ErrRoundOver", err)
	}
}

// lostScenarioConfig keeps a single block out of the ball's path.
func lostScenarioConfig() config.BreakoutConfig {
	cfg := config.DefaultBreakoutConfig()
	cfg.Blocks.Cols = 1
	cfg.Blocks.Rows = 1
	cfg.Blocks.OriginY = 0.9
	return cfg
}

func TestSessionLostScenario(t *testing.T) {
	s, rec := newTestSession(t, lostScenarioConfig(), 3)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	s.Ball().Launch(0.5, 0.29, 0.1, 0.5)
	// Keep the paddle out of the way
	s.KeyDown(DirLeft)

	for range 600 {
		if s.Phase() != PhaseRunning {
			break
		}
		s.Update(tick)
	}

	if s.Phase() != PhaseLost {
		t.Fatalf("Phase() = %v, expected lost", s.Phase())
	}
	if s.Ticking() {
		t.Error("ticking should stop on loss")
	}
	if len(rec.ends) != 1 || rec.ends[0] != PhaseLost || rec.tickingAtEnd {
		t.Errorf("ends=%v tickingAtEnd=%v, expected one lost after stop", rec.ends, rec.tickingAtEnd)
	}

	snap := s.Snapshot()
	for range 10 {
		s.Update(tick)
	}
	again := s.Snapshot()
	if snap.Hash() != again.Hash() {
		t.Error("Update after loss should be a no-op")
	}
}

func TestSessionResetAfterLoss(t *testing.T) {
	s, rec := newTestSession(t, lostScenarioConfig(), 3)

	for round := range 2 {
		if err := s.Start(); err != nil {
			t.Fatalf("round %d: Start() failed: %v", round, err)
		}
		s.Ball().Launch(0.5, 0.001, 0, -0.5)
		s.Update(tick)
		if s.Phase() != PhaseLost {
			t.Fatalf("round %d: Phase() = %v, expected lost", round, s.Phase())
		}
		s.Reset()
	}

	if len(rec.ends) != 2 {
		t.Errorf("each round should report its own end, got %v", rec.ends)
	}
}

func TestSessionResetIdempotence(t *testing.T) {
	s, _ := newTestSession(t, config.DefaultBreakoutConfig(), 11)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	s.KeyDown(DirRight)
	for range 30 {
		s.Update(tick)
	}

	s.Reset()
	a := s.Snapshot()
	s.Reset()
	b := s.Snapshot()

	if a.Tick != 0 || b.Tick != 0 || a.Phase != int(PhaseIdle) || b.Phase != int(PhaseIdle) {
		t.Errorf("Reset should return to idle at tick 0, got %+v / %+v", a, b)
	}
	if a.Ticking || b.Ticking {
		t.Error("Reset should not start ticking")
	}
	if a.PaddleX != b.PaddleX || a.PaddleTarget != b.PaddleTarget || a.PaddleDir != b.PaddleDir || a.PaddleMode != b.PaddleMode {
		t.Errorf("paddle differs between resets: %+v / %+v", a, b)
	}
	if a.BallX != b.BallX || a.BallY != b.BallY || a.BallVY != b.BallVY {
		t.Errorf("ball differs between resets: %+v / %+v", a, b)
	}
	if a.BlockCount != b.BlockCount || a.Destroyed != 0 || b.Destroyed != 0 {
		t.Errorf("blocks differ between resets: %d / %d", a.BlockCount, b.BlockCount)
	}
	// Positions match; only colours may differ
	for i := 0; i < len(a.BlockData); i += 3 {
		if a.BlockData[i] != b.BlockData[i] || a.BlockData[i+1] != b.BlockData[i+1] {
			t.Fatalf("block %d moved between resets", i/3)
		}
	}
}

func TestSessionPointerGating(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Paddle.Control = config.ControlDrag
	s, _ := newTestSession(t, cfg, 1)

	if s.PointerDown(30, 10, 100, 100) {
		t.Error("press before Start should be ignored")
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	s.Stop()
	if s.PointerDown(30, 10, 100, 100) {
		t.Error("press while paused should be ignored")
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if s.PointerDown(30, 60, 100, 100) {
		t.Error("press in the upper half should be ignored")
	}
	if s.Paddle().Mode() != InputIdle {
		t.Fatal("ignored press changed the paddle")
	}
	if !s.PointerDown(30, 10, 100, 100) {
		t.Fatal("press in the lower half should be taken")
	}
	if s.Paddle().Mode() != InputDragging || !approxEqual(s.Paddle().Target(), 0.25) {
		t.Errorf("mode=%v target=%v, expected dragging toward 0.25", s.Paddle().Mode(), s.Paddle().Target())
	}

	s.PointerMove(60, 100)
	if !approxEqual(s.Paddle().Target(), 0.55) {
		t.Errorf("Target() = %v after move, expected 0.55", s.Paddle().Target())
	}
	s.PointerUp()
	if s.Paddle().Mode() != InputIdle {
		t.Error("PointerUp should release the paddle")
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func(seed int64) uint64 {
		s := NewSession(config.DefaultBreakoutConfig(), NewSimpleRNG(seed))
		pilot := NewAutopilot(1)
		_ = s.Start()
		for range 1200 {
			pilot.Steer(s)
			s.Update(tick)
		}
		snap := s.Snapshot()
		return snap.Hash()
	}

	if run(42) != run(42) {
		t.Error("same seed produced different rounds")
	}
	if run(42) == run(43) {
		t.Error("different seeds produced identical rounds")
	}
}

func TestSessionReseedMatchesFreshSession(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	s := NewSession(cfg, NewSimpleRNG(1))
	_ = s.Start()
	for range 30 {
		s.Update(tick)
	}

	s.Reseed(9)
	s.Reset()
	fresh := NewSession(cfg, NewSimpleRNG(9))

	if got, want := s.Snapshot(), fresh.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("reseeded session = %+v, expected %+v", got, want)
	}
}

func TestSessionInvalidConfigFallsBack(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Blocks.Width = 0
	s := NewSession(cfg, nil)
	if s.Blocks().Len() != 50 {
		t.Errorf("invalid config should fall back to defaults, got %d blocks", s.Blocks().Len())
	}
	if s.Config().Blocks.Width != 0.08 {
		t.Errorf("Config().Blocks.Width = %v, expected 0.08", s.Config().Blocks.Width)
	}
}
