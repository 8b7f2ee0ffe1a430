package breakout

import "math"

// Snapshot contains the complete round state for replay checks and the
// determinism tests. Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick      uint64
	Phase     int
	Ticking   bool
	Destroyed int

	PaddleX      float64
	PaddleTarget float64
	PaddleMode   int
	PaddleDir    int

	BallX, BallY   float64
	BallVX, BallVY float64

	// Live blocks, 3 values each: X, Y, Color
	BlockCount int
	BlockData  []float64

	// RNG state when the session uses a SimpleRNG
	RNGState uint64
}

// Snapshot returns the current round state.
func (s *Session) Snapshot() Snapshot {
	blocks := s.blocks.Blocks()
	blockData := make([]float64, 0, len(blocks)*3)
	for _, b := range blocks {
		blockData = append(blockData, b.Rect.X, b.Rect.Y, float64(b.Color))
	}

	snap := Snapshot{
		Tick:      uint64(s.ticks), //#nosec G115 -- tick count is always positive
		Phase:     int(s.phase),
		Ticking:   s.ticking,
		Destroyed: s.destroyed,

		PaddleX:      s.paddle.position,
		PaddleTarget: s.paddle.target,
		PaddleMode:   int(s.paddle.mode),
		PaddleDir:    int(s.paddle.dir),

		BallX:  s.ball.X,
		BallY:  s.ball.Y,
		BallVX: s.ball.VX,
		BallVY: s.ball.VY,

		BlockCount: len(blocks),
		BlockData:  blockData,
	}
	if rng, ok := s.rng.(*SimpleRNG); ok {
		snap.RNGState = rng.State()
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Destroyed)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PaddleMode) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PaddleDir)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BlockCount) //#nosec G115 -- hash computation
	if snap.Ticking {
		h = h*31 + 1
	}

	for _, v := range []float64{
		snap.PaddleX, snap.PaddleTarget,
		snap.BallX, snap.BallY, snap.BallVX, snap.BallVY,
	} {
		h = h*31 + math.Float64bits(v)
	}

	for _, v := range snap.BlockData {
		h = h*31 + math.Float64bits(v)
	}

	h = h*31 + snap.RNGState

	return h
}
