package core

// DefaultTickRate is used when a RuntimeConfig leaves TickRate at zero.
const DefaultTickRate = 60

// RuntimeConfig is what a host tells a game when it (re)starts a round.
type RuntimeConfig struct {
	ScreenW  int   // Host width in cells or pixels
	ScreenH  int   // Host height in cells or pixels
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; hosts replace 0 with a time-based seed
}

// TickSeconds returns the fixed simulation step in seconds.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / DefaultTickRate
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the host-facing summary of a round.
type GameState struct {
	Score    int    // Blocks destroyed this round
	GameOver bool   // The round has ended
	Won      bool   // The round ended with a cleared field
	Paused   bool
	Ticks    int    // Simulation ticks run this round
	Phase    string // Session phase name
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
	Ended bool // This step ended the round
}
