// Package loop drives a game at a fixed tick rate without a terminal or a
// window. Input arrives on a channel and is merged into the next tick's
// frame, so the game itself is only touched from the Run goroutine.
package loop

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// ErrTickLimit is returned when MaxTicks elapse before the round ends.
var ErrTickLimit = errors.New("loop: tick limit reached")

// Stepper is the part of registry.Game the runner needs.
type Stepper interface {
	Step(in core.InputFrame) core.StepResult
}

// Runner runs one round of a Stepper.
type Runner struct {
	TickRate int                    // Ticks per second when Paced
	Paced    bool                   // Wait for real time between ticks
	MaxTicks int                    // Give up after this many ticks; 0 means no limit
	Input    <-chan core.InputFrame // Optional input source
	OnTick   func(core.StepResult)  // Optional per-tick callback
	Logger   *log.Logger            // Optional
}

// Run steps g until its round ends, ctx is done or MaxTicks elapse. It
// returns the last state seen.
func (r *Runner) Run(ctx context.Context, g Stepper) (core.GameState, error) {
	if r.Paced {
		return r.runPaced(ctx, g)
	}
	return r.runFast(ctx, g)
}

func (r *Runner) interval() time.Duration {
	rate := r.TickRate
	if rate <= 0 {
		rate = core.DefaultTickRate
	}
	return time.Second / time.Duration(rate)
}

func (r *Runner) runPaced(ctx context.Context, g Stepper) (core.GameState, error) {
	ticker := time.NewTicker(r.interval())
	defer ticker.Stop()

	pending := core.NewInputFrame()
	var state core.GameState
	ticks := 0

	for {
		select {
		case <-ctx.Done():
			r.debug("runner stopped", "ticks", ticks, "reason", ctx.Err())
			return state, ctx.Err()

		case in, ok := <-r.Input:
			if !ok {
				r.Input = nil
				continue
			}
			pending.Merge(in)

		case <-ticker.C:
			state = r.step(g, pending)
			pending.Clear()
			ticks++
			if done, err := r.finished(state, ticks); done {
				return state, err
			}
		}
	}
}

func (r *Runner) runFast(ctx context.Context, g Stepper) (core.GameState, error) {
	pending := core.NewInputFrame()
	var state core.GameState
	ticks := 0

	for {
		if err := ctx.Err(); err != nil {
			r.debug("runner stopped", "ticks", ticks, "reason", err)
			return state, err
		}
		r.drain(&pending)

		state = r.step(g, pending)
		pending.Clear()
		ticks++
		if done, err := r.finished(state, ticks); done {
			return state, err
		}
	}
}

// drain merges every input already queued without blocking.
func (r *Runner) drain(pending *core.InputFrame) {
	for r.Input != nil {
		select {
		case in, ok := <-r.Input:
			if !ok {
				r.Input = nil
				return
			}
			pending.Merge(in)
		default:
			return
		}
	}
}

func (r *Runner) step(g Stepper, in core.InputFrame) core.GameState {
	res := g.Step(in)
	if r.OnTick != nil {
		r.OnTick(res)
	}
	return res.State
}

func (r *Runner) finished(state core.GameState, ticks int) (bool, error) {
	if state.GameOver {
		r.debug("round over", "ticks", ticks, "won", state.Won)
		return true, nil
	}
	if r.MaxTicks > 0 && ticks >= r.MaxTicks {
		return true, ErrTickLimit
	}
	return false, nil
}

func (r *Runner) debug(msg string, keyvals ...any) {
	if r.Logger != nil {
		r.Logger.Debug(msg, keyvals...)
	}
}
