package main

import (
	"context"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/loop"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

func TestSimulateRoundIsReproducible(t *testing.T) {
	for _, id := range []string{breakout.VariantKeys, breakout.VariantTouch} {
		t.Run(id, func(t *testing.T) {
			run := func() simResult {
				res, err := simulateRound(context.Background(), id, 42, 0.8, &loop.Runner{TickRate: 60, MaxTicks: 20000})
				if err != nil {
					t.Fatalf("simulateRound() failed: %v", err)
				}
				return res
			}

			first := run()
			if first.Ticks <= 0 || first.Ticks > 20000 {
				t.Errorf("ticks = %d", first.Ticks)
			}
			switch first.Outcome {
			case storage.OutcomeWon, storage.OutcomeLost, storage.OutcomeAbandoned:
			default:
				t.Errorf("outcome = %q", first.Outcome)
			}

			if second := run(); second != first {
				t.Errorf("same seed gave %+v then %+v", first, second)
			}
		})
	}
}

func TestSimulateRoundTickLimit(t *testing.T) {
	res, err := simulateRound(context.Background(), breakout.VariantKeys, 7, 1, &loop.Runner{TickRate: 60, MaxTicks: 5})
	if err != nil {
		t.Fatalf("hitting the tick limit is not an error: %v", err)
	}
	if res.Outcome != storage.OutcomeAbandoned || res.Ticks != 5 {
		t.Errorf("result = %+v, expected abandoned after 5 ticks", res)
	}
}

func TestSimulateRoundCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := simulateRound(ctx, breakout.VariantKeys, 7, 1, &loop.Runner{})
	if err == nil {
		t.Error("a cancelled context should stop the round")
	}
	if res.Outcome != storage.OutcomeAbandoned {
		t.Errorf("outcome = %q, expected abandoned", res.Outcome)
	}
}

func TestSimulateRoundUnknownVariant(t *testing.T) {
	if _, err := simulateRound(context.Background(), "pong", 1, 1, &loop.Runner{}); err == nil {
		t.Error("unknown variant should fail")
	}
}
