package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/loop"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagRounds   int
	flagSkill    float64
	flagPaced    bool
	flagMaxTicks int
	flagNoRecord bool
)

var simCmd = &cobra.Command{
	Use:   "sim [variant]",
	Short: "Run headless rounds with the autopilot",
	Long: `Run rounds without a terminal or window. An autopilot steers the paddle
toward the ball; --skill controls how early it reacts. Round N uses seed
--seed+N, so a fixed --seed replays the same rounds.

Examples:
  breakout sim
  breakout sim breakout-touch --rounds 50 --skill 0.4
  breakout sim --seed 42 --paced --log-level debug
  breakout sim --max-ticks 3600 --no-record`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagRounds, "rounds", 10, "Number of rounds to play")
	simCmd.Flags().Float64Var(&flagSkill, "skill", 0.6, "Autopilot skill in (0, 1]")
	simCmd.Flags().BoolVar(&flagPaced, "paced", false, "Run at --fps in real time instead of as fast as possible")
	simCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 36000, "Abandon a round after this many ticks (0 = no limit)")
	simCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not write rounds to the journal")
}

// simResult is the outcome of one headless round.
type simResult struct {
	Seed    int64
	Outcome string
	Blocks  int
	Ticks   int
}

// collisionLogger reports every bounce at debug level.
type collisionLogger struct {
	logger *log.Logger
}

func (c collisionLogger) OnCollision(col breakout.Collision) {
	if col.Kind == breakout.CollisionBlock {
		c.logger.Debug("block destroyed", "x", col.Block.Rect.X, "y", col.Block.Rect.Y)
		return
	}
	c.logger.Debug("bounce", "kind", col.Kind)
}

func (c collisionLogger) OnRoundEnd(p breakout.Phase) {
	c.logger.Debug("round end", "phase", p)
}

// simulateRound plays one round of variant id with the autopilot.
func simulateRound(ctx context.Context, id string, seed int64, skill float64, runner *loop.Runner) (simResult, error) {
	created, err := registry.Create(id)
	if err != nil {
		return simResult{}, err
	}
	game, ok := created.(*breakout.Game)
	if !ok {
		return simResult{}, fmt.Errorf("variant %q has no autopilot", id)
	}

	game.SetAutopilot(breakout.NewAutopilot(skill))
	if runner.Logger != nil {
		game.SetListener(collisionLogger{logger: runner.Logger})
	}
	game.Reset(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: runner.TickRate,
		Seed:     seed,
	})

	state, err := runner.Run(ctx, game)
	res := simResult{
		Seed:   seed,
		Blocks: state.Score,
		Ticks:  state.Ticks,
	}
	switch {
	case errors.Is(err, loop.ErrTickLimit):
		res.Outcome = storage.OutcomeAbandoned
		return res, nil
	case err != nil:
		res.Outcome = storage.OutcomeAbandoned
		return res, err
	case state.Won:
		res.Outcome = storage.OutcomeWon
	default:
		res.Outcome = storage.OutcomeLost
	}
	return res, nil
}

func runSim(_ *cobra.Command, args []string) {
	id := breakout.VariantKeys
	if len(args) == 1 {
		id = args[0]
	}
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'breakout list' to see available variants.")
		os.Exit(1)
	}
	if flagRounds <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --rounds must be positive")
		os.Exit(1)
	}

	logger, closeLog := newLogger("breakout-sim", false)
	defer closeLog()

	var store *storage.Store
	if !flagNoRecord {
		store = openStore()
		if store != nil {
			defer store.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	base := opts.Seed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	runner := &loop.Runner{
		TickRate: opts.FPS,
		Paced:    flagPaced,
		MaxTicks: flagMaxTicks,
		Logger:   logger,
	}

	fmt.Printf("  %-5s  %-20s  %-9s  %6s  %6s\n", "Round", "Seed", "Outcome", "Blocks", "Ticks")
	fmt.Printf("  %-5s  %-20s  %-9s  %6s  %6s\n", "-----", "----", "-------", "------", "-----")

	counts := map[string]int{}
	for i := 0; i < flagRounds; i++ {
		res, err := simulateRound(ctx, id, base+int64(i), flagSkill, runner)
		if err != nil && ctx.Err() != nil {
			logger.Info("simulation interrupted", "rounds", i)
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		counts[res.Outcome]++
		fmt.Printf("  %-5d  %-20d  %-9s  %6d  %6d\n", i+1, res.Seed, res.Outcome, res.Blocks, res.Ticks)
		logger.Info("round ended", "variant", id, "seed", res.Seed, "outcome", res.Outcome, "blocks", res.Blocks, "ticks", res.Ticks)

		if store == nil {
			continue
		}
		if _, err := store.SaveRound(storage.RoundRecord{
			Variant:         id,
			Seed:            res.Seed,
			Outcome:         res.Outcome,
			BlocksDestroyed: res.Blocks,
			Ticks:           res.Ticks,
		}); err != nil {
			logger.Warn("could not save round", "error", err)
		}
	}

	fmt.Println()
	fmt.Printf("Won %d, lost %d, abandoned %d\n",
		counts[storage.OutcomeWon], counts[storage.OutcomeLost], counts[storage.OutcomeAbandoned])
}
