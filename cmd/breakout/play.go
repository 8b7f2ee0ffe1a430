package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var flagNoClipboard bool

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play breakout in the terminal",
	Long: `Play breakout in the terminal. Without a variant a menu lets you pick
one and browse the round history; after each game you return to it.

Controls:
  Left/Right/A/D  - Move the paddle (Down/S/Space stops it)
  Mouse drag      - Move the paddle (touch variant)
  P               - Pause
  R/Enter         - Restart (after the round ends)
  Ctrl+Y          - Copy the round seed
  Ctrl+S          - Save a screenshot
  ?               - Toggle help
  Q/Ctrl+C        - Quit

Examples:
  breakout play
  breakout play breakout
  breakout play breakout-touch --layout mobile
  breakout play --difficulty easy --seed 42
  breakout play --config ./my-breakout.toml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoClipboard, "no-clipboard", false, "Print the seed in the footer instead of copying it")
}

func runPlay(_ *cobra.Command, args []string) {
	if len(args) == 1 && !registry.Exists(args[0]) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'breakout list' to see available variants.")
		os.Exit(1)
	}

	logger, closeLog := newLogger("breakout", true)
	store := openStore()

	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: opts.FPS,
		Seed:     opts.Seed,
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}

	var err error
	if len(args) == 1 {
		err = playVariant(args[0], cfg, store, logger)
	} else {
		err = playMenu(cfg, store, logger)
	}

	if store != nil {
		store.Close()
	}
	closeLog()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

func playVariant(id string, cfg core.RuntimeConfig, store *storage.Store, logger *log.Logger) error {
	game, err := registry.Create(id)
	if err != nil {
		return err
	}
	return tui.Run(game, cfg, tui.Options{
		Store:     store,
		Logger:    logger,
		Clipboard: !flagNoClipboard,
	})
}

// playMenu loops between the variant menu, the history screen and games
// until the player quits.
func playMenu(cfg core.RuntimeConfig, store *storage.Store, logger *log.Logger) error {
	for {
		result, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsHistory {
			goBack, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		if result.GameID == "" {
			return nil
		}
		// Seed 0 lets every game pick its own seed
		if err := playVariant(result.GameID, cfg, store, logger); err != nil {
			return err
		}
	}
}
