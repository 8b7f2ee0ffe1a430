package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/gui"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

var (
	flagWindowW int
	flagWindowH int
)

var windowCmd = &cobra.Command{
	Use:   "window [variant]",
	Short: "Play breakout in a desktop window",
	Long: `Open a desktop window and play breakout with the keyboard, the mouse or
touch. The touch variant is the default here.

Controls:
  Left/Right/A/D  - Move the paddle
  Drag            - Move the paddle (touch variant)
  P/Esc           - Pause
  R/Enter/Click   - Restart (after the round ends)
  Q               - Quit

Examples:
  breakout window
  breakout window breakout --width 640 --height 800
  breakout window --layout mobile`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func init() {
	def := gui.DefaultOptions()
	windowCmd.Flags().IntVar(&flagWindowW, "width", def.Width, "Window width in pixels")
	windowCmd.Flags().IntVar(&flagWindowH, "height", def.Height, "Window height in pixels")
}

func runWindow(_ *cobra.Command, args []string) {
	id := breakout.VariantTouch
	if len(args) == 1 {
		id = args[0]
	}

	created, err := registry.Create(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'breakout list' to see available variants.")
		os.Exit(1)
	}
	game, ok := created.(*breakout.Game)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: variant %q cannot run in a window\n", id)
		os.Exit(1)
	}

	logger, closeLog := newLogger("breakout-window", false)
	store := openStore()

	cfg := core.RuntimeConfig{
		TickRate: opts.FPS,
		Seed:     opts.Seed,
	}
	runErr := gui.Run(game, cfg, gui.Options{
		Width:  flagWindowW,
		Height: flagWindowH,
		Store:  store,
		Logger: logger,
	})

	if store != nil {
		store.Close()
	}
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running window: %v\n", runErr)
		os.Exit(1)
	}
}
