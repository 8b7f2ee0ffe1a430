// breakout is a single-screen brick breaker for the terminal, SSH and the
// desktop.
//
// Usage:
//
//	breakout list              - List the variants
//	breakout play [variant]    - Play in the terminal (menu when no variant)
//	breakout window [variant]  - Play in a desktop window
//	breakout sim [variant]     - Run headless rounds with the autopilot
//	breakout serve             - Start SSH server for remote play
//	breakout history [variant] - Show recent rounds and totals
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible rounds
//	--db <path>           - Set journal path (default: ~/.breakout/rounds.db)
//	--config <path>       - Custom breakout config (YAML or TOML)
//	--difficulty <preset> - easy, normal or hard
//	--layout <name>       - classic, mobile or relaxed
//	--log-file <path>     - Rotating log file
//	--log-level <level>   - debug, info, warn or error
//
// Every flag can also be set with a BREAKOUT_* environment variable
// (BREAKOUT_FPS, BREAKOUT_LOG_FILE, ...) or in ~/.breakout/settings.yaml.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/logging"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// opts holds the merged global settings; filled in by PersistentPreRunE.
var opts settings

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout - bounce the ball, clear the wall",
	Long: `Breakout is a single-screen brick breaker. Move the paddle, keep the
ball in play and destroy every block to win the round.

Available commands:
  list     - Show the variants
  play     - Play in the terminal
  window   - Play in a desktop window
  sim      - Run rounds headless with the autopilot
  serve    - Start SSH server for remote play
  history  - View the round journal

Examples:
  breakout play
  breakout play breakout-touch --layout mobile
  breakout window --difficulty hard
  breakout sim --rounds 20 --seed 42
  breakout serve --ssh :2222
  breakout history`,
	SilenceUsage:      true,
	PersistentPreRunE: loadGlobals,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.Int("fps", 60, "Tick rate (ticks per second)")
	pf.Int64("seed", 0, "RNG seed (0 = random based on time)")
	pf.String("db", storage.DefaultPath, "Path to the round journal")
	pf.String("config", "", "Path to custom breakout config (YAML or TOML)")
	pf.String("difficulty", "", "Difficulty preset: easy, normal, hard")
	pf.String("layout", "", "Paddle layout: classic, mobile, relaxed")
	pf.String("log-file", "", "Rotating log file (default: stderr, or nowhere while a game owns the terminal)")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadGlobals merges flags, environment and settings file, then hands the
// config choices to the breakout package before any game is created.
func loadGlobals(cmd *cobra.Command, _ []string) error {
	v, err := newSettingsViper(cmd.Flags())
	if err != nil {
		return err
	}
	if err := readSettingsFile(v); err != nil {
		return err
	}
	if opts, err = loadSettings(v); err != nil {
		return err
	}

	breakout.SetConfigPath(opts.ConfigPath)
	breakout.SetDifficultyPreset(opts.Difficulty)
	breakout.SetLayout(opts.Layout)

	if _, err := breakout.LoadConfig(config.ControlDirectional); err != nil {
		return err
	}
	return nil
}

// newLogger builds the logger for a command. Commands that own the terminal
// pass ownsTerminal; without --log-file their logs are dropped.
// The returned func flushes and closes the log file.
func newLogger(prefix string, ownsTerminal bool) (*log.Logger, func()) {
	if ownsTerminal && opts.LogFile == "" {
		return logging.Discard(), func() {}
	}

	logger, closer, err := logging.New(opts.logOptions(prefix))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, logging disabled\n", err)
		return logging.Discard(), func() {}
	}
	return logger, func() { _ = closer.Close() }
}

// openStore opens the journal. Playing works without one, so failures are
// only reported.
func openStore() *storage.Store {
	store, err := storage.Open(opts.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open round journal: %v\n", err)
		return nil
	}
	return store
}
