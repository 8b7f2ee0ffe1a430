package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
	flagClear       bool
)

var historyCmd = &cobra.Command{
	Use:   "history [variant]",
	Short: "Show recent rounds and totals",
	Long: `Display the most recent rounds from the journal and win/loss totals per
variant. Without a variant every variant is shown.

Examples:
  breakout history
  breakout history breakout-touch --limit 25
  breakout history --interactive
  breakout history breakout --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of recent rounds to show")
	historyCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the journal in a full-screen table")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded rounds (of the given variant, or all)")
}

func runHistory(_ *cobra.Command, args []string) {
	variant := ""
	if len(args) == 1 {
		variant = args[0]
		if !registry.Exists(variant) {
			fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
			fmt.Fprintln(os.Stderr, "Run 'breakout list' to see available variants.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(opts.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening round journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		err = clearHistory(store, variant)
	case flagInteractive:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		_, err = tui.RunHistory(store, width, height)
	default:
		err = printHistory(store, variant, flagLimit)
	}

	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func clearHistory(store *storage.Store, variant string) error {
	if err := store.ClearRounds(variant); err != nil {
		return err
	}
	if variant == "" {
		fmt.Println("Cleared every recorded round.")
	} else {
		fmt.Printf("Cleared the rounds of %s.\n", variant)
	}
	return nil
}

func printHistory(store *storage.Store, variant string, limit int) error {
	rounds, err := store.RecentRounds(variant, limit)
	if err != nil {
		return err
	}

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Run 'breakout play' to record the first one!")
		return nil
	}

	fmt.Println("Recent rounds")
	fmt.Println()
	fmt.Printf("  %-16s  %-14s  %-9s  %6s  %6s  %s\n", "When", "Variant", "Outcome", "Blocks", "Ticks", "Seed")
	fmt.Printf("  %-16s  %-14s  %-9s  %6s  %6s  %s\n", "----", "-------", "-------", "------", "-----", "----")
	for _, r := range rounds {
		fmt.Printf("  %-16s  %-14s  %-9s  %6d  %6d  %d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Variant, r.Outcome, r.BlocksDestroyed, r.Ticks, r.Seed)
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Totals")
	fmt.Println()
	fmt.Printf("  %-14s  %6s  %4s  %4s  %s\n", "Variant", "Rounds", "Won", "Lost", "Best clear")
	fmt.Printf("  %-14s  %6s  %4s  %4s  %s\n", "-------", "------", "---", "----", "----------")

	ids := make([]string, 0, len(stats))
	for id := range stats {
		if variant == "" || id == variant {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		st := stats[id]
		fmt.Printf("  %-14s  %6d  %4d  %4d  %d\n", id, st.Rounds, st.Wins, st.Losses, st.BestClear)
	}
	return nil
}
