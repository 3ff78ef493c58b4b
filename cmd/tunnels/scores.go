package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tunnels/internal/registry"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best runs for a mode",
	Long: `Display the best runs and overall statistics for a mode (default: tunnels).

Examples:
  tunnels scores
  tunnels scores tunnels_practice --limit 20
  tunnels scores tunnels --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every stored run for the mode")
}

func runScores(_ *cobra.Command, args []string) {
	modeID := "tunnels"
	if len(args) == 1 {
		modeID = args[0]
	}
	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'tunnels list' to see available modes.")
		os.Exit(1)
	}
	game, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(true)
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(modeID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all runs for %s.\n", game.Title())
		return
	}

	runs, err := store.TopRuns(modeID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Runs - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tunnels play %s' to set the first one!\n", modeID)
		return
	}

	fmt.Printf("  %-4s  %-12s  %-6s  %-7s  %-7s  %-8s  %s\n", "Rank", "Player", "Score", "Strikes", "Presses", "Time", "Date")
	fmt.Printf("  %-4s  %-12s  %-6s  %-7s  %-7s  %-8s  %s\n", "----", "------", "-----", "-------", "-------", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-12s  %-6d  %-7d  %-7d  %-8s  %s\n",
			i+1, truncate(r.Player, 12), r.Score, r.Strikes, r.Presses,
			r.Duration.Round(time.Second), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(modeID)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Solved: %d  Assisted: %d  Best: %d\n", stats.Runs, stats.Solved, stats.Assisted, stats.BestScore)
	fmt.Printf("Average strikes: %.1f  Average presses: %.1f\n", stats.AvgStrikes, stats.AvgPresses)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
