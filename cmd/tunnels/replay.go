package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tunnels/internal/journal"
	"github.com/vovakirdan/tui-tunnels/internal/session"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Verify a press journal",
	Long: `Rebuild the puzzle recorded in a press journal, press every recorded
button again and check that each position and the final score match.

Journals are written when --journal points at a directory.

Examples:
  tunnels play --journal ~/.tunnels/journal
  tunnels replay ~/.tunnels/journal/tunnels-20260101-120000-42.jsonl.zst`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	entries, err := journal.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading journal: %v\n", err)
		os.Exit(1)
	}

	rep, err := session.Replay(entries)
	if err != nil {
		if errors.Is(err, session.ErrReplayMismatch) {
			fmt.Fprintf(os.Stderr, "Journal does not reproduce: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	result := rep.Result
	if result == "" {
		result = "unfinished"
	}
	fmt.Printf("Journal OK - %s, seed %d\n", rep.Mode, rep.Seed)
	fmt.Println()
	fmt.Printf("  Result:   %s\n", result)
	fmt.Printf("  Targets:  %d/%d\n", rep.Cleared, rep.Stages)
	fmt.Printf("  Presses:  %d\n", rep.Presses)
	fmt.Printf("  Strikes:  %d\n", rep.Strikes)
	if rep.Assisted {
		fmt.Printf("  Score:    %d (solver assisted)\n", rep.Score)
	} else {
		fmt.Printf("  Score:    %d\n", rep.Score)
	}
}
