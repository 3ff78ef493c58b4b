package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tunnels/internal/games/tunnels"
	"github.com/vovakirdan/tui-tunnels/internal/platform/tui"
	"github.com/vovakirdan/tui-tunnels/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: tunnels).

Controls:
  Arrows/WASD - Turn and fly one cell
  Space/T     - Press Target
  ?           - Let the solver finish the puzzle (scores nothing)
  P           - Pause
  R           - New puzzle (when paused or over)
  B/Esc       - Leave (when paused or over)
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - 9 symbols shown, 2 targets, no strike limit
  normal - 6 symbols shown, 3 targets, 5 strikes
  hard   - 4 symbols shown, 4 targets, 3 strikes
  fixed  - The canonical symbol layout (rule seed 1)

Examples:
  tunnels play
  tunnels play tunnels_practice
  tunnels play --difficulty hard --seed 42
  tunnels play --config ./my-tunnels.yaml --journal ~/.tunnels/journal`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	modeID := "tunnels"
	if len(args) == 1 {
		modeID = args[0]
	}
	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'tunnels list' to see available modes.")
		os.Exit(1)
	}

	created, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	game, ok := created.(*tunnels.Game)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: mode %q is not playable here\n", modeID)
		os.Exit(1)
	}

	logger, closeLog := newLogger(true)
	store := openStore(false)

	runErr := tui.Run(game, terminalConfig(), tui.Deps{
		Store:      store,
		Logger:     logger,
		JournalDir: expandHome(flagJournalDir),
	})

	if store != nil {
		store.Close()
	}
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
