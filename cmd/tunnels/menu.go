package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tunnels/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode and Tab for the
best runs. After a run ends, press B to return to the menu.

Examples:
  tunnels menu
  tunnels menu --fps 60
  tunnels menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(true)
	store := openStore(false)

	runErr := tui.RunApp(tui.Deps{
		Store:      store,
		Logger:     logger,
		JournalDir: expandHome(flagJournalDir),
	}, terminalConfig())

	if store != nil {
		store.Close()
	}
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
