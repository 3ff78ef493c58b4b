package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tunnels/internal/games/tunnels"
)

var flagManualRaw bool

var manualCmd = &cobra.Command{
	Use:   "manual",
	Short: "Show the rules and symbol map",
	Long: `Print the rules together with the symbol map of the configured rule seed.

Examples:
  tunnels manual
  tunnels manual --config ./my-tunnels.yaml
  tunnels manual --raw > rules.md`,
	Run: runManual,
}

func init() {
	manualCmd.Flags().BoolVar(&flagManualRaw, "raw", false, "Print Markdown without styling")
}

func runManual(_ *cobra.Command, _ []string) {
	cfg, err := loadTunnelsConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	md := tunnels.Manual(cfg)
	if flagManualRaw {
		fmt.Print(md)
		return
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering manual: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(out)
}
