package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tunnels/internal/games/tunnels"
	"github.com/vovakirdan/tui-tunnels/internal/maze"
)

var (
	flagSolveCell        int
	flagSolveOrientation string
	flagSolveTarget      string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Print the shortest route between two cells",
	Long: `Run the path solver from a cell and orientation to a target cell.

The target is a cell number (0-26) or a symbol name from the symbol map of
the configured rule seed (see 'tunnels manual').

Orientations are written forward/up, e.g. +x/+y or -z/+x.

Examples:
  tunnels solve --cell 0 --orientation +x/+y --target 26
  tunnels solve --cell 13 --orientation -z/+x --target Heart
  tunnels solve --cell 4 --orientation +y/-x --target gear --difficulty fixed`,
	Run: runSolve,
}

func init() {
	solveCmd.Flags().IntVar(&flagSolveCell, "cell", int(maze.Center), "Starting cell (0-26)")
	solveCmd.Flags().StringVar(&flagSolveOrientation, "orientation", "+x/+y", "Starting orientation, forward/up")
	solveCmd.Flags().StringVar(&flagSolveTarget, "target", "", "Target cell number or symbol name")
	//nolint:errcheck // The flag is defined above
	solveCmd.MarkFlagRequired("target")
}

func runSolve(_ *cobra.Command, _ []string) {
	o, err := maze.ParseOrientation(flagSolveOrientation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	start, err := maze.NewState(maze.Cell(flagSolveCell), o)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	target, err := parseTarget(flagSolveTarget)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	actions, err := maze.Solve(start, target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("From %s to cell %d\n", start, target)
	if len(actions) == 0 {
		fmt.Println("Already there.")
		return
	}
	fmt.Printf("Route: %s (%d presses)\n", maze.FormatActions(actions), len(actions))

	buttons := make([]string, len(actions))
	for i, a := range actions {
		buttons[i] = tunnels.ButtonFor(a).String()
	}
	fmt.Printf("Buttons: %s\n", strings.Join(buttons, ", "))
}

// parseTarget accepts a cell number or a symbol name.
func parseTarget(s string) (maze.Cell, error) {
	if n, err := strconv.Atoi(s); err == nil {
		c := maze.Cell(n)
		if !c.Valid() {
			return 0, fmt.Errorf("%w: target %d", maze.ErrInvalidCoordinate, n)
		}
		return c, nil
	}

	cfg, err := loadTunnelsConfig()
	if err != nil {
		return 0, err
	}
	symbols := tunnels.NewSymbolSet(cfg.Rules.RuleSeed)
	c, ok := symbols.Lookup(s)
	if !ok {
		return 0, fmt.Errorf("unknown symbol %q", s)
	}
	return c, nil
}
