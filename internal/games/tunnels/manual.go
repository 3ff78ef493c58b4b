package tunnels

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-tunnels/internal/config"
	"github.com/vovakirdan/tui-tunnels/internal/maze"
)

// Manual returns the Markdown rules sheet for a configuration, including the
// symbol map of its rule seed.
func Manual(cfg config.TunnelsConfig) string {
	symbols := NewSymbolSet(cfg.Rules.RuleSeed)

	var b strings.Builder
	b.WriteString("# 3D Tunnels\n\n")
	b.WriteString("You are flying through a 3×3×3 cube of tunnels. Every cell holds a symbol, ")
	fmt.Fprintf(&b, "but only %d of them are shown to you. ", cfg.Rules.IdentifiedCells)
	fmt.Fprintf(&b, "Reach the %d target symbols in order and press **Target** on each.\n\n", cfg.Rules.TargetCells)

	b.WriteString("## Buttons\n\n")
	b.WriteString("| Button | Effect |\n|---|---|\n")
	b.WriteString("| Up | Pitch up, then fly one cell forward |\n")
	b.WriteString("| Down | Pitch down, then fly one cell forward |\n")
	b.WriteString("| Left | Turn left, then fly one cell forward |\n")
	b.WriteString("| Right | Turn right, then fly one cell forward |\n")
	b.WriteString("| Target | Claim the current cell as the target |\n\n")

	b.WriteString("## Strikes\n\n")
	b.WriteString("- Turning towards the outside of the cube flies you into a wall. ")
	b.WriteString("You keep the new facing but stay in the cell.\n")
	b.WriteString("- Pressing Target anywhere but the current target is a strike.\n")
	if cfg.Gameplay.MaxStrikes > 0 {
		fmt.Fprintf(&b, "- %d strikes end the run.\n", cfg.Gameplay.MaxStrikes)
	}
	b.WriteString("\nAfter a strike the game retells every press since the last cell whose symbol you could see.\n\n")

	b.WriteString("## Scoring\n\n")
	fmt.Fprintf(&b, "Each target is worth %d points; each strike costs %d. ",
		cfg.Gameplay.PointsPerTarget, cfg.Gameplay.StrikePenalty)
	b.WriteString("Runs finished with the solver score nothing.\n\n")

	fmt.Fprintf(&b, "## Symbol map (rule seed %d)\n\n", cfg.Rules.RuleSeed)
	b.WriteString("Cells are numbered x + 3y + 9z. Each layer is one value of z, ")
	b.WriteString("with y growing upwards and x to the right.\n\n")
	for z := range maze.Size {
		fmt.Fprintf(&b, "### Layer z=%d\n\n", z)
		b.WriteString("| y \\ x | 0 | 1 | 2 |\n|---|---|---|---|\n")
		for y := maze.Size - 1; y >= 0; y-- {
			fmt.Fprintf(&b, "| %d |", y)
			for x := range maze.Size {
				c := maze.Cell(x + maze.Size*(y+maze.Size*z))
				sym := symbols.At(c)
				fmt.Fprintf(&b, " %c %s (%d) |", sym.Glyph, sym.Name, c)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
