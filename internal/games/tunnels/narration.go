package tunnels

import (
	"strings"

	"github.com/vovakirdan/tui-tunnels/internal/maze"
)

// press records one button press for the strike narration.
type press struct {
	start      maze.State
	identified bool // start cell shows its symbol; the log restarts here
	button     Button
	end        maze.State
	strike     StrikeReason
}

// DescribeAdjacency tells the player what lies ahead (or behind, facing a wall)
// and above (or below, with a wall overhead).
func DescribeAdjacency(symbols *SymbolSet, s maze.State) string {
	adj, err := s.Adjacency()
	if err != nil {
		return ""
	}
	var sb strings.Builder
	if adj.Behind {
		sb.WriteString("Behind you is ")
	} else {
		sb.WriteString("In front of you is ")
	}
	sb.WriteString(symbols.Name(adj.Ahead))
	if adj.Below {
		sb.WriteString(", below you is ")
	} else {
		sb.WriteString(", above you is ")
	}
	sb.WriteString(symbols.Name(adj.Above))
	sb.WriteString(".")
	return sb.String()
}

// narrate renders the press log as one line per press. target and at name the
// cells involved in a NotOnTarget strike.
func narrate(symbols *SymbolSet, log []press, target, at maze.Cell) []string {
	lines := make([]string, 0, len(log))
	for i, p := range log {
		var parts []string
		if i == 0 {
			parts = append(parts,
				"Starting at "+symbols.Name(p.start.Cell)+".",
				DescribeAdjacency(symbols, p.start))
			if p.identified {
				parts = append(parts, "This is the most recent location where the symbol is shown.")
			}
		}
		parts = append(parts, "Pressing "+p.button.String()+".")

		switch {
		case p.strike == StrikeNotOnTarget:
			parts = append(parts, "You are not at "+symbols.Name(target)+", you are at "+symbols.Name(at)+"!")
		case p.button != ButtonTarget:
			turned := maze.State{Cell: p.start.Cell, Orientation: p.end.Orientation}
			parts = append(parts, "New orientation: "+DescribeAdjacency(symbols, turned))
			if p.strike == StrikeFlyIntoWall {
				parts = append(parts, "Moving forward. You fly into a wall!")
			} else {
				parts = append(parts, "Moving forward to "+symbols.Name(p.end.Cell)+".")
			}
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return lines
}
