package tunnels

import (
	"math/rand"

	"github.com/vovakirdan/tui-tunnels/internal/maze"
)

// Puzzle is one generated layout: which cells show their symbol, which cells
// must be found in order, and where the player starts.
type Puzzle struct {
	Identified []maze.Cell
	Targets    []maze.Cell
	Start      maze.State
}

// NewPuzzle draws a puzzle from rng. The first identified cells are reshuffled
// until they contain a usable pair of landmarks; the centre cell is never a
// target.
func NewPuzzle(rng *rand.Rand, identified, targets int) Puzzle {
	order := make([]maze.Cell, maze.CellCount)
	for i := range order {
		order[i] = maze.Cell(i)
	}

	for {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		if hasLandmarkPair(order[:identified]) {
			break
		}
	}

	p := Puzzle{
		Identified: append([]maze.Cell(nil), order[:identified]...),
		Targets:    append([]maze.Cell(nil), order[identified:identified+targets]...),
	}
	for i, c := range p.Targets {
		if c == maze.Center {
			p.Targets[i] = order[identified+targets]
		}
	}

	start := order[identified+targets+1]
	o, _ := maze.OrientationAt(rng.Intn(maze.OrientationCount))
	p.Start = maze.State{Cell: start, Orientation: o}
	return p
}

// hasLandmarkPair reports whether two non-centre cells share a face or a
// face diagonal. The centre touches everything and tells the player nothing.
func hasLandmarkPair(cells []maze.Cell) bool {
	for i := 0; i < len(cells); i++ {
		if cells[i] == maze.Center {
			continue
		}
		for j := i + 1; j < len(cells); j++ {
			if cells[j] == maze.Center {
				continue
			}
			if landmarkPair(cells[i], cells[j]) {
				return true
			}
		}
	}
	return false
}

func landmarkPair(a, b maze.Cell) bool {
	pa, err := maze.ToXYZ(a)
	if err != nil {
		return false
	}
	pb, err := maze.ToXYZ(b)
	if err != nil {
		return false
	}
	var zeros, ones int
	for _, d := range []int{abs(pa.X - pb.X), abs(pa.Y - pb.Y), abs(pa.Z - pb.Z)} {
		switch d {
		case 0:
			zeros++
		case 1:
			ones++
		}
	}
	return (zeros == 2 && ones == 1) || (zeros == 1 && ones == 2)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
