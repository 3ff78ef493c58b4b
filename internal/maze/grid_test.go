package maze_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tunnels/internal/maze"
)

func TestCellBijection(t *testing.T) {
	for c := maze.Cell(0); c < maze.CellCount; c++ {
		p, err := maze.ToXYZ(c)
		require.NoError(t, err)
		back, err := maze.ToCell(p)
		require.NoError(t, err)
		assert.Equal(t, c, back)
	}

	for z := 0; z < maze.Size; z++ {
		for y := 0; y < maze.Size; y++ {
			for x := 0; x < maze.Size; x++ {
				p := maze.Vec{X: x, Y: y, Z: z}
				c, err := maze.ToCell(p)
				require.NoError(t, err)
				assert.Equal(t, maze.Cell(x+3*y+9*z), c)
				back, err := maze.ToXYZ(c)
				require.NoError(t, err)
				assert.Equal(t, p, back)
			}
		}
	}
}

func TestInvalidCoordinates(t *testing.T) {
	for _, c := range []maze.Cell{-1, 27, 100} {
		_, err := maze.ToXYZ(c)
		assert.ErrorIs(t, err, maze.ErrInvalidCoordinate, "cell %d", c)
	}
	for _, p := range []maze.Vec{{X: -1}, {Y: 3}, {X: 1, Y: 1, Z: 5}} {
		_, err := maze.ToCell(p)
		assert.ErrorIs(t, err, maze.ErrInvalidCoordinate, "coords %v", p)
	}
}

func TestWalls(t *testing.T) {
	for _, dir := range maze.Axes {
		assert.False(t, maze.IsWall(maze.Center, dir), "center towards %v", dir)
	}

	tests := []struct {
		dir  maze.Vec
		wall bool
	}{
		{maze.NegX, true},
		{maze.NegY, true},
		{maze.NegZ, true},
		{maze.PosX, false},
		{maze.PosY, false},
		{maze.PosZ, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wall, maze.IsWall(0, tt.dir), "cell 0 towards %v", tt.dir)
		// Cell 26 is the opposite corner, so the answers flip.
		assert.Equal(t, !tt.wall, maze.IsWall(26, tt.dir), "cell 26 towards %v", tt.dir)
	}

	assert.True(t, maze.IsWall(-1, maze.PosX))
	assert.True(t, maze.IsWall(27, maze.NegX))
}

func TestStep(t *testing.T) {
	next, err := maze.Step(0, maze.PosX)
	require.NoError(t, err)
	assert.Equal(t, maze.Cell(1), next)

	next, err = maze.Step(0, maze.PosY)
	require.NoError(t, err)
	assert.Equal(t, maze.Cell(3), next)

	next, err = maze.Step(0, maze.PosZ)
	require.NoError(t, err)
	assert.Equal(t, maze.Cell(9), next)

	_, err = maze.Step(0, maze.NegX)
	assert.ErrorIs(t, err, maze.ErrIllegalStep)

	_, err = maze.Step(40, maze.PosX)
	assert.ErrorIs(t, err, maze.ErrInvalidCoordinate)
}

func TestParseAxis(t *testing.T) {
	v, err := maze.ParseAxis("-y")
	require.NoError(t, err)
	assert.Equal(t, maze.NegY, v)
	assert.Equal(t, "-y", v.String())

	_, err = maze.ParseAxis("q")
	assert.Error(t, err)

	assert.Equal(t, "(1,2,3)", maze.Vec{X: 1, Y: 2, Z: 3}.String())
	assert.False(t, maze.Vec{X: 1, Y: 1}.IsUnitAxis())
}
