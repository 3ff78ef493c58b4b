package maze_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tunnels/internal/maze"
)

// allStates returns every (cell, orientation) pair.
func allStates() []maze.State {
	states := make([]maze.State, 0, maze.MaxStates)
	for c := maze.Cell(0); c < maze.CellCount; c++ {
		for _, o := range maze.Orientations() {
			states = append(states, maze.State{Cell: c, Orientation: o})
		}
	}
	return states
}

func TestNewState(t *testing.T) {
	o := mustOrientation(t, "+x/+y")
	s, err := maze.NewState(4, o)
	require.NoError(t, err)
	assert.Equal(t, "4@+x/+y", s.String())

	_, err = maze.NewState(27, o)
	assert.ErrorIs(t, err, maze.ErrInvalidCoordinate)
	_, err = maze.NewState(4, maze.Orientation{})
	assert.ErrorIs(t, err, maze.ErrInvalidOrientation)
}

func TestAttemptTurnMoveConsistency(t *testing.T) {
	for _, s := range allStates() {
		open := s.Openings()
		for _, a := range maze.Actions {
			next, moved := s.AttemptTurn(a)
			turned := a.Rotate(s.Orientation)
			assert.Equal(t, turned, next.Orientation, "turn always applies from %s by %s", s, a)
			assert.Equal(t, open.Open(a), moved, "openings agree with move from %s by %s", s, a)

			if moved {
				want, err := maze.Step(s.Cell, turned.Forward())
				require.NoError(t, err)
				assert.Equal(t, want, next.Cell)
			} else {
				assert.Equal(t, s.Cell, next.Cell, "blocked move stays put from %s", s)
			}
		}
	}
}

func TestOpenings(t *testing.T) {
	o := mustOrientation(t, "+x/+y")
	center := maze.State{Cell: maze.Center, Orientation: o}
	assert.Equal(t, maze.Openings{Forward: true, Left: true, Right: true, Up: true, Down: true}, center.Openings())

	// Cell 0 facing +x with up +y: left turn faces +z, right faces -z,
	// up faces +y, down faces -y.
	corner := maze.State{Cell: 0, Orientation: o}
	assert.Equal(t, maze.Openings{Forward: true, Left: true, Right: false, Up: true, Down: false}, corner.Openings())
}

func TestTurnIntoWall(t *testing.T) {
	s := maze.State{Cell: 0, Orientation: mustOrientation(t, "+x/+y")}
	next, moved := s.AttemptTurn(maze.TurnDown)
	assert.False(t, moved)
	assert.Equal(t, maze.Cell(0), next.Cell)
	assert.Equal(t, "-y/+x", next.Orientation.String())
}

func TestAdjacency(t *testing.T) {
	tests := []struct {
		name   string
		state  maze.State
		expect maze.Adjacency
	}{
		{
			name:   "front and above open",
			state:  maze.State{Cell: 0, Orientation: mustOrientation(t, "+x/+y")},
			expect: maze.Adjacency{Ahead: 1, Above: 3},
		},
		{
			name:   "facing a wall looks behind",
			state:  maze.State{Cell: 0, Orientation: mustOrientation(t, "-x/+y")},
			expect: maze.Adjacency{Ahead: 1, Behind: true, Above: 3},
		},
		{
			name:   "ceiling is a wall looks below",
			state:  maze.State{Cell: 0, Orientation: mustOrientation(t, "+x/-y")},
			expect: maze.Adjacency{Ahead: 1, Above: 3, Below: true},
		},
		{
			name:   "center",
			state:  maze.State{Cell: maze.Center, Orientation: mustOrientation(t, "+z/+x")},
			expect: maze.Adjacency{Ahead: 22, Above: 14},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj, err := tt.state.Adjacency()
			require.NoError(t, err)
			assert.Equal(t, tt.expect, adj)
		})
	}

	_, err := maze.State{Cell: 30}.Adjacency()
	assert.Error(t, err)
}

func TestAdjacencyTotal(t *testing.T) {
	for _, s := range allStates() {
		_, err := s.Adjacency()
		assert.NoError(t, err, "adjacency of %s", s)
	}
}

func TestReplay(t *testing.T) {
	start := maze.State{Cell: 0, Orientation: mustOrientation(t, "+x/+y")}
	// Left faces +z and moves to 9; down then hits the floor.
	end, blocked := maze.Replay(start, []maze.Action{maze.TurnLeft, maze.TurnDown})
	assert.Equal(t, maze.Cell(9), end.Cell)
	assert.Equal(t, 1, blocked)
}

func TestActionNames(t *testing.T) {
	assert.Equal(t, "Up", maze.TurnUp.String())
	assert.Equal(t, "Left", maze.TurnLeft.String())
	assert.Equal(t, "Unknown", maze.Action(9).String())
	assert.Equal(t, "u r d l", maze.FormatActions(maze.Actions[:]))
}
