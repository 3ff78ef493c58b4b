package maze

import "errors"

var (
	// ErrInvalidCoordinate is returned for cell indices or coordinates outside the cube.
	ErrInvalidCoordinate = errors.New("maze: coordinate outside the cube")

	// ErrInvalidOrientation is returned when a forward/up pair is not one of the 24 orientations.
	ErrInvalidOrientation = errors.New("maze: invalid orientation")

	// ErrIllegalStep is returned by Step when the direction leads through a wall.
	ErrIllegalStep = errors.New("maze: step through a wall")

	// ErrNoPath is returned by Solve when the search exhausts the reachable states.
	ErrNoPath = errors.New("maze: no path to target")
)
