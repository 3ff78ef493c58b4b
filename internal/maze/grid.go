package maze

import "fmt"

const (
	// Size is the edge length of the cube.
	Size = 3

	// CellCount is the number of cells in the cube.
	CellCount = Size * Size * Size

	// Center is the middle cell (1,1,1); every direction from it is open.
	Center Cell = 13
)

// Cell is a linear cell index x + 3y + 9z in [0, 26].
type Cell int

// Valid reports whether c is inside the cube.
func (c Cell) Valid() bool {
	return c >= 0 && c < CellCount
}

// ToXYZ converts a cell index to its coordinates.
func ToXYZ(c Cell) (Vec, error) {
	if !c.Valid() {
		return Vec{}, fmt.Errorf("%w: cell %d", ErrInvalidCoordinate, c)
	}
	return coords(c), nil
}

// ToCell converts coordinates in [0,2]^3 to a cell index.
func ToCell(p Vec) (Cell, error) {
	if !inBounds(p) {
		return 0, fmt.Errorf("%w: %d,%d,%d", ErrInvalidCoordinate, p.X, p.Y, p.Z)
	}
	return Cell(p.X + Size*(p.Y+Size*p.Z)), nil
}

// IsWall reports whether stepping from c along dir leaves the cube.
// The cube has no interior walls. An invalid cell is walled in every direction.
func IsWall(c Cell, dir Vec) bool {
	if !c.Valid() {
		return true
	}
	return !inBounds(coords(c).Add(dir))
}

// Step returns the neighbour of c along dir.
// Callers check IsWall first; a blocked direction yields ErrIllegalStep.
func Step(c Cell, dir Vec) (Cell, error) {
	if !c.Valid() {
		return c, fmt.Errorf("%w: cell %d", ErrInvalidCoordinate, c)
	}
	if IsWall(c, dir) {
		return c, fmt.Errorf("%w: cell %d towards %v", ErrIllegalStep, c, dir)
	}
	return ToCell(coords(c).Add(dir))
}

func coords(c Cell) Vec {
	i := int(c)
	return Vec{X: i % Size, Y: (i / Size) % Size, Z: i / (Size * Size)}
}

func inBounds(p Vec) bool {
	return p.X >= 0 && p.X < Size &&
		p.Y >= 0 && p.Y < Size &&
		p.Z >= 0 && p.Z < Size
}
