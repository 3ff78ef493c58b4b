// Package maze implements the 3x3x3 tunnel cube: orientation algebra, the cell
// grid, turn-and-move traversal and the shortest-path solver.
// It has no UI dependencies and every operation is deterministic.
package maze

import (
	"fmt"
	"strings"
)

// Vec is an integer 3D vector. Directions are axis-aligned unit vectors.
type Vec struct {
	X, Y, Z int
}

// Unit directions along the cube axes.
var (
	PosX = Vec{X: 1}
	NegX = Vec{X: -1}
	PosY = Vec{Y: 1}
	NegY = Vec{Y: -1}
	PosZ = Vec{Z: 1}
	NegZ = Vec{Z: -1}
)

// Axes lists the six unit directions in enumeration order.
var Axes = [6]Vec{PosX, NegX, PosY, NegY, PosZ, NegZ}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Neg returns the opposite vector.
func (v Vec) Neg() Vec {
	return Vec{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Dot returns the dot product of v and o.
func (v Vec) Dot(o Vec) int {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v x o.
func (v Vec) Cross(o Vec) Vec {
	return Vec{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// IsUnitAxis reports whether v is one of the six unit directions.
func (v Vec) IsUnitAxis() bool {
	for _, a := range Axes {
		if v == a {
			return true
		}
	}
	return false
}

// String renders unit directions as "+x", "-z", etc. and anything else as a tuple.
func (v Vec) String() string {
	switch v {
	case PosX:
		return "+x"
	case NegX:
		return "-x"
	case PosY:
		return "+y"
	case NegY:
		return "-y"
	case PosZ:
		return "+z"
	case NegZ:
		return "-z"
	}
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}

// ParseAxis parses a unit direction written as "+x", "-y", "z" (sign optional).
func ParseAxis(s string) (Vec, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	sign := 1
	switch {
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		sign = -1
		s = s[1:]
	}
	switch s {
	case "x":
		return Vec{X: sign}, nil
	case "y":
		return Vec{Y: sign}, nil
	case "z":
		return Vec{Z: sign}, nil
	}
	return Vec{}, fmt.Errorf("%w: unknown axis %q", ErrInvalidOrientation, s)
}

// rotateQuarter turns v a quarter turn about the unit axis a.
// s is the sine of the turn (+1 or -1); the cosine terms vanish.
func rotateQuarter(a, v Vec, s int) Vec {
	return Vec{
		X: v.X*a.X*a.X + v.Y*(a.X*a.Y-a.Z*s) + v.Z*(a.X*a.Z+a.Y*s),
		Y: v.X*(a.Y*a.X+a.Z*s) + v.Y*a.Y*a.Y + v.Z*(a.Y*a.Z-a.X*s),
		Z: v.X*(a.Z*a.X-a.Y*s) + v.Y*(a.Z*a.Y+a.X*s) + v.Z*a.Z*a.Z,
	}
}
