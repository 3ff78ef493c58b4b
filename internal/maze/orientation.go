package maze

import (
	"fmt"
	"strings"
)

// OrientationCount is the number of distinct orientations (rotation group of the cube).
const OrientationCount = 24

// Orientation is the agent's facing: a forward and an up unit vector, always
// perpendicular. Values only come from the fixed enumeration or from the turn
// methods, so the zero Orientation is the only invalid one a caller can hold.
type Orientation struct {
	forward Vec
	up      Vec
}

var (
	orientations     = buildOrientations()
	orientationIndex = indexOrientations(orientations)
)

// buildOrientations enumerates forward over Axes and, for each, the four
// perpendicular up vectors in Axes order.
func buildOrientations() []Orientation {
	out := make([]Orientation, 0, OrientationCount)
	for _, f := range Axes {
		for _, u := range Axes {
			if f.Dot(u) == 0 {
				out = append(out, Orientation{forward: f, up: u})
			}
		}
	}
	return out
}

func indexOrientations(list []Orientation) map[Orientation]int {
	idx := make(map[Orientation]int, len(list))
	for i, o := range list {
		idx[o] = i
	}
	return idx
}

// Orientations returns all 24 orientations in enumeration order.
func Orientations() []Orientation {
	out := make([]Orientation, len(orientations))
	copy(out, orientations)
	return out
}

// OrientationAt returns the orientation with the given enumeration index.
func OrientationAt(i int) (Orientation, error) {
	if i < 0 || i >= len(orientations) {
		return Orientation{}, fmt.Errorf("%w: index %d", ErrInvalidOrientation, i)
	}
	return orientations[i], nil
}

// NewOrientation looks up the orientation with the given forward and up vectors.
func NewOrientation(forward, up Vec) (Orientation, error) {
	o := Orientation{forward: forward, up: up}
	if _, ok := orientationIndex[o]; !ok {
		return Orientation{}, fmt.Errorf("%w: forward %v up %v", ErrInvalidOrientation, forward, up)
	}
	return o, nil
}

// ParseOrientation parses "<forward>/<up>", e.g. "+x/+y".
func ParseOrientation(s string) (Orientation, error) {
	fwd, up, ok := strings.Cut(s, "/")
	if !ok {
		return Orientation{}, fmt.Errorf("%w: %q is not <forward>/<up>", ErrInvalidOrientation, s)
	}
	f, err := ParseAxis(fwd)
	if err != nil {
		return Orientation{}, err
	}
	u, err := ParseAxis(up)
	if err != nil {
		return Orientation{}, err
	}
	return NewOrientation(f, u)
}

// Valid reports whether o is one of the 24 orientations.
func (o Orientation) Valid() bool {
	_, ok := orientationIndex[o]
	return ok
}

// Index returns the enumeration index of o, or -1 for the zero value.
func (o Orientation) Index() int {
	if i, ok := orientationIndex[o]; ok {
		return i
	}
	return -1
}

// Forward returns the facing direction.
func (o Orientation) Forward() Vec { return o.forward }

// Up returns the up direction.
func (o Orientation) Up() Vec { return o.up }

// Left returns forward x up.
func (o Orientation) Left() Vec { return o.forward.Cross(o.up) }

// TurnLeftRight turns a quarter turn about the up axis. Up is unchanged.
func (o Orientation) TurnLeftRight(right bool) Orientation {
	s := -1
	if right {
		s = 1
	}
	return Orientation{
		forward: rotateQuarter(o.up, o.forward, s),
		up:      o.up,
	}
}

// TurnUpDown turns forward and up together a quarter turn about the left axis.
// Turning up points forward along the previous up vector.
func (o Orientation) TurnUpDown(up bool) Orientation {
	s := -1
	if up {
		s = 1
	}
	left := o.Left()
	return Orientation{
		forward: rotateQuarter(left, o.forward, s),
		up:      rotateQuarter(left, o.up, s),
	}
}

// String renders o as "<forward>/<up>".
func (o Orientation) String() string {
	return o.forward.String() + "/" + o.up.String()
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrientation, o)
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(text []byte) error {
	parsed, err := ParseOrientation(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
