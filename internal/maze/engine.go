package maze

import "fmt"

// Action is one of the four turn buttons. Each turns the agent and then tries
// to move one cell forward.
type Action uint8

const (
	TurnUp Action = iota
	TurnRight
	TurnDown
	TurnLeft
)

// Actions lists the turn actions in button order.
var Actions = [4]Action{TurnUp, TurnRight, TurnDown, TurnLeft}

// String returns the button name.
func (a Action) String() string {
	switch a {
	case TurnUp:
		return "Up"
	case TurnRight:
		return "Right"
	case TurnDown:
		return "Down"
	case TurnLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Letter returns the single-letter command form (u, r, d, l).
func (a Action) Letter() byte {
	switch a {
	case TurnUp:
		return 'u'
	case TurnRight:
		return 'r'
	case TurnDown:
		return 'd'
	case TurnLeft:
		return 'l'
	default:
		return '?'
	}
}

// Rotate applies the action's turn to o.
func (a Action) Rotate(o Orientation) Orientation {
	switch a {
	case TurnUp:
		return o.TurnUpDown(true)
	case TurnRight:
		return o.TurnLeftRight(true)
	case TurnDown:
		return o.TurnUpDown(false)
	case TurnLeft:
		return o.TurnLeftRight(false)
	default:
		return o
	}
}

// State is a position and orientation; the node identity of the search graph.
type State struct {
	Cell        Cell        `json:"cell"`
	Orientation Orientation `json:"orientation"`
}

// NewState validates and builds a state.
func NewState(c Cell, o Orientation) (State, error) {
	if !c.Valid() {
		return State{}, fmt.Errorf("%w: cell %d", ErrInvalidCoordinate, c)
	}
	if !o.Valid() {
		return State{}, fmt.Errorf("%w: %s", ErrInvalidOrientation, o)
	}
	return State{Cell: c, Orientation: o}, nil
}

// Valid reports whether both components are valid.
func (s State) Valid() bool {
	return s.Cell.Valid() && s.Orientation.Valid()
}

// String renders the state as "cell@orientation".
func (s State) String() string {
	return fmt.Sprintf("%d@%s", s.Cell, s.Orientation)
}

// AttemptTurn turns by a and moves forward if the new facing is open.
// The turn always happens; moved is false when the agent hits a wall.
func (s State) AttemptTurn(a Action) (next State, moved bool) {
	next = State{Cell: s.Cell, Orientation: a.Rotate(s.Orientation)}
	fwd := next.Orientation.Forward()
	if IsWall(s.Cell, fwd) {
		return next, false
	}
	cell, err := Step(s.Cell, fwd)
	if err != nil {
		return next, false
	}
	next.Cell = cell
	return next, true
}

// Openings holds the tunnel/wall flag for each relative direction; true means open.
type Openings struct {
	Forward bool `json:"forward"`
	Left    bool `json:"left"`
	Right   bool `json:"right"`
	Up      bool `json:"up"`
	Down    bool `json:"down"`
}

// Openings reports which relative directions are tunnels.
// Left, right, up and down use the facing after that turn.
func (s State) Openings() Openings {
	open := func(o Orientation) bool { return !IsWall(s.Cell, o.Forward()) }
	return Openings{
		Forward: open(s.Orientation),
		Left:    open(TurnLeft.Rotate(s.Orientation)),
		Right:   open(TurnRight.Rotate(s.Orientation)),
		Up:      open(TurnUp.Rotate(s.Orientation)),
		Down:    open(TurnDown.Rotate(s.Orientation)),
	}
}

// Open reports whether the action would move the agent.
func (o Openings) Open(a Action) bool {
	switch a {
	case TurnUp:
		return o.Up
	case TurnRight:
		return o.Right
	case TurnDown:
		return o.Down
	case TurnLeft:
		return o.Left
	default:
		return false
	}
}

// Adjacency names the cell in front (or behind, when the front is a wall) and
// the cell above (or below, when above is a wall).
type Adjacency struct {
	Ahead  Cell `json:"ahead"`
	Behind bool `json:"behind"`
	Above  Cell `json:"above"`
	Below  bool `json:"below"`
}

// Adjacency describes the neighbouring cells for narration.
// In a cube of size 3 the opposite direction of a wall is always open.
func (s State) Adjacency() (Adjacency, error) {
	if !s.Valid() {
		return Adjacency{}, fmt.Errorf("%w: state %s", ErrInvalidCoordinate, s)
	}
	var adj Adjacency
	var err error

	fwd := s.Orientation.Forward()
	if IsWall(s.Cell, fwd) {
		adj.Behind = true
		back := s.Orientation.TurnLeftRight(true).TurnLeftRight(true).Forward()
		adj.Ahead, err = Step(s.Cell, back)
	} else {
		adj.Ahead, err = Step(s.Cell, fwd)
	}
	if err != nil {
		return Adjacency{}, err
	}

	if IsWall(s.Cell, s.Orientation.TurnUpDown(true).Forward()) {
		adj.Below = true
		adj.Above, err = Step(s.Cell, s.Orientation.TurnUpDown(false).Forward())
	} else {
		adj.Above, err = Step(s.Cell, s.Orientation.Up())
	}
	if err != nil {
		return Adjacency{}, err
	}
	return adj, nil
}

// Replay applies actions in order and returns the final state together with
// the number of presses that hit a wall.
func Replay(start State, actions []Action) (State, int) {
	cur := start
	blocked := 0
	for _, a := range actions {
		var moved bool
		cur, moved = cur.AttemptTurn(a)
		if !moved {
			blocked++
		}
	}
	return cur, blocked
}
