package tunnels

import "github.com/vovakirdan/tui-tunnels/internal/maze"

// Button is one of the five module buttons.
type Button uint8

const (
	ButtonUp Button = iota
	ButtonRight
	ButtonDown
	ButtonLeft
	ButtonTarget
)

// String returns the button label.
func (b Button) String() string {
	switch b {
	case ButtonUp:
		return "Up"
	case ButtonRight:
		return "Right"
	case ButtonDown:
		return "Down"
	case ButtonLeft:
		return "Left"
	case ButtonTarget:
		return "Target"
	default:
		return "Unknown"
	}
}

// Action returns the turn a direction button performs.
func (b Button) Action() (maze.Action, bool) {
	switch b {
	case ButtonUp:
		return maze.TurnUp, true
	case ButtonRight:
		return maze.TurnRight, true
	case ButtonDown:
		return maze.TurnDown, true
	case ButtonLeft:
		return maze.TurnLeft, true
	default:
		return 0, false
	}
}

// ButtonFor returns the direction button for a turn.
func ButtonFor(a maze.Action) Button {
	switch a {
	case maze.TurnUp:
		return ButtonUp
	case maze.TurnRight:
		return ButtonRight
	case maze.TurnDown:
		return ButtonDown
	default:
		return ButtonLeft
	}
}

// StrikeReason explains why a press was penalized.
type StrikeReason uint8

const (
	StrikeNone StrikeReason = iota
	StrikeFlyIntoWall
	StrikeNotOnTarget
)

func (r StrikeReason) String() string {
	switch r {
	case StrikeFlyIntoWall:
		return "fly_into_wall"
	case StrikeNotOnTarget:
		return "not_on_target"
	default:
		return "none"
	}
}

// ParseButton maps a button label back to a Button.
func ParseButton(s string) (Button, bool) {
	for b := ButtonUp; b <= ButtonTarget; b++ {
		if b.String() == s {
			return b, true
		}
	}
	return 0, false
}
