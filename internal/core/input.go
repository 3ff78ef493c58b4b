package core

// Action is a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionTurnUp           // W, Up arrow
	ActionTurnRight        // D, Right arrow
	ActionTurnDown         // S, Down arrow
	ActionTurnLeft         // A, Left arrow
	ActionTarget           // Space, T - press the target button
	ActionSolve            // ? - hand the puzzle to the solver
	ActionConfirm          // Enter - confirm selection in menu
	ActionBack             // B, Escape - go back to menu
	ActionRestart          // R - new puzzle after game over
	ActionQuit             // Q, Ctrl+C
	ActionPause            // P
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTurnUp:
		return "TurnUp"
	case ActionTurnRight:
		return "TurnRight"
	case ActionTurnDown:
		return "TurnDown"
	case ActionTurnLeft:
		return "TurnLeft"
	case ActionTarget:
		return "Target"
	case ActionSolve:
		return "Solve"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
