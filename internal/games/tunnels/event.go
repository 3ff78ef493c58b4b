package tunnels

import "github.com/vovakirdan/tui-tunnels/internal/maze"

// EventKind classifies what a press caused.
type EventKind uint8

const (
	EventMoved EventKind = iota + 1
	EventStrike
	EventStageCleared
	EventSolved
	EventGameOver
	EventSolverFailed
)

func (k EventKind) String() string {
	switch k {
	case EventMoved:
		return "moved"
	case EventStrike:
		return "strike"
	case EventStageCleared:
		return "stage_cleared"
	case EventSolved:
		return "solved"
	case EventGameOver:
		return "game_over"
	case EventSolverFailed:
		return "solver_failed"
	default:
		return "unknown"
	}
}

// Event is something the platform may want to log, count or show.
// Games queue events; the platform drains them after each tick.
type Event struct {
	Kind      EventKind
	Button    Button
	Strike    StrikeReason
	State     maze.State
	Stage     int      // Stage the event happened in, 0-indexed
	Narration []string // Set on strikes
	Err       error    // Set on EventSolverFailed
}
