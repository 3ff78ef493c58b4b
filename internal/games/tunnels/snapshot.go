package tunnels

// StateType represents the current run state.
type StateType string

const (
	StatePlaying     StateType = "playing"
	StateSolving     StateType = "solving"
	StateSolved      StateType = "solved"
	StateGameOver    StateType = "game_over"
	StatePaused      StateType = "paused"
	StatePausedSmall StateType = "paused_small_window"
)

// Snapshot captures the run state for determinism tests, the websocket
// protocol and the journal.
type Snapshot struct {
	Tick        uint64    `json:"tick"`
	Mode        string    `json:"mode"`
	Cell        int       `json:"cell"`
	Orientation string    `json:"orientation"`
	Symbol      string    `json:"symbol,omitempty"` // Empty when the current cell is not shown
	Target      string    `json:"target"`
	Stage       int       `json:"stage"` // 1-indexed
	Stages      int       `json:"stages"`
	Strikes     int       `json:"strikes"`
	Presses     int       `json:"presses"`
	Score       int       `json:"score"`
	Assisted    bool      `json:"assisted"`
	Openings    []string  `json:"openings"`
	Message     string    `json:"message,omitempty"`
	State       StateType `json:"state"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.solved:
		state = StateSolved
	case g.failed:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.solving:
		state = StateSolving
	}

	snap := Snapshot{
		Tick:        g.tick,
		Mode:        string(g.mode),
		Cell:        int(g.pos.Cell),
		Orientation: g.pos.Orientation.String(),
		Target:      g.symbols.Name(g.Target()),
		Stage:       min(g.stage+1, len(g.puzzle.Targets)),
		Stages:      len(g.puzzle.Targets),
		Strikes:     g.strikes,
		Presses:     g.presses,
		Score:       g.Score(),
		Assisted:    g.assisted,
		Message:     g.message,
		State:       state,
	}
	if g.Visible(g.pos.Cell) {
		snap.Symbol = g.symbols.Name(g.pos.Cell)
	}

	open := g.pos.Openings()
	for _, d := range []struct {
		name string
		ok   bool
	}{{"forward", open.Forward}, {"left", open.Left}, {"right", open.Right}, {"up", open.Up}, {"down", open.Down}} {
		if d.ok {
			snap.Openings = append(snap.Openings, d.name)
		}
	}
	return snap
}
