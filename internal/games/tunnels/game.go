// Package tunnels implements the 3D tunnels puzzle: fly through a 3×3×3 cube
// of tunnels and press Target on each goal symbol in turn.
package tunnels

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tunnels/internal/config"
	"github.com/vovakirdan/tui-tunnels/internal/core"
	"github.com/vovakirdan/tui-tunnels/internal/maze"
	"github.com/vovakirdan/tui-tunnels/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModePractice Mode = "practice" // Every symbol shown, strikes never end the run
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

func init() {
	registry.Register("tunnels", func() registry.Game {
		return New()
	})
	registry.Register("tunnels_practice", func() registry.Game {
		return NewPractice()
	})
}

// Game implements the tunnels puzzle.
type Game struct {
	mode     Mode
	cfg      config.TunnelsConfig
	fixedCfg bool // cfg came from NewWithConfig; Reset does not reload
	runtime  core.RuntimeConfig
	rng      *rand.Rand
	tick     uint64

	symbols    SymbolSet
	puzzle     Puzzle
	pos        maze.State
	identified [maze.CellCount]bool
	stage      int
	strikes    int
	presses    int

	solved   bool
	failed   bool // Strike limit reached
	paused   bool
	tooSmall bool

	// Auto-solve
	assisted      bool
	solving       bool
	plan          []Button
	solveWait     int
	solveObserver func(d time.Duration, length int, err error)
	solve         func(start maze.State, target maze.Cell) ([]maze.Action, error) // nil means maze.Solve

	log     []press
	events  []Event
	message string
	alert   bool // message reports a strike
}

// New creates a standard tunnels game.
func New() *Game {
	return &Game{mode: ModeStandard}
}

// NewPractice creates a practice game.
func NewPractice() *Game {
	return &Game{mode: ModePractice}
}

// NewWithConfig creates a game that uses cfg instead of loading configuration.
func NewWithConfig(mode Mode, cfg config.TunnelsConfig) *Game {
	return &Game{mode: mode, cfg: cfg, fixedCfg: true}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModePractice {
		return "tunnels_practice"
	}
	return "tunnels"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModePractice {
		return "3D Tunnels (Practice)"
	}
	return "3D Tunnels"
}

// Reset generates a new puzzle from cfg.Seed.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.fixedCfg {
		cfg, err := config.LoadTunnels(configPath)
		if err != nil {
			cfg = config.DefaultTunnelsConfig()
		}
		if difficultyPreset != "" {
			config.ApplyPreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}
	if g.cfg.Validate() != nil || g.cfg.Rules.IdentifiedCells < 2 || g.cfg.Rules.TargetCells < 1 {
		g.cfg = config.DefaultTunnelsConfig()
	}

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.tick = 0
	g.symbols = NewSymbolSet(g.cfg.Rules.RuleSeed)
	g.puzzle = NewPuzzle(g.rng, g.cfg.Rules.IdentifiedCells, g.cfg.Rules.TargetCells)
	g.pos = g.puzzle.Start
	g.identified = [maze.CellCount]bool{}
	for _, c := range g.puzzle.Identified {
		g.identified[c] = true
	}
	g.stage = 0
	g.strikes = 0
	g.presses = 0
	g.solved = false
	g.failed = false
	g.paused = false
	g.assisted = false
	g.solving = false
	g.plan = nil
	g.solveWait = 0
	g.log = g.log[:0]
	g.events = nil
	g.message = "Find " + g.symbols.Name(g.Target()) + "."
	g.alert = false

	g.checkScreenSize()
}

// Resize updates the screen dimensions without starting a new puzzle.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	g.tooSmall = g.runtime.ScreenW < minScreenW || g.runtime.ScreenH < minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.Over() {
		return core.StepResult{State: g.State()}
	}

	if g.solving {
		g.stepSolver()
		return core.StepResult{State: g.State()}
	}

	switch {
	case in.Has(core.ActionSolve):
		g.StartAutoSolve()
	case in.Has(core.ActionTarget):
		g.Press(ButtonTarget)
	case in.Has(core.ActionTurnUp):
		g.Press(ButtonUp)
	case in.Has(core.ActionTurnRight):
		g.Press(ButtonRight)
	case in.Has(core.ActionTurnDown):
		g.Press(ButtonDown)
	case in.Has(core.ActionTurnLeft):
		g.Press(ButtonLeft)
	}

	return core.StepResult{State: g.State()}
}

// Press presses one button. Presses after the run is over are ignored.
func (g *Game) Press(b Button) {
	if g.Over() {
		return
	}
	g.presses++
	if b == ButtonTarget {
		g.pressTarget()
		return
	}
	a, ok := b.Action()
	if !ok {
		return
	}

	p := press{start: g.pos, button: b}
	if g.identified[g.pos.Cell] {
		g.log = g.log[:0]
		p.identified = true
	}

	next, moved := g.pos.AttemptTurn(a)
	g.pos = next
	p.end = next
	if !moved {
		p.strike = StrikeFlyIntoWall
	}
	g.log = append(g.log, p)

	if p.strike != StrikeNone {
		g.strike(p)
		return
	}
	g.message = ""
	g.alert = false
	g.emit(Event{Kind: EventMoved, Button: b, State: g.pos, Stage: g.stage})
}

func (g *Game) pressTarget() {
	p := press{start: g.pos, button: ButtonTarget, end: g.pos}

	if g.pos.Cell != g.Target() {
		p.strike = StrikeNotOnTarget
		g.log = append(g.log, p)
		g.strike(p)
		return
	}

	g.log = append(g.log, p)
	g.alert = false
	cleared := g.stage
	if g.stage == len(g.puzzle.Targets)-1 {
		g.solved = true
		g.solving = false
		g.message = g.symbols.Name(g.pos.Cell) + " identified. Solved!"
		g.emit(Event{Kind: EventStageCleared, Button: ButtonTarget, State: g.pos, Stage: cleared})
		g.emit(Event{Kind: EventSolved, State: g.pos, Stage: cleared})
		return
	}
	g.identified[g.pos.Cell] = true
	g.stage++
	g.message = g.symbols.Name(g.pos.Cell) + " identified. Now find " + g.symbols.Name(g.Target()) + "."
	g.emit(Event{Kind: EventStageCleared, Button: ButtonTarget, State: g.pos, Stage: cleared})
}

// strike penalizes the last press and narrates the press log.
func (g *Game) strike(p press) {
	g.strikes++
	lines := narrate(&g.symbols, g.log, g.Target(), g.pos.Cell)
	g.log = g.log[:0]

	g.alert = true
	if p.strike == StrikeFlyIntoWall {
		g.message = "You fly into a wall!"
	} else {
		g.message = "You are not at " + g.symbols.Name(g.Target()) + "!"
	}
	g.emit(Event{Kind: EventStrike, Button: p.button, Strike: p.strike, State: g.pos, Stage: g.stage, Narration: lines})

	limit := g.cfg.Gameplay.MaxStrikes
	if g.mode != ModePractice && limit > 0 && g.strikes >= limit {
		g.failed = true
		g.solving = false
		g.message = fmt.Sprintf("%d strikes. Game over.", g.strikes)
		g.emit(Event{Kind: EventGameOver, State: g.pos, Stage: g.stage})
	}
}

func (g *Game) emit(e Event) {
	g.events = append(g.events, e)
}

// DrainEvents returns and clears the queued events.
func (g *Game) DrainEvents() []Event {
	ev := g.events
	g.events = nil
	return ev
}

// Execute runs a parsed command immediately. Solve presses the whole
// remaining solution without pacing.
func (g *Game) Execute(cmd Command) error {
	switch cmd.Kind {
	case CommandMove:
		for _, b := range cmd.Buttons {
			g.Press(b)
		}
	case CommandSubmit:
		g.Press(ButtonTarget)
	case CommandSolve:
		return g.SolveNow()
	default:
		return ErrUnknownCommand
	}
	return nil
}

// Over reports whether the run has ended.
func (g *Game) Over() bool {
	return g.solved || g.failed
}

// Target returns the cell of the current goal symbol.
func (g *Game) Target() maze.Cell {
	if len(g.puzzle.Targets) == 0 {
		return 0
	}
	return g.puzzle.Targets[min(g.stage, len(g.puzzle.Targets)-1)]
}

// Position returns the current cell and orientation.
func (g *Game) Position() maze.State {
	return g.pos
}

// Symbols returns the active symbol layout.
func (g *Game) Symbols() *SymbolSet {
	return &g.symbols
}

// Visible reports whether the symbol of cell c is shown to the player.
func (g *Game) Visible(c maze.Cell) bool {
	return g.mode == ModePractice || (c.Valid() && g.identified[c])
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Config returns the configuration of the current run.
func (g *Game) Config() config.TunnelsConfig {
	return g.cfg
}

// Seed returns the seed the current puzzle was generated from.
func (g *Game) Seed() int64 {
	return g.runtime.Seed
}

// Stages returns the number of targets in the puzzle.
func (g *Game) Stages() int {
	return len(g.puzzle.Targets)
}

// Cleared returns the number of targets identified so far.
func (g *Game) Cleared() int {
	if g.solved {
		return len(g.puzzle.Targets)
	}
	return g.stage
}

// Presses returns the number of buttons pressed this run.
func (g *Game) Presses() int {
	return g.presses
}

// SetSolveObserver installs a hook called after every solver run.
func (g *Game) SetSolveObserver(fn func(d time.Duration, length int, err error)) {
	g.solveObserver = fn
}

// Strikes returns the strike count.
func (g *Game) Strikes() int {
	return g.strikes
}

// Assisted reports whether the solver has pressed buttons this run.
func (g *Game) Assisted() bool {
	return g.assisted
}

// Score returns the current score. Assisted runs score nothing.
func (g *Game) Score() int {
	if g.assisted {
		return 0
	}
	return max(g.Cleared()*g.cfg.Gameplay.PointsPerTarget-g.strikes*g.cfg.Gameplay.StrikePenalty, 0)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.Score(),
		GameOver: g.Over(),
		Paused:   g.paused || g.tooSmall,
		Won:      g.solved,
	}
}
