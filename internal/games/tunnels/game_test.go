package tunnels

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tunnels/internal/config"
	"github.com/vovakirdan/tui-tunnels/internal/core"
	"github.com/vovakirdan/tui-tunnels/internal/maze"
	"github.com/vovakirdan/tui-tunnels/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: seed}
}

func newTestGame(t *testing.T, mode Mode, cfg config.TunnelsConfig, seed int64) *Game {
	t.Helper()
	g := NewWithConfig(mode, cfg)
	g.Reset(testRuntime(seed))
	return g
}

// place moves the player and clears every landmark so the press log is not
// restarted by accident.
func place(t *testing.T, g *Game, c maze.Cell, orientation string) {
	t.Helper()
	o, err := maze.ParseOrientation(orientation)
	require.NoError(t, err)
	g.pos = maze.State{Cell: c, Orientation: o}
	g.identified = [maze.CellCount]bool{}
	g.log = nil
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestRegisteredModes(t *testing.T) {
	for _, id := range []string{"tunnels", "tunnels_practice"} {
		g, err := registry.Create(id)
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())
	}
}

func TestPressMovesThroughTunnel(t *testing.T) {
	g := newTestGame(t, ModeStandard, config.DefaultTunnelsConfig(), 1)
	place(t, g, 0, "+x/+y")
	g.DrainEvents()

	g.Press(ButtonLeft)

	assert.Equal(t, maze.Cell(9), g.pos.Cell)
	assert.Equal(t, "+z/+y", g.pos.Orientation.String())
	assert.Zero(t, g.Strikes())
	assert.Equal(t, []EventKind{EventMoved}, kinds(g.DrainEvents()))
}

func TestPressIntoWallStrikes(t *testing.T) {
	g := newTestGame(t, ModeStandard, config.DefaultTunnelsConfig(), 1)
	place(t, g, 0, "+x/+y")
	g.DrainEvents()

	g.Press(ButtonDown)

	assert.Equal(t, maze.Cell(0), g.pos.Cell, "position stays")
	assert.Equal(t, "-y/+x", g.pos.Orientation.String(), "orientation still turns")
	assert.Equal(t, 1, g.Strikes())

	events := g.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventStrike, events[0].Kind)
	assert.Equal(t, StrikeFlyIntoWall, events[0].Strike)
	require.NotEmpty(t, events[0].Narration)
	assert.True(t, strings.HasSuffix(events[0].Narration[len(events[0].Narration)-1], "You fly into a wall!"))
	assert.Empty(t, g.log, "narrated log is cleared")
}

func TestStrikeNarration(t *testing.T) {
	g := newTestGame(t, ModeStandard, config.DefaultTunnelsConfig(), 1)
	place(t, g, 0, "+x/+y")
	g.identified[0] = true
	g.DrainEvents()

	g.Press(ButtonLeft) // Chip -> Lock
	g.Press(ButtonDown) // wall below Lock

	events := g.DrainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, []string{
		"Starting at Chip. In front of you is Ring, above you is Cube. " +
			"This is the most recent location where the symbol is shown. " +
			"Pressing Left. New orientation: In front of you is Lock, above you is Cube. Moving forward to Lock.",
		"Pressing Down. New orientation: Behind you is Globe, above you is Chart. Moving forward. You fly into a wall!",
	}, events[1].Narration)
}

func TestLogRestartsAtIdentifiedCell(t *testing.T) {
	g := newTestGame(t, ModeStandard, config.DefaultTunnelsConfig(), 1)
	place(t, g, 0, "+x/+y")
	g.identified[9] = true

	g.Press(ButtonLeft) // 0 -> 9
	require.Len(t, g.log, 1)
	g.Press(ButtonRight) // pressed at identified 9, log restarts
	require.Len(t, g.log, 1)
	assert.True(t, g.log[0].identified)
	assert.Equal(t, maze.Cell(9), g.log[0].start.Cell)
}

func TestTargetOnWrongCell(t *testing.T) {
	g := newTestGame(t, ModeStandard, config.DefaultTunnelsConfig(), 3)
	wrong := maze.Cell(0)
	if g.Target() == wrong {
		wrong = 26
	}
	place(t, g, wrong, "+x/+y")
	g.DrainEvents()

	g.Press(ButtonTarget)

	events := g.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, StrikeNotOnTarget, events[0].Strike)
	want := "You are not at " + g.symbols.Name(g.Target()) + ", you are at " + g.symbols.Name(wrong) + "!"
	assert.Equal(t, "Pressing Target. "+want, lastSentences(events[0].Narration))
	assert.Zero(t, g.stage)
}

// lastSentences drops the "Starting at" preamble of the first narration line.
func lastSentences(lines []string) string {
	last := lines[len(lines)-1]
	if i := strings.Index(last, "Pressing"); i >= 0 {
		return last[i:]
	}
	return last
}

func TestStagesAndScore(t *testing.T) {
	cfg := config.DefaultTunnelsConfig()
	g := newTestGame(t, ModeStandard, cfg, 11)
	targets := append([]maze.Cell(nil), g.puzzle.Targets...)
	require.Len(t, targets, cfg.Rules.TargetCells)

	// One strike first.
	place(t, g, targets[0], "+x/+y")
	g.Press(ButtonTarget)
	assert.Equal(t, 1, g.stage)
	assert.True(t, g.identified[targets[0]], "found target becomes a landmark")

	place(t, g, 0, "+x/+y")
	g.Press(ButtonDown)
	require.Equal(t, 1, g.Strikes())

	for _, c := range targets[1:] {
		place(t, g, c, "+x/+y")
		g.Press(ButtonTarget)
	}

	assert.True(t, g.Over())
	st := g.State()
	assert.True(t, st.GameOver)
	assert.True(t, st.Won)
	assert.Equal(t, 3*cfg.Gameplay.PointsPerTarget-cfg.Gameplay.StrikePenalty, st.Score)
	assert.Contains(t, kinds(g.DrainEvents()), EventSolved)

	// Presses after solving are ignored.
	presses := g.presses
	g.Press(ButtonUp)
	assert.Equal(t, presses, g.presses)
}

func TestScoreFloorsAtZero(t *testing.T) {
	g := newTestGame(t, ModeStandard, config.DefaultTunnelsConfig(), 5)
	place(t, g, 0, "+x/+y")
	for i := 0; i < 3; i++ {
		g.Press(ButtonDown)
		g.Press(ButtonUp)
	}
	assert.Positive(t, g.Strikes())
	assert.Zero(t, g.Score())
}

func TestStrikeLimit(t *testing.T) {
	cfg := config.DefaultTunnelsConfig()
	cfg.Gameplay.MaxStrikes = 2

	t.Run("standard ends the run", func(t *testing.T) {
		g := newTestGame(t, ModeStandard, cfg, 9)
		place(t, g, 0, "-x/+y")
		g.DrainEvents()
		g.Press(ButtonTarget)
		if g.Strikes() == 0 {
			t.Skip("cell 0 is the target for this seed")
		}
		place(t, g, 0, "+x/+y")
		g.Press(ButtonDown)

		assert.True(t, g.Over())
		assert.False(t, g.State().Won)
		assert.Equal(t, StateGameOver, g.Snapshot().State)
		assert.Contains(t, kinds(g.DrainEvents()), EventGameOver)
	})

	t.Run("practice keeps going", func(t *testing.T) {
		g := newTestGame(t, ModePractice, cfg, 9)
		for i := 0; i < 4; i++ {
			place(t, g, 0, "+x/+y")
			g.Press(ButtonDown)
		}
		assert.Equal(t, 4, g.Strikes())
		assert.False(t, g.Over())
	})
}

func TestSolveNow(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := newTestGame(t, ModeStandard, config.DefaultTunnelsConfig(), seed)
		require.NoError(t, g.SolveNow())
		assert.True(t, g.State().Won, "seed %d", seed)
		assert.Zero(t, g.Strikes(), "solver never strikes (seed %d)", seed)
		assert.True(t, g.Assisted())
		assert.Zero(t, g.Score(), "assisted runs score nothing")
	}
}

func exhaustedSolver(start maze.State, target maze.Cell) ([]maze.Action, error) {
	return nil, fmt.Errorf("%w: from %s to cell %d", maze.ErrNoPath, start, target)
}

func TestAutoSolveGivesUpWhenExhausted(t *testing.T) {
	g := newTestGame(t, ModeStandard, config.DefaultTunnelsConfig(), 42)
	g.solve = exhaustedSolver
	var observed error
	g.SetSolveObserver(func(_ time.Duration, _ int, err error) { observed = err })
	start := g.Position()

	in := core.NewInputFrame()
	in.Set(core.ActionSolve)
	g.Step(in)
	require.True(t, g.Solving())
	g.DrainEvents()

	g.Step(core.NewInputFrame())
	assert.False(t, g.Solving())
	assert.Equal(t, "Solver gave up.", g.message)
	assert.Equal(t, start, g.Position(), "nothing is pressed")
	assert.ErrorIs(t, observed, maze.ErrNoPath)

	events := g.DrainEvents()
	require.Equal(t, []EventKind{EventSolverFailed}, kinds(events))
	assert.ErrorIs(t, events[0].Err, maze.ErrNoPath)
	assert.Equal(t, start, events[0].State)
	assert.False(t, g.Over())
}

func TestSolveNowReportsExhaustion(t *testing.T) {
	g := newTestGame(t, ModeStandard, config.DefaultTunnelsConfig(), 42)
	g.solve = exhaustedSolver

	err := g.SolveNow()
	assert.ErrorIs(t, err, maze.ErrNoPath)
	assert.Zero(t, g.Presses())
	assert.Equal(t, []EventKind{EventSolverFailed}, kinds(g.DrainEvents()))
}

func TestAutoSolvePacing(t *testing.T) {
	cfg := config.DefaultTunnelsConfig()
	g := newTestGame(t, ModeStandard, cfg, 42)

	in := core.NewInputFrame()
	in.Set(core.ActionSolve)
	g.Step(in)
	require.True(t, g.Solving())
	assert.Zero(t, g.presses)

	idle := core.NewInputFrame()
	g.Step(idle)
	assert.Equal(t, 1, g.presses)
	for i := 0; i < cfg.Gameplay.SolveStepTicks-1; i++ {
		g.Step(idle)
	}
	assert.Equal(t, 1, g.presses, "waits between presses")
	g.Step(idle)
	assert.Equal(t, 2, g.presses)

	// Manual input is ignored while the solver drives.
	turn := core.NewInputFrame()
	turn.Set(core.ActionTurnUp)
	for i := 0; i < 10000 && !g.Over(); i++ {
		g.Step(turn)
	}
	assert.True(t, g.State().Won)
	assert.False(t, g.Solving())
	assert.Zero(t, g.Strikes())
}

func TestDeterminism(t *testing.T) {
	inputs := []core.Action{
		core.ActionTurnUp, core.ActionNone, core.ActionTurnLeft, core.ActionTurnDown,
		core.ActionTarget, core.ActionTurnRight, core.ActionTurnRight, core.ActionTurnUp,
	}
	run := func() Snapshot {
		g := newTestGame(t, ModeStandard, config.DefaultTunnelsConfig(), 777)
		for _, a := range inputs {
			in := core.NewInputFrame()
			in.Set(a)
			g.Step(in)
		}
		return g.Snapshot()
	}
	assert.Equal(t, run(), run())
}

func TestPauseBlocksInput(t *testing.T) {
	g := newTestGame(t, ModeStandard, config.DefaultTunnelsConfig(), 2)
	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	require.True(t, g.State().Paused)

	in := core.NewInputFrame()
	in.Set(core.ActionTurnUp)
	g.Step(in)
	assert.Zero(t, g.presses)
}

func TestExecuteCommands(t *testing.T) {
	g := newTestGame(t, ModeStandard, config.DefaultTunnelsConfig(), 1)
	place(t, g, 0, "+x/+y")

	cmd, err := ParseCommand("move l u")
	require.NoError(t, err)
	require.NoError(t, g.Execute(cmd))
	assert.Equal(t, 2, g.presses)

	cmd, err = ParseCommand("solve")
	require.NoError(t, err)
	require.NoError(t, g.Execute(cmd))
	assert.True(t, g.State().Won)
}

func TestPracticeShowsEverySymbol(t *testing.T) {
	std := newTestGame(t, ModeStandard, config.DefaultTunnelsConfig(), 4)
	prc := newTestGame(t, ModePractice, config.DefaultTunnelsConfig(), 4)

	shown := 0
	for c := maze.Cell(0); c < maze.CellCount; c++ {
		assert.True(t, prc.Visible(c))
		if std.Visible(c) {
			shown++
		}
	}
	assert.Equal(t, 6, shown)
}

func TestRender(t *testing.T) {
	g := newTestGame(t, ModeStandard, config.DefaultTunnelsConfig(), 1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	assert.Contains(t, out, "3D Tunnels")
	assert.Contains(t, out, "Target: ")
	assert.Contains(t, out, "Stage 1/3")

	small := NewWithConfig(ModeStandard, config.DefaultTunnelsConfig())
	small.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, Seed: 1})
	tiny := core.NewScreen(20, 10)
	small.Render(tiny)
	assert.Contains(t, tiny.String(), "Window too small")
	assert.Equal(t, StatePausedSmall, small.Snapshot().State)
}
