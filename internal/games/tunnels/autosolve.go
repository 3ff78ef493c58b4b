package tunnels

import (
	"time"

	"github.com/vovakirdan/tui-tunnels/internal/maze"
)

// planStage computes the presses that reach the current target and press Target.
func (g *Game) planStage() ([]Button, error) {
	solve := g.solve
	if solve == nil {
		solve = maze.Solve
	}
	started := time.Now()
	actions, err := solve(g.pos, g.Target())
	if g.solveObserver != nil {
		g.solveObserver(time.Since(started), len(actions), err)
	}
	if err != nil {
		return nil, err
	}
	plan := make([]Button, 0, len(actions)+1)
	for _, a := range actions {
		plan = append(plan, ButtonFor(a))
	}
	return append(plan, ButtonTarget), nil
}

// StartAutoSolve hands the rest of the run to the solver. Presses are paced by
// solve_step_ticks from Step.
func (g *Game) StartAutoSolve() {
	if g.Over() || g.solving {
		return
	}
	g.assisted = true
	g.solving = true
	g.plan = nil
	g.solveWait = 0
	g.message = "Solving..."
}

// Solving reports whether the auto-solver is driving.
func (g *Game) Solving() bool {
	return g.solving
}

func (g *Game) stepSolver() {
	if g.solveWait > 0 {
		g.solveWait--
		return
	}
	if len(g.plan) == 0 {
		plan, err := g.planStage()
		if err != nil {
			g.solving = false
			g.message = "Solver gave up."
			g.emit(Event{Kind: EventSolverFailed, State: g.pos, Stage: g.stage, Err: err})
			return
		}
		g.plan = plan
	}

	b := g.plan[0]
	g.plan = g.plan[1:]
	g.Press(b)
	g.solveWait = max(g.cfg.Gameplay.SolveStepTicks-1, 0)

	if g.Over() {
		g.solving = false
	}
}

// SolveNow presses the solution for every remaining stage at once.
func (g *Game) SolveNow() error {
	if g.Over() {
		return nil
	}
	g.assisted = true
	g.solving = false
	g.plan = nil
	for !g.Over() {
		plan, err := g.planStage()
		if err != nil {
			g.emit(Event{Kind: EventSolverFailed, State: g.pos, Stage: g.stage, Err: err})
			return err
		}
		for _, b := range plan {
			g.Press(b)
		}
	}
	return nil
}
