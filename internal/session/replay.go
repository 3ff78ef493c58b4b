package session

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-tunnels/internal/core"
	"github.com/vovakirdan/tui-tunnels/internal/games/tunnels"
	"github.com/vovakirdan/tui-tunnels/internal/journal"
)

// ErrReplayMismatch is returned when a journal does not reproduce.
var ErrReplayMismatch = errors.New("session: replay mismatch")

// ReplayReport summarizes a verified journal.
type ReplayReport struct {
	Mode     string
	Seed     int64
	Presses  int
	Strikes  int
	Cleared  int
	Stages   int
	Score    int
	Assisted bool
	Result   string // From the end entry; empty when the journal was cut short
}

// Replay rebuilds the puzzle from a journal's start entry, presses every
// recorded button again and checks each resulting position.
func Replay(entries []journal.Entry) (ReplayReport, error) {
	var rep ReplayReport
	if len(entries) == 0 || entries[0].Kind != journal.KindStart || entries[0].Config == nil {
		return rep, fmt.Errorf("%w: journal has no start entry", ErrReplayMismatch)
	}
	start := entries[0]
	mode := tunnels.ModeStandard
	if start.Mode == "tunnels_practice" {
		mode = tunnels.ModePractice
	}
	g := tunnels.NewWithConfig(mode, *start.Config)
	rt := core.DefaultConfig()
	rt.Seed = start.Seed
	g.Reset(rt)

	rep.Mode = g.ID()
	rep.Seed = start.Seed
	if err := checkPosition(g, start); err != nil {
		return rep, err
	}

	for _, e := range entries[1:] {
		switch e.Kind {
		case journal.KindPress:
			b, ok := tunnels.ParseButton(e.Button)
			if !ok {
				return rep, fmt.Errorf("%w: entry %d: unknown button %q", ErrReplayMismatch, e.Seq, e.Button)
			}
			g.Press(b)
			if err := checkPosition(g, e); err != nil {
				return rep, err
			}
		case journal.KindEnd:
			rep.Result = e.Result
			rep.Assisted = e.Assisted
			if !e.Assisted && e.Score != g.Score() {
				return rep, fmt.Errorf("%w: entry %d: score %d, journal says %d", ErrReplayMismatch, e.Seq, g.Score(), e.Score)
			}
		}
	}

	rep.Presses = g.Presses()
	rep.Strikes = g.Strikes()
	rep.Cleared = g.Cleared()
	rep.Stages = g.Stages()
	rep.Score = g.Score()
	if rep.Assisted {
		rep.Score = 0
	}
	return rep, nil
}

func checkPosition(g *tunnels.Game, e journal.Entry) error {
	pos := g.Position()
	if int(pos.Cell) != e.Cell || pos.Orientation.String() != e.Orientation {
		return fmt.Errorf("%w: entry %d: at %s, journal says %d@%s",
			ErrReplayMismatch, e.Seq, pos, e.Cell, e.Orientation)
	}
	return nil
}
