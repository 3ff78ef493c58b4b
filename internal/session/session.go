// Package session runs one player's tunnels game and reports what happens in
// it: structured logs, Prometheus counters, the press journal and the stored
// run. Every front end (terminal, SSH, websocket) drives a Session.
package session

import (
	"log/slog"
	"strings"
	"time"

	"github.com/vovakirdan/tui-tunnels/internal/core"
	"github.com/vovakirdan/tui-tunnels/internal/games/tunnels"
	"github.com/vovakirdan/tui-tunnels/internal/journal"
	"github.com/vovakirdan/tui-tunnels/internal/logging"
	"github.com/vovakirdan/tui-tunnels/internal/metrics"
	"github.com/vovakirdan/tui-tunnels/internal/storage"
)

// Run results.
const (
	ResultSolved    = "solved"
	ResultGameOver  = "game_over"
	ResultAbandoned = "abandoned"
)

// Options wires a session to its surroundings. Every field is optional.
type Options struct {
	Player     string
	Transport  string // local, ssh or ws
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	Store      *storage.Store
	JournalDir string
	// OnEvent, if set, sees every game event after it has been recorded.
	OnEvent func(tunnels.Event)
}

// Session owns a game for the lifetime of one connection.
type Session struct {
	game    *tunnels.Game
	opts    Options
	log     *slog.Logger
	runtime core.RuntimeConfig

	journal  *journal.Writer
	started  time.Time
	finished bool
	active   bool
	lastRun  int64 // ID of the last stored run
}

// New wraps game. Call Start before the first Step.
func New(game *tunnels.Game, runtime core.RuntimeConfig, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Transport == "" {
		opts.Transport = "local"
	}
	if opts.Player == "" {
		opts.Player = "local"
	}
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}
	s := &Session{
		game:    game,
		opts:    opts,
		runtime: runtime,
		log:     opts.Logger.With("player", opts.Player, "transport", opts.Transport),
	}
	if opts.Metrics != nil {
		game.SetSolveObserver(opts.Metrics.ObserveSolve)
	}
	return s
}

// Game returns the wrapped game.
func (s *Session) Game() *tunnels.Game {
	return s.game
}

// Start generates a puzzle and opens a journal for it.
func (s *Session) Start() {
	s.game.Reset(s.runtime)
	s.game.DrainEvents()
	s.started = time.Now()
	s.finished = false

	if !s.active {
		s.active = true
		if m := s.opts.Metrics; m != nil {
			m.ActiveSessions.WithLabelValues(s.opts.Transport).Inc()
		}
	}

	s.log.Info("puzzle started", "mode", s.game.ID(), "seed", s.runtime.Seed,
		"stages", s.game.Stages(), "target", s.game.Symbols().Name(s.game.Target()))
	s.openJournal()
}

// Restart abandons the current run, if any, and starts a new puzzle.
// A zero seed picks one from the clock.
func (s *Session) Restart(seed int64) {
	s.finish(ResultAbandoned)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.runtime.Seed = seed
	s.Start()
}

// Resize tells the game about a new screen size.
func (s *Session) Resize(w, h int) {
	s.runtime.ScreenW = w
	s.runtime.ScreenH = h
	s.game.Resize(w, h)
}

// Step advances the game one tick and reports its events.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	res := s.game.Step(in)
	s.flush()
	return res
}

// Execute runs a text command and reports its events.
func (s *Session) Execute(cmd tunnels.Command) error {
	err := s.game.Execute(cmd)
	s.flush()
	return err
}

// Close abandons an unfinished run and releases the journal.
func (s *Session) Close() {
	s.finish(ResultAbandoned)
	if s.active {
		s.active = false
		if m := s.opts.Metrics; m != nil {
			m.ActiveSessions.WithLabelValues(s.opts.Transport).Dec()
		}
	}
}

// LastRunID returns the storage ID of the last saved run, or 0.
func (s *Session) LastRunID() int64 {
	return s.lastRun
}

func (s *Session) flush() {
	mode := s.game.ID()
	for _, e := range s.game.DrainEvents() {
		switch e.Kind {
		case tunnels.EventMoved, tunnels.EventStageCleared, tunnels.EventStrike:
			s.recordPress(mode, e)
		case tunnels.EventSolved:
			s.log.Info("puzzle solved", "presses", s.game.Presses(), "strikes", s.game.Strikes(),
				"assisted", s.game.Assisted())
			s.finish(ResultSolved)
		case tunnels.EventGameOver:
			s.log.Warn("strike limit reached", "strikes", s.game.Strikes())
			s.finish(ResultGameOver)
		case tunnels.EventSolverFailed:
			s.log.Error("solver exhausted", "state", e.State.String(), "err", e.Err)
		}
		if s.opts.OnEvent != nil {
			s.opts.OnEvent(e)
		}
	}
}

func (s *Session) recordPress(mode string, e tunnels.Event) {
	if m := s.opts.Metrics; m != nil {
		m.Presses.WithLabelValues(mode, e.Button.String()).Inc()
		switch e.Kind {
		case tunnels.EventStrike:
			m.Strikes.WithLabelValues(mode, e.Strike.String()).Inc()
		case tunnels.EventStageCleared:
			m.StagesCleared.WithLabelValues(mode).Inc()
		}
	}

	switch e.Kind {
	case tunnels.EventStrike:
		s.log.Warn("strike", "reason", e.Strike.String(), "stage", e.Stage+1,
			"log", strings.Join(e.Narration, " "))
	case tunnels.EventStageCleared:
		s.log.Info("target identified", "stage", e.Stage+1, "symbol", s.game.Symbols().Name(e.State.Cell))
	default:
		s.log.Debug("press", "button", e.Button.String(), "state", e.State.String())
	}

	entry := journal.Entry{
		Kind:        journal.KindPress,
		Button:      e.Button.String(),
		Cell:        int(e.State.Cell),
		Orientation: e.State.Orientation.String(),
		Stage:       e.Stage,
		Narration:   e.Narration,
	}
	if e.Strike != tunnels.StrikeNone {
		entry.Strike = e.Strike.String()
	}
	s.writeJournal(entry)
}

func (s *Session) openJournal() {
	s.closeJournal()
	if s.opts.JournalDir == "" {
		return
	}
	path := journal.SessionPath(s.opts.JournalDir, s.game.ID(), s.runtime.Seed, s.started)
	w, err := journal.Create(path)
	if err != nil {
		s.log.Warn("journal disabled", "err", err)
		return
	}
	s.journal = w
	cfg := s.game.Config()
	pos := s.game.Position()
	s.writeJournal(journal.Entry{
		Kind:        journal.KindStart,
		Mode:        s.game.ID(),
		Player:      s.opts.Player,
		Seed:        s.runtime.Seed,
		Config:      &cfg,
		Cell:        int(pos.Cell),
		Orientation: pos.Orientation.String(),
	})
}

func (s *Session) writeJournal(e journal.Entry) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Write(e); err != nil {
		s.log.Warn("journal write failed", "path", s.journal.Path(), "err", err)
		s.closeJournal()
	}
}

func (s *Session) closeJournal() {
	if s.journal == nil {
		return
	}
	if err := s.journal.Close(); err != nil {
		s.log.Warn("journal close failed", "path", s.journal.Path(), "err", err)
	}
	s.journal = nil
}

// finish records the end of a run once. Abandoned runs without a press are
// not stored.
func (s *Session) finish(result string) {
	if s.finished || s.started.IsZero() {
		return
	}
	s.finished = true
	mode := s.game.ID()

	if m := s.opts.Metrics; m != nil {
		m.RunsFinished.WithLabelValues(mode, result).Inc()
	}
	s.writeJournal(journal.Entry{
		Kind:     journal.KindEnd,
		Result:   result,
		Score:    s.game.Score(),
		Assisted: s.game.Assisted(),
		Cell:     int(s.game.Position().Cell),
		Stage:    s.game.Cleared(),
	})
	s.closeJournal()

	if s.opts.Store == nil || (result == ResultAbandoned && s.game.Presses() == 0) {
		return
	}
	id, err := s.opts.Store.SaveRun(storage.Run{
		Mode:     mode,
		Player:   s.opts.Player,
		Seed:     s.runtime.Seed,
		RuleSeed: s.game.Config().Rules.RuleSeed,
		Score:    s.game.Score(),
		Strikes:  s.game.Strikes(),
		Cleared:  s.game.Cleared(),
		Stages:   s.game.Stages(),
		Presses:  s.game.Presses(),
		Solved:   result == ResultSolved,
		Assisted: s.game.Assisted(),
		Duration: time.Since(s.started),
	})
	if err != nil {
		s.log.Warn("run not saved", "err", err)
		return
	}
	s.lastRun = id
	s.log.Debug("run saved", "id", id, "result", result)
}
