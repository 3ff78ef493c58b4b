// Package web exposes the HTTP surface: the websocket endpoint, a stateless
// solver API, the score table, Prometheus metrics and a health check.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-tunnels/internal/logging"
	"github.com/vovakirdan/tui-tunnels/internal/maze"
	"github.com/vovakirdan/tui-tunnels/internal/metrics"
	"github.com/vovakirdan/tui-tunnels/internal/storage"
)

const maxScoreLimit = 100

// Options configures the handler. Nil fields disable their routes.
type Options struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Store     *storage.Store
	Websocket http.Handler
}

// Server holds the handler dependencies.
type Server struct {
	opts Options
	log  *slog.Logger
}

// SolveRequest asks for the shortest button sequence from a state to a cell.
type SolveRequest struct {
	Cell        *int   `json:"cell"`
	Orientation string `json:"orientation"` // "<forward>/<up>", e.g. "+x/+y"
	Target      *int   `json:"target"`
}

// SolveResponse lists the buttons in the command language.
type SolveResponse struct {
	Actions string   `json:"actions"`
	Buttons []string `json:"buttons"`
	Length  int      `json:"length"`
}

// RunResponse is one row of the score table.
type RunResponse struct {
	ID         int64     `json:"id"`
	Mode       string    `json:"mode"`
	Player     string    `json:"player"`
	Seed       int64     `json:"seed"`
	Score      int       `json:"score"`
	Strikes    int       `json:"strikes"`
	Presses    int       `json:"presses"`
	Solved     bool      `json:"solved"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler builds the router.
func NewHandler(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	s := &Server{opts: opts, log: opts.Logger.With("component", "web")}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok\n"))
	})
	if opts.Websocket != nil {
		r.Handle("/ws", opts.Websocket)
	}
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/solve", s.Solve)
		if opts.Store != nil {
			r.Get("/scores/{mode}", s.Scores)
		}
	})
	return r
}

// Solve handles POST /api/solve.
func (s *Server) Solve(w http.ResponseWriter, r *http.Request) {
	var body SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Cell == nil || body.Target == nil || body.Orientation == "" {
		s.writeError(w, http.StatusBadRequest, "cell, orientation and target are required")
		return
	}

	o, err := maze.ParseOrientation(body.Orientation)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	start := maze.State{Cell: maze.Cell(*body.Cell), Orientation: o}
	target := maze.Cell(*body.Target)
	if !start.Valid() || !target.Valid() {
		s.writeError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("%v: cell and target must be in [0, %d]", maze.ErrInvalidCoordinate, maze.CellCount-1))
		return
	}

	began := time.Now()
	actions, err := maze.Solve(start, target)
	s.opts.Metrics.ObserveSolve(time.Since(began), len(actions), err)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, maze.ErrInvalidCoordinate) {
			status = http.StatusUnprocessableEntity
		}
		s.log.Error("solve failed", "start", start.String(), "target", int(target), "err", err)
		s.writeError(w, status, err.Error())
		return
	}

	resp := SolveResponse{
		Actions: maze.FormatActions(actions),
		Buttons: make([]string, len(actions)),
		Length:  len(actions),
	}
	for i, a := range actions {
		resp.Buttons[i] = a.String()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// Scores handles GET /api/scores/{mode}?limit=N.
func (s *Server) Scores(w http.ResponseWriter, r *http.Request) {
	mode := chi.URLParam(r, "mode")
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxScoreLimit {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("limit must be in [1, %d]", maxScoreLimit))
			return
		}
		limit = n
	}

	runs, err := s.opts.Store.TopRuns(mode, limit)
	if err != nil {
		s.log.Error("score query failed", "mode", mode, "err", err)
		s.writeError(w, http.StatusInternalServerError, "cannot load scores")
		return
	}
	out := make([]RunResponse, len(runs))
	for i, run := range runs {
		out[i] = RunResponse{
			ID:         run.ID,
			Mode:       run.Mode,
			Player:     run.Player,
			Seed:       run.Seed,
			Score:      run.Score,
			Strikes:    run.Strikes,
			Presses:    run.Presses,
			Solved:     run.Solved,
			DurationMS: run.Duration.Milliseconds(),
			CreatedAt:  run.CreatedAt,
		}
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
