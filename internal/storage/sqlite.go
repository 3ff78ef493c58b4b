// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one finished (or abandoned) tunnels run.
type Run struct {
	ID        int64
	Mode      string // Registry ID, e.g. "tunnels"
	Player    string // SSH user, "local" or websocket client name
	Seed      int64
	RuleSeed  int
	Score     int
	Strikes   int
	Cleared   int // Targets identified
	Stages    int // Targets in the puzzle
	Presses   int
	Solved    bool
	Assisted  bool
	Duration  time.Duration
	CreatedAt time.Time
}

// RunStats aggregates the runs of one mode.
type RunStats struct {
	Runs       int
	Solved     int
	Assisted   int
	BestScore  int
	AvgStrikes float64
	AvgPresses float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL DEFAULT 0,
			rule_seed INTEGER NOT NULL DEFAULT 1,
			score INTEGER NOT NULL DEFAULT 0,
			strikes INTEGER NOT NULL DEFAULT 0,
			cleared INTEGER NOT NULL DEFAULT 0,
			stages INTEGER NOT NULL DEFAULT 0,
			presses INTEGER NOT NULL DEFAULT 0,
			solved INTEGER NOT NULL DEFAULT 0,
			assisted INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_mode ON runs(mode);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(mode, score DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run and returns its ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (mode, player, seed, rule_seed, score, strikes, cleared, stages,
		                   presses, solved, assisted, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Mode, r.Player, r.Seed, r.RuleSeed, r.Score, r.Strikes, r.Cleared, r.Stages,
		r.Presses, r.Solved, r.Assisted, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const runColumns = `id, mode, player, seed, rule_seed, score, strikes, cleared, stages,
	presses, solved, assisted, duration_ms, created_at`

// TopRuns retrieves the best unassisted runs for a mode, highest score first.
// Ties go to fewer presses.
func (s *Store) TopRuns(mode string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE mode = ? AND assisted = 0
		 ORDER BY score DESC, presses ASC, id ASC
		 LIMIT ?`,
		mode, limit,
	)
}

// RecentRuns retrieves the latest runs across all modes.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Mode, &r.Player, &r.Seed, &r.RuleSeed, &r.Score,
			&r.Strikes, &r.Cleared, &r.Stages, &r.Presses, &r.Solved, &r.Assisted,
			&durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// parseTimestamp handles both time.Time and string datetime columns.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// BestScore returns the highest unassisted score for a mode, or 0.
func (s *Store) BestScore(mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE mode = ? AND assisted = 0",
		mode,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats aggregates all runs of a mode.
func (s *Store) Stats(mode string) (RunStats, error) {
	var st RunStats
	var best sql.NullInt64
	var avgStrikes, avgPresses sql.NullFloat64
	var last any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(solved), 0),
		        COALESCE(SUM(assisted), 0),
		        MAX(CASE WHEN assisted = 0 THEN score END),
		        AVG(strikes),
		        AVG(presses),
		        MAX(created_at)
		 FROM runs WHERE mode = ?`,
		mode,
	).Scan(&st.Runs, &st.Solved, &st.Assisted, &best, &avgStrikes, &avgPresses, &last)
	if err != nil {
		return st, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	st.BestScore = int(best.Int64)
	st.AvgStrikes = avgStrikes.Float64
	st.AvgPresses = avgPresses.Float64
	st.LastPlayed = parseTimestamp(last)
	return st, nil
}

// ClearRuns removes all runs of a mode.
func (s *Store) ClearRuns(mode string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE mode = ?", mode); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
