// Package journal records tunnels sessions as zstd-compressed JSON lines, one
// entry per press, so a run can be listed or replayed later.
package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/tui-tunnels/internal/config"
)

// Ext is the journal file extension.
const Ext = ".jsonl.zst"

// maxNameAttempts bounds the suffixes Create tries for a taken name.
const maxNameAttempts = 100

// Entry kinds.
const (
	KindStart = "start"
	KindPress = "press"
	KindEnd   = "end"
)

// Entry is one journal line.
type Entry struct {
	Seq  int       `json:"seq"`
	Time time.Time `json:"time"`
	Kind string    `json:"kind"`

	// Start entries describe the puzzle.
	Mode   string                `json:"mode,omitempty"`
	Player string                `json:"player,omitempty"`
	Seed   int64                 `json:"seed,omitempty"`
	Config *config.TunnelsConfig `json:"config,omitempty"`

	// Press entries.
	Button      string   `json:"button,omitempty"`
	Cell        int      `json:"cell"`
	Orientation string   `json:"orientation,omitempty"`
	Stage       int      `json:"stage"`
	Strike      string   `json:"strike,omitempty"`
	Narration   []string `json:"narration,omitempty"`

	// End entries.
	Score    int    `json:"score,omitempty"`
	Assisted bool   `json:"assisted,omitempty"`
	Result   string `json:"result,omitempty"` // solved, game_over or abandoned
}

// Writer appends entries to one compressed journal file.
type Writer struct {
	path string

	mu  sync.Mutex
	seq int
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// SessionPath returns the journal file name for a session.
func SessionPath(dir, mode string, seed int64, at time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%s-%d%s", mode, at.UTC().Format("20060102-150405"), seed, Ext))
}

// Create opens a new journal file, creating parent directories. An existing
// file is never reused: when path is taken, a "-2", "-3", ... suffix is added
// before the extension. Path reports the name actually used.
func Create(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("journal: cannot create directory: %w", err)
	}
	f, path, err := createExclusive(path)
	if err != nil {
		return nil, fmt.Errorf("journal: cannot create %s: %w", path, err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("journal: cannot start encoder: %w", err)
	}
	return &Writer{
		path: path,
		f:    f,
		enc:  enc,
		w:    bufio.NewWriterSize(enc, 32*1024),
	}, nil
}

func createExclusive(path string) (*os.File, string, error) {
	base := strings.TrimSuffix(path, Ext)
	candidate := path
	for n := 2; ; n++ {
		f, err := os.OpenFile(candidate, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
		if err == nil {
			return f, candidate, nil
		}
		if !errors.Is(err, os.ErrExist) || n > maxNameAttempts {
			return nil, candidate, err
		}
		candidate = fmt.Sprintf("%s-%d%s", base, n, Ext)
	}
}

// Path returns the file the writer appends to.
func (w *Writer) Path() string {
	return w.path
}

// Write appends an entry, filling in its sequence number and time.
func (w *Writer) Write(e Entry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.w == nil {
		return fmt.Errorf("journal: write after close")
	}
	w.seq++
	e.Seq = w.seq
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}

	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("journal: cannot encode entry: %w", err)
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close flushes the encoder and closes the file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.w == nil {
		return nil
	}
	_ = w.w.Flush()
	err := w.enc.Close()
	if cerr := w.f.Close(); err == nil {
		err = cerr
	}
	w.w, w.enc, w.f = nil, nil, nil
	return err
}

// Read decodes every entry from a compressed journal stream.
func Read(r io.Reader) ([]Entry, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("journal: cannot start decoder: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var entries []Entry
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return entries, fmt.Errorf("journal: line %d: %w", len(entries)+1, err)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return entries, fmt.Errorf("journal: %w", err)
	}
	return entries, nil
}

// ReadFile decodes a journal file.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("journal: cannot open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
