package journal

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tunnels/internal/config"
)

func TestWriteRead(t *testing.T) {
	cfg := config.DefaultTunnelsConfig()
	path := SessionPath(filepath.Join(t.TempDir(), "journals"), "tunnels", 42, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	assert.Equal(t, "tunnels-20260102-030405-42.jsonl.zst", filepath.Base(path))

	w, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(Entry{Kind: KindStart, Mode: "tunnels", Seed: 42, Config: &cfg}))
	require.NoError(t, w.Write(Entry{Kind: KindPress, Button: "Up", Cell: 3, Orientation: "+y/-x"}))
	require.NoError(t, w.Write(Entry{
		Kind: KindPress, Button: "Down", Cell: 3, Orientation: "-x/-y", Strike: "fly_into_wall",
		Narration: []string{"Starting at Cube.", "Pressing Down."},
	}))
	require.NoError(t, w.Write(Entry{Kind: KindEnd, Result: "abandoned"}))
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "double close is a no-op")
	assert.Error(t, w.Write(Entry{Kind: KindPress}))

	entries, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	for i, e := range entries {
		assert.Equal(t, i+1, e.Seq)
		assert.False(t, e.Time.IsZero())
	}
	require.NotNil(t, entries[0].Config)
	assert.Equal(t, cfg, *entries[0].Config)
	assert.Equal(t, "+y/-x", entries[1].Orientation)
	assert.Equal(t, []string{"Starting at Cube.", "Pressing Down."}, entries[2].Narration)
	assert.Equal(t, "abandoned", entries[3].Result)
}

func TestReadRejectsGarbage(t *testing.T) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write([]byte("{\"seq\":1,\"kind\":\"start\"}\nnot json\n"))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	entries, err := Read(&buf)
	assert.Error(t, err)
	assert.Len(t, entries, 1)

	_, err = Read(bytes.NewReader([]byte("plain text, not zstd")))
	assert.Error(t, err)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.jsonl.zst"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCreateNeverReusesAFile(t *testing.T) {
	path := SessionPath(t.TempDir(), "tunnels", 42, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	first, err := Create(path)
	require.NoError(t, err)
	second, err := Create(path)
	require.NoError(t, err)
	third, err := Create(path)
	require.NoError(t, err)

	assert.Equal(t, path, first.Path())
	assert.Equal(t, "tunnels-20260102-030405-42-2.jsonl.zst", filepath.Base(second.Path()))
	assert.Equal(t, "tunnels-20260102-030405-42-3.jsonl.zst", filepath.Base(third.Path()))

	for i, w := range []*Writer{first, second, third} {
		require.NoError(t, w.Write(Entry{Kind: KindStart, Mode: "tunnels", Seed: int64(i)}))
	}
	for i, w := range []*Writer{first, second, third} {
		require.NoError(t, w.Close())
		entries, err := ReadFile(w.Path())
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, int64(i), entries[0].Seed)
	}
}
