package ws

import (
	"encoding/json"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tunnels/internal/config"
	"github.com/vovakirdan/tui-tunnels/internal/games/tunnels"
	"github.com/vovakirdan/tui-tunnels/internal/maze"
)

func dial(t *testing.T) *websocket.Conn {
	t.Helper()
	cfg := config.DefaultTunnelsConfig()
	srv := httptest.NewServer(NewServer(Options{Config: &cfg}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(v))
}

func readObs(t *testing.T, conn *websocket.Conn) ObsMsg {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var obs ObsMsg
	require.NoError(t, json.Unmarshal(raw, &obs))
	require.Equal(t, TypeObs, obs.Type, "got %s", raw)
	return obs
}

func readError(t *testing.T, conn *websocket.Conn) ErrorMsg {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg ErrorMsg
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, TypeError, msg.Type)
	return msg
}

func hello(mode string, seed int64) map[string]any {
	return map[string]any{
		"type":             TypeHello,
		"protocol_version": ProtocolVersion,
		"mode":             mode,
		"seed":             seed,
		"player":           "bot",
	}
}

func act(command string) map[string]any {
	return map[string]any{"type": TypeAct, "command": command}
}

func TestHelloHidesPositionInStandardMode(t *testing.T) {
	conn := dial(t)
	send(t, conn, hello("tunnels", 42))

	obs := readObs(t, conn)
	assert.Equal(t, int64(42), obs.Seed)
	assert.Equal(t, -1, obs.State.Cell)
	assert.Empty(t, obs.State.Orientation)
	assert.Equal(t, "standard", obs.State.Mode)
	assert.Equal(t, 3, obs.State.Stages)
	assert.NotEmpty(t, obs.State.Target)
}

func TestPracticeShowsPosition(t *testing.T) {
	conn := dial(t)
	send(t, conn, hello("tunnels_practice", 42))

	obs := readObs(t, conn)
	assert.GreaterOrEqual(t, obs.State.Cell, 0)
	assert.NotEmpty(t, obs.State.Orientation)
	assert.NotEmpty(t, obs.State.Symbol)
}

func TestSolveCommand(t *testing.T) {
	conn := dial(t)
	send(t, conn, hello("tunnels", 7))
	readObs(t, conn)

	send(t, conn, act("solve"))
	obs := readObs(t, conn)
	assert.Equal(t, "solved", string(obs.State.State))
	assert.True(t, obs.State.Assisted)
	assert.Zero(t, obs.State.Score)
	assert.Empty(t, obs.Strikes)
}

func TestStrikeIsNarrated(t *testing.T) {
	conn := dial(t)
	send(t, conn, hello("tunnels_practice", 3))
	obs := readObs(t, conn)

	letters := map[string]string{"up": "u", "right": "r", "down": "d", "left": "l"}
	for range 6 {
		blocked := ""
		for _, dir := range []string{"up", "right", "down", "left"} {
			if !slices.Contains(obs.State.Openings, dir) {
				blocked = letters[dir]
				break
			}
		}
		if blocked == "" {
			send(t, conn, act("move u"))
			obs = readObs(t, conn)
			require.Empty(t, obs.Strikes)
			continue
		}

		strikes := obs.State.Strikes
		send(t, conn, act("move "+blocked))
		obs = readObs(t, conn)
		require.Len(t, obs.Strikes, 1)
		assert.Equal(t, "fly_into_wall", obs.Strikes[0].Reason)
		require.NotEmpty(t, obs.Strikes[0].Narration)
		assert.True(t, strings.HasSuffix(obs.Strikes[0].Narration[len(obs.Strikes[0].Narration)-1], "You fly into a wall!"))
		assert.Equal(t, strikes+1, obs.State.Strikes)
		return
	}
	t.Fatal("never found a wall to fly into")
}

func TestStandardStrikeHidesNarration(t *testing.T) {
	conn := dial(t)
	send(t, conn, hello("tunnels", 7))
	readObs(t, conn)

	send(t, conn, act("submit"))
	obs := readObs(t, conn)
	assert.Equal(t, -1, obs.State.Cell)
	require.Len(t, obs.Strikes, 1)
	assert.Equal(t, "not_on_target", obs.Strikes[0].Reason)
	assert.Empty(t, obs.Strikes[0].Narration)

	raw, err := json.Marshal(obs.Strikes)
	require.NoError(t, err)
	symbols := tunnels.NewSymbolSet(config.DefaultTunnelsConfig().Rules.RuleSeed)
	for c := range maze.CellCount {
		assert.NotContains(t, string(raw), symbols.Name(maze.Cell(c)))
	}
}

func TestBadCommandKeepsConnection(t *testing.T) {
	conn := dial(t)
	send(t, conn, hello("tunnels", 1))
	readObs(t, conn)

	send(t, conn, act("jump"))
	assert.Equal(t, ErrBadCommand, readError(t, conn).Code)

	send(t, conn, map[string]any{"type": TypeAct})
	assert.Equal(t, ErrProtoBadRequest, readError(t, conn).Code)

	send(t, conn, map[string]any{"type": "PING"})
	assert.Equal(t, ErrProtoBadRequest, readError(t, conn).Code)

	send(t, conn, act("submit"))
	obs := readObs(t, conn)
	assert.Equal(t, 1, obs.State.Presses)
}

func TestHandshakeRejectsOtherMessages(t *testing.T) {
	conn := dial(t)
	send(t, conn, act("solve"))
	assert.Equal(t, ErrProtoBadRequest, readError(t, conn).Code)

	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.ClosePolicyViolation))
}

func TestHandshakeRejectsVersion(t *testing.T) {
	conn := dial(t)
	msg := hello("tunnels", 1)
	msg["protocol_version"] = "0"
	send(t, conn, msg)
	assert.Equal(t, ErrProtoVersion, readError(t, conn).Code)
}

func TestDecodeHello(t *testing.T) {
	m, err := DecodeHello([]byte(`{"type":"HELLO","protocol_version":"1","seed":9007199254740993,"player":"p"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(9007199254740993), m.Seed)
	assert.Equal(t, "p", m.Player)

	_, err = DecodeHello([]byte(`{"type":"HELLO","protocol_version":"1","mode":"snake"}`))
	assert.Error(t, err)

	_, err = DecodeHello([]byte(`{"type":"HELLO","protocol_version":"1","extra":true}`))
	assert.Error(t, err)
}
