// Package ws serves tunnels runs over a JSON websocket protocol for bots and
// remote clients. A client sends HELLO, receives OBS, then sends ACT
// commands and receives an OBS after each.
package ws

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-tunnels/internal/config"
	"github.com/vovakirdan/tui-tunnels/internal/core"
	"github.com/vovakirdan/tui-tunnels/internal/games/tunnels"
	"github.com/vovakirdan/tui-tunnels/internal/logging"
	"github.com/vovakirdan/tui-tunnels/internal/metrics"
	"github.com/vovakirdan/tui-tunnels/internal/session"
	"github.com/vovakirdan/tui-tunnels/internal/storage"
)

const (
	handshakeTimeout = 5 * time.Second
	idleTimeout      = 5 * time.Minute
	writeTimeout     = 5 * time.Second
)

// Options configures a Server. Every field is optional.
type Options struct {
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	Store      *storage.Store
	JournalDir string
	// Config overrides the loaded game configuration.
	Config *config.TunnelsConfig
}

// Server upgrades HTTP requests and runs one session per connection.
type Server struct {
	opts     Options
	log      *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a websocket server.
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Server{
		opts: opts,
		log:  opts.Logger.With("component", "ws"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

type client struct {
	conn    *websocket.Conn
	sess    *session.Session
	game    *tunnels.Game
	strikes []StrikeReport
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	c, err := s.handshake(conn)
	if err != nil {
		s.log.Debug("handshake failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer c.sess.Close()

	if err := s.writeObs(c); err != nil {
		return
	}
	s.readLoop(c)
}

func (s *Server) handshake(conn *websocket.Conn) (*client, error) {
	_ = conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}

	base, err := DecodeBase(msg)
	if err != nil || base.Type != TypeHello {
		s.reject(conn, ErrProtoBadRequest, "first message must be HELLO")
		return nil, errors.New("ws: expected HELLO")
	}
	if base.ProtocolVersion != ProtocolVersion {
		s.reject(conn, ErrProtoVersion, "unsupported protocol_version "+base.ProtocolVersion)
		return nil, errors.New("ws: unsupported protocol version")
	}
	hello, err := DecodeHello(msg)
	if err != nil {
		s.reject(conn, ErrProtoBadRequest, err.Error())
		return nil, err
	}

	mode := tunnels.ModeStandard
	if hello.Mode == "tunnels_practice" {
		mode = tunnels.ModePractice
	}
	var g *tunnels.Game
	switch {
	case s.opts.Config != nil:
		g = tunnels.NewWithConfig(mode, *s.opts.Config)
	case mode == tunnels.ModePractice:
		g = tunnels.NewPractice()
	default:
		g = tunnels.New()
	}

	player := hello.Player
	if player == "" {
		player = conn.RemoteAddr().String()
	}

	c := &client{conn: conn, game: g}
	runtime := core.DefaultConfig()
	runtime.Seed = hello.Seed
	c.sess = session.New(g, runtime, session.Options{
		Player:     player,
		Transport:  "ws",
		Logger:     s.opts.Logger,
		Metrics:    s.opts.Metrics,
		Store:      s.opts.Store,
		JournalDir: s.opts.JournalDir,
		OnEvent: func(e tunnels.Event) {
			if e.Kind != tunnels.EventStrike {
				return
			}
			report := StrikeReport{Reason: e.Strike.String()}
			// The narration names the current cell, so only practice sends it.
			if mode == tunnels.ModePractice {
				report.Narration = e.Narration
			}
			c.strikes = append(c.strikes, report)
		},
	})
	c.sess.Start()
	return c, nil
}

func (s *Server) readLoop(c *client) {
	for {
		_ = c.conn.SetReadDeadline(time.Now().Add(idleTimeout))
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		base, err := DecodeBase(msg)
		if err != nil {
			if s.writeError(c.conn, ErrProtoBadRequest, "bad json") != nil {
				return
			}
			continue
		}
		if base.Type != TypeAct {
			if s.writeError(c.conn, ErrProtoBadRequest, "unexpected message type "+base.Type) != nil {
				return
			}
			continue
		}

		act, err := DecodeAct(msg)
		if err != nil {
			if s.writeError(c.conn, ErrProtoBadRequest, err.Error()) != nil {
				return
			}
			continue
		}
		cmd, err := tunnels.ParseCommand(act.Command)
		if err != nil {
			if s.writeError(c.conn, ErrBadCommand, err.Error()) != nil {
				return
			}
			continue
		}

		c.strikes = nil
		if err := c.sess.Execute(cmd); err != nil {
			if s.writeError(c.conn, ErrInternal, err.Error()) != nil {
				return
			}
			continue
		}
		if err := s.writeObs(c); err != nil {
			return
		}
	}
}

// observe builds the OBS for c. Outside practice the position stays hidden.
func observe(c *client) ObsMsg {
	snap := c.game.Snapshot()
	if c.game.Mode() != tunnels.ModePractice {
		snap.Cell = -1
		snap.Orientation = ""
	}
	return ObsMsg{
		Type:            TypeObs,
		ProtocolVersion: ProtocolVersion,
		Seed:            c.game.Seed(),
		State:           snap,
		Strikes:         c.strikes,
		RunID:           c.sess.LastRunID(),
	}
}

func (s *Server) writeObs(c *client) error {
	return writeJSON(c.conn, observe(c))
}

func (s *Server) writeError(conn *websocket.Conn, code, message string) error {
	return writeJSON(conn, ErrorMsg{Type: TypeError, Code: code, Message: message})
}

// reject reports a failed handshake and closes the connection.
func (s *Server) reject(conn *websocket.Conn, code, message string) {
	_ = s.writeError(conn, code, message)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, message),
		time.Now().Add(time.Second))
}

func writeJSON(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(v)
}
