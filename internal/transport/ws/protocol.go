package ws

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/vovakirdan/tui-tunnels/internal/games/tunnels"
)

// ProtocolVersion is the only version the server speaks.
const ProtocolVersion = "1"

// Message types.
const (
	TypeHello = "HELLO"
	TypeObs   = "OBS"
	TypeAct   = "ACT"
	TypeError = "ERROR"
)

// Error codes sent in ERROR messages.
const (
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"
	ErrProtoVersion    = "E_PROTO_VERSION"
	ErrBadCommand      = "E_BAD_COMMAND"
	ErrInternal        = "E_INTERNAL"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

// HelloMsg opens a session. Seed 0 lets the server pick one.
type HelloMsg struct {
	Type            string `mapstructure:"type"`
	ProtocolVersion string `mapstructure:"protocol_version"`
	Mode            string `mapstructure:"mode"`
	Seed            int64  `mapstructure:"seed"`
	Player          string `mapstructure:"player"`
}

// ActMsg carries one text command: "move u d l r", "submit" or "solve".
type ActMsg struct {
	Type            string `mapstructure:"type"`
	ProtocolVersion string `mapstructure:"protocol_version"`
	Command         string `mapstructure:"command"`
}

// ObsMsg is the server's view of the run after a HELLO or ACT.
type ObsMsg struct {
	Type            string           `json:"type"`
	ProtocolVersion string           `json:"protocol_version"`
	Seed            int64            `json:"seed"`
	State           tunnels.Snapshot `json:"state"`
	Strikes         []StrikeReport   `json:"strikes,omitempty"`
	RunID           int64            `json:"run_id,omitempty"`
}

// StrikeReport explains one strike caused by the last command.
type StrikeReport struct {
	Reason    string   `json:"reason"`
	Narration []string `json:"narration,omitempty"` // Practice mode only
}

// ErrorMsg reports a rejected message. The connection stays open unless
// the handshake failed.
type ErrorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecodeBase reads only the routing fields of a message.
func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	schemasErr  error
)

func messageSchema(msgType string) (*jsonschema.Schema, error) {
	schemasOnce.Do(func() {
		c := jsonschema.NewCompiler()
		files := map[string]string{
			TypeHello: "schemas/hello.schema.json",
			TypeAct:   "schemas/act.schema.json",
		}
		for _, name := range files {
			data, err := schemaFS.ReadFile(name)
			if err != nil {
				schemasErr = fmt.Errorf("ws: cannot read schema %s: %w", name, err)
				return
			}
			if err := c.AddResource(name, bytes.NewReader(data)); err != nil {
				schemasErr = fmt.Errorf("ws: cannot load schema %s: %w", name, err)
				return
			}
		}
		schemas = make(map[string]*jsonschema.Schema, len(files))
		for typ, name := range files {
			s, err := c.Compile(name)
			if err != nil {
				schemasErr = fmt.Errorf("ws: cannot compile schema %s: %w", name, err)
				return
			}
			schemas[typ] = s
		}
	})
	if schemasErr != nil {
		return nil, schemasErr
	}
	s, ok := schemas[msgType]
	if !ok {
		return nil, fmt.Errorf("ws: no schema for %q", msgType)
	}
	return s, nil
}

// decodeMessage validates b against the schema for msgType and decodes it
// into out.
func decodeMessage(msgType string, b []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("ws: bad json: %w", err)
	}

	s, err := messageSchema(msgType)
	if err != nil {
		return err
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("ws: invalid %s: %w", msgType, err)
	}
	if err := mapstructure.Decode(doc, out); err != nil {
		return fmt.Errorf("ws: cannot decode %s: %w", msgType, err)
	}
	return nil
}

// DecodeHello validates and decodes a HELLO message.
func DecodeHello(b []byte) (HelloMsg, error) {
	var m HelloMsg
	err := decodeMessage(TypeHello, b, &m)
	return m, err
}

// DecodeAct validates and decodes an ACT message.
func DecodeAct(b []byte) (ActMsg, error) {
	var m ActMsg
	err := decodeMessage(TypeAct, b, &m)
	return m, err
}
