package tunnels

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownCommand is returned for input that is not move, submit or solve.
	ErrUnknownCommand = errors.New("tunnels: unknown command")
	// ErrBadMove is returned for a move command with a missing or invalid letter.
	ErrBadMove = errors.New("tunnels: bad move")
)

// CommandKind selects what a Command does.
type CommandKind uint8

const (
	CommandMove CommandKind = iota + 1
	CommandSubmit
	CommandSolve
)

// Command is a parsed text command: "move u d l r", "submit" or "solve".
type Command struct {
	Kind    CommandKind
	Buttons []Button
}

// ParseCommand parses a case-insensitive text command.
func ParseCommand(s string) (Command, error) {
	parts := strings.Fields(strings.ToLower(s))
	if len(parts) == 0 {
		return Command{}, fmt.Errorf("%w: empty input", ErrUnknownCommand)
	}

	switch parts[0] {
	case "move":
		if len(parts) < 2 {
			return Command{}, fmt.Errorf("%w: no directions given", ErrBadMove)
		}
		cmd := Command{Kind: CommandMove, Buttons: make([]Button, 0, len(parts)-1)}
		for _, p := range parts[1:] {
			b, ok := letterButton(p)
			if !ok {
				return Command{}, fmt.Errorf("%w: %q (want u, d, l or r)", ErrBadMove, p)
			}
			cmd.Buttons = append(cmd.Buttons, b)
		}
		return cmd, nil
	case "submit", "solve":
		if len(parts) != 1 {
			return Command{}, fmt.Errorf("%w: %s takes no arguments", ErrUnknownCommand, parts[0])
		}
		if parts[0] == "submit" {
			return Command{Kind: CommandSubmit}, nil
		}
		return Command{Kind: CommandSolve}, nil
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
	}
}

func letterButton(s string) (Button, bool) {
	switch s {
	case "u":
		return ButtonUp, true
	case "d":
		return ButtonDown, true
	case "l":
		return ButtonLeft, true
	case "r":
		return ButtonRight, true
	default:
		return 0, false
	}
}

// String formats the command back into its text form.
func (c Command) String() string {
	switch c.Kind {
	case CommandMove:
		letters := make([]string, len(c.Buttons))
		for i, b := range c.Buttons {
			letters[i] = strings.ToLower(b.String()[:1])
		}
		return "move " + strings.Join(letters, " ")
	case CommandSubmit:
		return "submit"
	case CommandSolve:
		return "solve"
	default:
		return ""
	}
}
