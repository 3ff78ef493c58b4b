package tunnels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input   string
		want    Command
		wantErr error
	}{
		{input: "move u d l r", want: Command{Kind: CommandMove, Buttons: []Button{ButtonUp, ButtonDown, ButtonLeft, ButtonRight}}},
		{input: "  MOVE   R  ", want: Command{Kind: CommandMove, Buttons: []Button{ButtonRight}}},
		{input: "submit", want: Command{Kind: CommandSubmit}},
		{input: "Solve", want: Command{Kind: CommandSolve}},
		{input: "move", wantErr: ErrBadMove},
		{input: "move u x", wantErr: ErrBadMove},
		{input: "move ud", wantErr: ErrBadMove},
		{input: "submit now", wantErr: ErrUnknownCommand},
		{input: "", wantErr: ErrUnknownCommand},
		{input: "fly", wantErr: ErrUnknownCommand},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseCommand(tc.input)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCommandString(t *testing.T) {
	cmd, err := ParseCommand("MOVE u R d")
	require.NoError(t, err)
	assert.Equal(t, "move u r d", cmd.String())
	assert.Equal(t, "submit", Command{Kind: CommandSubmit}.String())
}
