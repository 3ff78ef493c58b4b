// Package tui runs tunnels in the terminal with Bubble Tea, locally or over
// SSH. It maps keys to game actions, paces ticks and draws the game's screen
// buffer with lipgloss.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tunnels/internal/core"
)

// TickMsg triggers one step of the game model with the same ID. Ticks left
// over from a closed game are dropped.
type TickMsg struct {
	ID   uint64
	Time time.Time
}

var tickIDs atomic.Uint64

func nextTickID() uint64 {
	return tickIDs.Add(1)
}

func tickCmd(id uint64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
