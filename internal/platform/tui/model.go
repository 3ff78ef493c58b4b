package tui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tunnels/internal/core"
	"github.com/vovakirdan/tui-tunnels/internal/games/tunnels"
	"github.com/vovakirdan/tui-tunnels/internal/metrics"
	"github.com/vovakirdan/tui-tunnels/internal/session"
	"github.com/vovakirdan/tui-tunnels/internal/storage"
)

// Deps are the services a terminal session reports to. Every field is optional.
type Deps struct {
	Store      *storage.Store
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
	JournalDir string
}

func (d Deps) sessionOptions(player, transport string) session.Options {
	return session.Options{
		Player:     player,
		Transport:  transport,
		Logger:     d.Logger,
		Metrics:    d.Metrics,
		Store:      d.Store,
		JournalDir: d.JournalDir,
	}
}

// GameModel is the Bubble Tea model for one tunnels session.
type GameModel struct {
	sess       *session.Session
	screen     *core.Screen
	palette    *Palette
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	tickID     uint64
	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewGameModel wraps game in a session. A nil palette uses the default renderer.
func NewGameModel(game *tunnels.Game, cfg core.RuntimeConfig, opts session.Options, palette *Palette) GameModel {
	if palette == nil {
		palette = NewPalette(nil)
	}
	return GameModel{
		sess:       session.New(game, cfg, opts),
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		palette:    palette,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		tickID:     nextTickID(),
	}
}

// Init starts the first puzzle and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.sess.Start()
	return tickCmd(m.tickID, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.sess.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.ID != m.tickID {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.sess.Close()
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.sess.Close()
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && (m.gameState.GameOver || m.gameState.Paused) {
		m.sess.Restart(0)
		m.gameState = m.sess.Game().State()
		m.inputFrame.Clear()
		return m, tickCmd(m.tickID, m.config.TickRate)
	}

	result := m.sess.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()
	return m, tickCmd(m.tickID, m.config.TickRate)
}

// saveScreenshot writes the current screen as plain text.
func (m *GameModel) saveScreenshot() {
	m.sess.Game().Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".tunnels", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("%s_%s.txt", m.sess.Game().ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the game screen.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	m.sess.Game().Render(m.screen)
	return m.palette.Render(m.screen)
}

// IsQuitting returns true if the user asked to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the local terminal until the user quits.
func Run(game *tunnels.Game, cfg core.RuntimeConfig, deps Deps) error {
	model := NewGameModel(game, cfg, deps.sessionOptions("local", "local"), nil)
	model.standalone = true
	defer model.sess.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
