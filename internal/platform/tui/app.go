package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tunnels/internal/core"
	"github.com/vovakirdan/tui-tunnels/internal/games/tunnels"
	"github.com/vovakirdan/tui-tunnels/internal/registry"
	"github.com/vovakirdan/tui-tunnels/internal/session"
)

type appScreen int

const (
	screenMenu appScreen = iota
	screenGame
	screenScores
)

// liveGame points at the running session, shared by every copy of an
// AppModel so the game can be closed after the program stops.
type liveGame struct {
	sess *session.Session
}

func (l *liveGame) close() {
	if l.sess != nil {
		l.sess.Close()
		l.sess = nil
	}
}

// AppModel manages the full flow: menu, game, scoreboard and back.
// Local menu runs and SSH sessions both use it.
type AppModel struct {
	deps      Deps
	config    core.RuntimeConfig
	player    string
	transport string
	renderer  *lipgloss.Renderer
	palette   *Palette
	live      *liveGame

	screen     appScreen
	menu       MenuModel
	gameModel  GameModel
	scoreboard ScoreboardModel
	quitting   bool
}

// NewAppModel creates the top-level model. A nil renderer uses the default one.
func NewAppModel(deps Deps, cfg core.RuntimeConfig, player, transport string, r *lipgloss.Renderer) AppModel {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return AppModel{
		deps:      deps,
		config:    cfg,
		player:    player,
		transport: transport,
		renderer:  r,
		palette:   NewPalette(r),
		live:      &liveGame{},
		menu:      NewMenuModel(deps.Store, cfg, r),
	}
}

// Init initializes the menu.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.screen = screenScores
		m.scoreboard = NewScoreboardModel(m.deps.Store, m.config.ScreenW, m.config.ScreenH, m.renderer)
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		created, err := registry.Create(m.menu.Selected().GameID)
		if err != nil {
			m.menu = NewMenuModel(m.deps.Store, m.config, m.renderer)
			return m, nil
		}
		game, ok := created.(*tunnels.Game)
		if !ok {
			m.menu = NewMenuModel(m.deps.Store, m.config, m.renderer)
			return m, nil
		}
		cfg := m.config
		cfg.Seed = 0
		m.gameModel = NewGameModel(game, cfg, m.deps.sessionOptions(m.player, m.transport), m.palette)
		m.live.sess = m.gameModel.sess
		m.screen = screenGame
		return m, m.gameModel.Init()
	}
	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.gameModel = gm
	}

	switch {
	case m.gameModel.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.gameModel.BackToMenu():
		return m.backToMenu()
	}
	return m, cmd
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.backToMenu()
	}
	return m, cmd
}

func (m AppModel) backToMenu() (tea.Model, tea.Cmd) {
	m.live.close()
	m.screen = screenMenu
	m.menu = NewMenuModel(m.deps.Store, m.config, m.renderer)
	return m, m.menu.Init()
}

// Close ends a game left running when the program stops.
func (m AppModel) Close() {
	m.live.close()
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// RunApp runs the menu flow in the local terminal.
func RunApp(deps Deps, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewAppModel(deps, cfg, "local", "local", nil),
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if app, ok := final.(AppModel); ok {
		app.Close()
	}
	return err
}
