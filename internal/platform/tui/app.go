package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-engine/internal/engine"
	"github.com/vovakirdan/arcade-engine/internal/storage"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenHistory
)

// SessionModel manages the full arcade flow: menu -> game -> menu, with
// the history view one key away. It is the top-level model for both the
// local menu and SSH sessions.
type SessionModel struct {
	ctx     context.Context
	engine  *engine.Engine
	store   *storage.Store
	player  string
	owner   string // Tag for sessions started here
	current screenKind
	menu    MenuModel
	game    GameModel
	history HistoryModel
	width   int
	height  int

	quitting bool
}

// NewSessionModel creates a session model for one player. store may be nil,
// in which case the history view stays empty.
func NewSessionModel(ctx context.Context, e *engine.Engine, store *storage.Store, player string) SessionModel {
	cfg := e.Config()
	return SessionModel{
		ctx:    ctx,
		engine: e,
		store:  store,
		player: player,
		menu:   NewMenuModel(ctx, e),
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenHistory:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsHistory():
		m.history = NewHistoryModel(m.ctx, m.store, m.player, m.width, m.height)
		m.current = screenHistory
		return m, m.history.Init()

	case m.menu.Selected() != nil:
		item := m.menu.Selected()
		m.game = newGameModel(m.ctx, m.engine, item.VariantID, item.Level, m.owner)
		m.game.resize(m.width, m.height)
		m.current = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(GameModel); ok {
		m.game = game
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.backToMenu()
	}
	return m, cmd
}

// updateHistory handles updates when in history mode.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.history.Update(msg)
	if history, ok := next.(HistoryModel); ok {
		m.history = history
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.history.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

// backToMenu rebuilds the menu so the balance is current.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.ctx, m.engine)
	m.menu.width, m.menu.height = m.width, m.height
	m.menu.help.Width = m.width
	m.current = screenMenu
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.current {
	case screenGame:
		return m.game.View()
	case screenHistory:
		return m.history.View()
	default:
		return m.menu.View()
	}
}

// RunMenu runs the full menu flow in the local terminal.
func RunMenu(ctx context.Context, e *engine.Engine, store *storage.Store, player string) error {
	p := tea.NewProgram(
		NewSessionModel(ctx, e, store, player),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
