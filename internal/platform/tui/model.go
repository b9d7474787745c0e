package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-engine/internal/core"
	"github.com/vovakirdan/arcade-engine/internal/engine"
)

// Rows reserved around the field: HUD above, help below.
const chromeRows = 2

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

// GameModel is the Bubble Tea model for one variant. It drives the engine
// from Bubble Tea ticks through an engine.Ticker and renders snapshots.
type GameModel struct {
	ctx       context.Context
	engine    *engine.Engine
	variantID string
	level     int
	seed      int64
	owner     string // Session owner tag, set per SSH connection

	session *engine.Session
	ticker  *engine.Ticker
	screen  *core.Screen
	keys    GameKeyMap
	help    help.Model

	width   int
	height  int
	balance int
	err     error

	standalone bool // No menu to return to
	quitting   bool
	backToMenu bool
}

// NewGameModel starts a session of variantID at level. A refused stake is
// shown on screen rather than returned.
func NewGameModel(ctx context.Context, e *engine.Engine, variantID string, level int) GameModel {
	return newGameModel(ctx, e, variantID, level, "")
}

func newGameModel(ctx context.Context, e *engine.Engine, variantID string, level int, owner string) GameModel {
	cfg := e.Config()
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m := GameModel{
		ctx:       ctx,
		engine:    e,
		variantID: variantID,
		level:     level,
		seed:      seed,
		owner:     owner,
		ticker:    engine.NewTicker(cfg.FrameInterval(), cfg.MaxDelta()),
		screen:    core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-chromeRows, 1)),
		keys:      DefaultGameKeyMap(),
		help:      help.New(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
	}
	m.start(func() (*engine.Session, error) {
		return e.CreateSession(ctx, variantID, engine.WithLevel(level), engine.WithSeed(seed), engine.WithOwner(owner))
	})
	return m
}

// start replaces the current session with the one create returns.
func (m *GameModel) start(create func() (*engine.Session, error)) {
	s, err := create()
	m.err = err
	if err == nil {
		m.session = s
		m.level = s.Level()
	}
	m.refreshBalance()
}

func (m *GameModel) refreshBalance() {
	if b, err := m.engine.Balance(m.ctx); err == nil {
		m.balance = b
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.ticker.Interval())
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

func (m *GameModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.screen.Resize(width, max(height-chromeRows, 1))
	m.help.Width = width
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.leave()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.leave()
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		m.togglePause()
		return m, nil

	case key.Matches(msg, m.keys.Restart) && m.finished():
		if m.session != nil {
			if out, ok := m.session.Outcome(); ok && out.Pending() {
				_, m.err = m.engine.RetryGrant(m.ctx, m.session)
				m.refreshBalance()
				return m, nil
			}
		}
		m.start(func() (*engine.Session, error) {
			m.seed++
			return m.engine.CreateSession(m.ctx, m.variantID,
				engine.WithLevel(m.level), engine.WithSeed(m.seed), engine.WithOwner(m.owner))
		})
		m.ticker.Rebase(time.Now())
		return m, nil

	case key.Matches(msg, m.keys.Next) && m.session != nil && m.finished():
		prev := m.session
		m.start(func() (*engine.Session, error) {
			return m.engine.NextLevel(m.ctx, prev)
		})
		m.ticker.Rebase(time.Now())
		return m, nil
	}

	if m.session == nil {
		return m, nil
	}
	if in, ok := m.keys.Intent(msg); ok {
		//nolint:errcheck // Input outside of play is dropped
		m.engine.HandleInput(m.session, in)
	}
	return m, nil
}

// handleMouse turns pointer motion over the field into pointer intents.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.session == nil || msg.Y < 1 || msg.Y > m.screen.Height() {
		return m, nil
	}
	if msg.Action != tea.MouseActionMotion && msg.Action != tea.MouseActionPress {
		return m, nil
	}
	p := toGamePoint(m.screen, msg.X, msg.Y-1)
	//nolint:errcheck // Input outside of play is dropped
	m.engine.HandleInput(m.session, core.PointAt(p.X, p.Y))
	return m, nil
}

// handleTick advances the session by the clamped wall-clock delta.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}
	dt := m.ticker.Advance(now)
	if m.session != nil && m.session.State() == engine.StateRunning {
		err := m.engine.Tick(m.ctx, m.session, dt)
		if err != nil && !errors.Is(err, engine.ErrInvalidTransition) {
			m.err = err
		}
		if m.session.State() == engine.StateSettled {
			m.refreshBalance()
		}
	}
	return m, tickCmd(m.ticker.Interval())
}

func (m *GameModel) togglePause() {
	if m.session == nil {
		return
	}
	switch m.session.State() {
	case engine.StateRunning:
		//nolint:errcheck // State checked above
		m.engine.Pause(m.session)
	case engine.StatePaused:
		//nolint:errcheck // State checked above
		m.engine.Resume(m.session)
		m.ticker.Rebase(time.Now())
	}
}

// leave abandons a session still in play. The stake is forfeited.
func (m *GameModel) leave() {
	if m.session != nil && m.session.State().Active() {
		//nolint:errcheck // Already leaving
		m.engine.Abandon(m.session)
	}
}

func (m GameModel) finished() bool {
	return m.session == nil || m.session.State().Done()
}

// View renders the HUD, the field and the help bar.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	fieldH := m.screen.Height()

	if m.session == nil {
		msg := "cannot start " + m.variantID
		if m.err != nil {
			msg = m.err.Error()
		}
		return lipgloss.Place(m.width, fieldH+chromeRows, lipgloss.Center, lipgloss.Center,
			errorStyle.Render(msg)+"\n\n"+hudDimStyle.Render("esc: menu  q: quit"))
	}

	snap := m.session.Snapshot()
	hud := RenderHUD(snap, m.balance)

	var field string
	if snap.Outcome != nil {
		banner := RenderOutcome(*snap.Outcome)
		if m.err != nil {
			banner += "\n" + errorStyle.Render(m.err.Error())
		}
		field = lipgloss.Place(m.width, fieldH, lipgloss.Center, lipgloss.Center, banner)
	} else {
		DrawSnapshot(m.screen, snap)
		field = RenderScreen(m.screen)
	}

	return lipgloss.JoinVertical(lipgloss.Left, hud, field, hudDimStyle.Render(m.help.View(m.keys)))
}

// Session returns the current session, if one started.
func (m GameModel) Session() *engine.Session {
	return m.session
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one variant in the local terminal until the user quits.
func Run(ctx context.Context, e *engine.Engine, variantID string, level int) error {
	model := NewGameModel(ctx, e, variantID, level)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
