package tui

import (
	"errors"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/oski/internal/core"
	"github.com/vovakirdan/oski/internal/game"
	"github.com/vovakirdan/oski/internal/save"
)

type appScreen int

const (
	screenMenu appScreen = iota
	screenGame
	screenHistory
)

// AppModel manages the full flow: menu -> game -> menu, plus the history
// screen. It is the top-level model for local and SSH sessions alike.
type AppModel struct {
	engine   *game.Engine
	history  HistorySource
	config   core.RuntimeConfig
	screen   appScreen
	menu     MenuModel
	game     GameModel
	board    HistoryModel
	quitting bool
}

// NewAppModel creates the top-level model. A non-negative cfg.Seed skips the
// menu and starts a new game right away.
func NewAppModel(engine *game.Engine, history HistorySource, cfg core.RuntimeConfig) AppModel {
	m := AppModel{
		engine:  engine,
		history: history,
		config:  cfg,
		menu:    NewMenuModel(cfg),
	}
	if cfg.Seed >= 0 {
		m.execute(game.NewGame(strconv.FormatInt(cfg.Seed, 10)))
	}
	return m
}

// Init initializes the session.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the session.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenHistory:
		return m.updateHistory(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	switch selected.Choice {
	case ChoiceNewGame:
		m.execute(game.NewGame(m.menu.Seed()))
	case ChoiceLoadGame:
		m.execute(game.LoadGame())
	case ChoiceHistory:
		m.menu.Acknowledge("")
		m.board = NewHistoryModel(m.history, m.engine.Player(), m.config.ScreenW, m.config.ScreenH)
		m.screen = screenHistory
	}
	return m, cmd
}

// execute runs a menu-level command and enters the game when it succeeds.
func (m *AppModel) execute(cmd game.Command) {
	reply, err := m.engine.Execute(cmd)
	if err != nil {
		m.menu.Acknowledge(menuError(err))
		return
	}
	m.menu.Acknowledge("")
	m.game = NewGameModel(m.engine, m.config, reply.Lines)
	m.screen = screenGame
}

// menuError turns a failed new or load command into a menu status line.
func menuError(err error) string {
	switch {
	case errors.Is(err, save.ErrNotFound):
		return "No saved game found."
	case errors.Is(err, save.ErrVersion):
		return "The save file was written by an incompatible version."
	case errors.Is(err, save.ErrDecode):
		return "The save file is corrupt."
	}
	return "Error: " + err.Error()
}

// updateGame handles updates when in game mode.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.screen = screenMenu
		m.menu = NewMenuModel(m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateHistory handles updates on the history screen.
func (m AppModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.board.Update(msg)
	if board, ok := newModel.(HistoryModel); ok {
		m.board = board
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.board.IsGoingBack() {
		m.screen = screenMenu
		m.menu = NewMenuModel(m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenHistory:
		return m.board.View()
	}
	return m.menu.View()
}
