package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/oski/internal/core"
	"github.com/vovakirdan/oski/internal/game"
)

// maxConversation is how many spoken lines the dialogue box keeps.
const maxConversation = 6

// GameModel is the Bubble Tea model for a session in progress. Every key
// becomes an abstract command for the engine; the model only keeps what is
// needed to draw the frame.
type GameModel struct {
	engine     *game.Engine
	screen     *core.Screen
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	frame      frameState
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for the engine's current session.
// welcome is shown on the status row until the first message replaces it.
func NewGameModel(engine *game.Engine, cfg core.RuntimeConfig, welcome []string) GameModel {
	m := GameModel{
		engine:    engine,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	if len(welcome) > 0 {
		m.frame.status = welcome[0]
	}
	return m
}

// Init initializes the model.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.engine.Session()
	if s == nil {
		m.backToMenu = true
		return m, nil
	}

	if s.Over() {
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	cmd, ok := game.FromAction(action)
	if !ok {
		return m, nil
	}

	wasOpen := s.Dialogue().InTree()
	reply, err := m.engine.Execute(cmd)
	if err != nil {
		// A failed save keeps the player in the game so nothing is lost.
		m.frame.status = "Error: " + err.Error()
		return m, nil
	}
	if reply.Quit {
		m.quitting = true
		return m, tea.Quit
	}

	m.apply(cmd, reply, wasOpen, s.Dialogue().InTree())
	return m, nil
}

// apply routes reply lines to the dialogue box or the status row.
func (m *GameModel) apply(cmd game.Command, reply game.Reply, wasOpen, isOpen bool) {
	if isOpen && !wasOpen {
		m.frame.conversation = nil
	}

	if cmd.Verb == game.VerbOption && isOpen {
		m.frame.conversation = append(m.frame.conversation, reply.Lines...)
		if n := len(m.frame.conversation); n > maxConversation {
			m.frame.conversation = m.frame.conversation[n-maxConversation:]
		}
		return
	}

	if !isOpen {
		m.frame.conversation = nil
	}
	if len(reply.Lines) > 0 {
		m.frame.status = reply.Lines[len(reply.Lines)-1]
	}
}

// handleMouse asks the engine what lies under the pointer.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	s := m.engine.Session()
	if s == nil || s.Over() {
		return m, nil
	}

	cam := gameCamera(s, m.screen.Width(), m.screen.Height())
	p, ok := cam.toWorld(msg.X, msg.Y)
	if !ok {
		return m, nil
	}

	reply, err := m.engine.Execute(game.Describe(p))
	if err == nil && len(reply.Lines) > 0 {
		m.frame.tileLine = reply.Lines[0]
	}
	return m, nil
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	s := m.engine.Session()
	if s == nil {
		return ""
	}

	drawGame(m.screen, s, m.frame)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the finished game was dismissed.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the full-screen program: menu, game and history.
func Run(engine *game.Engine, history HistorySource, cfg core.RuntimeConfig) error {
	model := NewAppModel(engine, history, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // Hover reports the tile under the pointer
	)

	_, err := p.Run()
	return err
}
