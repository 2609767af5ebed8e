package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/oski/internal/core"
	"github.com/vovakirdan/oski/internal/game"
)

// MenuChoice identifies a main menu entry.
type MenuChoice int

const (
	ChoiceNewGame MenuChoice = iota
	ChoiceLoadGame
	ChoiceHistory
	ChoiceQuit
)

// MenuItem represents a selectable menu entry.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

var menuItems = []MenuItem{
	{Choice: ChoiceNewGame, Title: "New game"},
	{Choice: ChoiceLoadGame, Title: "Load game"},
	{Choice: ChoiceHistory, Title: "History"},
	{Choice: ChoiceQuit, Title: "Quit"},
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the main menu and the seed prompt.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	seedInput textinput.Model
	prompting bool   // The seed prompt is open
	seed      string // Validated seed text for ChoiceNewGame
	status    string // Error shown under the menu
	quitting  bool
	selected  *MenuItem
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	ti := textinput.New()
	ti.Placeholder = "digits only, e.g. 42"
	ti.Prompt = "Seed: "
	ti.CharLimit = 19
	ti.Width = 24

	return MenuModel{
		items:     menuItems,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		seedInput: ti,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompting {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	if m.prompting {
		var cmd tea.Cmd
		m.seedInput, cmd = m.seedInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		item := m.items[m.cursor]
		m.status = ""
		switch item.Choice {
		case ChoiceQuit:
			m.quitting = true
			return m, tea.Quit
		case ChoiceNewGame:
			m.prompting = true
			m.seedInput.SetValue("")
			return m, m.seedInput.Focus()
		default:
			m.selected = &item
		}
	}

	return m, nil
}

// handlePromptKey processes keys while the seed prompt is open.
func (m MenuModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.prompting = false
		m.status = ""
		m.seedInput.Blur()
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.seedInput.Value())
		if _, err := game.ParseSeed(text); err != nil {
			m.status = fmt.Sprintf("Invalid seed %q: %v", text, err)
			return m, nil
		}
		m.prompting = false
		m.status = ""
		m.seed = text
		m.seedInput.Blur()
		item := m.items[m.cursor]
		m.selected = &item
		return m, nil
	}

	var cmd tea.Cmd
	m.seedInput, cmd = m.seedInput.Update(msg)
	return m, cmd
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("O S K I ' S   I N T E R V E N T I O N", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(game.TaskLine, m.width))
	b.WriteString("\n\n")

	if m.prompting {
		b.WriteString(centerText("Enter a seed for the new world", m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(m.seedInput.View(), m.width))
		b.WriteString("\n")
	} else {
		for i, item := range m.items {
			cursor := "  "
			if i == m.cursor {
				cursor = "> "
			}
			b.WriteString(centerText(cursor+item.Title, m.width))
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(menuStatusStyle.Render(centerText(m.status, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	if m.prompting {
		controls = "Enter: Start  |  Esc: Back"
	}
	b.WriteString(menuHintStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Seed returns the validated seed text entered for a new game.
func (m MenuModel) Seed() string {
	return m.seed
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// Acknowledge clears the selection after the caller acted on it and shows
// status, which is empty on success.
func (m *MenuModel) Acknowledge(status string) {
	m.selected = nil
	m.seed = ""
	m.status = status
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}
