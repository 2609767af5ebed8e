package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/oski/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// It remembers a pending ':' so that ":q" arrives as one save-and-exit action.
type KeyMapper struct {
	colon bool
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	if key == "ctrl+c" {
		km.colon = false
		return core.ActionQuit, true
	}

	if km.colon {
		km.colon = false
		if key == "q" {
			return core.ActionSaveQuit, false
		}
	}

	switch key {
	case ":":
		km.colon = true
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "e":
		return core.ActionInteract, false
	case "1":
		return core.ActionOption1, false
	case "2":
		return core.ActionOption2, false
	case "3":
		return core.ActionOption3, false
	}

	return core.ActionNone, false
}

// Pending reports whether a ':' is waiting for its second key.
func (km *KeyMapper) Pending() bool {
	return km.colon
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
