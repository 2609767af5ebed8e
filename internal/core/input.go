package core

// Action represents a semantic game action, abstracted from physical key presses.
// The front end maps keys to actions; the game only ever sees actions.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, Up arrow
	ActionDown            // S, Down arrow
	ActionLeft            // A, Left arrow
	ActionRight           // D, Right arrow
	ActionInteract        // E - pick up nearby items and talk to Oski
	ActionOption1         // 1 - first dialogue option
	ActionOption2         // 2 - second dialogue option
	ActionOption3         // 3 - give the card, when offered
	ActionSaveQuit        // :q chord - save and exit
	ActionQuit            // Ctrl+C - exit without saving
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionInteract:
		return "Interact"
	case ActionOption1:
		return "Option1"
	case ActionOption2:
		return "Option2"
	case ActionOption3:
		return "Option3"
	case ActionSaveQuit:
		return "SaveQuit"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Dir returns the movement direction for a movement action.
func (a Action) Dir() (Dir, bool) {
	switch a {
	case ActionUp:
		return DirUp, true
	case ActionDown:
		return DirDown, true
	case ActionLeft:
		return DirLeft, true
	case ActionRight:
		return DirRight, true
	}
	return 0, false
}

// OptionKey returns the dialogue key ("1".."3") for an option action.
func (a Action) OptionKey() (string, bool) {
	switch a {
	case ActionOption1:
		return "1", true
	case ActionOption2:
		return "2", true
	case ActionOption3:
		return "3", true
	}
	return "", false
}
