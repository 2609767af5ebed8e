// Package dialogue implements the conversation with Oski: a small state
// machine driven by option tokens and whether the player carries the card.
package dialogue

import "strconv"

// State is the position of the conversation.
type State int

const (
	StateIdle State = iota
	StateFirstTree
	StateSecondTree
	StateEndedHappy
	StateEndedEaten
)

var stateNames = [...]string{
	StateIdle:       "idle",
	StateFirstTree:  "first-tree",
	StateSecondTree: "second-tree",
	StateEndedHappy: "ended-happy",
	StateEndedEaten: "ended-eaten",
}

// String implements fmt.Stringer.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// ParseState is the inverse of String.
func ParseState(name string) (State, bool) {
	for i, n := range stateNames {
		if n == name {
			return State(i), true
		}
	}
	return StateIdle, false
}

// Terminal reports whether the session ends in this state.
func (s State) Terminal() bool {
	return s == StateEndedHappy || s == StateEndedEaten
}

// InTree reports whether a dialogue box is open.
func (s State) InTree() bool {
	return s == StateFirstTree || s == StateSecondTree
}

// Option is a player choice token.
type Option string

const (
	OptConcerned Option = "concerned"
	OptGoodbye   Option = "goodbye"
	OptGiveItem  Option = "give-item"
	OptOfferHelp Option = "offer-help"
	OptRefuse    Option = "refuse"
)

// ParseOption accepts the canonical option tokens.
func ParseOption(token string) (Option, bool) {
	switch o := Option(token); o {
	case OptConcerned, OptGoodbye, OptGiveItem, OptOfferHelp, OptRefuse:
		return o, true
	}
	return "", false
}

// Choice is one numbered entry of the open dialogue box.
type Choice struct {
	Key    string
	Option Option
	Label  string
}

// Text formats the choice the way it is shown in the box.
func (c Choice) Text() string {
	return c.Label + " (" + c.Key + ")"
}

// Result describes the outcome of Contact or Choose.
type Result struct {
	Accepted bool   // False when the input does not apply to the current state
	Lines    []Line // What was said, in order
	State    State  // State after the call
}

// Machine is the dialogue state. The zero value is an idle conversation
// without a warning issued.
type Machine struct {
	state  State
	warned bool
}

// New returns an idle machine.
func New() *Machine {
	return &Machine{}
}

// Resume rebuilds a machine from saved state.
func Resume(state State, warned bool) *Machine {
	return &Machine{state: state, warned: warned}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Warned reports whether Oski has issued his final warning. The flag is
// sticky across contacts.
func (m *Machine) Warned() bool {
	return m.warned
}

// Contact opens the first tree. It is accepted only from Idle.
func (m *Machine) Contact() Result {
	if m.state != StateIdle {
		return m.reject()
	}
	m.state = StateFirstTree
	return Result{Accepted: true, State: m.state}
}

// Choices lists the options of the open tree. Give-item appears only when
// hasCard is true. Outside a tree the list is empty.
func (m *Machine) Choices(hasCard bool) []Choice {
	opts, ok := trees[m.state]
	if !ok {
		return nil
	}
	out := make([]Choice, 0, 3)
	for i, o := range opts {
		out = append(out, Choice{Key: strconv.Itoa(i + 1), Option: o, Label: labels[o]})
	}
	if hasCard {
		out = append(out, Choice{Key: "3", Option: OptGiveItem, Label: labels[OptGiveItem]})
	}
	return out
}

// Resolve maps a key ("1", "2", "3") or a token to an option of the open
// tree.
func (m *Machine) Resolve(input string, hasCard bool) (Option, bool) {
	for _, c := range m.Choices(hasCard) {
		if c.Key == input || string(c.Option) == input {
			return c.Option, true
		}
	}
	return "", false
}

// Choose applies an option. Options that do not belong to the open tree,
// and give-item without the card, are rejected without changing state.
func (m *Machine) Choose(opt Option, hasCard bool) Result {
	if opt == OptGiveItem && hasCard && m.state.InTree() {
		return m.advance(StateEndedHappy, lineSaved)
	}

	switch m.state {
	case StateFirstTree:
		switch opt {
		case OptConcerned:
			return m.advance(StateSecondTree, lineDying)
		case OptGoodbye:
			return m.advance(StateIdle, lineGoodbye)
		}

	case StateSecondTree:
		switch opt {
		case OptOfferHelp:
			return m.advance(StateIdle, lineGrateful, lineFindCard)
		case OptRefuse:
			if !m.warned {
				m.warned = true
				return m.advance(StateSecondTree, lineGrowl, lineThreat)
			}
			return m.advance(StateEndedEaten, lineGrowl, lineLunch, linePlea, lineScream)
		}
	}
	return m.reject()
}

func (m *Machine) advance(next State, lines ...Line) Result {
	m.state = next
	return Result{Accepted: true, Lines: lines, State: next}
}

func (m *Machine) reject() Result {
	return Result{State: m.state}
}
