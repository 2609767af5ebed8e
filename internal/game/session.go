// Package game owns a play session: the avatar, inventory, ledger and
// dialogue against a generated grid, plus the command router that starts,
// loads and saves sessions.
package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/oski/internal/core"
	"github.com/vovakirdan/oski/internal/dialogue"
	"github.com/vovakirdan/oski/internal/save"
	"github.com/vovakirdan/oski/internal/world"
)

// Outcome is the overall state of a session.
type Outcome int

const (
	OutcomePlaying Outcome = iota
	OutcomeWon
	OutcomeEaten
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeEaten:
		return "eaten"
	}
	return "playing"
}

// Status strings.
const (
	TaskLine     = "Save Oski from Himself!"
	WinLine      = "You won! Oski is saved"
	LossLine     = "You were eaten by Oski"
	GameOverLine = "GAME OVER"
	ThanksLine   = "Thank you for playing Oski's Intervention!"
)

// Session is the game state manager. It owns the grid for its lifetime and
// is not safe for concurrent use.
type Session struct {
	id     string
	seed   int64
	params world.Params
	grid   *world.Grid

	avatar    core.Point
	npc       core.Point
	items     world.ItemPositions
	picked    world.Ledger
	inventory []world.Tile
	talk      *dialogue.Machine
	turns     int

	log *log.Logger
}

// NewSession generates a fresh world from seed.
func NewSession(seed int64, p world.Params, logger *log.Logger) (*Session, error) {
	layout, err := world.Generate(seed, p, world.Options{FirstGeneration: true})
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:     uuid.NewString(),
		seed:   seed,
		params: p,
		grid:   layout.Grid,
		avatar: layout.Avatar,
		npc:    layout.NPC,
		items:  layout.Items,
		picked: world.NewLedger(),
		talk:   dialogue.New(),
		log:    sessionLogger(logger),
	}
	s.log.Debug("world generated", "seed", seed, "rooms", len(layout.Anchors),
		"beer", len(layout.Items.Beer), "cards", len(layout.Items.Cards),
		"avatar", s.avatar, "npc", s.npc)
	return s, nil
}

// RestoreSession rebuilds a session from a snapshot by regenerating the
// topology from the stored seed and parameters.
func RestoreSession(snap save.Snapshot, logger *log.Logger) (*Session, error) {
	picked := world.NewLedger(snap.Picked.Sorted()...)
	grid, err := world.Regenerate(snap.Seed, snap.Params, world.Restore{
		Items:  snap.Items,
		Picked: picked,
		Avatar: snap.Avatar,
		NPC:    snap.NPC,
	})
	if err != nil {
		return nil, fmt.Errorf("restore seed %d: %w", snap.Seed, err)
	}

	id := snap.SessionID
	if id == "" {
		id = uuid.NewString()
	}

	s := &Session{
		id:        id,
		seed:      snap.Seed,
		params:    snap.Params,
		grid:      grid,
		avatar:    snap.Avatar,
		npc:       snap.NPC,
		items:     snap.Items.Clone(),
		picked:    picked,
		inventory: slices.Clone(snap.Inventory),
		talk:      dialogue.Resume(snap.Dialogue, snap.Warned),
		turns:     snap.Turns,
		log:       sessionLogger(logger),
	}
	s.log.Debug("world restored", "seed", snap.Seed, "picked", len(picked), "avatar", s.avatar)
	return s, nil
}

func sessionLogger(logger *log.Logger) *log.Logger {
	if logger == nil {
		logger = log.Default()
	}
	return logger.WithPrefix("session")
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Seed returns the world seed.
func (s *Session) Seed() int64 { return s.seed }

// Params returns the generation parameters.
func (s *Session) Params() world.Params { return s.params }

// Grid returns the live grid. Callers must treat it as read-only.
func (s *Session) Grid() *world.Grid { return s.grid }

// Avatar returns the avatar position.
func (s *Session) Avatar() core.Point { return s.avatar }

// NPC returns Oski's position.
func (s *Session) NPC() core.Point { return s.npc }

// Turns returns the number of accepted commands.
func (s *Session) Turns() int { return s.turns }

// Inventory returns a copy of the collected items in pickup order.
func (s *Session) Inventory() []world.Tile {
	return slices.Clone(s.inventory)
}

// Count returns how many items of one kind have been collected.
func (s *Session) Count(item world.Tile) int {
	n := 0
	for _, t := range s.inventory {
		if t == item {
			n++
		}
	}
	return n
}

// HasCard reports whether the card is in the inventory.
func (s *Session) HasCard() bool {
	return slices.Contains(s.inventory, world.TileCard)
}

// Dialogue returns the conversation state.
func (s *Session) Dialogue() dialogue.State { return s.talk.State() }

// Choices lists the options of the open dialogue box.
func (s *Session) Choices() []dialogue.Choice { return s.talk.Choices(s.HasCard()) }

// Outcome derives the session outcome from the dialogue state.
func (s *Session) Outcome() Outcome {
	switch s.talk.State() {
	case dialogue.StateEndedHappy:
		return OutcomeWon
	case dialogue.StateEndedEaten:
		return OutcomeEaten
	}
	return OutcomePlaying
}

// Over reports whether the session has reached a terminal state.
func (s *Session) Over() bool {
	return s.Outcome() != OutcomePlaying
}

// Move steps the avatar one cell. The move is rejected, leaving the state
// unchanged, when the target is out of bounds or not walkable, while a
// dialogue box is open and after the session is over.
func (s *Session) Move(d core.Dir) (core.Point, bool) {
	if s.Over() || s.talk.State().InTree() {
		s.log.Debug("move rejected", "dir", d, "dialogue", s.talk.State())
		return s.avatar, false
	}
	to := s.avatar.Step(d)
	if !s.grid.InBounds(to) || !s.grid.At(to).Walkable() {
		s.log.Debug("move rejected", "dir", d, "target", to, "tile", s.grid.At(to))
		return s.avatar, false
	}

	s.grid.Set(s.avatar, world.TileGrass)
	s.grid.Set(to, world.TileAvatar)
	s.avatar = to
	s.turns++
	return to, true
}

// PickUp collects every item in the 3x3 neighborhood of the avatar. Each
// collected cell turns into grass and enters the ledger, so a second call
// without moving returns nothing.
func (s *Session) PickUp() []world.Tile {
	got := s.collect()
	if len(got) > 0 {
		s.turns++
	}
	return got
}

func (s *Session) collect() []world.Tile {
	if s.Over() {
		return nil
	}
	var got []world.Tile
	for _, p := range s.avatar.Neighborhood() {
		t := s.grid.At(p)
		if !t.Collectible() {
			continue
		}
		s.grid.Set(p, world.TileGrass)
		s.picked.Add(p)
		s.inventory = append(s.inventory, t)
		got = append(got, t)
		s.log.Info("picked up", "item", t, "at", p)
	}
	return got
}

// TryInteract reports whether Oski is in the 3x3 neighborhood of the avatar.
func (s *Session) TryInteract() bool {
	for _, p := range s.avatar.Neighborhood() {
		if s.grid.At(p).IsNPC() {
			return true
		}
	}
	return false
}

// InteractResult is the outcome of Interact.
type InteractResult struct {
	Picked   []world.Tile
	Contact  bool
	Dialogue dialogue.Result
}

// Interact picks up nearby items, then opens the dialogue if Oski is close.
// It counts as one turn when it does either.
func (s *Session) Interact() InteractResult {
	res := InteractResult{Picked: s.collect()}
	if !s.Over() && s.TryInteract() {
		res.Contact = true
		res.Dialogue = s.talk.Contact()
		if res.Dialogue.Accepted {
			s.log.Debug("dialogue opened", "warned", s.talk.Warned())
		}
	}
	if len(res.Picked) > 0 || res.Dialogue.Accepted {
		s.turns++
	}
	return res
}

// Choose answers the open dialogue. input is a key ("1".."3") or an option
// token; anything not offered in the current tree is rejected.
func (s *Session) Choose(input string) dialogue.Result {
	opt, ok := s.talk.Resolve(strings.ToLower(strings.TrimSpace(input)), s.HasCard())
	if !ok {
		s.log.Debug("option rejected", "input", input, "dialogue", s.talk.State())
		return dialogue.Result{State: s.talk.State()}
	}
	res := s.talk.Choose(opt, s.HasCard())
	if res.Accepted {
		s.turns++
		s.log.Debug("option chosen", "option", opt, "state", res.State)
	}
	return res
}

// Describe returns the description of the tile at p.
func (s *Session) Describe(p core.Point) string {
	return s.grid.At(p).Description()
}

// Snapshot captures the persistent state.
func (s *Session) Snapshot() save.Snapshot {
	return save.Snapshot{
		Params:    s.params,
		Seed:      s.seed,
		Avatar:    s.avatar,
		NPC:       s.npc,
		Items:     s.items.Clone(),
		Picked:    world.NewLedger(s.picked.Sorted()...),
		Inventory: slices.Clone(s.inventory),
		Dialogue:  s.talk.State(),
		Warned:    s.talk.Warned(),
		Turns:     s.turns,
		SessionID: s.id,
	}
}

// InventoryLine summarizes the inventory for the HUD.
func (s *Session) InventoryLine() string {
	return fmt.Sprintf("Beer: %d  Card: %d", s.Count(world.TileBeer), s.Count(world.TileCard))
}

// EndLines returns the end screen text, or nil while playing.
func (s *Session) EndLines() []string {
	switch s.Outcome() {
	case OutcomeWon:
		return []string{WinLine, ThanksLine}
	case OutcomeEaten:
		return []string{LossLine, GameOverLine}
	}
	return nil
}
