// Package save persists sessions as versioned snapshots: the seed plus the
// deltas needed to rebuild the grid, never the grid itself.
package save

import (
	"slices"

	"github.com/vovakirdan/oski/internal/core"
	"github.com/vovakirdan/oski/internal/dialogue"
	"github.com/vovakirdan/oski/internal/world"
)

// Version is the snapshot schema written by this package.
const Version = 1

// Snapshot is the unit of persistence.
type Snapshot struct {
	Params    world.Params // Generation parameters in effect when the world was built
	Seed      int64
	Avatar    core.Point
	NPC       core.Point
	Items     world.ItemPositions
	Picked    world.Ledger
	Inventory []world.Tile // In pickup order
	Dialogue  dialogue.State
	Warned    bool
	Turns     int    // Accepted commands so far
	SessionID string // Stable across save and load
}

// Equal reports whether two snapshots describe the same session. Nil and
// empty collections compare equal.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.Params == o.Params &&
		s.Seed == o.Seed &&
		s.Avatar == o.Avatar &&
		s.NPC == o.NPC &&
		slices.Equal(s.Items.Beer, o.Items.Beer) &&
		slices.Equal(s.Items.Cards, o.Items.Cards) &&
		slices.Equal(s.Picked.Sorted(), o.Picked.Sorted()) &&
		slices.Equal(s.Inventory, o.Inventory) &&
		s.Dialogue == o.Dialogue &&
		s.Warned == o.Warned &&
		s.Turns == o.Turns &&
		s.SessionID == o.SessionID
}

// Wire format, version 1. Positions are [x, y] pairs.
type snapshotV1 struct {
	Version   int          `json:"version"`
	Seed      int64        `json:"seed"`
	Params    world.Params `json:"params"`
	Avatar    [2]int       `json:"avatar"`
	NPC       [2]int       `json:"npc"`
	Items     itemsV1      `json:"items"`
	Picked    [][2]int     `json:"picked"`
	Inventory []string     `json:"inventory"`
	Dialogue  dialogueV1   `json:"dialogue"`
	Turns     int          `json:"turns"`
	SessionID string       `json:"session_id"`
}

type itemsV1 struct {
	Beer  [][2]int `json:"beer"`
	Cards [][2]int `json:"cards"`
}

type dialogueV1 struct {
	State  string `json:"state"`
	Warned bool   `json:"warned"`
}

func toPair(p core.Point) [2]int {
	return [2]int{p.X, p.Y}
}

func fromPair(v [2]int) core.Point {
	return core.Pt(v[0], v[1])
}

func toPairs(ps []core.Point) [][2]int {
	out := make([][2]int, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPair(p))
	}
	return out
}

func fromPairs(vs [][2]int) []core.Point {
	if len(vs) == 0 {
		return nil
	}
	out := make([]core.Point, 0, len(vs))
	for _, v := range vs {
		out = append(out, fromPair(v))
	}
	return out
}

func (s Snapshot) wire() snapshotV1 {
	inv := make([]string, 0, len(s.Inventory))
	for _, t := range s.Inventory {
		inv = append(inv, t.String())
	}
	return snapshotV1{
		Version: Version,
		Seed:    s.Seed,
		Params:  s.Params,
		Avatar:  toPair(s.Avatar),
		NPC:     toPair(s.NPC),
		Items: itemsV1{
			Beer:  toPairs(s.Items.Beer),
			Cards: toPairs(s.Items.Cards),
		},
		Picked:    toPairs(s.Picked.Sorted()),
		Inventory: inv,
		Dialogue: dialogueV1{
			State:  s.Dialogue.String(),
			Warned: s.Warned,
		},
		Turns:     s.Turns,
		SessionID: s.SessionID,
	}
}

func (w snapshotV1) snapshot() (Snapshot, error) {
	s := Snapshot{
		Params: w.Params,
		Seed:   w.Seed,
		Avatar: fromPair(w.Avatar),
		NPC:    fromPair(w.NPC),
		Items: world.ItemPositions{
			Beer:  fromPairs(w.Items.Beer),
			Cards: fromPairs(w.Items.Cards),
		},
		Picked:    world.NewLedger(fromPairs(w.Picked)...),
		Warned:    w.Dialogue.Warned,
		Turns:     w.Turns,
		SessionID: w.SessionID,
	}

	for _, name := range w.Inventory {
		item, ok := world.ParseItem(name)
		if !ok {
			return Snapshot{}, &DecodeError{Stage: "fields", Err: errUnknown("item", name)}
		}
		s.Inventory = append(s.Inventory, item)
	}

	state, ok := dialogue.ParseState(w.Dialogue.State)
	if !ok {
		return Snapshot{}, &DecodeError{Stage: "fields", Err: errUnknown("dialogue state", w.Dialogue.State)}
	}
	s.Dialogue = state

	return s, nil
}
