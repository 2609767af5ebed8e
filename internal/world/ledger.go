package world

import (
	"sort"

	"github.com/vovakirdan/oski/internal/core"
)

// Ledger is the set of positions whose item has already been picked up.
type Ledger map[core.Point]struct{}

// NewLedger builds a ledger from a list of positions.
func NewLedger(points ...core.Point) Ledger {
	l := make(Ledger, len(points))
	for _, p := range points {
		l[p] = struct{}{}
	}
	return l
}

// Has reports whether p has been picked up. A nil ledger is empty.
func (l Ledger) Has(p core.Point) bool {
	_, ok := l[p]
	return ok
}

// Add records p as picked up.
func (l Ledger) Add(p core.Point) {
	l[p] = struct{}{}
}

// Sorted returns the positions ordered by row then column.
func (l Ledger) Sorted() []core.Point {
	out := make([]core.Point, 0, len(l))
	for p := range l {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Less(out[j])
	})
	return out
}

// ItemPositions holds where each collectible kind was placed on first generation.
type ItemPositions struct {
	Beer  []core.Point
	Cards []core.Point
}

// Each calls fn for every recorded position with its item tile.
func (ip ItemPositions) Each(fn func(p core.Point, t Tile)) {
	for _, p := range ip.Beer {
		fn(p, TileBeer)
	}
	for _, p := range ip.Cards {
		fn(p, TileCard)
	}
}

// Contains reports whether p is one of the recorded positions.
func (ip ItemPositions) Contains(p core.Point) bool {
	found := false
	ip.Each(func(q core.Point, _ Tile) {
		if q == p {
			found = true
		}
	})
	return found
}

// Clone returns a copy that shares no backing arrays.
func (ip ItemPositions) Clone() ItemPositions {
	return ItemPositions{
		Beer:  append([]core.Point(nil), ip.Beer...),
		Cards: append([]core.Point(nil), ip.Cards...),
	}
}
