package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/oski/internal/core"
	"github.com/vovakirdan/oski/internal/dialogue"
	"github.com/vovakirdan/oski/internal/world"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// roomSession builds a session on a hand-made 10x10 room: grass inside a
// ring of walls, avatar at (2,2), beer at (3,3), card at (7,2), Oski at (6,6).
func roomSession(t *testing.T) *Session {
	t.Helper()
	g := world.NewGrid(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			tile := world.TileGrass
			if x == 0 || y == 0 || x == 9 || y == 9 {
				tile = world.TileWall
			}
			g.Set(core.Pt(x, y), tile)
		}
	}
	items := world.ItemPositions{
		Beer:  []core.Point{core.Pt(3, 3)},
		Cards: []core.Point{core.Pt(7, 2)},
	}
	items.Each(func(p core.Point, t world.Tile) { g.Set(p, t) })
	g.Set(core.Pt(2, 2), world.TileAvatar)
	g.Set(core.Pt(6, 6), world.TileOski)

	return &Session{
		id:     "test",
		params: world.DefaultParams(),
		grid:   g,
		avatar: core.Pt(2, 2),
		npc:    core.Pt(6, 6),
		items:  items,
		picked: world.NewLedger(),
		talk:   dialogue.New(),
		log:    sessionLogger(quietLogger()),
	}
}

// teleport moves the avatar to a walkable cell adjacent to target.
func teleport(t *testing.T, s *Session, target core.Point) {
	t.Helper()
	for _, p := range target.Neighborhood() {
		if s.grid.At(p).Walkable() {
			s.grid.Set(s.avatar, world.TileGrass)
			s.grid.Set(p, world.TileAvatar)
			s.avatar = p
			return
		}
	}
	t.Fatalf("no walkable cell next to %v", target)
}
