package world

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/oski/internal/core"
)

// Generation failures. Each is fatal: a session cannot start without a full
// room set, exactly one NPC and an avatar.
var (
	ErrRoomPlacement   = errors.New("world: room placement retries exhausted")
	ErrNPCPlacement    = errors.New("world: npc placement retries exhausted")
	ErrAvatarPlacement = errors.New("world: avatar placement retries exhausted")
	ErrBadRestore      = errors.New("world: restored state does not match the generated map")
)

// phase discriminates the independent random streams used by generation.
type phase int64

const (
	phaseLayout phase = iota
	phaseItems
	phaseNPC
	phaseAvatar
)

// phaseStride keeps the seeds of different phases far apart, so the
// increment-on-rejection loops of one phase never walk into another.
const phaseStride = 1 << 32

// phaseSeed derives the seed of a generation phase from the session seed.
func phaseSeed(seed int64, ph phase) int64 {
	return seed + int64(ph)*phaseStride
}

// Options controls a Generate call.
type Options struct {
	// FirstGeneration enables item, NPC and avatar placement. When false only
	// the topology (rooms, corridors, walls) is built.
	FirstGeneration bool

	// Picked lists positions that must not receive an item.
	Picked Ledger
}

// Layout is the result of a generation run.
type Layout struct {
	Seed    int64
	Grid    *Grid
	Anchors []core.Point // One per room, in creation order
	Items   ItemPositions
	NPC     core.Point
	Avatar  core.Point
}

// Generate builds a world from seed. The result is a pure function of seed
// and p: equal inputs always yield equal grids and anchor sequences.
func Generate(seed int64, p Params, opts Options) (*Layout, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	grid, anchors, _, err := buildTopology(seed, p)
	if err != nil {
		return nil, err
	}

	layout := &Layout{
		Seed:    seed,
		Grid:    grid,
		Anchors: anchors,
	}
	if !opts.FirstGeneration {
		return layout, nil
	}

	itemRng := rand.New(rand.NewSource(phaseSeed(seed, phaseItems)))
	layout.Items = placeItems(grid, p, itemRng, opts.Picked)

	npc, ok := reseedPlacement(grid, phaseSeed(seed, phaseNPC), p.NPCRetries)
	if !ok {
		return nil, fmt.Errorf("%w: seed %d after %d tries", ErrNPCPlacement, seed, p.NPCRetries)
	}
	grid.Set(npc, TileOski)
	layout.NPC = npc

	avatar, ok := reseedPlacement(grid, phaseSeed(seed, phaseAvatar), p.AvatarRetries)
	if !ok {
		return nil, fmt.Errorf("%w: seed %d after %d tries", ErrAvatarPlacement, seed, p.AvatarRetries)
	}
	grid.Set(avatar, TileAvatar)
	layout.Avatar = avatar

	return layout, nil
}

// Restore carries the saved deltas that Regenerate lays over the topology.
type Restore struct {
	Items  ItemPositions
	Picked Ledger
	Avatar core.Point
	NPC    core.Point
}

// Regenerate rebuilds the topology for seed and overlays the saved state:
// items not yet picked up, then the avatar and the NPC. The topology is
// identical to the one produced by the original Generate call.
func Regenerate(seed int64, p Params, r Restore) (*Grid, error) {
	layout, err := Generate(seed, p, Options{FirstGeneration: false})
	if err != nil {
		return nil, err
	}
	grid := layout.Grid

	if err := checkRestore(grid, r); err != nil {
		return nil, err
	}

	r.Items.Each(func(pos core.Point, t Tile) {
		if !r.Picked.Has(pos) {
			grid.Set(pos, t)
		}
	})
	grid.Set(r.Avatar, TileAvatar)
	grid.Set(r.NPC, TileOski)
	return grid, nil
}

// checkRestore rejects saved state that could not have come from this
// topology: markers must sit on ground and the ledger must only name items.
func checkRestore(grid *Grid, r Restore) error {
	if r.Avatar == r.NPC {
		return fmt.Errorf("%w: avatar and npc share %v", ErrBadRestore, r.Avatar)
	}
	for _, m := range []struct {
		name string
		pos  core.Point
	}{{"avatar", r.Avatar}, {"npc", r.NPC}} {
		if !grid.At(m.pos).Walkable() {
			return fmt.Errorf("%w: %s at %v is on %s", ErrBadRestore, m.name, m.pos, grid.At(m.pos))
		}
	}

	var bad error
	r.Items.Each(func(pos core.Point, t Tile) {
		if bad != nil {
			return
		}
		if !grid.At(pos).Walkable() {
			bad = fmt.Errorf("%w: %s at %v is on %s", ErrBadRestore, t, pos, grid.At(pos))
			return
		}
		if !r.Picked.Has(pos) && (pos == r.Avatar || pos == r.NPC) {
			bad = fmt.Errorf("%w: %s at %v is occupied", ErrBadRestore, t, pos)
		}
	})
	if bad != nil {
		return bad
	}

	for pos := range r.Picked {
		if !r.Items.Contains(pos) {
			return fmt.Errorf("%w: ledger names %v which held no item", ErrBadRestore, pos)
		}
	}
	return nil
}

// buildTopology runs the layout phase: room count, room placement with
// bounded reseed-and-retry, corridor carving and wall inference. The rooms
// are returned for tests only; callers keep just the anchors.
func buildTopology(seed int64, p Params) (*Grid, []core.Point, []core.Rect, error) {
	rng := rand.New(rand.NewSource(phaseSeed(seed, phaseLayout)))
	grid := NewGrid(p.Width, p.Height)
	allowed := grid.Bounds().Inset(p.Border)

	count := p.MinRooms + rng.Intn(p.MaxRooms-p.MinRooms+1)
	rooms := make([]core.Rect, 0, count)
	anchors := make([]core.Point, 0, count)

	for len(rooms) < count {
		room, anchor, ok := placeRoom(rng, p, allowed)
		if !ok {
			return nil, nil, nil, fmt.Errorf("%w: seed %d, room %d of %d after %d tries",
				ErrRoomPlacement, seed, len(rooms)+1, count, p.RoomRetries)
		}
		carveRoom(grid, room)
		rooms = append(rooms, room)
		anchors = append(anchors, anchor)
	}

	for i := 0; i+1 < len(anchors); i++ {
		carveCorridor(grid, anchors[i], anchors[i+1])
	}
	inferWalls(grid)

	return grid, anchors, rooms, nil
}

// placeRoom draws a room and its anchor. A room too close to the border is
// rejected and the generator reseeds from its own output before the next
// draw; after p.RoomRetries rejections placement fails.
func placeRoom(rng *rand.Rand, p Params, allowed core.Rect) (core.Rect, core.Point, bool) {
	span := p.MaxRoomSize - p.MinRoomSize
	for try := 0; try < p.RoomRetries; try++ {
		w := p.MinRoomSize + rng.Intn(span)
		h := p.MinRoomSize + rng.Intn(span)
		x := rng.Intn(p.Width - w)
		y := rng.Intn(p.Height - h)
		// The top row of a room stays uncarved, so the anchor skips it.
		anchor := core.Pt(x+rng.Intn(w), y+1+rng.Intn(h-1))

		room := core.NewRect(x, y, w, h)
		if room.Within(allowed) {
			return room, anchor, true
		}
		rng.Seed(rng.Int63() + 1)
	}
	return core.Rect{}, core.Point{}, false
}

// carveRoom turns every row of the room except the topmost into grass.
func carveRoom(g *Grid, r core.Rect) {
	for y := r.Y + 1; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			g.Set(core.Pt(x, y), TileGrass)
		}
	}
}

// carveCorridor connects two anchors with an L: a horizontal run along the
// row of a, then a vertical run along the column of b.
func carveCorridor(g *Grid, a, b core.Point) {
	step := func(from, to int) int {
		if from < to {
			return 1
		}
		return -1
	}

	for x := a.X; x != b.X; x += step(a.X, b.X) {
		g.Set(core.Pt(x, a.Y), TileGrass)
	}
	for y := a.Y; y != b.Y; y += step(a.Y, b.Y) {
		g.Set(core.Pt(b.X, y), TileGrass)
	}
	g.Set(b, TileGrass)
}

// inferWalls turns every empty 4-neighbor of a grass cell into a wall.
func inferWalls(g *Grid) {
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			p := core.Pt(x, y)
			if g.At(p) != TileGrass {
				continue
			}
			for _, d := range core.Dirs {
				n := p.Step(d)
				if g.InBounds(n) && g.At(n) == TileNothing {
					g.Set(n, TileWall)
				}
			}
		}
	}
}

// placeItems scatters the beers and the card. Each item gets a fixed number
// of samples; an item that finds no free grass is simply left out.
func placeItems(g *Grid, p Params, rng *rand.Rand, picked Ledger) ItemPositions {
	var items ItemPositions

	beers := p.MinBeer + rng.Intn(p.MaxBeer-p.MinBeer+1)
	for i := 0; i < beers; i++ {
		if pos, ok := sampleGrass(g, p, rng, picked); ok {
			g.Set(pos, TileBeer)
			items.Beer = append(items.Beer, pos)
		}
	}
	for i := 0; i < p.Cards; i++ {
		if pos, ok := sampleGrass(g, p, rng, picked); ok {
			g.Set(pos, TileCard)
			items.Cards = append(items.Cards, pos)
		}
	}
	return items
}

func sampleGrass(g *Grid, p Params, rng *rand.Rand, picked Ledger) (core.Point, bool) {
	for attempt := 0; attempt < p.ItemAttempts; attempt++ {
		pos := core.Pt(rng.Intn(p.Width), rng.Intn(p.Height))
		if g.At(pos) == TileGrass && !picked.Has(pos) {
			return pos, true
		}
	}
	return core.Point{}, false
}

// reseedPlacement samples one cell per seed, incrementing the seed after
// every miss, until it lands on grass or the retry budget runs out.
func reseedPlacement(g *Grid, seed int64, retries int) (core.Point, bool) {
	for try := 0; try < retries; try++ {
		rng := rand.New(rand.NewSource(seed))
		pos := core.Pt(rng.Intn(g.w), rng.Intn(g.h))
		if g.At(pos) == TileGrass {
			return pos, true
		}
		seed++
	}
	return core.Point{}, false
}
