// Package world builds the tile grid: rooms, corridors, walls, items, the NPC
// and the avatar spawn, all derived deterministically from a seed.
package world

import "github.com/vovakirdan/oski/internal/core"

// Tile is the content of one grid cell. Tiles are plain values compared by kind.
type Tile uint8

const (
	TileNothing Tile = iota // Outside the map
	TileWall                // Inferred around every walkable cell
	TileGrass               // Walkable ground
	TileBeer                // Collectible A
	TileCard                // Collectible B, the item Oski asks for
	TileAvatar              // Player marker
	TileOski                // NPC marker
)

// Walkable reports whether the avatar may step onto the tile.
func (t Tile) Walkable() bool {
	return t == TileGrass
}

// Collectible reports whether the tile is an item that can be picked up.
func (t Tile) Collectible() bool {
	return t == TileBeer || t == TileCard
}

// IsNPC reports whether the tile marks Oski.
func (t Tile) IsNPC() bool {
	return t == TileOski
}

// Description returns the human-readable name shown for a tile query.
func (t Tile) Description() string {
	switch t {
	case TileNothing:
		return "nothing"
	case TileWall:
		return "wall"
	case TileGrass:
		return "grass"
	case TileBeer:
		return "beer"
	case TileCard:
		return "card"
	case TileAvatar:
		return "avatar"
	case TileOski:
		return "Oski"
	default:
		return "unknown"
	}
}

// String implements fmt.Stringer.
func (t Tile) String() string {
	return t.Description()
}

// Rune returns the character used when the grid is drawn as text.
func (t Tile) Rune() rune {
	switch t {
	case TileWall:
		return '#'
	case TileGrass:
		return '"'
	case TileBeer:
		return 'B'
	case TileCard:
		return 'C'
	case TileAvatar:
		return '@'
	case TileOski:
		return 'O'
	default:
		return ' '
	}
}

// Color returns the display color of the tile.
func (t Tile) Color() core.Color {
	switch t {
	case TileWall:
		return core.ColorWall
	case TileGrass:
		return core.ColorGrass
	case TileBeer:
		return core.ColorBeer
	case TileCard:
		return core.ColorCard
	case TileAvatar:
		return core.ColorAvatar
	case TileOski:
		return core.ColorOski
	default:
		return core.ColorDefault
	}
}

// ParseItem converts an item name ("beer", "card") back to its tile.
func ParseItem(name string) (Tile, bool) {
	switch name {
	case "beer":
		return TileBeer, true
	case "card":
		return TileCard, true
	}
	return TileNothing, false
}
