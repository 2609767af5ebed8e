package world

import (
	"strings"

	"github.com/vovakirdan/oski/internal/core"
)

// Grid is the fixed-size tile map. Cells are stored in row-major order:
// index = y*W + x.
type Grid struct {
	w     int
	h     int
	cells []Tile
}

// NewGrid creates a grid with every cell set to TileNothing.
func NewGrid(w, h int) *Grid {
	return &Grid{
		w:     w,
		h:     h,
		cells: make([]Tile, w*h),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.w
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.h
}

// Bounds returns the grid as a rectangle anchored at the origin.
func (g *Grid) Bounds() core.Rect {
	return core.NewRect(0, 0, g.w, g.h)
}

// InBounds returns true if p is a valid cell.
func (g *Grid) InBounds(p core.Point) bool {
	return p.X >= 0 && p.X < g.w && p.Y >= 0 && p.Y < g.h
}

// At returns the tile at p, or TileNothing when p is out of bounds.
func (g *Grid) At(p core.Point) Tile {
	if !g.InBounds(p) {
		return TileNothing
	}
	return g.cells[p.Y*g.w+p.X]
}

// Set writes a tile. Out-of-bounds writes are silently skipped.
func (g *Grid) Set(p core.Point, t Tile) {
	if g.InBounds(p) {
		g.cells[p.Y*g.w+p.X] = t
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Tile, len(g.cells))
	copy(cells, g.cells)
	return &Grid{w: g.w, h: g.h, cells: cells}
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid) Equal(o *Grid) bool {
	if g.w != o.w || g.h != o.h {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Count returns the number of cells holding t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, c := range g.cells {
		if c == t {
			n++
		}
	}
	return n
}

// Find returns every position holding t, in row-major order.
func (g *Grid) Find(t Tile) []core.Point {
	var out []core.Point
	for i, c := range g.cells {
		if c == t {
			out = append(out, core.Pt(i%g.w, i/g.w))
		}
	}
	return out
}

// String draws the grid as text, one line per row.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.w*g.h + g.h)
	for y := 0; y < g.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.w; x++ {
			sb.WriteRune(g.cells[y*g.w+x].Rune())
		}
	}
	return sb.String()
}
