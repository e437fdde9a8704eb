package core

import (
	"errors"
	"math"
)

// ErrEmptyGrid is returned when no lattice slot fits inside the play area.
var ErrEmptyGrid = errors.New("grid: no slot fits inside the play area")

// Grid is the immutable set of valid bubble centers on a hexagonal lattice.
// Slots are stored in row-major order; that order breaks ties in Snap.
type Grid struct {
	width  float64
	height float64
	radius float64
	rowH   float64
	slots  []Vec2
	rows   int
	cols   int
}

// NewGrid builds the lattice for a play area of the given size.
// Row spacing is radius*sqrt(3); odd rows are shifted right by radius.
// Only slots whose whole circle lies inside the play area are kept.
func NewGrid(width, height, radius float64) (*Grid, error) {
	if radius <= 0 {
		return nil, ErrEmptyGrid
	}
	g := &Grid{
		width:  width,
		height: height,
		radius: radius,
		rowH:   radius * math.Sqrt(3),
	}
	g.cols = int(width / (2 * radius))
	g.rows = int(height / math.Floor(g.rowH))

	g.slots = make([]Vec2, 0, g.rows*g.cols)
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			p := g.slotAt(row, col)
			if p.X+radius <= width && p.Y+radius <= height {
				g.slots = append(g.slots, p)
			}
		}
	}

	if len(g.slots) == 0 {
		return nil, ErrEmptyGrid
	}
	return g, nil
}

// slotAt returns the lattice center for a row/column pair.
func (g *Grid) slotAt(row, col int) Vec2 {
	x := float64(col)*2*g.radius + float64(row%2)*g.radius + g.radius
	y := float64(row)*g.rowH + g.radius
	return Vec2{X: x, Y: y}
}

// NewGridFromSlots builds a grid from an explicit slot list.
// Used for hand-built fields; order of slots is preserved for Snap.
func NewGridFromSlots(slots []Vec2, radius float64) (*Grid, error) {
	if len(slots) == 0 {
		return nil, ErrEmptyGrid
	}
	g := &Grid{
		radius: radius,
		rowH:   radius * math.Sqrt(3),
		slots:  make([]Vec2, len(slots)),
	}
	copy(g.slots, slots)
	for _, s := range slots {
		g.width = math.Max(g.width, s.X+radius)
		g.height = math.Max(g.height, s.Y+radius)
	}
	return g, nil
}

// Slots returns a copy of all slot centers in enumeration order.
func (g *Grid) Slots() []Vec2 {
	out := make([]Vec2, len(g.slots))
	copy(out, g.slots)
	return out
}

// Len returns the number of slots.
func (g *Grid) Len() int {
	return len(g.slots)
}

// Rows returns the number of lattice rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of lattice columns.
func (g *Grid) Cols() int {
	return g.cols
}

// Snap returns the slot closest to p.
// The first slot with the minimum distance wins, so ties resolve by enumeration order.
func (g *Grid) Snap(p Vec2) Vec2 {
	best := g.slots[0]
	bestDist := math.Inf(1)
	for _, s := range g.slots {
		if d := p.DistSq(s); d < bestDist {
			bestDist = d
			best = s
		}
	}
	return best
}

// SnapFree returns the slot closest to p that is not taken.
// Ties resolve by enumeration order as in Snap. Returns false when every slot is taken.
func (g *Grid) SnapFree(p Vec2, taken func(Vec2) bool) (Vec2, bool) {
	var best Vec2
	bestDist := math.Inf(1)
	found := false
	for _, s := range g.slots {
		if d := p.DistSq(s); d < bestDist && !taken(s) {
			bestDist = d
			best = s
			found = true
		}
	}
	return best, found
}

// RowOf returns the lattice row whose center line is closest to p.Y.
func (g *Grid) RowOf(p Vec2) int {
	row := int(math.Round((p.Y - g.radius) / g.rowH))
	if row < 0 {
		return 0
	}
	return row
}

// IsTopRow reports whether p lies on the ceiling row.
func (g *Grid) IsTopRow(p Vec2) bool {
	return g.RowOf(p) == 0
}

// RowSlots returns the slots of a single row in column order.
func (g *Grid) RowSlots(row int) []Vec2 {
	out := make([]Vec2, 0, g.cols)
	for _, s := range g.slots {
		if g.RowOf(s) == row {
			out = append(out, s)
		}
	}
	return out
}
