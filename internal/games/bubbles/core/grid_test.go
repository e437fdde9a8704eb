package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	g, err := NewGrid(Width, Height, Radius)
	require.NoError(t, err)

	assert.Equal(t, 23, g.Cols())
	assert.Equal(t, 17, g.Rows())
	assert.Equal(t, 23*17, g.Len())

	slots := g.Slots()
	for i, s := range slots {
		assert.LessOrEqual(t, s.X+Radius, Width, "slot %d outside right edge", i)
		assert.LessOrEqual(t, s.Y+Radius, Height, "slot %d outside bottom edge", i)
		assert.Equal(t, i/g.Cols(), g.RowOf(s), "slot %d row", i)
	}

	// No two slots are closer than a bubble diameter
	for i := range slots {
		for j := i + 1; j < len(slots); j++ {
			d := slots[i].Dist(slots[j])
			assert.GreaterOrEqual(t, d, 2*Radius-1e-9, "slots %d and %d", i, j)
		}
	}
}

func TestNewGridOffsetsOddRows(t *testing.T) {
	g, err := NewGrid(Width, Height, Radius)
	require.NoError(t, err)

	row0 := g.RowSlots(0)
	row1 := g.RowSlots(1)
	require.NotEmpty(t, row0)
	require.NotEmpty(t, row1)

	assert.Equal(t, V(20, 20), row0[0])
	assert.InDelta(t, 40, row1[0].X, 1e-9)
	assert.InDelta(t, 20+Radius*math.Sqrt(3), row1[0].Y, 1e-9)
}

func TestNewGridEmpty(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		radius        float64
	}{
		{"too narrow", 30, 600, 20},
		{"too short", 950, 30, 20},
		{"zero radius", 950, 600, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.width, tt.height, tt.radius)
			assert.ErrorIs(t, err, ErrEmptyGrid)
		})
	}
}

func TestSnap(t *testing.T) {
	g, err := NewGridFromSlots([]Vec2{V(10, 10), V(30, 10), V(10, 27)}, Radius)
	require.NoError(t, err)

	tests := []struct {
		name  string
		point Vec2
		want  Vec2
	}{
		{"nearest", V(12, 11), V(10, 10)},
		{"second slot", V(29, 12), V(30, 10)},
		{"below", V(9, 30), V(10, 27)},
		{"tie keeps first", V(20, 10), V(10, 10)},
		{"far away", V(500, 500), V(30, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Snap(tt.point))
		})
	}
}

func TestSnapFree(t *testing.T) {
	g, err := NewGridFromSlots([]Vec2{V(10, 10), V(30, 10), V(10, 27)}, Radius)
	require.NoError(t, err)

	none := func(Vec2) bool { return false }
	first := func(s Vec2) bool { return s == V(10, 10) }
	all := func(Vec2) bool { return true }

	got, ok := g.SnapFree(V(12, 11), none)
	assert.True(t, ok)
	assert.Equal(t, V(10, 10), got)

	got, ok = g.SnapFree(V(12, 11), first)
	assert.True(t, ok)
	assert.Equal(t, V(10, 27), got)

	// Ties among free slots still keep enumeration order
	got, ok = g.SnapFree(V(20, 18.5), first)
	assert.True(t, ok)
	assert.Equal(t, V(30, 10), got)

	_, ok = g.SnapFree(V(12, 11), all)
	assert.False(t, ok)
}

func TestSnapReturnsSlot(t *testing.T) {
	g, err := NewGrid(Width, Height, Radius)
	require.NoError(t, err)

	slots := make(map[Vec2]bool, g.Len())
	for _, s := range g.Slots() {
		slots[s] = true
	}
	for _, p := range []Vec2{V(-50, -50), V(475, 565), V(1000, 700), V(333.3, 123.4)} {
		assert.True(t, slots[g.Snap(p)], "snap of %v is not a slot", p)
	}
}

func TestNewGridFromSlotsEmpty(t *testing.T) {
	_, err := NewGridFromSlots(nil, Radius)
	assert.ErrorIs(t, err, ErrEmptyGrid)
}
