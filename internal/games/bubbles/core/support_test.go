package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupported(t *testing.T) {
	anchor := NewSettled(1, ColorRed, V(20, 20))
	hanging := NewSettled(2, ColorBlue, V(40, 20+rowH))
	chained := NewSettled(3, ColorGreen, V(20, 20+2*rowH))
	loose := NewSettled(4, ColorRed, V(400, 300))

	f := NewField()
	f.Add(anchor, true)
	f.Add(hanging, false)
	f.Add(chained, false)
	f.Add(loose, false)

	reached := Supported(f)
	assert.True(t, reached[anchor])
	assert.True(t, reached[hanging], "colors are ignored")
	assert.True(t, reached[chained])
	assert.False(t, reached[loose])

	assert.Equal(t, []*Bubble{loose}, Unsupported(f))
}

func TestSupportedNoAnchors(t *testing.T) {
	a := NewSettled(1, ColorRed, V(100, 100))
	b := NewSettled(2, ColorRed, V(140, 100))
	f := fieldOf(a, b)

	assert.Empty(t, Supported(f))
	assert.Equal(t, []*Bubble{a, b}, Unsupported(f))
}

func TestFieldRemove(t *testing.T) {
	a := NewSettled(1, ColorRed, V(20, 20))
	b := NewSettled(2, ColorRed, V(60, 20))
	c := NewSettled(3, ColorBlue, V(100, 20))

	f := NewField()
	f.Add(a, true)
	f.Add(b, true)
	f.Add(c, false)

	n := f.Remove(map[*Bubble]bool{a: true, c: true})
	assert.Equal(t, 2, n)
	assert.Equal(t, []*Bubble{b}, f.Bubbles())
	assert.Equal(t, []*Bubble{b}, f.Anchors())
	assert.False(t, f.Contains(a))
	assert.False(t, f.IsAnchor(a))
	assert.Equal(t, PhaseRemoved, a.Phase)
	assert.Equal(t, PhaseRemoved, c.Phase)
	assert.Equal(t, map[Color]int{ColorRed: 1}, f.Tally())
}

func TestFieldTouchesAndHolds(t *testing.T) {
	a := NewSettled(1, ColorRed, V(20, 20))
	f := fieldOf(a)

	near := NewBubble(2, ColorBlue, V(55, 30))
	far := NewBubble(3, ColorBlue, V(300, 300))
	assert.True(t, f.Touches(near))
	assert.False(t, f.Touches(far))
	assert.False(t, f.Touches(a), "a bubble does not touch itself")

	assert.True(t, f.Holds(V(20, 20)))
	assert.False(t, f.Holds(V(60, 20)))
}

func TestColorChar(t *testing.T) {
	seen := make(map[rune]bool)
	for _, c := range AllColors() {
		r := c.Char()
		assert.NotEqual(t, '?', r, "color %s has no letter", c)
		assert.False(t, seen[r], "letter %c used twice", r)
		seen[r] = true
	}
}
