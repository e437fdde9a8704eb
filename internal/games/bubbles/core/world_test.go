package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyWorld returns a round on the standard lattice with nothing settled.
func emptyWorld(t *testing.T, colors int) *World {
	t.Helper()
	g, err := NewGrid(Width, Height, Radius)
	require.NoError(t, err)
	return newWorld(LevelConfig{Index: 1, ColorCount: colors}, 1, g)
}

func place(w *World, color Color, slot Vec2) *Bubble {
	b := NewSettled(w.newID(), color, slot)
	w.field.Add(b, w.grid.IsTopRow(slot))
	return b
}

// fire puts b in flight at pos heading along dir, bypassing the shooter.
func fire(w *World, b *Bubble, pos Vec2, dir float64) {
	b.Pos = pos
	b.Launch(dir)
	w.loaded = nil
	w.inFlight = b
}

func stepUntilLanded(t *testing.T, w *World) StepResult {
	t.Helper()
	for i := 0; i < 1000; i++ {
		res := w.Step()
		if w.InFlight() == nil {
			return res
		}
	}
	t.Fatal("projectile never landed")
	return StepResult{}
}

func TestNewWorld(t *testing.T) {
	for _, level := range DefaultLevels() {
		t.Run(level.Name, func(t *testing.T) {
			w, err := NewWorld(level, 42)
			require.NoError(t, err)

			assert.Equal(t, 8*23, w.Field().Len())
			assert.Len(t, w.Anchors(), 23)
			assert.Equal(t, 0, w.Score())
			assert.Equal(t, OutcomeOngoing, w.Outcome())
			require.NotNil(t, w.Loaded())
			assert.Nil(t, w.InFlight())

			total := 0
			for c, n := range w.Tally() {
				assert.Less(t, int(c), level.ColorCount, "color %v outside palette", c)
				total += n
			}
			assert.Equal(t, w.Field().Len(), total)

			for _, a := range w.Anchors() {
				assert.Equal(t, 0, w.Grid().RowOf(a.Pos))
			}
		})
	}
}

func TestNewWorldInvalidLevel(t *testing.T) {
	tests := []struct {
		name  string
		level LevelConfig
		want  error
	}{
		{"no colors", LevelConfig{Index: 1, ColorCount: 0}, ErrEmptyPalette},
		{"too many colors", LevelConfig{Index: 1, ColorCount: 9}, ErrInvalidLevel},
		{"negative rows", LevelConfig{Index: 1, ColorCount: 3, FillRows: -1}, ErrInvalidLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWorld(tt.level, 1)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAimDirection(t *testing.T) {
	from := V(ShooterX, ShooterY)
	tests := []struct {
		name string
		aim  Vec2
		deg  float64
	}{
		{"straight up", V(ShooterX, 0), 90},
		{"up left", V(ShooterX-100, ShooterY-100), 135},
		{"flat right", V(ShooterX+100, ShooterY), MinAimDeg},
		{"below right", V(ShooterX+100, ShooterY+50), MinAimDeg},
		{"flat left", V(ShooterX-100, ShooterY), MaxAimDeg},
		{"below left", V(ShooterX-100, ShooterY+50), MaxAimDeg},
		{"straight down", V(ShooterX, Height), MaxAimDeg},
		{"shallow right", V(ShooterX+1000, ShooterY-10), MinAimDeg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, -tt.deg*math.Pi/180, AimDirection(from, tt.aim), 1e-9)
		})
	}
}

func TestLaunch(t *testing.T) {
	w, err := NewWorld(DefaultLevels()[0], 3)
	require.NoError(t, err)

	loaded := w.Loaded()
	require.True(t, w.Launch(V(ShooterX, 0)))
	assert.Same(t, loaded, w.InFlight())
	assert.Nil(t, w.Loaded())
	assert.Equal(t, PhaseInFlight, loaded.Phase)
	assert.False(t, w.Launch(V(ShooterX, 0)), "second launch while in flight")

	res := w.Step()
	assert.True(t, res.Moved)
	assert.InDelta(t, ShooterY-NormalSpeed, loaded.Pos.Y, 1e-9)
}

func TestStepPopAndDrop(t *testing.T) {
	w := emptyWorld(t, 4)
	blue := place(w, ColorBlue, V(20, 20))
	r1 := place(w, ColorRed, V(60, 20))
	r2 := place(w, ColorRed, V(100, 20))
	green := place(w, ColorGreen, V(40, 20+rowH))
	yellow := place(w, ColorYellow, V(120, 20+rowH))

	shot := NewBubble(w.newID(), ColorRed, V(0, 0))
	fire(w, shot, V(140, 40), -math.Pi/2)

	res := w.Step()
	assert.True(t, res.Settled)
	assert.True(t, res.Anchored)
	assert.Equal(t, 3, res.Popped)
	assert.Equal(t, 1, res.Dropped)
	assert.Equal(t, 40, res.Score)
	assert.Equal(t, 40, w.Score())

	assert.Equal(t, []*Bubble{blue, green}, w.Field().Bubbles())
	assert.Equal(t, []*Bubble{blue}, w.Anchors())
	for _, b := range []*Bubble{r1, r2, shot, yellow} {
		assert.False(t, w.Field().Contains(b))
		assert.False(t, w.Field().IsAnchor(b))
		assert.Equal(t, PhaseRemoved, b.Phase)
	}

	// Remaining bubbles are all supported
	reached := Supported(w.Field())
	for _, b := range w.Field().Bubbles() {
		assert.True(t, reached[b])
	}

	require.NotNil(t, w.Loaded())
	assert.Contains(t, []Color{ColorBlue, ColorGreen}, w.Loaded().Color)
	assert.Equal(t, OutcomeOngoing, w.Outcome())
}

func TestStepSettleWithoutPop(t *testing.T) {
	w := emptyWorld(t, 3)
	place(w, ColorRed, V(20, 20))
	place(w, ColorGreen, V(60, 20))

	shot := NewBubble(w.newID(), ColorRed, V(0, 0))
	fire(w, shot, V(80, 80), -math.Pi/2)
	res := stepUntilLanded(t, w)

	assert.True(t, res.Settled)
	assert.False(t, res.Anchored)
	assert.Zero(t, res.Popped)
	assert.Zero(t, w.Score())
	assert.Equal(t, 3, w.Field().Len())
	assert.Equal(t, PhaseSettled, shot.Phase)
	assert.Contains(t, w.Grid().Slots(), shot.Pos)
}

func TestStepNearWallSkipsTakenSlot(t *testing.T) {
	w := emptyWorld(t, 3)
	row3 := w.grid.RowSlots(3)
	row4 := w.grid.RowSlots(4)
	edge := row4[len(row4)-1]
	require.Equal(t, 900.0, edge.X)
	held := place(w, ColorRed, edge)

	// Right of the last column the edge bubble's own slot is the nearest one
	shot := NewBubble(w.newID(), ColorGreen, V(0, 0))
	fire(w, shot, V(925, edge.Y+6.5), -math.Pi/2)
	res := stepUntilLanded(t, w)

	require.True(t, res.Settled)
	assert.NotEqual(t, edge, shot.Pos)
	assert.Equal(t, row3[len(row3)-1], shot.Pos)
	assert.Equal(t, edge, held.Pos)
	assert.Equal(t, 2, w.Field().Len())
	assert.Equal(t, map[Color]int{ColorRed: 1, ColorGreen: 1}, w.Tally())
}

func TestStepKeepsSlotsUnique(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		w, err := NewWorld(LevelConfig{Index: 1, ColorCount: 5, FillRows: 6}, seed)
		require.NoError(t, err)

		for shot := 0; shot < 60 && w.Outcome() == OutcomeOngoing; shot++ {
			// Sweep the aim across both walls
			aim := V(float64((shot*137)%int(Width)), 0)
			require.True(t, w.Launch(aim))
			stepUntilLanded(t, w)

			seen := make(map[Vec2]bool, w.Field().Len())
			for _, b := range w.Field().Bubbles() {
				require.False(t, seen[b.Pos], "seed %d shot %d: two bubbles on %v", seed, shot, b.Pos)
				seen[b.Pos] = true
			}
		}
	}
}

func TestStepCeilingAttachesWithoutPop(t *testing.T) {
	w := emptyWorld(t, 3)
	place(w, ColorRed, V(260, 20))
	place(w, ColorRed, V(340, 20))

	shot := NewBubble(w.newID(), ColorRed, V(0, 0))
	fire(w, shot, V(300, 10), -math.Pi/2)
	res := w.Step()

	assert.True(t, res.Settled)
	assert.True(t, res.Anchored)
	assert.Zero(t, res.Popped)
	assert.Equal(t, V(300, 20), shot.Pos)
	assert.Len(t, w.Anchors(), 3)
	assert.Zero(t, w.Score())
}

func TestStepBombAtCeiling(t *testing.T) {
	w := emptyWorld(t, 3)
	near := place(w, ColorRed, V(260, 20))
	hanging := place(w, ColorGreen, V(280, 20+rowH))
	far := place(w, ColorBlue, V(700, 20))

	bomb := NewBomb(w.newID(), V(0, 0))
	fire(w, bomb, V(300, 5), -math.Pi/2)
	res := w.Step()

	assert.True(t, res.Bomb)
	assert.False(t, res.Settled)
	// near, hanging and the bomb itself
	assert.Equal(t, 3, res.Popped)
	assert.Equal(t, 30, w.Score())
	assert.Equal(t, []*Bubble{far}, w.Field().Bubbles())
	assert.Equal(t, PhaseRemoved, near.Phase)
	assert.Equal(t, PhaseRemoved, hanging.Phase)
	assert.Equal(t, PhaseRemoved, bomb.Phase)
}

func TestStepBombHitsField(t *testing.T) {
	w := emptyWorld(t, 3)
	top := place(w, ColorRed, V(300, 20))
	mid := place(w, ColorGreen, V(320, 20+rowH))
	low := place(w, ColorBlue, V(300, 20+2*rowH))
	link := place(w, ColorRed, V(320, 20+3*rowH))
	dangler := place(w, ColorBlue, V(360, 20+3*rowH))
	tail := place(w, ColorGreen, V(300, 20+4*rowH))

	bomb := NewBomb(w.newID(), V(0, 0))
	fire(w, bomb, V(300, 200), -math.Pi/2)
	res := stepUntilLanded(t, w)

	// The bomb snaps below tail and its blast reaches tail and link only
	assert.True(t, res.Bomb)
	assert.Equal(t, 3, res.Popped)
	assert.Equal(t, 1, res.Dropped)
	assert.Equal(t, 40, w.Score())
	assert.Equal(t, []*Bubble{top, mid, low}, w.Field().Bubbles())
	for _, b := range []*Bubble{link, dangler, tail, bomb} {
		assert.Equal(t, PhaseRemoved, b.Phase)
	}
	assert.Equal(t, OutcomeOngoing, w.Outcome())
}

func TestStepClearsField(t *testing.T) {
	w := emptyWorld(t, 3)
	place(w, ColorRed, V(60, 20))
	place(w, ColorRed, V(100, 20))

	shot := NewBubble(w.newID(), ColorRed, V(0, 0))
	fire(w, shot, V(140, 40), -math.Pi/2)
	res := w.Step()

	assert.Equal(t, 3, res.Popped)
	assert.Equal(t, OutcomeCleared, res.Outcome)
	assert.Equal(t, OutcomeCleared, w.Outcome())
	assert.Nil(t, w.Loaded())
	assert.False(t, w.Launch(V(ShooterX, 0)))
}

func TestStepDangerLine(t *testing.T) {
	w := emptyWorld(t, 3)
	low := w.grid.RowSlots(15)[0]
	require.GreaterOrEqual(t, low.Y, DangerLineY)
	place(w, ColorRed, low)

	shot := NewBubble(w.newID(), ColorBlue, V(0, 0))
	fire(w, shot, V(600, 10), -math.Pi/2)
	res := w.Step()

	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.False(t, w.Launch(V(ShooterX, 0)))
}

func TestBombCadence(t *testing.T) {
	w := emptyWorld(t, 3)
	place(w, ColorRed, V(20, 20))

	tests := []struct {
		score int
		bomb  bool
	}{
		{0, false},
		{190, false},
		{200, true},
		{210, false},
		{390, false},
		{400, true},
		{1000, true},
		{1000, false},
	}

	for _, tt := range tests {
		w.score = tt.score
		w.loadNext()
		require.NotNil(t, w.loaded)
		assert.Equal(t, tt.bomb, w.loaded.IsBomb(), "score %d", tt.score)
		if !tt.bomb {
			assert.Equal(t, ColorRed, w.loaded.Color, "only legal color")
		}
	}
}

func TestLoadNextPanicsWithoutLegalColor(t *testing.T) {
	w := emptyWorld(t, 2)
	place(w, ColorPurple, V(20, 20))

	assert.Panics(t, func() { w.loadNext() })
}

func TestBubbleAdvanceBounces(t *testing.T) {
	t.Run("left wall", func(t *testing.T) {
		b := NewBubble(1, ColorRed, V(5, 300))
		b.Launch(math.Pi)
		b.Advance(Width, Height)
		assert.InDelta(t, -10, b.Pos.X, 1e-9)
		b.Advance(Width, Height)
		assert.InDelta(t, 5, b.Pos.X, 1e-9)
	})

	t.Run("right wall", func(t *testing.T) {
		b := NewBubble(1, ColorRed, V(Width-5, 300))
		b.Launch(0)
		b.Advance(Width, Height)
		assert.InDelta(t, Width+10, b.Pos.X, 1e-9)
		b.Advance(Width, Height)
		assert.InDelta(t, Width-5, b.Pos.X, 1e-9)
	})

	t.Run("floor", func(t *testing.T) {
		b := NewBubble(1, ColorRed, V(300, Height-5))
		b.Launch(math.Pi / 2)
		b.Advance(Width, Height)
		assert.InDelta(t, Height+10, b.Pos.Y, 1e-9)
		b.Advance(Width, Height)
		assert.InDelta(t, Height-5, b.Pos.Y, 1e-9)
	})

	t.Run("settled bubble does not move", func(t *testing.T) {
		b := NewSettled(1, ColorRed, V(300, 300))
		b.Advance(Width, Height)
		assert.Equal(t, V(300, 300), b.Pos)
	})
}

func TestWorldDeterministic(t *testing.T) {
	play := func() (*World, []BubbleView) {
		w, err := NewWorld(DefaultLevels()[1], 99)
		require.NoError(t, err)
		aims := []Vec2{V(100, 0), V(800, 0), V(ShooterX, 0), V(300, 100), V(0, 300)}
		for _, aim := range aims {
			if !w.Launch(aim) {
				break
			}
			stepUntilLanded(t, w)
		}
		return w, w.CurrentField()
	}

	w1, f1 := play()
	w2, f2 := play()
	assert.Equal(t, w1.Score(), w2.Score())
	assert.Equal(t, w1.Outcome(), w2.Outcome())
	assert.Equal(t, f1, f2)
}

func TestReset(t *testing.T) {
	level := DefaultLevels()[0]
	w, err := NewWorld(level, 5)
	require.NoError(t, err)
	fresh, err := NewWorld(level, 5)
	require.NoError(t, err)

	w.score = 750
	w.field.Remove(map[*Bubble]bool{w.field.Bubbles()[0]: true})
	w.Launch(V(ShooterX, 0))
	w.Step()

	r := w.Reset()
	assert.NotSame(t, w, r)
	assert.Zero(t, r.Score())
	assert.Equal(t, OutcomeOngoing, r.Outcome())
	assert.Nil(t, r.InFlight())
	assert.Equal(t, fresh.CurrentField(), r.CurrentField())
	assert.Len(t, r.Anchors(), len(fresh.Anchors()))
}

func TestCurrentFieldOrder(t *testing.T) {
	w := emptyWorld(t, 3)
	a := place(w, ColorRed, V(20, 20))
	b := place(w, ColorGreen, V(60, 20))
	w.loadNext()
	loaded := w.loaded

	views := w.CurrentField()
	require.Len(t, views, 3)
	assert.Equal(t, a.ID, views[0].ID)
	assert.True(t, views[0].Anchor)
	assert.Equal(t, b.ID, views[1].ID)
	assert.Equal(t, loaded.ID, views[2].ID)
	assert.True(t, views[2].Loaded)
	assert.False(t, views[2].InFlight)
}
