package bubbles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/bubble-shooter/internal/config"
	platformcore "github.com/vovakirdan/bubble-shooter/internal/core"
	"github.com/vovakirdan/bubble-shooter/internal/games/bubbles/core"
	"github.com/vovakirdan/bubble-shooter/internal/registry"
)

// useConfig installs cfg for the duration of the test.
func useConfig(t *testing.T, cfg config.BubblesConfig) {
	t.Helper()
	Configure(cfg)
	t.Cleanup(func() {
		mu.Lock()
		selectedConfig = nil
		selectedStartLevel = 0
		mu.Unlock()
	})
}

// monoConfig has levels of a single color with only the ceiling row filled,
// so one straight shot clears each of them.
func monoConfig(levels int) config.BubblesConfig {
	cfg := config.DefaultBubblesConfig()
	cfg.Levels = nil
	for i := 1; i <= levels; i++ {
		cfg.Levels = append(cfg.Levels, config.LevelSpec{
			Index: i, Name: "Mono" + itoa(i), Colors: 1, FillRows: 1,
		})
	}
	return cfg
}

func newGame(t *testing.T, w, h int) *Game {
	t.Helper()
	g := New()
	g.Reset(platformcore.RuntimeConfig{ScreenW: w, ScreenH: h, Seed: 7})
	return g
}

func frame(actions ...platformcore.Action) platformcore.InputFrame {
	in := platformcore.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// stepUntil steps with empty input until cond holds or the limit is hit.
func stepUntil(g *Game, limit int, cond func(platformcore.GameState) bool) platformcore.GameState {
	for i := 0; i < limit; i++ {
		res := g.Step(platformcore.NewInputFrame())
		if cond(res.State) {
			return res.State
		}
	}
	return g.State()
}

func TestRegistered(t *testing.T) {
	require.True(t, registry.Exists("bubbles"))

	g, err := registry.Create("bubbles")
	require.NoError(t, err)
	assert.Equal(t, "Bubble Shooter", g.Title())
}

func TestResetDefaultLevels(t *testing.T) {
	useConfig(t, config.DefaultBubblesConfig())
	g := newGame(t, 80, 24)

	require.NotNil(t, g.world)
	assert.False(t, g.tooSmall)
	assert.Equal(t, 3, g.world.Level().ColorCount)

	st := g.State()
	assert.Equal(t, 1, st.Level)
	assert.Equal(t, 0, st.Score)
	assert.False(t, st.GameOver)
}

func TestStartLevel(t *testing.T) {
	useConfig(t, config.DefaultBubblesConfig())
	SetStartLevel(3)

	g := newGame(t, 80, 24)
	assert.Equal(t, 3, g.State().Level)
	assert.Equal(t, 7, g.world.Level().ColorCount)
}

func TestAimClamp(t *testing.T) {
	useConfig(t, config.DefaultBubblesConfig())
	g := newGame(t, 80, 24)

	for i := 0; i < 100; i++ {
		g.Step(frame(platformcore.ActionLeft))
	}
	assert.Equal(t, core.MaxAimDeg, g.aimDeg)

	for i := 0; i < 100; i++ {
		g.Step(frame(platformcore.ActionRight))
	}
	assert.Equal(t, core.MinAimDeg, g.aimDeg)
}

func TestFireLaunches(t *testing.T) {
	useConfig(t, config.DefaultBubblesConfig())
	g := newGame(t, 80, 24)

	require.NotNil(t, g.world.Loaded())
	g.Step(frame(platformcore.ActionFire))
	assert.NotNil(t, g.world.InFlight())
}

func TestClickAimsAndFires(t *testing.T) {
	useConfig(t, config.DefaultBubblesConfig())
	g := newGame(t, 80, 24)

	t.Run("outside play box", func(t *testing.T) {
		in := platformcore.NewInputFrame()
		in.SetClick(0, 0)
		g.Step(in)
		assert.Nil(t, g.world.InFlight())
	})

	t.Run("inside play box", func(t *testing.T) {
		in := platformcore.NewInputFrame()
		in.SetClick(g.boxX+2, g.boxY+2)
		g.Step(in)
		require.NotNil(t, g.world.InFlight())
		assert.Greater(t, g.aimDeg, 90.0, "a click on the left side aims left")
	})
}

func TestScreenWorldRoundTrip(t *testing.T) {
	useConfig(t, config.DefaultBubblesConfig())
	g := newGame(t, 80, 24)

	for _, slot := range g.world.Grid().Slots() {
		x, y := g.worldToScreen(slot)
		p, ok := g.screenToWorld(x, y)
		require.True(t, ok)
		assert.InDelta(t, slot.X, p.X, core.Radius)
		assert.InDelta(t, slot.Y, p.Y, core.HexHeight)
	}
}

func TestLevelProgression(t *testing.T) {
	useConfig(t, monoConfig(2))
	g := newGame(t, 80, 24)
	require.Equal(t, 23, g.world.Field().Len())

	// Straight up into the ceiling row pops it whole
	g.Step(frame(platformcore.ActionFire))
	st := stepUntil(g, 200, func(s platformcore.GameState) bool { return s.Level == 2 })
	assert.Equal(t, 2, st.Level)
	assert.Equal(t, 240, st.Score)
	assert.False(t, st.GameOver)

	g.Step(frame(platformcore.ActionFire))
	st = stepUntil(g, 200, func(s platformcore.GameState) bool { return s.GameOver })
	assert.True(t, st.GameOver)
	assert.True(t, st.Won)
	assert.Equal(t, 480, st.Score)
	assert.Equal(t, 2, st.Level)

	// Restart goes back to the first level with a fresh score
	st = g.Step(frame(platformcore.ActionRestart)).State
	assert.False(t, st.GameOver)
	assert.Equal(t, 1, st.Level)
	assert.Equal(t, 0, st.Score)
}

func TestPause(t *testing.T) {
	useConfig(t, config.DefaultBubblesConfig())
	g := newGame(t, 80, 24)

	g.Step(frame(platformcore.ActionPause))
	require.True(t, g.State().Paused)

	g.Step(frame(platformcore.ActionFire))
	assert.Nil(t, g.world.InFlight(), "no shots while paused")

	g.Step(frame(platformcore.ActionPause))
	assert.False(t, g.State().Paused)
}

func TestInvalidLevelStopsGame(t *testing.T) {
	cfg := config.DefaultBubblesConfig()
	cfg.Levels[0].MatchRule = "greedy"
	useConfig(t, cfg)

	g := newGame(t, 80, 24)
	assert.True(t, g.State().GameOver)
	assert.Error(t, g.loadErr)

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Cannot start")
}

func TestRender(t *testing.T) {
	useConfig(t, config.DefaultBubblesConfig())

	t.Run("normal", func(t *testing.T) {
		g := newGame(t, 80, 24)
		screen := platformcore.NewScreen(80, 24)
		g.Render(screen)

		out := screen.String()
		assert.True(t, strings.HasPrefix(screen.Row(0), " Bubble Shooter"))
		assert.Contains(t, out, "●")
		assert.Contains(t, out, "Level 1: Shallows")
		assert.Contains(t, out, "Next:")
	})

	t.Run("too small", func(t *testing.T) {
		g := newGame(t, 40, 12)
		require.True(t, g.tooSmall)
		screen := platformcore.NewScreen(40, 12)
		g.Render(screen)
		assert.Contains(t, screen.String(), "Window too small")
	})
}

func TestRenderMonoUsesLetters(t *testing.T) {
	cfg := config.DefaultBubblesConfig()
	cfg.Display.Theme = "mono"
	useConfig(t, cfg)

	g := newGame(t, 80, 24)
	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	for _, b := range g.world.Field().Bubbles() {
		x, y := g.worldToScreen(b.Pos)
		assert.Equal(t, b.Color.Char(), screen.Get(x, y))
	}
	assert.NotContains(t, screen.String(), "●")
}

func TestLevelNames(t *testing.T) {
	useConfig(t, config.DefaultBubblesConfig())
	assert.Equal(t, []string{"Shallows", "Reef", "Abyss"}, LevelNames())
	assert.Equal(t, 3, LevelCount())

	lvls, err := Levels()
	require.NoError(t, err)
	assert.Equal(t, core.DefaultLevels(), lvls)
}

func TestLevelNameByIndex(t *testing.T) {
	cfg := config.DefaultBubblesConfig()
	cfg.Levels = []config.LevelSpec{
		{Index: 1, Name: "First", Colors: 3, FillRows: 4},
		{Index: 5, Name: "Fifth", Colors: 5, FillRows: 4},
	}
	useConfig(t, cfg)

	name, ok := LevelName(5)
	require.True(t, ok)
	assert.Equal(t, "Fifth", name)

	_, ok = LevelName(2)
	assert.False(t, ok)
}

func TestStartAtOverridesPackageLevel(t *testing.T) {
	useConfig(t, config.DefaultBubblesConfig())
	SetStartLevel(3)

	g := New()
	g.StartAt(2)
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	assert.Equal(t, 2, g.State().Level)
}

func TestResizeKeepsRound(t *testing.T) {
	useConfig(t, config.DefaultBubblesConfig())
	g := newGame(t, 80, 24)
	g.Step(frame(platformcore.ActionFire))
	world := g.world

	g.Resize(40, 12)
	assert.True(t, g.tooSmall)
	g.Resize(120, 40)
	assert.False(t, g.tooSmall)
	assert.Same(t, world, g.world)
	assert.NotNil(t, g.world.InFlight())
}
