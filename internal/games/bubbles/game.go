// Package bubbles provides the hexagonal Bubble Shooter game for the arcade.
// The simulation lives in the core subpackage; this package maps platform
// input to shots, advances levels and draws the field into a screen buffer.
package bubbles

import (
	"io"
	"math"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubble-shooter/internal/config"
	platformcore "github.com/vovakirdan/bubble-shooter/internal/core"
	"github.com/vovakirdan/bubble-shooter/internal/games/bubbles/core"
	"github.com/vovakirdan/bubble-shooter/internal/registry"
)

// Layout of the play area on screen. One column covers half a bubble
// horizontally and one line covers one lattice row.
const (
	unitsPerCol = core.Radius
	hudHeight   = 4
	panelWidth  = 24
	aimReach    = 200.0 // Distance from the shooter to the synthetic aim point
	guideSteps  = 240   // Ticks simulated for the aim guide
	noticeTicks = 90    // How long a shot summary stays in the HUD
)

var (
	fieldCols  = int(math.Ceil(core.Width / unitsPerCol))
	fieldLines = int(math.Ceil(core.Height / core.HexHeight))
)

// Package-level configuration set by the platform before a game starts.
var (
	mu                 sync.RWMutex
	selectedConfig     *config.BubblesConfig
	selectedStartLevel int
	logger             = log.New(io.Discard)
)

// Configure sets the configuration used by games created afterwards.
func Configure(cfg config.BubblesConfig) {
	mu.Lock()
	defer mu.Unlock()
	selectedConfig = &cfg
}

// SetStartLevel sets the starting level (1-indexed). 0 means start from the first level.
func SetStartLevel(level int) {
	mu.Lock()
	defer mu.Unlock()
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	mu.RLock()
	defer mu.RUnlock()
	return selectedStartLevel
}

// SetLogger sets the logger for level transitions. The engine itself never logs.
func SetLogger(l *log.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		logger = log.New(io.Discard)
		return
	}
	logger = l
}

func currentLogger() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// activeConfig returns the configured settings, loading the defaults if none were set.
func activeConfig() config.BubblesConfig {
	mu.RLock()
	cfg := selectedConfig
	mu.RUnlock()
	if cfg != nil {
		return *cfg
	}
	loaded, err := config.LoadBubbles("")
	if err != nil {
		return config.DefaultBubblesConfig()
	}
	return loaded
}

// ToLevelConfig converts a configured level into engine parameters.
func ToLevelConfig(spec config.LevelSpec) (core.LevelConfig, error) {
	rule, err := core.ParseMatchRule(spec.MatchRule)
	if err != nil {
		return core.LevelConfig{}, err
	}
	return core.LevelConfig{
		Index:      spec.Index,
		Name:       spec.Name,
		ColorCount: spec.Colors,
		FillRows:   spec.FillRows,
		Background: spec.Background,
		MatchRule:  rule,
	}, nil
}

// Levels returns the engine levels of the active configuration in play order.
func Levels() ([]core.LevelConfig, error) {
	return levelsFrom(activeConfig())
}

func levelsFrom(cfg config.BubblesConfig) ([]core.LevelConfig, error) {
	out := make([]core.LevelConfig, 0, len(cfg.Levels))
	for _, spec := range cfg.Levels {
		lvl, err := ToLevelConfig(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, lvl)
	}
	return out, nil
}

// LevelCount returns the number of available levels.
func LevelCount() int {
	return len(activeConfig().Levels)
}

// LevelNames returns the names of all levels.
func LevelNames() []string {
	cfg := activeConfig()
	names := make([]string, len(cfg.Levels))
	for i, l := range cfg.Levels {
		names[i] = l.Name
	}
	return names
}

// LevelName returns the name of the level with the given configured index.
// Indexes need not be contiguous, so this is not a position lookup.
func LevelName(index int) (string, bool) {
	spec, ok := activeConfig().Level(index)
	if !ok {
		return "", false
	}
	return spec.Name, true
}

func init() {
	registry.Register("bubbles", func() registry.Game {
		return New()
	})
}

// Game implements the Bubble Shooter.
type Game struct {
	rng   *rand.Rand
	world *core.World

	display    config.DisplayConfig
	allLevels  []core.LevelConfig
	levelIndex int
	loadErr    error

	// Score banked from cleared levels; the world score is added on top
	banked int

	aimDeg     float64
	startLevel int // Per-instance start level; overrides the package setting when > 0

	// Screen dimensions
	screenW int
	screenH int

	// Calculated layout
	boxX      int
	boxY      int
	showPanel bool
	tooSmall  bool

	// Status
	tick     uint64
	gameOver bool
	won      bool
	paused   bool

	notice    string
	noticeTTL int
}

// New creates a new Bubble Shooter game.
func New() *Game {
	return &Game{aimDeg: 90}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "bubbles"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Bubble Shooter"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.banked = 0
	g.aimDeg = 90
	g.gameOver = false
	g.won = false
	g.paused = false
	g.notice = ""
	g.noticeTTL = 0
	g.world = nil
	g.loadErr = nil

	settings := activeConfig()
	g.display = settings.Display
	g.allLevels, g.loadErr = levelsFrom(settings)
	if g.loadErr == nil && len(g.allLevels) == 0 {
		g.loadErr = config.ErrInvalidConfig
	}
	if g.loadErr != nil {
		g.gameOver = true
		return
	}

	g.levelIndex = 0
	start := g.startLevel
	if start == 0 {
		start = GetStartLevel()
	}
	if start > 0 && start <= len(g.allLevels) {
		g.levelIndex = start - 1
	}

	g.calculateLayout()
	g.loadCurrentLevel()
}

// StartAt sets the level (1-indexed) this instance starts from on Reset.
// Concurrent sessions use it instead of the package-wide SetStartLevel.
func (g *Game) StartAt(level int) {
	g.startLevel = level
}

// Resize adapts the layout to a new screen size without restarting the round.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.calculateLayout()
}

// loadCurrentLevel builds a fresh world for the level at levelIndex.
func (g *Game) loadCurrentLevel() {
	lvl := g.allLevels[g.levelIndex]
	w, err := core.NewWorld(lvl, g.rng.Int63())
	if err != nil {
		g.loadErr = err
		g.gameOver = true
		return
	}
	g.world = w
	g.aimDeg = 90
	currentLogger().Debug("level started", "level", lvl.Index, "name", lvl.Name, "bubbles", w.Field().Len())
}

// calculateLayout positions the play box and the side panel.
func (g *Game) calculateLayout() {
	boxW := fieldCols + 2
	boxH := fieldLines + 2

	if g.screenW < boxW || g.screenH < hudHeight+boxH {
		g.tooSmall = true
		return
	}
	g.tooSmall = false

	totalW := boxW
	g.showPanel = g.screenW >= boxW+2+panelWidth
	if g.showPanel {
		totalW += 2 + panelWidth
	}
	g.boxX = (g.screenW - totalW) / 2
	g.boxY = hudHeight + (g.screenH-hudHeight-boxH)/2
}

// Step advances the game by one tick.
func (g *Game) Step(input platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	// Handle restart
	if input.Has(platformcore.ActionRestart) && g.gameOver {
		g.Reset(platformcore.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return platformcore.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(platformcore.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.tooSmall || g.world == nil {
		return platformcore.StepResult{State: g.State()}
	}

	if g.noticeTTL > 0 {
		g.noticeTTL--
	}

	// Aim
	if input.Has(platformcore.ActionLeft) {
		g.aimDeg = math.Min(g.aimDeg+g.display.AimStep, core.MaxAimDeg)
	}
	if input.Has(platformcore.ActionRight) {
		g.aimDeg = math.Max(g.aimDeg-g.display.AimStep, core.MinAimDeg)
	}

	// Fire
	switch {
	case input.Click != nil:
		if p, ok := g.screenToWorld(input.Click.X, input.Click.Y); ok {
			g.aimAt(p)
			g.world.Launch(p)
		}
	case input.Has(platformcore.ActionFire):
		g.world.Launch(g.aimPoint())
	}

	res := g.world.Step()
	g.report(res)

	switch res.Outcome {
	case core.OutcomeCleared:
		g.banked += g.world.Score()
		currentLogger().Debug("level cleared", "level", g.world.Level().Index, "score", g.banked)
		g.levelIndex++
		if g.levelIndex >= len(g.allLevels) {
			g.won = true
			g.gameOver = true
			g.world = nil
			g.levelIndex = len(g.allLevels) - 1
			break
		}
		g.loadCurrentLevel()
		g.setNotice("Level cleared!")
	case core.OutcomeFailed:
		g.gameOver = true
		currentLogger().Debug("round failed", "level", g.world.Level().Index, "score", g.score())
	}

	return platformcore.StepResult{State: g.State()}
}

// report turns a resolved shot into a HUD notice.
func (g *Game) report(res core.StepResult) {
	if res.Popped == 0 && res.Dropped == 0 {
		return
	}
	msg := ""
	if res.Bomb {
		msg = "Boom! "
	}
	msg += "+" + itoa(res.Score)
	if res.Dropped > 0 {
		msg += " (" + itoa(res.Dropped) + " dropped)"
	}
	g.setNotice(msg)
}

func (g *Game) setNotice(msg string) {
	g.notice = msg
	g.noticeTTL = noticeTicks
}

// aimPoint returns a point in the current aim direction from the shooter.
func (g *Game) aimPoint() core.Vec2 {
	rad := g.aimDeg * math.Pi / 180
	return core.V(core.ShooterX+aimReach*math.Cos(rad), core.ShooterY-aimReach*math.Sin(rad))
}

// aimAt turns the aim toward p, keeping it within the legal range.
func (g *Game) aimAt(p core.Vec2) {
	dir := core.AimDirection(core.V(core.ShooterX, core.ShooterY), p)
	g.aimDeg = -dir * 180 / math.Pi
}

// screenToWorld converts a screen cell inside the play box to the world
// point at the centre of that cell.
func (g *Game) screenToWorld(x, y int) (core.Vec2, bool) {
	inner := g.box().Inset(1)
	if !inner.Contains(x, y) {
		return core.Vec2{}, false
	}
	col, line := x-inner.X, y-inner.Y
	return core.V((float64(col)+0.5)*unitsPerCol, (float64(line)+0.5)*core.HexHeight), true
}

// worldToScreen converts a world point to a screen cell.
func (g *Game) worldToScreen(p core.Vec2) (int, int) {
	col := int(math.Floor(p.X / unitsPerCol))
	line := int(math.Floor(p.Y / core.HexHeight))
	col = platformcore.Clamp(col, 0, fieldCols-1)
	line = platformcore.Clamp(line, 0, fieldLines-1)
	return g.boxX + 1 + col, g.boxY + 1 + line
}

// box returns the play box including its border.
func (g *Game) box() platformcore.Rect {
	return platformcore.NewRect(g.boxX, g.boxY, fieldCols+2, fieldLines+2)
}

// score returns the cumulative score across levels.
func (g *Game) score() int {
	if g.world == nil {
		return g.banked
	}
	return g.banked + g.world.Score()
}

// currentLevel returns the index of the level being played, or 0 if none.
func (g *Game) currentLevel() int {
	if len(g.allLevels) == 0 {
		return 0
	}
	return g.allLevels[g.levelIndex].Index
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.score(),
		Level:    g.currentLevel(),
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}

// itoa is a simple int to string converter.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	negative := n < 0
	if negative {
		n = -n
	}
	digits := make([]byte, 0, 10)
	for n > 0 {
		digits = append(digits, byte('0'+n%10))
		n /= 10
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	if negative {
		return "-" + string(digits)
	}
	return string(digits)
}
