package core

import (
	"fmt"
	"math"
	"math/rand"
)

// Outcome is the round state polled by the presentation layer.
type Outcome uint8

const (
	OutcomeOngoing Outcome = iota
	OutcomeCleared         // Field emptied
	OutcomeFailed          // A settled bubble crossed the danger line
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeOngoing:
		return "ongoing"
	case OutcomeCleared:
		return "cleared"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StepResult describes what happened during one tick.
type StepResult struct {
	Moved     bool // A projectile was in flight this tick
	Settled   bool // The projectile joined the field
	Anchored  bool // The projectile was attached to the ceiling
	Bomb      bool // A bomb went off
	Popped    int  // Bubbles removed by a match or blast
	Dropped   int  // Bubbles removed for losing support
	Score     int  // Points gained this tick
	Outcome   Outcome
	NextReady bool // A new projectile was loaded
}

// BubbleView is a read-only snapshot of a bubble for drawing.
type BubbleView struct {
	ID       int
	Pos      Vec2
	Color    Color
	Kind     Kind
	InFlight bool
	Loaded   bool
	Anchor   bool
}

// World owns a single round: the field, the projectile and the score.
// It is not safe for concurrent use; callers hand snapshots to other goroutines.
type World struct {
	level LevelConfig
	seed  int64
	rng   *rand.Rand
	grid  *Grid
	field *Field

	inFlight *Bubble
	loaded   *Bubble

	score     int
	milestone int // Number of BombEvery multiples already rewarded with a bomb
	nextID    int
	outcome   Outcome
}

// NewWorld builds a fresh round for level using seed for every random draw.
// The top rows of the lattice are filled with random palette colors and the
// ceiling row becomes the anchor set.
func NewWorld(level LevelConfig, seed int64) (*World, error) {
	g, err := NewGrid(Width, Height, Radius)
	if err != nil {
		return nil, err
	}
	if err := level.Validate(g); err != nil {
		return nil, err
	}

	w := newWorld(level, seed, g)
	palette := level.Palette()
	rows := level.fillRows(g)
	for _, slot := range g.Slots() {
		row := g.RowOf(slot)
		if row >= rows {
			continue
		}
		color := palette[w.rng.Intn(len(palette))]
		w.field.Add(NewSettled(w.newID(), color, slot), row == 0)
	}

	w.loadNext()
	return w, nil
}

// newWorld creates an empty round on g without filling the field.
func newWorld(level LevelConfig, seed int64, g *Grid) *World {
	return &World{
		level: level,
		seed:  seed,
		rng:   rand.New(rand.NewSource(seed)),
		grid:  g,
		field: NewField(),
	}
}

func (w *World) newID() int {
	w.nextID++
	return w.nextID
}

// Reset returns a fresh round for the same level and seed.
func (w *World) Reset() *World {
	nw, err := NewWorld(w.level, w.seed)
	if err != nil {
		// The level was valid when w was built and the lattice is constant
		panic(fmt.Sprintf("bubbles: reset of a valid level failed: %v", err))
	}
	return nw
}

// Level returns the level configuration of this round.
func (w *World) Level() LevelConfig {
	return w.level
}

// Grid returns the lattice the round is played on.
func (w *World) Grid() *Grid {
	return w.grid
}

// Field returns the settled bubbles.
func (w *World) Field() *Field {
	return w.field
}

// Score returns the points gained in this round.
func (w *World) Score() int {
	return w.score
}

// Outcome returns the current round state.
func (w *World) Outcome() Outcome {
	return w.outcome
}

// Tally returns the count of settled bubbles per color.
func (w *World) Tally() map[Color]int {
	return w.field.Tally()
}

// Anchors returns the ceiling-attached bubbles in field order.
func (w *World) Anchors() []*Bubble {
	return w.field.Anchors()
}

// InFlight returns the moving projectile, or nil.
func (w *World) InFlight() *Bubble {
	return w.inFlight
}

// Loaded returns the projectile resting at the shooter, or nil.
func (w *World) Loaded() *Bubble {
	return w.loaded
}

// LegalColors returns the palette colors that still have settled bubbles.
func (w *World) LegalColors() []Color {
	tally := w.field.Tally()
	out := make([]Color, 0, w.level.ColorCount)
	for _, c := range w.level.Palette() {
		if tally[c] > 0 {
			out = append(out, c)
		}
	}
	return out
}

// loadNext puts a new projectile at the shooter.
// A bomb is loaded when the score has crossed a new multiple of BombEvery.
func (w *World) loadNext() {
	if w.field.IsEmpty() {
		w.loaded = nil
		return
	}

	pos := Vec2{X: ShooterX, Y: ShooterY}
	if m := w.score / BombEvery; m > w.milestone {
		w.milestone = m
		w.loaded = NewBomb(w.newID(), pos)
		return
	}

	legal := w.LegalColors()
	if len(legal) == 0 {
		panic(fmt.Sprintf("bubbles: no legal color for %d settled bubbles", w.field.Len()))
	}
	w.loaded = NewBubble(w.newID(), legal[w.rng.Intn(len(legal))], pos)
}

// AimDirection converts an aim point into a travel direction in radians.
// The angle above the horizontal is clamped to [MinAimDeg, MaxAimDeg]; a point
// outside that range snaps to the nearer bound.
func AimDirection(from, aim Vec2) float64 {
	d := aim.Sub(from)
	deg := -math.Atan2(d.Y, d.X) * 180 / math.Pi

	switch {
	case deg >= MinAimDeg && deg <= MaxAimDeg:
	case deg < MinAimDeg && deg >= -90:
		deg = MinAimDeg
	default:
		deg = MaxAimDeg
	}
	return -deg * math.Pi / 180
}

// Launch fires the loaded projectile toward aim.
// Returns false if a shot is already in flight, nothing is loaded or the round is over.
func (w *World) Launch(aim Vec2) bool {
	if w.outcome != OutcomeOngoing || w.inFlight != nil || w.loaded == nil {
		return false
	}
	b := w.loaded
	w.loaded = nil
	b.Launch(AimDirection(b.Pos, aim))
	w.inFlight = b
	return true
}

// Step advances the simulation by one tick.
func (w *World) Step() StepResult {
	res := StepResult{Outcome: w.outcome}
	if w.outcome != OutcomeOngoing || w.inFlight == nil {
		return res
	}

	b := w.inFlight
	res.Moved = true
	b.Advance(w.grid.width, w.grid.height)

	before := w.score
	switch {
	case w.field.Touches(b):
		w.land(b, true, &res)
	case b.Pos.Y <= 0:
		w.land(b, false, &res)
	default:
		return res
	}

	w.inFlight = nil
	res.Score = w.score - before
	w.loadNext()
	res.NextReady = w.loaded != nil
	w.updateOutcome()
	res.Outcome = w.outcome
	return res
}

// land resolves a projectile that hit the field or reached the ceiling.
// A colored bubble reaching the ceiling attaches without a match check.
func (w *World) land(b *Bubble, hitField bool, res *StepResult) {
	if b.IsBomb() {
		b.Settle(w.grid.Snap(b.Pos))
		res.Bomb = true
		res.Popped = w.pop(b)
		res.Dropped = len(w.dropUnsupported())
		return
	}

	slot, ok := w.grid.SnapFree(b.Pos, w.field.Holds)
	if !ok {
		panic(fmt.Sprintf("bubbles: no free slot near %v", b.Pos))
	}
	b.Settle(slot)

	anchor := w.grid.IsTopRow(slot)
	w.field.Add(b, anchor)
	res.Settled = true
	res.Anchored = anchor

	if !hitField {
		return
	}
	if IsPoppable(w.field, b, w.level.MatchRule) {
		res.Popped = w.pop(b)
		res.Dropped = len(w.dropUnsupported())
	}
}

// pop removes the pop set of b and scores it.
func (w *World) pop(b *Bubble) int {
	set := CollectPop(w.field, b)
	remove := make(map[*Bubble]bool, len(set))
	for _, x := range set {
		remove[x] = true
	}
	w.field.Remove(remove)
	// A bomb is never part of the field but still counts toward its blast
	b.Phase = PhaseRemoved
	w.score += PointsPerBubble * len(set)
	return len(set)
}

// dropUnsupported removes every settled bubble no longer connected to an anchor.
func (w *World) dropUnsupported() []*Bubble {
	dropped := Unsupported(w.field)
	if len(dropped) == 0 {
		return dropped
	}
	remove := make(map[*Bubble]bool, len(dropped))
	for _, x := range dropped {
		remove[x] = true
	}
	w.field.Remove(remove)
	w.score += PointsPerBubble * len(dropped)
	return dropped
}

// updateOutcome checks the terminal conditions once no shot is in flight.
func (w *World) updateOutcome() {
	if w.outcome != OutcomeOngoing || w.inFlight != nil {
		return
	}
	if w.field.IsEmpty() {
		w.outcome = OutcomeCleared
		return
	}
	if w.field.LowestY() >= DangerLineY {
		w.outcome = OutcomeFailed
	}
}

// CurrentField returns the bubbles to draw: settled bubbles in field order,
// then the projectile in flight, then the one loaded at the shooter.
func (w *World) CurrentField() []BubbleView {
	out := make([]BubbleView, 0, w.field.Len()+2)
	for _, b := range w.field.Bubbles() {
		out = append(out, BubbleView{
			ID:     b.ID,
			Pos:    b.Pos,
			Color:  b.Color,
			Kind:   b.Kind,
			Anchor: w.field.IsAnchor(b),
		})
	}
	if b := w.inFlight; b != nil {
		out = append(out, BubbleView{ID: b.ID, Pos: b.Pos, Color: b.Color, Kind: b.Kind, InFlight: true})
	}
	if b := w.loaded; b != nil {
		out = append(out, BubbleView{ID: b.ID, Pos: b.Pos, Color: b.Color, Kind: b.Kind, Loaded: true})
	}
	return out
}
