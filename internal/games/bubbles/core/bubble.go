package core

import "math"

// Kind distinguishes colored bubbles from bombs.
type Kind uint8

const (
	KindNormal Kind = iota
	KindBomb
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindBomb:
		return "bomb"
	default:
		return "unknown"
	}
}

// Phase is the lifecycle stage of a bubble.
// A bubble only ever moves forward through these phases.
type Phase uint8

const (
	PhaseLoaded   Phase = iota // Resting at the shooter, not yet fired
	PhaseInFlight              // Moving projectile
	PhaseSettled               // Part of the field
	PhaseRemoved               // Popped or dropped
)

// Bubble is a single colored piece or a bomb.
type Bubble struct {
	ID     int
	Pos    Vec2
	Vel    Vec2    // Per-axis speed; the sign flips on bounces
	Dir    float64 // Travel direction in radians, screen coordinates (negative is up)
	Color  Color   // Meaningless for bombs
	Kind   Kind
	Radius float64
	Phase  Phase
}

// NewBubble creates a loaded colored bubble resting at pos.
func NewBubble(id int, color Color, pos Vec2) *Bubble {
	return &Bubble{
		ID:     id,
		Pos:    pos,
		Vel:    Vec2{X: NormalSpeed, Y: NormalSpeed},
		Color:  color,
		Kind:   KindNormal,
		Radius: Radius,
		Phase:  PhaseLoaded,
	}
}

// NewBomb creates a loaded bomb resting at pos.
func NewBomb(id int, pos Vec2) *Bubble {
	return &Bubble{
		ID:     id,
		Pos:    pos,
		Vel:    Vec2{X: BombSpeed, Y: BombSpeed},
		Kind:   KindBomb,
		Radius: Radius,
		Phase:  PhaseLoaded,
	}
}

// NewSettled creates a bubble that already occupies a field slot.
func NewSettled(id int, color Color, slot Vec2) *Bubble {
	b := NewBubble(id, color, slot)
	b.Phase = PhaseSettled
	return b
}

// IsBomb reports whether the bubble is a bomb.
func (b *Bubble) IsBomb() bool {
	return b.Kind == KindBomb
}

// SameColor reports whether two bubbles match for clustering.
// Bombs never match anything.
func (b *Bubble) SameColor(o *Bubble) bool {
	return b.Kind == KindNormal && o.Kind == KindNormal && b.Color == o.Color
}

// Launch puts a loaded bubble in flight along dir (radians, screen coordinates).
func (b *Bubble) Launch(dir float64) {
	if b.Phase != PhaseLoaded {
		return
	}
	b.Dir = dir
	b.Phase = PhaseInFlight
}

// Advance moves an in-flight bubble by one tick and bounces it off the
// side walls and the floor. The ceiling is handled by the caller.
func (b *Bubble) Advance(width, height float64) {
	if b.Phase != PhaseInFlight {
		return
	}

	dx := math.Cos(b.Dir) * b.Vel.X
	dy := math.Sin(b.Dir) * b.Vel.Y
	b.Pos.X += dx
	b.Pos.Y += dy

	// Reflect only while heading outward so a bubble past the wall cannot get stuck
	if (b.Pos.X <= 0 && dx < 0) || (b.Pos.X >= width && dx > 0) {
		b.Vel.X = -b.Vel.X
	}
	if b.Pos.Y >= height && dy > 0 {
		b.Vel.Y = -b.Vel.Y
	}
}

// Settle snaps the bubble to slot and makes it part of the field.
func (b *Bubble) Settle(slot Vec2) {
	b.Pos = slot
	b.Vel = Vec2{}
	b.Phase = PhaseSettled
}
