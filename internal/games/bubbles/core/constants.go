// Package core provides the match/physics simulation for the bubble shooter.
// This package is UI-agnostic and deterministic for a given seed and input sequence.
package core

import "math"

// Play area and lattice geometry. These are fixed for every level.
const (
	Width  = 950.0 // Play area width in world units
	Height = 600.0 // Play area height in world units
	Radius = 20.0  // Bubble radius (also the hex "radius" of the lattice)
)

// HexHeight is the vertical distance between lattice rows.
var HexHeight = Radius * math.Sqrt(3)

// Collision and removal constants.
const (
	CollisionSlack = 50.0  // Added to (rA+rB)^2 so snapped neighbours still touch
	BombRadius     = 100.0 // Center distance covered by a bomb blast
)

// Shooter constants.
const (
	ShooterX    = Width / 2
	ShooterY    = Height - 35
	NormalSpeed = 15.0 // Per-axis speed of a colored projectile
	BombSpeed   = 10.0 // Per-axis speed of a bomb
	MinAimDeg   = 4.0
	MaxAimDeg   = 176.0
)

// Scoring and round constants.
const (
	PointsPerBubble = 10
	BombEvery       = 200          // A bomb is loaded each time the score crosses a multiple of this
	DangerLineY     = Height - 100 // Settled bubbles at or below this line lose the round
)
