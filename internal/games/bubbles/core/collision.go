package core

// CirclesTouch reports whether two circles overlap once the collision slack is added.
// The test is (dx^2 + dy^2) <= (rA+rB)^2 + CollisionSlack and is symmetric.
func CirclesTouch(a Vec2, ra float64, b Vec2, rb float64) bool {
	sum := ra + rb
	return a.DistSq(b) <= sum*sum+CollisionSlack
}

// Collides reports whether two bubbles touch.
// The same test defines adjacency for clustering and support.
func Collides(a, b *Bubble) bool {
	return CirclesTouch(a.Pos, a.Radius, b.Pos, b.Radius)
}

// WithinBlast reports whether target's center lies inside a bomb blast centered at c.
func WithinBlast(c Vec2, target *Bubble) bool {
	return c.DistSq(target.Pos) <= BombRadius*BombRadius
}
