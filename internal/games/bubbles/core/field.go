package core

// Field is the set of settled bubbles plus the anchor subset.
// Bubbles keep their insertion order; collision scans follow that order.
type Field struct {
	bubbles []*Bubble
	anchors map[*Bubble]struct{}
}

// NewField creates an empty field.
func NewField() *Field {
	return &Field{
		bubbles: make([]*Bubble, 0),
		anchors: make(map[*Bubble]struct{}),
	}
}

// Add settles b into the field. When anchor is true it also joins the anchor set.
func (f *Field) Add(b *Bubble, anchor bool) {
	f.bubbles = append(f.bubbles, b)
	if anchor {
		f.anchors[b] = struct{}{}
	}
}

// Bubbles returns the settled bubbles in field order.
// The returned slice must not be modified.
func (f *Field) Bubbles() []*Bubble {
	return f.bubbles
}

// Len returns the number of settled bubbles.
func (f *Field) Len() int {
	return len(f.bubbles)
}

// IsEmpty returns true if no bubble is settled.
func (f *Field) IsEmpty() bool {
	return len(f.bubbles) == 0
}

// Contains reports whether b is settled in the field.
func (f *Field) Contains(b *Bubble) bool {
	for _, x := range f.bubbles {
		if x == b {
			return true
		}
	}
	return false
}

// IsAnchor reports whether b is in the anchor set.
func (f *Field) IsAnchor(b *Bubble) bool {
	_, ok := f.anchors[b]
	return ok
}

// Anchors returns the anchor bubbles in field order.
func (f *Field) Anchors() []*Bubble {
	out := make([]*Bubble, 0, len(f.anchors))
	for _, b := range f.bubbles {
		if _, ok := f.anchors[b]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Remove takes every bubble in set out of the field and the anchor set.
// Removed bubbles are marked PhaseRemoved. Returns how many were removed.
func (f *Field) Remove(set map[*Bubble]bool) int {
	if len(set) == 0 {
		return 0
	}
	kept := f.bubbles[:0]
	removed := 0
	for _, b := range f.bubbles {
		if set[b] {
			delete(f.anchors, b)
			b.Phase = PhaseRemoved
			removed++
			continue
		}
		kept = append(kept, b)
	}
	// Clear the tail so removed bubbles are not retained by the backing array
	for i := len(kept); i < len(f.bubbles); i++ {
		f.bubbles[i] = nil
	}
	f.bubbles = kept
	return removed
}

// Touches reports whether b collides with any settled bubble.
// Landing only depends on the projectile position, so which bubble was hit
// does not matter.
func (f *Field) Touches(b *Bubble) bool {
	for _, x := range f.bubbles {
		if x != b && Collides(x, b) {
			return true
		}
	}
	return false
}

// Holds reports whether a settled bubble sits exactly on slot.
func (f *Field) Holds(slot Vec2) bool {
	for _, x := range f.bubbles {
		if x.Pos == slot {
			return true
		}
	}
	return false
}

// Tally counts settled bubbles per color. Bombs are not counted.
func (f *Field) Tally() map[Color]int {
	tally := make(map[Color]int)
	for _, b := range f.bubbles {
		if b.Kind == KindNormal {
			tally[b.Color]++
		}
	}
	return tally
}

// LowestY returns the largest center Y among settled bubbles, or 0 if empty.
func (f *Field) LowestY() float64 {
	lowest := 0.0
	for _, b := range f.bubbles {
		if b.Pos.Y > lowest {
			lowest = b.Pos.Y
		}
	}
	return lowest
}
