package core

// Supported returns every settled bubble transitively connected to an anchor
// through colliding neighbours, regardless of color.
func Supported(f *Field) map[*Bubble]bool {
	all := f.Bubbles()
	reached := make(map[*Bubble]bool, len(all))
	work := make([]*Bubble, 0, len(all))

	for _, a := range f.Anchors() {
		if reached[a] {
			continue
		}
		reached[a] = true
		work = append(work, a)

		for len(work) > 0 {
			cur := work[len(work)-1]
			work = work[:len(work)-1]
			for _, n := range all {
				if reached[n] || !Collides(cur, n) {
					continue
				}
				reached[n] = true
				work = append(work, n)
			}
		}
	}
	return reached
}

// Unsupported returns the settled bubbles that are not connected to any anchor, in field order.
func Unsupported(f *Field) []*Bubble {
	reached := Supported(f)
	out := make([]*Bubble, 0)
	for _, b := range f.Bubbles() {
		if !reached[b] {
			out = append(out, b)
		}
	}
	return out
}
