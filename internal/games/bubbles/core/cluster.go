package core

import "fmt"

// MatchRule selects how a landed bubble decides whether it pops.
type MatchRule uint8

const (
	// MatchPath pops when a depth-first walk from the landed bubble reaches a
	// third same-color bubble along a single path. The visited set is shared by
	// every branch, so a bubble reached on a dead-end branch is never revisited
	// from another branch. A "V" of three (landed bubble with two neighbours that
	// do not touch each other) does not pop under this rule.
	MatchPath MatchRule = iota
	// MatchComponent pops when the connected same-color component holding the
	// landed bubble has at least MinCluster members.
	MatchComponent
)

// MinCluster is the number of same-color bubbles needed for a pop.
const MinCluster = 3

// String returns the config name of the rule.
func (r MatchRule) String() string {
	switch r {
	case MatchPath:
		return "path"
	case MatchComponent:
		return "component"
	default:
		return "unknown"
	}
}

// ParseMatchRule converts a config name to a MatchRule.
func ParseMatchRule(s string) (MatchRule, error) {
	switch s {
	case "", "path":
		return MatchPath, nil
	case "component":
		return MatchComponent, nil
	default:
		return MatchPath, fmt.Errorf("unknown match rule %q", s)
	}
}

// IsPoppable reports whether the landed bubble b triggers a pop.
// b must already be settled in f.
func IsPoppable(f *Field, b *Bubble, rule MatchRule) bool {
	if b.IsBomb() {
		return false
	}
	if rule == MatchComponent {
		return len(CollectPop(f, b)) >= MinCluster
	}
	return pathReaches(f, b, MinCluster)
}

// pathReaches walks same-color neighbours depth first with an explicit stack.
// Depth counts bubbles along the current path, starting at 1 for b. It returns
// true as soon as a neighbour would sit at depth target.
func pathReaches(f *Field, b *Bubble, target int) bool {
	if target <= 1 {
		return true
	}

	type frame struct {
		bubble *Bubble
		depth  int
		next   int // Index into the field of the next neighbour candidate
	}

	all := f.Bubbles()
	visited := map[*Bubble]bool{b: true}
	stack := []frame{{bubble: b, depth: 1}}

	for len(stack) > 0 {
		top := len(stack) - 1
		cur := stack[top]
		pushed := false

		for cur.next < len(all) {
			n := all[cur.next]
			cur.next++
			if visited[n] || !n.SameColor(cur.bubble) || !Collides(cur.bubble, n) {
				continue
			}
			if cur.depth+1 >= target {
				return true
			}
			visited[n] = true
			stack[top] = cur
			stack = append(stack, frame{bubble: n, depth: cur.depth + 1})
			pushed = true
			break
		}

		if !pushed {
			stack = stack[:top]
		}
	}
	return false
}

// CollectPop returns the bubbles removed when b pops, in discovery order.
// For a bomb that is every settled bubble within BombRadius of b plus b itself.
// Otherwise it is the full same-color component reachable from b; the size
// minimum is not rechecked here.
func CollectPop(f *Field, b *Bubble) []*Bubble {
	if b.IsBomb() {
		return collectBlast(f, b)
	}
	return collectComponent(f, b)
}

// collectBlast gathers the bomb's area of effect regardless of color.
func collectBlast(f *Field, bomb *Bubble) []*Bubble {
	out := make([]*Bubble, 0)
	for _, x := range f.Bubbles() {
		if x != bomb && WithinBlast(bomb.Pos, x) {
			out = append(out, x)
		}
	}
	return append(out, bomb)
}

// collectComponent flood fills same-color, colliding neighbours from b.
func collectComponent(f *Field, b *Bubble) []*Bubble {
	all := f.Bubbles()
	seen := map[*Bubble]bool{b: true}
	out := []*Bubble{b}
	work := []*Bubble{b}

	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]
		for _, n := range all {
			if seen[n] || !n.SameColor(cur) || !Collides(cur, n) {
				continue
			}
			seen[n] = true
			out = append(out, n)
			work = append(work, n)
		}
	}
	return out
}
