package regexlib

// Product builds the reachable part of the product automaton of a and b
// over the union of their alphabets. A state accepts iff op holds for the
// acceptance of its two components. A transition missing on either side
// leads to an implicit dead component, so the result is total.
func Product(a, b *DFA, op func(bool, bool) bool) *DFA {
	type pair struct{ i, j State }
	p := NewDFA(unionRunes(a.alpha, b.alpha), 0)

	accepts := func(d *DFA, s State) bool { return s != NoState && d.accept[s] }
	step := func(d *DFA, s State, c rune) State {
		if s == NoState {
			return NoState
		}
		t, _ := d.Next(s, c)
		return t
	}

	ids := map[pair]State{}
	var queue []pair
	get := func(pr pair) State {
		if s, ok := ids[pr]; ok {
			return s
		}
		s := p.AddState()
		p.accept[s] = op(accepts(a, pr.i), accepts(b, pr.j))
		ids[pr] = s
		queue = append(queue, pr)
		return s
	}

	p.Start = get(pair{a.Start, b.Start})
	for len(queue) > 0 {
		pr := queue[0]
		queue = queue[1:]
		cur := ids[pr]
		for i, c := range p.alpha {
			next := get(pair{step(a, pr.i, c), step(b, pr.j, c)})
			p.delta[cur][i] = next
		}
	}
	return p
}

// Intersect accepts the words both a and b accept.
func Intersect(a, b *DFA) *DFA { return Product(a, b, func(x, y bool) bool { return x && y }) }

// Union accepts the words a or b accepts.
func Union(a, b *DFA) *DFA { return Product(a, b, func(x, y bool) bool { return x || y }) }

// Equivalent reports whether a and b accept the same language.
func Equivalent(a, b *DFA) bool {
	diff := Product(a, b, func(x, y bool) bool { return x != y })
	for _, ok := range diff.accept {
		if ok {
			return false
		}
	}
	return true
}

func unionRunes(a, b []rune) []rune {
	m := make(map[rune]struct{}, len(a)+len(b))
	out := make([]rune, 0, len(a)+len(b))
	for _, rs := range [][]rune{a, b} {
		for _, r := range rs {
			if _, ok := m[r]; !ok {
				m[r] = struct{}{}
				out = append(out, r)
			}
		}
	}
	return out
}
