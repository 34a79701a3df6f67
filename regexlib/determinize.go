package regexlib

import (
	"strconv"
	"strings"
)

// setKey is the canonical label of a sorted NFA state set.
func setKey(set []State) string {
	var b strings.Builder
	for i, s := range set {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(s)))
	}
	return b.String()
}

// Determinize converts n into an equivalent total DFA by subset
// construction. State 0 is the sink (the empty set) with a self-loop on
// every symbol; state 1 is the epsilon closure of n.Start. Every other
// discovered set gets the next free id. Epsilon closures are memoized per
// NFA state for the duration of the call.
func Determinize(n *NFA) *DFA {
	alpha := n.Alphabet()
	d := NewDFA(alpha, 0)
	d.members = [][]State{}

	closures := make(map[State][]State)
	closure := func(s State) []State {
		c, ok := closures[s]
		if !ok {
			c = n.EpsilonClosure(s)
			closures[s] = c
		}
		return c
	}

	ids := map[string]State{}
	add := func(set []State) State {
		s := d.AddState()
		d.members = append(d.members, set)
		ids[setKey(set)] = s
		for _, m := range set {
			if n.IsAccepting(m) {
				d.accept[s] = true
				break
			}
		}
		return s
	}

	d.sink = add([]State{})
	for i := range alpha {
		d.delta[d.sink][i] = d.sink
	}
	d.Start = add(closure(n.Start))

	queue := []State{d.Start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for i, c := range alpha {
			l := charLabel(c)
			reach := map[State]struct{}{}
			for _, m := range d.members[cur] {
				for _, e := range n.Edges(m) {
					if e.On != l {
						continue
					}
					for _, t := range closure(e.To) {
						reach[t] = struct{}{}
					}
				}
			}
			if len(reach) == 0 {
				d.delta[cur][i] = d.sink
				continue
			}
			set := sortedStates(reach)
			next, seen := ids[setKey(set)]
			if !seen {
				next = add(set)
				queue = append(queue, next)
			}
			d.delta[cur][i] = next
		}
	}
	return d
}
