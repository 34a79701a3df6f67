package regexlib

import (
	"strconv"
	"strings"
)

// Minimize returns the minimal DFA for the language of d using Moore's
// partition refinement. Unreachable states are discarded first.
func Minimize(d *DFA) *DFA {
	m, _ := MinimizeBy(d, func(s State) int {
		if d.accept[s] {
			return 1
		}
		return 0
	})
	return m
}

// MinimizeBy is Minimize with a caller-chosen initial partition: states
// start in the same block iff class returns the same value for them, so
// states of different classes are never merged. The second result maps
// every state of d to its state in the new automaton, or NoState if it was
// unreachable.
func MinimizeBy(d *DFA, class func(State) int) (*DFA, []State) {
	live := d.reachable()

	// --- 1. initial partition ------------------------------------------------
	block := make([]int, len(d.delta))
	for i := range block {
		block[i] = -1
	}
	classes := map[int]int{}
	for _, s := range live {
		c := class(s)
		b, ok := classes[c]
		if !ok {
			b = len(classes)
			classes[c] = b
		}
		block[s] = b
	}
	count := len(classes)

	// --- 2. refine until the block count is stable ---------------------------
	// The alphabet is sorted, so signatures are built in a fixed order.
	for {
		next := make([]int, len(d.delta))
		for i := range next {
			next[i] = -1
		}
		sigs := map[string]int{}
		var b strings.Builder
		for _, s := range live {
			b.Reset()
			b.WriteString(strconv.Itoa(block[s]))
			for _, t := range d.delta[s] {
				b.WriteByte(':')
				if t == NoState {
					b.WriteString("-")
				} else {
					b.WriteString(strconv.Itoa(block[t]))
				}
			}
			key := b.String()
			id, ok := sigs[key]
			if !ok {
				id = len(sigs)
				sigs[key] = id
			}
			next[s] = id
		}
		block = next
		if len(sigs) == count {
			break
		}
		count = len(sigs)
	}

	// --- 3. one state per block ----------------------------------------------
	m := NewDFA(d.alpha, count)
	m.Start = State(block[d.Start])
	done := make([]bool, count)
	for _, s := range live {
		b := State(block[s])
		if d.accept[s] {
			m.accept[b] = true
		}
		if done[b] {
			continue
		}
		done[b] = true
		for i, t := range d.delta[s] {
			if t != NoState {
				m.delta[b][i] = State(block[t])
			}
		}
	}
	if d.sink != NoState && block[d.sink] >= 0 {
		m.sink = State(block[d.sink])
	}

	mapping := make([]State, len(d.delta))
	for s, b := range block {
		if b < 0 {
			mapping[s] = NoState
		} else {
			mapping[s] = State(b)
		}
	}
	return m, mapping
}
