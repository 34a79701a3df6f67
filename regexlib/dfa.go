package regexlib

import "sort"

// DFA is a deterministic automaton. Transitions are stored densely per
// (state, alphabet index); a missing transition is NoState and is only
// possible in hand-built automata.
type DFA struct {
	Start State

	alpha   []rune
	index   map[rune]int
	delta   [][]State
	accept  []bool
	sink    State
	members [][]State
}

// NewDFA returns an automaton with n states over alphabet, no transitions
// and start state 0. The alphabet is copied, deduplicated and sorted.
func NewDFA(alphabet []rune, n int) *DFA {
	alpha := append([]rune(nil), alphabet...)
	sort.Slice(alpha, func(i, j int) bool { return alpha[i] < alpha[j] })
	d := &DFA{index: make(map[rune]int, len(alpha)), sink: NoState}
	for _, r := range alpha {
		if _, dup := d.index[r]; dup {
			continue
		}
		d.index[r] = len(d.alpha)
		d.alpha = append(d.alpha, r)
	}
	for i := 0; i < n; i++ {
		d.AddState()
	}
	return d
}

func (d *DFA) AddState() State {
	row := make([]State, len(d.alpha))
	for i := range row {
		row[i] = NoState
	}
	d.delta = append(d.delta, row)
	d.accept = append(d.accept, false)
	return State(len(d.delta) - 1)
}

// SetTransition defines from -c-> to. It panics if c is not in the
// alphabet.
func (d *DFA) SetTransition(from State, c rune, to State) {
	i, ok := d.index[c]
	if !ok {
		panic("regexlib: symbol " + string(c) + " not in alphabet")
	}
	d.delta[from][i] = to
}

func (d *DFA) SetAccepting(s State, ok bool) { d.accept[s] = ok }

// Next returns the target of s on c. The boolean is false when c is
// outside the alphabet or the transition is undefined.
func (d *DFA) Next(s State, c rune) (State, bool) {
	i, ok := d.index[c]
	if !ok {
		return NoState, false
	}
	t := d.delta[s][i]
	return t, t != NoState
}

func (d *DFA) IsAccepting(s State) bool { return d.accept[s] }

func (d *DFA) NumStates() int { return len(d.delta) }

// Alphabet returns the sorted alphabet. The slice must not be modified.
func (d *DFA) Alphabet() []rune { return d.alpha }

// Sink returns the dead state, or NoState if the automaton has none.
func (d *DFA) Sink() State { return d.sink }

// Members returns the NFA states a state was built from by Determinize,
// in increasing order. It is nil for hand-built and minimized automata and
// empty for the sink.
func (d *DFA) Members(s State) []State {
	if d.members == nil {
		return nil
	}
	return d.members[s]
}

// Accept runs the automaton on word. An undefined transition rejects.
func (d *DFA) Accept(word string) bool {
	cur := d.Start
	for _, c := range word {
		next, ok := d.Next(cur, c)
		if !ok {
			return false
		}
		cur = next
	}
	return d.accept[cur]
}

// reachable returns the states reachable from Start in BFS order.
func (d *DFA) reachable() []State {
	seen := make([]bool, len(d.delta))
	seen[d.Start] = true
	order := []State{d.Start}
	for i := 0; i < len(order); i++ {
		for _, t := range d.delta[order[i]] {
			if t != NoState && !seen[t] {
				seen[t] = true
				order = append(order, t)
			}
		}
	}
	return order
}
