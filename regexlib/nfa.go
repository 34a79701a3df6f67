package regexlib

import "sort"

// State identifies an automaton state. NFA and DFA states are both dense
// integers starting at zero.
type State int

// NoState marks an absent state, e.g. a DFA without a sink.
const NoState State = -1

// Label is an NFA edge label. Epsilon edges carry Eps and no character, so
// they can never collide with a real input character (including NUL).
type Label struct {
	Char rune
	Eps  bool
}

var epsilon = Label{Eps: true}

func charLabel(r rune) Label { return Label{Char: r} }

type Edge struct {
	On Label
	To State
}

// NFA is a non-deterministic automaton over a finite alphabet. Targets of
// a (state, label) pair form a set: AddEdge ignores duplicates.
type NFA struct {
	Start State

	edges  [][]Edge
	accept []bool
	alpha  map[rune]struct{}
}

// NewNFA returns an automaton with n states, no edges and start state 0.
func NewNFA(n int) *NFA {
	return &NFA{
		edges:  make([][]Edge, n),
		accept: make([]bool, n),
		alpha:  map[rune]struct{}{},
	}
}

func (n *NFA) NumStates() int { return len(n.edges) }

// AddState appends a fresh state and returns it.
func (n *NFA) AddState() State {
	n.edges = append(n.edges, nil)
	n.accept = append(n.accept, false)
	return State(len(n.edges) - 1)
}

// AddEdge adds from -c-> to.
func (n *NFA) AddEdge(from State, c rune, to State) {
	n.alpha[c] = struct{}{}
	n.addEdge(from, charLabel(c), to)
}

// AddEpsilon adds from -ε-> to.
func (n *NFA) AddEpsilon(from, to State) {
	n.addEdge(from, epsilon, to)
}

func (n *NFA) addEdge(from State, l Label, to State) {
	for _, e := range n.edges[from] {
		if e.On == l && e.To == to {
			return
		}
	}
	n.edges[from] = append(n.edges[from], Edge{On: l, To: to})
}

func (n *NFA) SetAccepting(s State, ok bool) { n.accept[s] = ok }

func (n *NFA) IsAccepting(s State) bool { return n.accept[s] }

// Edges returns the outgoing edges of s. The slice must not be modified.
func (n *NFA) Edges(s State) []Edge { return n.edges[s] }

// Accepting returns the accepting states in increasing order.
func (n *NFA) Accepting() []State {
	var out []State
	for s, ok := range n.accept {
		if ok {
			out = append(out, State(s))
		}
	}
	return out
}

// Alphabet returns the characters used on edges, sorted.
func (n *NFA) Alphabet() []rune {
	out := make([]rune, 0, len(n.alpha))
	for r := range n.alpha {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// copyInto adds n's states to dst at ids shifted by k. dst must already
// have room for them.
func (n *NFA) copyInto(dst *NFA, k int) {
	for r := range n.alpha {
		dst.alpha[r] = struct{}{}
	}
	for s, edges := range n.edges {
		from := State(s + k)
		for _, e := range edges {
			dst.addEdge(from, e.On, e.To+State(k))
		}
		dst.accept[from] = n.accept[s]
	}
}

// Merge joins automata under a fresh start state 0 that has an epsilon
// edge to each input's start. Inputs are copied at disjoint offsets, which
// are returned in input order. Alphabets and accepting sets are unioned.
func Merge(nfas ...*NFA) (*NFA, []int) {
	total := 1
	for _, m := range nfas {
		total += m.NumStates()
	}
	out := NewNFA(total)
	offsets := make([]int, len(nfas))
	k := 1
	for i, m := range nfas {
		offsets[i] = k
		m.copyInto(out, k)
		out.AddEpsilon(0, m.Start+State(k))
		k += m.NumStates()
	}
	return out, offsets
}

// EpsilonClosure returns every state reachable from s through epsilon
// edges only, s included, in increasing order.
func (n *NFA) EpsilonClosure(s State) []State {
	seen := map[State]struct{}{s: {}}
	queue := []State{s}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range n.edges[cur] {
			if !e.On.Eps {
				continue
			}
			if _, ok := seen[e.To]; !ok {
				seen[e.To] = struct{}{}
				queue = append(queue, e.To)
			}
		}
	}
	return sortedStates(seen)
}

// Accepts reports whether some path from Start, epsilon edges included,
// consumes exactly word and ends in an accepting state.
func (n *NFA) Accepts(word string) bool {
	cur := n.closeAll(map[State]struct{}{n.Start: {}})
	for _, c := range word {
		cur = n.closeAll(n.move(cur, c))
		if len(cur) == 0 {
			return false
		}
	}
	for s := range cur {
		if n.accept[s] {
			return true
		}
	}
	return false
}

func (n *NFA) move(set map[State]struct{}, c rune) map[State]struct{} {
	res := map[State]struct{}{}
	l := charLabel(c)
	for s := range set {
		for _, e := range n.edges[s] {
			if e.On == l {
				res[e.To] = struct{}{}
			}
		}
	}
	return res
}

func (n *NFA) closeAll(set map[State]struct{}) map[State]struct{} {
	res := map[State]struct{}{}
	for s := range set {
		for _, t := range n.EpsilonClosure(s) {
			res[t] = struct{}{}
		}
	}
	return res
}

func sortedStates(set map[State]struct{}) []State {
	out := make([]State, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
