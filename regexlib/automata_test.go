package regexlib

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var corpus = []string{
	"a",
	"ab",
	"a|b",
	"a*b",
	"(a|b)*abb",
	"(ab|a)*c",
	"a+b?",
	"(a|ab)(c|bcd)",
	"((a|b)c)*",
	"a|()",
	"(a*)*",
	"[0-9]+",
}

// words returns every string over alpha of length at most n.
func words(alpha string, n int) []string {
	out := []string{""}
	level := []string{""}
	for i := 0; i < n; i++ {
		var next []string
		for _, w := range level {
			for _, c := range alpha {
				next = append(next, w+string(c))
			}
		}
		out = append(out, next...)
		level = next
	}
	return out
}

func mustCompile(t testing.TB, pattern string) *NFA {
	t.Helper()
	n, err := Compile(pattern)
	require.NoError(t, err)
	return n
}

func reachableNFA(n *NFA) map[State]bool {
	seen := map[State]bool{n.Start: true}
	queue := []State{n.Start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range n.Edges(cur) {
			if !seen[e.To] {
				seen[e.To] = true
				queue = append(queue, e.To)
			}
		}
	}
	return seen
}

func TestThompsonFragmentShape(t *testing.T) {
	for _, pattern := range append(corpus, "[a-z]", "[A-Z]?", "x(y|z)+") {
		t.Run(pattern, func(t *testing.T) {
			n := mustCompile(t, pattern)
			acc := n.Accepting()
			require.Len(t, acc, 1)
			assert.NotEqual(t, n.Start, acc[0])
			assert.Empty(t, n.Edges(acc[0]), "accept state must have no outgoing edges")
			assert.Len(t, reachableNFA(n), n.NumStates(), "every state reachable from start")
		})
	}
}

func TestThompsonBaseCases(t *testing.T) {
	sym := Thompson(Sym('x'))
	assert.Equal(t, 2, sym.NumStates())
	assert.Equal(t, []Edge{{On: Label{Char: 'x'}, To: 1}}, sym.Edges(sym.Start))
	assert.Equal(t, []rune{'x'}, sym.Alphabet())

	eps := Thompson(Empty())
	assert.Equal(t, 2, eps.NumStates())
	require.Len(t, eps.Edges(eps.Start), 1)
	assert.True(t, eps.Edges(eps.Start)[0].On.Eps)
	assert.Empty(t, eps.Alphabet())
	assert.True(t, eps.Accepts(""))
}

func TestEpsilonIsNotNUL(t *testing.T) {
	n := Thompson(Sym(0))
	assert.False(t, n.Accepts(""))
	assert.True(t, n.Accepts("\x00"))
	assert.True(t, Determinize(n).Accept("\x00"))
}

func TestEpsilonClosure(t *testing.T) {
	n := NewNFA(5)
	n.AddEpsilon(0, 1)
	n.AddEpsilon(1, 2)
	n.AddEpsilon(2, 0)
	n.AddEdge(2, 'a', 3)
	n.AddEpsilon(3, 4)

	assert.Equal(t, []State{0, 1, 2}, n.EpsilonClosure(0))
	assert.Equal(t, []State{3, 4}, n.EpsilonClosure(3))
	assert.Equal(t, []State{4}, n.EpsilonClosure(4))
}

func TestAddEdgeIsSetValued(t *testing.T) {
	n := NewNFA(2)
	n.AddEdge(0, 'a', 1)
	n.AddEdge(0, 'a', 1)
	n.AddEpsilon(0, 1)
	n.AddEpsilon(0, 1)
	assert.Len(t, n.Edges(0), 2)
}

func TestMergeOffsets(t *testing.T) {
	a := mustCompile(t, "ab")
	b := mustCompile(t, "c")
	m, offsets := Merge(a, b)
	assert.Equal(t, []int{1, 1 + a.NumStates()}, offsets)
	assert.Equal(t, 1+a.NumStates()+b.NumStates(), m.NumStates())
	assert.Equal(t, State(0), m.Start)
	assert.Equal(t, []rune{'a', 'b', 'c'}, m.Alphabet())
	assert.Len(t, m.Accepting(), 2)
	for _, w := range []string{"ab", "c"} {
		assert.True(t, m.Accepts(w), w)
	}
	assert.False(t, m.Accepts("abc"))
}

func TestMergeReachesEveryState(t *testing.T) {
	parts := []*NFA{mustCompile(t, "a|b"), mustCompile(t, "(ab)*"), mustCompile(t, "[0-9]+")}
	m, offsets := Merge(parts...)
	assert.Len(t, reachableNFA(m), m.NumStates())
	for i, n := range parts {
		for _, s := range n.Accepting() {
			assert.True(t, m.IsAccepting(s+State(offsets[i])), "rule %d state %d", i, s)
		}
	}
}

func TestDeterminizeShape(t *testing.T) {
	d := Determinize(mustCompile(t, "ab"))
	sink := d.Sink()
	require.Equal(t, State(0), sink)
	assert.False(t, d.IsAccepting(sink))
	assert.Empty(t, d.Members(sink))
	for s := 0; s < d.NumStates(); s++ {
		for _, c := range d.Alphabet() {
			next, ok := d.Next(State(s), c)
			require.True(t, ok, "transition function must be total")
			if State(s) == sink {
				assert.Equal(t, sink, next)
			}
		}
	}
	_, ok := d.Next(d.Start, 'z')
	assert.False(t, ok)
}

func TestDeterminizeEquivalence(t *testing.T) {
	for _, pattern := range corpus {
		t.Run(pattern, func(t *testing.T) {
			n := mustCompile(t, pattern)
			d := Determinize(n)
			for _, w := range words("abcdx", 5) {
				require.Equalf(t, n.Accepts(w), d.Accept(w), "word %q", w)
			}
		})
	}
}

func TestDeterminizeMembers(t *testing.T) {
	n := mustCompile(t, "a*")
	d := Determinize(n)
	assert.Equal(t, n.EpsilonClosure(n.Start), d.Members(d.Start))
	assert.True(t, d.IsAccepting(d.Start))
}

func TestMinimizePreservesLanguage(t *testing.T) {
	for _, pattern := range corpus {
		t.Run(pattern, func(t *testing.T) {
			d := Determinize(mustCompile(t, pattern))
			m := Minimize(d)
			assert.LessOrEqual(t, m.NumStates(), d.NumStates())
			for _, w := range words("abcdx", 5) {
				require.Equalf(t, d.Accept(w), m.Accept(w), "word %q", w)
			}
			assert.True(t, Equivalent(d, m))
		})
	}
}

func TestMinimizeIdempotent(t *testing.T) {
	for _, pattern := range corpus {
		m := Minimize(Determinize(mustCompile(t, pattern)))
		assert.Equal(t, m.NumStates(), Minimize(m).NumStates(), pattern)
	}
}

func TestMinimizeCount(t *testing.T) {
	tests := []struct {
		pattern string
		states  int
	}{
		{"(a|b)*abb", 4},
		{"a*", 1},
		{"ab", 4},     // start, a, ab, dead
		{"a|aa", 4},   // start, a, aa, dead
		{"(a|b)*", 1}, // sink unreachable
	}
	for _, tt := range tests {
		m := Minimize(Determinize(mustCompile(t, tt.pattern)))
		assert.Equal(t, tt.states, m.NumStates(), tt.pattern)
	}
}

func TestMinimizeHandBuilt(t *testing.T) {
	// 0 -a-> 1 -a-> 2, 1 and 2 accepting and equivalent, 3 unreachable.
	// b is undefined everywhere.
	d := NewDFA([]rune{'b', 'a'}, 4)
	d.SetTransition(0, 'a', 1)
	d.SetTransition(1, 'a', 2)
	d.SetTransition(2, 'a', 2)
	d.SetTransition(3, 'a', 0)
	d.SetAccepting(1, true)
	d.SetAccepting(2, true)
	d.SetAccepting(3, true)

	assert.False(t, d.Accept("ab"))
	assert.True(t, d.Accept("aaa"))

	m, mapping := MinimizeBy(d, func(s State) int {
		if d.IsAccepting(s) {
			return 1
		}
		return 0
	})
	assert.Equal(t, 2, m.NumStates())
	assert.Equal(t, NoState, mapping[3])
	assert.Equal(t, mapping[1], mapping[2])
	assert.Equal(t, NoState, m.Sink())
	_, ok := m.Next(m.Start, 'b')
	assert.False(t, ok)
	for _, w := range words("ab", 4) {
		assert.Equal(t, d.Accept(w), m.Accept(w), w)
	}
}

func TestMinimizeByKeepsClasses(t *testing.T) {
	n1 := mustCompile(t, "a")
	n2 := mustCompile(t, "b")
	merged, offsets := Merge(n1, n2)
	d := Determinize(merged)
	accA := n1.Accepting()[0] + State(offsets[0])

	class := func(s State) int {
		for _, m := range d.Members(s) {
			if m == accA {
				return 1
			}
			if merged.IsAccepting(m) {
				return 2
			}
		}
		return 0
	}
	plain := Minimize(d)
	split, _ := MinimizeBy(d, class)
	// a and b states are equivalent for the language but not for the classes.
	assert.Equal(t, plain.NumStates()+1, split.NumStates())
}

func TestProductOps(t *testing.T) {
	letters := Determinize(mustCompile(t, "(a|b)*"))
	as := Determinize(mustCompile(t, "a+"))
	inter := Intersect(letters, as)
	assert.True(t, inter.Accept("aaa"))
	assert.False(t, inter.Accept("ab"))
	assert.False(t, inter.Accept(""))

	union := Union(as, Determinize(mustCompile(t, "c")))
	assert.True(t, union.Accept("c"))
	assert.True(t, union.Accept("aa"))
	assert.False(t, union.Accept("ac"))
}

func TestEquivalent(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"a(b|c)*", "a(b*c*)*", true},
		{"a+", "aa*", true},
		{"a?", "()|a", true},
		{"a*", "a+", false},
		{"ab", "ba", false},
		{"(a|b)*abb", "(a|b)*ab(b)", true},
	}
	for _, tt := range tests {
		a := Determinize(mustCompile(t, tt.a))
		b := Minimize(Determinize(mustCompile(t, tt.b)))
		assert.Equal(t, tt.want, Equivalent(a, b), "%s vs %s", tt.a, tt.b)
	}
}

func TestExportDOT(t *testing.T) {
	n := mustCompile(t, "a|b")
	var buf bytes.Buffer
	require.NoError(t, ExportDOT(&buf, n))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph G {"))
	assert.Contains(t, out, `[label="ε"]`)
	assert.Contains(t, out, "doublecircle")

	buf.Reset()
	require.NoError(t, ExportDOT(&buf, Minimize(Determinize(n))))
	assert.Contains(t, buf.String(), `[label="a"]`)
	assert.Contains(t, buf.String(), "_start -> q0")

	assert.Error(t, ExportDOT(&buf, "nope"))
}

func BenchmarkDeterminize(b *testing.B) {
	n := mustCompile(b, "([a-z]|[A-Z])([a-z]|[A-Z]|[0-9])*|[0-9]+")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Minimize(Determinize(n))
	}
}
