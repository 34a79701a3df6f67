package regexlib

// frag is a Thompson fragment: one entry state and one accept state that
// has no outgoing edges yet.
type frag struct {
	start, accept State
}

// builder allocates every fragment of one compilation in a single NFA, so
// fragments built independently never share state ids.
type builder struct {
	nfa *NFA
}

// Thompson compiles an AST into an NFA with a single start state and a
// single accepting state.
func Thompson(root *Node) *NFA {
	b := &builder{nfa: NewNFA(0)}
	f := b.build(root)
	b.nfa.Start = f.start
	b.nfa.SetAccepting(f.accept, true)
	return b.nfa
}

// Compile parses a pattern and runs Thompson construction on it.
func Compile(pattern string) (*NFA, error) {
	ast, err := Parse(pattern)
	if err != nil {
		return nil, err
	}
	return Thompson(ast), nil
}

func (b *builder) pair() frag {
	return frag{start: b.nfa.AddState(), accept: b.nfa.AddState()}
}

func (b *builder) build(n *Node) frag {
	switch n.Type {
	case NodeEpsilon:
		f := b.pair()
		b.nfa.AddEpsilon(f.start, f.accept)
		return f
	case NodeSymbol:
		f := b.pair()
		b.nfa.AddEdge(f.start, n.Ch, f.accept)
		return f
	case NodeConcat:
		return b.concat(n.Sub)
	case NodeUnion:
		return b.union(n.Sub)
	case NodeStar:
		return b.star(n.Sub[0])
	case NodePlus:
		// a+ = a a*
		return b.concat([]*Node{n.Sub[0], Kleene(n.Sub[0])})
	case NodeQuestion:
		// a? = ε | a
		return b.union([]*Node{Empty(), n.Sub[0]})
	case NodeLower, NodeUpper, NodeDigit:
		return b.build(n.Desugar())
	}
	panic("regexlib: unknown node type")
}

func (b *builder) concat(sub []*Node) frag {
	first := b.build(sub[0])
	last := first
	for _, s := range sub[1:] {
		next := b.build(s)
		b.nfa.AddEpsilon(last.accept, next.start)
		last = next
	}
	return frag{start: first.start, accept: last.accept}
}

func (b *builder) union(sub []*Node) frag {
	start := b.nfa.AddState()
	parts := make([]frag, len(sub))
	for i, s := range sub {
		parts[i] = b.build(s)
	}
	accept := b.nfa.AddState()
	for _, p := range parts {
		b.nfa.AddEpsilon(start, p.start)
		b.nfa.AddEpsilon(p.accept, accept)
	}
	return frag{start: start, accept: accept}
}

func (b *builder) star(sub *Node) frag {
	start := b.nfa.AddState()
	inner := b.build(sub)
	accept := b.nfa.AddState()
	b.nfa.AddEpsilon(start, inner.start)
	b.nfa.AddEpsilon(start, accept)
	b.nfa.AddEpsilon(inner.accept, inner.start)
	b.nfa.AddEpsilon(inner.accept, accept)
	return frag{start: start, accept: accept}
}
