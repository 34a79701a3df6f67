package regexlib

// item is one parser stack entry: a completed subexpression, or a pending
// '(' / '|' marker.
type item struct {
	node *Node
	mark tokenType
	pos  int
}

// parser keeps its whole state in the value, so independent parses never
// share anything.
type parser struct {
	tok   *tokenizer
	stack []item
}

// Parse turns a pattern into its AST. Concatenation is implicit, postfix
// operators bind to the preceding completed subexpression and '|' splits
// the innermost group. The whole pattern is treated as one enclosing group,
// so the empty pattern denotes the empty string, like "()".
func Parse(pattern string) (*Node, error) {
	p := &parser{tok: newTokenizer(pattern)}
	return p.parse()
}

// MustParse is like Parse but panics on error.
func MustParse(pattern string) *Node {
	n, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return n
}

func (p *parser) parse() (*Node, error) {
	for {
		t, err := p.tok.next()
		if err != nil {
			return nil, err
		}
		switch t.typ {
		case tEOF:
			return p.reduce(t.pos, true)
		case tChar:
			p.push(Sym(t.ch))
		case tClass:
			p.push(&Node{Type: t.class})
		case tLParen, tUnion:
			p.stack = append(p.stack, item{mark: t.typ, pos: t.pos})
		case tRParen:
			n, err := p.reduce(t.pos, false)
			if err != nil {
				return nil, err
			}
			p.push(n)
		case tStar, tPlus, tQMark:
			top := len(p.stack) - 1
			if top < 0 || p.stack[top].node == nil {
				return nil, p.tok.errorf(t.pos, "%v has nothing to repeat", t.typ)
			}
			operand := p.stack[top].node
			switch t.typ {
			case tStar:
				p.stack[top].node = Kleene(operand)
			case tPlus:
				p.stack[top].node = OneOrMore(operand)
			default:
				p.stack[top].node = Optional(operand)
			}
		}
	}
}

func (p *parser) push(n *Node) {
	p.stack = append(p.stack, item{node: n})
}

// reduce pops everything back to the innermost '(' (or the bottom of the
// stack for the implicit outer group) and folds it into a single node.
func (p *parser) reduce(pos int, outer bool) (*Node, error) {
	open := len(p.stack) - 1
	for open >= 0 && p.stack[open].mark != tLParen {
		open--
	}
	switch {
	case outer && open >= 0:
		return nil, p.tok.errorf(p.stack[open].pos, "missing closing )")
	case !outer && open < 0:
		return nil, p.tok.errorf(pos, "unmatched )")
	}

	segment := p.stack[open+1:]
	var (
		alts []*Node
		seq  []*Node
	)
	flush := func() {
		switch len(seq) {
		case 0:
			alts = append(alts, Empty())
		case 1:
			alts = append(alts, seq[0])
		default:
			alts = append(alts, Cat(seq...))
		}
		seq = nil
	}
	for _, it := range segment {
		if it.node == nil {
			flush()
			continue
		}
		seq = append(seq, it.node)
	}
	flush()

	if open < 0 {
		p.stack = p.stack[:0]
	} else {
		p.stack = p.stack[:open]
	}
	if len(alts) == 1 {
		return alts[0], nil
	}
	return Alt(alts...), nil
}
