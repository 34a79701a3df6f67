package regexlib

import "strings"

// NodeType tags the variant of a regex AST node. The set is closed; every
// switch over it in this package handles all values.
type NodeType int

const (
	NodeEpsilon NodeType = iota // ε
	NodeSymbol
	NodeConcat
	NodeUnion
	NodeStar
	NodePlus
	NodeQuestion
	NodeLower // [a-z]
	NodeUpper // [A-Z]
	NodeDigit // [0-9]
)

// Node is an immutable regex AST node. Ch is set for NodeSymbol only, Sub
// holds the operands of Concat/Union (one or more) and Star/Plus/Question
// (exactly one).
type Node struct {
	Type NodeType
	Ch   rune
	Sub  []*Node
}

func Sym(r rune) *Node { return &Node{Type: NodeSymbol, Ch: r} }

func Empty() *Node { return &Node{Type: NodeEpsilon} }

func Cat(sub ...*Node) *Node { return &Node{Type: NodeConcat, Sub: sub} }

func Alt(sub ...*Node) *Node { return &Node{Type: NodeUnion, Sub: sub} }

func Kleene(n *Node) *Node { return &Node{Type: NodeStar, Sub: []*Node{n}} }

func OneOrMore(n *Node) *Node { return &Node{Type: NodePlus, Sub: []*Node{n}} }

func Optional(n *Node) *Node { return &Node{Type: NodeQuestion, Sub: []*Node{n}} }

func ClassLower() *Node { return &Node{Type: NodeLower} }

func ClassUpper() *Node { return &Node{Type: NodeUpper} }

func ClassDigit() *Node { return &Node{Type: NodeDigit} }

// classMembers lists the characters a shorthand class stands for.
func classMembers(t NodeType) string {
	switch t {
	case NodeLower:
		return "abcdefghijklmnopqrstuvwxyz"
	case NodeUpper:
		return "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	case NodeDigit:
		return "0123456789"
	}
	return ""
}

// Desugar returns the Union of Symbols a shorthand class stands for. Any
// other node is returned unchanged.
func (n *Node) Desugar() *Node {
	chars := classMembers(n.Type)
	if chars == "" {
		return n
	}
	sub := make([]*Node, 0, len(chars))
	for _, r := range chars {
		sub = append(sub, Sym(r))
	}
	return Alt(sub...)
}

// Equal reports whether two trees are structurally identical.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Type != o.Type || n.Ch != o.Ch || len(n.Sub) != len(o.Sub) {
		return false
	}
	for i := range n.Sub {
		if !n.Sub[i].Equal(o.Sub[i]) {
			return false
		}
	}
	return true
}

func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	list := func(name string) {
		b.WriteString(name)
		b.WriteByte('(')
		for i, s := range n.Sub {
			if i > 0 {
				b.WriteByte(',')
			}
			s.write(b)
		}
		b.WriteByte(')')
	}
	switch n.Type {
	case NodeEpsilon:
		b.WriteString("ε")
	case NodeSymbol:
		b.WriteRune(n.Ch)
	case NodeConcat:
		list("Concat")
	case NodeUnion:
		list("Union")
	case NodeStar:
		list("Star")
	case NodePlus:
		list("Plus")
	case NodeQuestion:
		list("Question")
	case NodeLower:
		b.WriteString("[a-z]")
	case NodeUpper:
		b.WriteString("[A-Z]")
	case NodeDigit:
		b.WriteString("[0-9]")
	}
}
