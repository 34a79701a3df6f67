package regexlib

import (
	"fmt"
	"io"
	"strconv"
)

// ExportDOT writes a Graphviz rendering of an *NFA or *DFA to w. The DFA
// sink is left out to keep graphs readable.
func ExportDOT(w io.Writer, g any) error {
	ew := &errWriter{w: w}
	ew.printf("digraph G {\n")
	ew.printf("    rankdir=LR;\n")

	switch t := g.(type) {
	case *DFA:
		for s := range t.delta {
			st := State(s)
			if st == t.sink {
				continue
			}
			ew.printf("    q%d [shape=%s];\n", s, shape(t.accept[s]))
			for i, to := range t.delta[s] {
				if to == NoState || to == t.sink {
					continue
				}
				ew.printf("    q%d -> q%d [label=%s];\n", s, to, quoteLabel(string(t.alpha[i])))
			}
		}
		ew.printf("    _start [shape=point]; _start -> q%d;\n", t.Start)

	case *NFA:
		for s := range t.edges {
			ew.printf("    n%d [shape=%s];\n", s, shape(t.accept[s]))
			for _, e := range t.edges[s] {
				label := "ε"
				if !e.On.Eps {
					label = string(e.On.Char)
				}
				ew.printf("    n%d -> n%d [label=%s];\n", s, e.To, quoteLabel(label))
			}
		}
		ew.printf("    _start [shape=point]; _start -> n%d;\n", t.Start)

	default:
		return fmt.Errorf("regexlib: cannot export %T", g)
	}

	ew.printf("}\n")
	return ew.err
}

func shape(accepting bool) string {
	if accepting {
		return "doublecircle"
	}
	return "circle"
}

func quoteLabel(s string) string { return strconv.Quote(s) }

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
