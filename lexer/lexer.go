// Package lexer compiles an ordered list of named patterns into a single
// DFA and splits input into tokens with longest-match-wins semantics.
// When several rules match the same longest prefix, the rule declared
// first wins.
//
// A Lexer is immutable once built and may be used from several goroutines.
package lexer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	plexer "github.com/alecthomas/participle/v2/lexer"

	"lexgen/regexlib"
)

// Rule names a token and gives the pattern it matches.
type Rule struct {
	Name    string
	Pattern string
}

// Lexer is a compiled rule list.
type Lexer struct {
	rules []Rule
	nfas  []*regexlib.NFA
	nfa   *regexlib.NFA
	dfa   *regexlib.DFA

	// token[s] is the index of the rule DFA state s accepts for, or -1.
	token []int

	symbols map[string]plexer.TokenType
	types   []plexer.TokenType
}

type config struct {
	minimize bool
	log      *slog.Logger
}

// Option configures New.
type Option func(*config)

// Minimize makes New minimize the DFA. States accepting for different
// rules are never merged, so tokenization is unchanged.
func Minimize() Option {
	return func(c *config) { c.minimize = true }
}

// WithLogger sets the logger used for construction diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) { c.log = log }
}

// New compiles rules. Earlier rules take priority over later ones. A
// malformed pattern yields an error wrapping *regexlib.PatternError.
func New(rules []Rule, opts ...Option) (*Lexer, error) {
	cfg := config{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(rules) == 0 {
		return nil, errors.New("lexer: no rules")
	}

	l := &Lexer{
		rules:   slices.Clone(rules),
		symbols: map[string]plexer.TokenType{"EOF": plexer.EOF},
	}
	for i, r := range l.rules {
		if r.Name == "" {
			return nil, fmt.Errorf("lexer: rule %d has no name", i)
		}
		n, err := regexlib.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("lexer: rule %s: %w", r.Name, err)
		}
		l.nfas = append(l.nfas, n)

		typ, ok := l.symbols[r.Name]
		if !ok {
			typ = plexer.EOF - plexer.TokenType(len(l.symbols))
			l.symbols[r.Name] = typ
		}
		l.types = append(l.types, typ)
	}

	var offsets []int
	l.nfa, offsets = regexlib.Merge(l.nfas...)
	owner := map[regexlib.State]int{}
	for i, n := range l.nfas {
		for _, s := range n.Accepting() {
			owner[s+regexlib.State(offsets[i])] = i
		}
	}

	l.dfa = regexlib.Determinize(l.nfa)
	l.token = make([]int, l.dfa.NumStates())
	for s := range l.token {
		l.token[s] = winner(l.dfa.Members(regexlib.State(s)), owner)
	}
	determinized := l.dfa.NumStates()

	if cfg.minimize {
		m, mapping := regexlib.MinimizeBy(l.dfa, func(s regexlib.State) int {
			return l.token[s] + 1
		})
		token := make([]int, m.NumStates())
		for old, s := range mapping {
			if s != regexlib.NoState {
				token[s] = l.token[old]
			}
		}
		l.dfa, l.token = m, token
	}

	cfg.log.Debug("compiled lexer",
		"rules", len(l.rules),
		"alphabet", len(l.dfa.Alphabet()),
		"nfaStates", l.nfa.NumStates(),
		"dfaStates", determinized,
		"minimized", cfg.minimize,
		"states", l.dfa.NumStates())
	return l, nil
}

// MustNew is like New but panics on error.
func MustNew(rules []Rule, opts ...Option) *Lexer {
	l, err := New(rules, opts...)
	if err != nil {
		panic(err)
	}
	return l
}

// winner returns the lowest rule index owning an accepting NFA state in
// members, or -1.
func winner(members []regexlib.State, owner map[regexlib.State]int) int {
	best := -1
	for _, m := range members {
		if i, ok := owner[m]; ok && (best < 0 || i < best) {
			best = i
		}
	}
	return best
}

// Rules returns a copy of the rule list.
func (l *Lexer) Rules() []Rule { return slices.Clone(l.rules) }

// NFA returns the merged automaton of all rules.
func (l *Lexer) NFA() *regexlib.NFA { return l.nfa }

// RuleNFA returns the Thompson automaton of rule i, before merging.
func (l *Lexer) RuleNFA(i int) *regexlib.NFA { return l.nfas[i] }

// DFA returns the automaton used for scanning.
func (l *Lexer) DFA() *regexlib.DFA { return l.dfa }
