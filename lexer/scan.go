package lexer

import (
	"fmt"
	"unicode/utf8"
)

// Position locates a token in the input. Offset is in bytes; Line and
// Column count from zero, Column in characters.
type Position struct {
	Offset int
	Line   int
	Column int
}

type Token struct {
	Name   string
	Lexeme string
	Pos    Position

	rule int
}

// LexError is the single failure of a scan: no rule can match at Pos, or
// the input ended in the middle of a token.
type LexError struct {
	Pos Position
	EOF bool
}

func (e *LexError) Error() string {
	if e.EOF {
		return fmt.Sprintf("No viable alternative at character EOF, line %d", e.Pos.Line)
	}
	return fmt.Sprintf("No viable alternative at character %d, line %d", e.Pos.Column, e.Pos.Line)
}

// cursor tracks the start of the next token.
type cursor struct {
	Position
}

func (c *cursor) advance(s string) {
	for _, r := range s {
		if r == '\n' {
			c.Line++
			c.Column = 0
		} else {
			c.Column++
		}
	}
	c.Offset += len(s)
}

// Lex splits input into tokens. Each token is the longest prefix of the
// remaining input some rule matches; ties go to the earliest rule. Scanning
// stops at the first failure, returning the tokens committed before it
// together with a *LexError. Empty input yields no tokens.
func (l *Lexer) Lex(input string) ([]Token, error) {
	var tokens []Token
	var cur cursor
	sink := l.dfa.Sink()

	for cur.Offset < len(input) {
		state := l.dfa.Start
		lastEnd, lastRule := cur.Offset, -1
		stuck := -1 // offset of the character the run died on

		for i := cur.Offset; i < len(input); {
			c, size := utf8.DecodeRuneInString(input[i:])
			next, ok := l.dfa.Next(state, c)
			if !ok || next == sink {
				stuck = i
				break
			}
			state = next
			i += size
			if r := l.token[state]; r >= 0 {
				lastEnd, lastRule = i, r
			}
		}

		// A match must consume at least one character; otherwise the scan
		// would stall on the same offset forever.
		if lastRule < 0 || lastEnd == cur.Offset {
			if stuck < 0 {
				return tokens, &LexError{Pos: endOf(input), EOF: true}
			}
			return tokens, &LexError{Pos: locate(input, stuck)}
		}

		lexeme := input[cur.Offset:lastEnd]
		tokens = append(tokens, Token{
			Name:   l.rules[lastRule].Name,
			Lexeme: lexeme,
			Pos:    cur.Position,
			rule:   lastRule,
		})
		cur.advance(lexeme)
	}
	return tokens, nil
}

// locate reports where the character at offset sits. A newline character
// is reported at column 0 of the line it starts.
func locate(input string, offset int) Position {
	line, col := 0, -1
	for i, r := range input {
		if i > offset {
			break
		}
		if r == '\n' {
			line++
			col = -1
		}
		col++
	}
	return Position{Offset: offset, Line: line, Column: col}
}

func endOf(input string) Position {
	var c cursor
	c.advance(input)
	return c.Position
}
