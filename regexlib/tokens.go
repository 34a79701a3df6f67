package regexlib

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type tokenType int

const (
	tEOF     tokenType = iota
	tChar              // literal rune, escaped or not
	tLParen            // (
	tRParen            // )
	tStar              // *
	tPlus              // +
	tQMark             // ?
	tUnion             // |
	tClass             // [a-z], [A-Z] or [0-9]
)

func (t tokenType) String() string {
	switch t {
	case tEOF:
		return "end of pattern"
	case tChar:
		return "character"
	case tLParen:
		return "'('"
	case tRParen:
		return "')'"
	case tStar:
		return "'*'"
	case tPlus:
		return "'+'"
	case tQMark:
		return "'?'"
	case tUnion:
		return "'|'"
	case tClass:
		return "character class"
	}
	return fmt.Sprintf("token(%d)", int(t))
}

type token struct {
	typ   tokenType
	ch    rune     // for tChar
	class NodeType // for tClass
	pos   int      // byte offset of the token in the pattern
}

// PatternError reports a malformed pattern. Pos is the byte offset at which
// the problem was detected.
type PatternError struct {
	Pattern string
	Pos     int
	Msg     string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q at offset %d: %s", e.Pattern, e.Pos, e.Msg)
}

// tokenizer splits a pattern into tokens, resolving escapes and the three
// shorthand classes so the parser only sees atoms and operators.
type tokenizer struct {
	input string
	pos   int
}

func newTokenizer(s string) *tokenizer { return &tokenizer{input: s} }

func (l *tokenizer) errorf(pos int, format string, args ...any) error {
	return &PatternError{Pattern: l.input, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (l *tokenizer) next() (token, error) {
	start := l.pos
	if l.pos >= len(l.input) {
		return token{typ: tEOF, pos: start}, nil
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	switch r {
	case '(':
		return token{typ: tLParen, pos: start}, nil
	case ')':
		return token{typ: tRParen, pos: start}, nil
	case '*':
		return token{typ: tStar, pos: start}, nil
	case '+':
		return token{typ: tPlus, pos: start}, nil
	case '?':
		return token{typ: tQMark, pos: start}, nil
	case '|':
		return token{typ: tUnion, pos: start}, nil
	case '[':
		return l.class(start)
	case '\\':
		if l.pos >= len(l.input) {
			return token{}, l.errorf(start, "unterminated escape")
		}
		r2, s2 := utf8.DecodeRuneInString(l.input[l.pos:])
		l.pos += s2
		return token{typ: tChar, ch: r2, pos: start}, nil
	default:
		return token{typ: tChar, ch: r, pos: start}, nil
	}
}

// class consumes the body of a bracket expression. Only the literal forms
// a-z, A-Z and 0-9 are accepted.
func (l *tokenizer) class(start int) (token, error) {
	rest := l.input[l.pos:]
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return token{}, l.errorf(start, "unterminated character class")
	}
	var typ NodeType
	switch rest[:end] {
	case "a-z":
		typ = NodeLower
	case "A-Z":
		typ = NodeUpper
	case "0-9":
		typ = NodeDigit
	default:
		return token{}, l.errorf(start, "invalid character class %q", "["+rest[:end+1])
	}
	l.pos += end + 1
	return token{typ: tClass, class: typ, pos: start}, nil
}
