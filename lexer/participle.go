package lexer

import (
	"errors"
	"io"
	"maps"

	plexer "github.com/alecthomas/participle/v2/lexer"
)

// Participle returns a participle lexer definition backed by l:
//
//	parser := participle.MustBuild[Expr](participle.Lexer(lex.Participle()), participle.Elide("WS"))
//
// Input is tokenized eagerly. Tokens before a failure are replayed and the
// failure is returned as a *participle/lexer.Error at its position.
func (l *Lexer) Participle() plexer.Definition { return definition{l} }

type definition struct {
	l *Lexer
}

var (
	_ plexer.StringDefinition = definition{}
	_ plexer.BytesDefinition  = definition{}
)

// Symbols maps rule names to token types. Rules sharing a name share a
// type.
func (d definition) Symbols() map[string]plexer.TokenType { return maps.Clone(d.l.symbols) }

func (d definition) Lex(filename string, r io.Reader) (plexer.Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return d.LexString(filename, string(data))
}

func (d definition) LexBytes(filename string, input []byte) (plexer.Lexer, error) {
	return d.LexString(filename, string(input))
}

func (d definition) LexString(filename string, input string) (plexer.Lexer, error) {
	l := d.l
	tokens, err := l.Lex(input)
	s := &tokenStream{
		tokens: make([]plexer.Token, 0, len(tokens)),
		eof:    participlePos(filename, endOf(input)),
	}
	for _, t := range tokens {
		s.tokens = append(s.tokens, plexer.Token{
			Type:  l.types[t.rule],
			Value: t.Lexeme,
			Pos:   participlePos(filename, t.Pos),
		})
	}
	var lerr *LexError
	if errors.As(err, &lerr) {
		s.err = &plexer.Error{Msg: lerr.Error(), Pos: participlePos(filename, lerr.Pos)}
	}
	return s, nil
}

// participlePos converts to participle's 1-based lines and columns.
func participlePos(filename string, p Position) plexer.Position {
	return plexer.Position{
		Filename: filename,
		Offset:   p.Offset,
		Line:     p.Line + 1,
		Column:   p.Column + 1,
	}
}

type tokenStream struct {
	tokens []plexer.Token
	err    error
	eof    plexer.Position
}

func (s *tokenStream) Next() (plexer.Token, error) {
	if len(s.tokens) > 0 {
		t := s.tokens[0]
		s.tokens = s.tokens[1:]
		return t, nil
	}
	if s.err != nil {
		return plexer.Token{}, s.err
	}
	return plexer.Token{Type: plexer.EOF, Pos: s.eof}, nil
}
