package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"lexgen/internal/rules"
	"lexgen/lexer"
	"lexgen/regexlib"
)

type tokenizeCmd struct {
	Rules    string `short:"r" required:"" type:"existingfile" help:"Rule file (.lex, .toml, .yaml)"`
	Minimize bool   `help:"Minimize the DFA before scanning"`
	Input    string `arg:"" optional:"" default:"-" help:"Input file, - for stdin"`
}

func (c *tokenizeCmd) Run(a *app) error {
	var opts []lexer.Option
	if c.Minimize {
		opts = append(opts, lexer.Minimize())
	}
	l, err := buildLexer(a, c.Rules, opts...)
	if err != nil {
		return err
	}
	input, err := readInput(a, c.Input)
	if err != nil {
		return err
	}

	tokens, err := l.Lex(string(input))
	for _, t := range tokens {
		a.printf("%s\t%s\n", a.style(t.Name, "4"), strconv.Quote(t.Lexeme))
	}
	var lerr *lexer.LexError
	if errors.As(err, &lerr) {
		a.log.Debug("scan failed", "offset", lerr.Pos.Offset, "tokens", len(tokens))
	}
	return err
}

type dotCmd struct {
	Rules  string `short:"r" required:"" type:"existingfile" help:"Rule file (.lex, .toml, .yaml)"`
	Graph  string `enum:"nfa,dfa,min" default:"min" help:"Automaton to draw (${enum})"`
	Output string `short:"o" default:"-" help:"Output file, - for stdout"`
}

func (c *dotCmd) Run(a *app) error {
	var opts []lexer.Option
	if c.Graph == "min" {
		opts = append(opts, lexer.Minimize())
	}
	l, err := buildLexer(a, c.Rules, opts...)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	var g any = l.DFA()
	if c.Graph == "nfa" {
		g = l.NFA()
	}
	if err := regexlib.ExportDOT(&buf, g); err != nil {
		return err
	}

	if c.Output == "-" {
		_, err := io.Copy(a.stdout, &buf)
		return err
	}
	if err := os.WriteFile(c.Output, buf.Bytes(), 0o644); err != nil {
		return err
	}
	a.log.Info("wrote graph", "file", c.Output, "graph", c.Graph)
	return nil
}

type matchCmd struct {
	Pattern string   `arg:"" help:"Pattern"`
	Words   []string `arg:"" help:"Words to test"`
}

func (c *matchCmd) Run(a *app) error {
	d, err := compileMinimal(c.Pattern)
	if err != nil {
		return err
	}
	a.log.Debug("compiled pattern", "pattern", c.Pattern, "states", d.NumStates())
	for _, w := range c.Words {
		if d.Accept(w) {
			a.printf("%s\t%s\n", strconv.Quote(w), a.style("accept", "2"))
		} else {
			a.printf("%s\t%s\n", strconv.Quote(w), a.style("reject", "1"))
		}
	}
	return nil
}

type equivCmd struct {
	Left  string `arg:"" help:"First pattern"`
	Right string `arg:"" help:"Second pattern"`
}

func (c *equivCmd) Run(a *app) error {
	x, err := compileMinimal(c.Left)
	if err != nil {
		return err
	}
	y, err := compileMinimal(c.Right)
	if err != nil {
		return err
	}
	if regexlib.Equivalent(x, y) {
		a.printf("%s\n", a.style("equivalent", "2"))
	} else {
		a.printf("%s\n", a.style("not equivalent", "1"))
	}
	return nil
}

func buildLexer(a *app, path string, opts ...lexer.Option) (*lexer.Lexer, error) {
	rs, err := rules.Load(path)
	if err != nil {
		return nil, err
	}
	a.log.Debug("loaded rules", "file", path, "count", len(rs))
	return lexer.New(rs, append(opts, lexer.WithLogger(a.log))...)
}

func compileMinimal(pattern string) (*regexlib.DFA, error) {
	n, err := regexlib.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return regexlib.Minimize(regexlib.Determinize(n)), nil
}

func readInput(a *app, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(a.stdin)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}
