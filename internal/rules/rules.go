// Package rules reads ordered lexer rule lists from files.
//
// The text format has one rule per line, earlier lines taking priority:
//
//	# comment
//	KW  = if|else
//	ID  = [a-z]+
//	WS  = \ +
//
// Whitespace around the pattern is dropped, so a pattern that starts or
// ends with a space must escape it. A pattern cannot span lines, and `\n`
// is the letter n like any other escape, so rules matching newlines or
// carriage returns belong in a TOML or YAML file, where the string syntax
// can carry them. Those files hold the same list under a "rules" key, each
// entry with a name and a pattern.
package rules

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/participle/v2"
	plexer "github.com/alecthomas/participle/v2/lexer"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"lexgen/lexer"
)

var textLexer = plexer.MustStateful(plexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "EOL", Pattern: `[\r\n]+`},
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Assign", Pattern: `=`, Action: plexer.Push("Rest")},
	},
	"Rest": {
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "Pattern", Pattern: `(?:\\.|[^\\\r\n])+`, Action: plexer.Pop()},
	},
})

type textFile struct {
	Rules []*textRule `@@*`
}

type textRule struct {
	Name    string `@Ident "="`
	Pattern string `@Pattern`
}

var textParser = participle.MustBuild[textFile](
	participle.Lexer(textLexer),
	participle.Elide("Comment", "EOL", "Whitespace"),
)

// ParseText reads the line-oriented rule format. filename is used in error
// messages only.
func ParseText(filename, src string) ([]lexer.Rule, error) {
	f, err := textParser.ParseString(filename, src)
	if err != nil {
		return nil, err
	}
	out := make([]lexer.Rule, 0, len(f.Rules))
	for _, r := range f.Rules {
		out = append(out, lexer.Rule{Name: r.Name, Pattern: trimPattern(r.Pattern)})
	}
	return out, nil
}

// trimPattern drops trailing blanks that are not escaped.
func trimPattern(p string) string {
	for len(p) > 0 {
		last := p[len(p)-1]
		if last != ' ' && last != '\t' {
			break
		}
		if escaped(p, len(p)-1) {
			break
		}
		p = p[:len(p)-1]
	}
	return p
}

// escaped reports whether the byte at i is preceded by an odd number of
// backslashes.
func escaped(p string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && p[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

type entry struct {
	Name    string `toml:"name" yaml:"name"`
	Pattern string `toml:"pattern" yaml:"pattern"`
}

type document struct {
	Rules []entry `toml:"rules" yaml:"rules"`
}

func (d document) rules() ([]lexer.Rule, error) {
	out := make([]lexer.Rule, 0, len(d.Rules))
	for i, e := range d.Rules {
		if e.Name == "" || e.Pattern == "" {
			return nil, fmt.Errorf("rule %d: name and pattern are required", i)
		}
		out = append(out, lexer.Rule{Name: e.Name, Pattern: e.Pattern})
	}
	return out, nil
}

// ParseTOML reads rules from a TOML document:
//
//	[[rules]]
//	name = "KW"
//	pattern = "if"
func ParseTOML(data []byte) ([]lexer.Rule, error) {
	var doc document
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("toml: %w", err)
	}
	return doc.rules()
}

// ParseYAML reads rules from a YAML document:
//
//	rules:
//	  - name: KW
//	    pattern: if
func ParseYAML(data []byte) ([]lexer.Rule, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return doc.rules()
}

// Load reads a rule file, choosing the format from its extension: .toml,
// .yaml/.yml, anything else is the text format.
func Load(path string) ([]lexer.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rules []lexer.Rule
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		rules, err = ParseTOML(data)
	case ".yaml", ".yml":
		rules, err = ParseYAML(data)
	default:
		rules, err = ParseText(path, string(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("%s: no rules", path)
	}
	return rules, nil
}
