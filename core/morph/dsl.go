package morph

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/loanspell/core/errors"
)

// A rule file holds one or more declarations such as
//
//	# Sahidic plural of -ⲟⲥ nouns
//	rule plural-ooue: norm = "ⲟⲥ" and var in {"ⲟⲟⲩⲉ", "ⲟⲟⲩ"} and right = "#"
//
// Conditions compare one field of the row (norm, var, left, right, lemma)
// against quoted strings. Fields keep their markers, so "∅" and "#" are
// valid values.
type ruleFile struct {
	Decls []*ruleDecl `@@*`
}

type ruleDecl struct {
	Pos        lexer.Position
	Name       string       `"rule" @Ident ":"`
	Conditions []*condition `@@ ( "and" @@ )*`
}

type condition struct {
	Pos   lexer.Position
	Field string `@( "norm" | "var" | "left" | "right" | "lemma" )`
	Op    string `@( "=" | "!=" | "in" | "endswith" | "startswith" )`
	Value value  `@@`
}

type value struct {
	Set    []string `  "{" @String ( "," @String )* "}"`
	Single *string  `| @String`
}

var ruleLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_-]*`},
	{Name: "Punct", Pattern: `!=|[=:{},]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var ruleParser = participle.MustBuild[ruleFile](
	participle.Lexer(ruleLexer),
	participle.Unquote("String"),
	participle.Elide("Whitespace", "Comment"),
)

// ParseRules compiles the rule declarations in src. filename is used in
// error messages only.
func ParseRules(filename, src string) ([]Rule, error) {
	file, err := ruleParser.ParseString(filename, src)
	if err != nil {
		line := 0
		msg := err.Error()
		var perr participle.Error
		if errors.As(err, &perr) {
			line = perr.Position().Line
			msg = perr.Message()
		}
		return nil, errors.NewParse("rules", filename, line, msg, err)
	}

	seen := make(map[string]bool)
	rules := make([]Rule, 0, len(file.Decls))
	for _, d := range file.Decls {
		if seen[d.Name] {
			return nil, errors.NewParse("rules", filename, d.Pos.Line, fmt.Sprintf("duplicate rule %q", d.Name), nil)
		}
		seen[d.Name] = true

		preds := make([]func(Row) bool, 0, len(d.Conditions))
		for _, c := range d.Conditions {
			p, err := c.compile()
			if err != nil {
				return nil, errors.NewParse("rules", filename, c.Pos.Line, err.Error(), nil)
			}
			preds = append(preds, p)
		}
		rules = append(rules, Rule{Name: d.Name, Match: allOf(preds)})
	}
	return rules, nil
}

// LoadRules reads and compiles a rule file.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	return ParseRules(path, string(data))
}

func allOf(preds []func(Row) bool) func(Row) bool {
	return func(r Row) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

func (c *condition) compile() (func(Row) bool, error) {
	get := fieldGetter(c.Field)

	if c.Op == "in" {
		if c.Value.Set == nil {
			return nil, fmt.Errorf("%s in: expected a set like {\"a\", \"b\"}", c.Field)
		}
		set := slices.Clone(c.Value.Set)
		return func(r Row) bool { return slices.Contains(set, get(r)) }, nil
	}

	if c.Value.Single == nil {
		return nil, fmt.Errorf("%s %s: expected a single quoted string", c.Field, c.Op)
	}
	want := *c.Value.Single
	switch c.Op {
	case "=":
		return func(r Row) bool { return get(r) == want }, nil
	case "!=":
		return func(r Row) bool { return get(r) != want }, nil
	case "endswith":
		return func(r Row) bool { return strings.HasSuffix(get(r), want) }, nil
	case "startswith":
		return func(r Row) bool { return strings.HasPrefix(get(r), want) }, nil
	}
	return nil, fmt.Errorf("unknown operator %q", c.Op)
}

func fieldGetter(field string) func(Row) string {
	switch field {
	case "norm":
		return func(r Row) string { return r.Norm }
	case "var":
		return func(r Row) string { return r.Var }
	case "left":
		return func(r Row) string { return r.Left }
	case "right":
		return func(r Row) string { return r.Right }
	default:
		return func(r Row) string { return r.Lemma }
	}
}
