package morph

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FocuswithJustin/loanspell/core/errors"
)

const sampleRules = `
# Sahidic plural of -ⲟⲥ nouns
rule plural-ooue: norm = "ⲟⲥ" and var in {"ⲟⲟⲩⲉ", "ⲟⲟⲩ"} and right = "#"

rule theta-prefix: left = "#" and var startswith "ⲑ" # article
rule not-eta: var != "ⲏ" and lemma endswith "ⲓⲁ"
`

func TestParseRules(t *testing.T) {
	t.Parallel()

	rules, err := ParseRules("sample.rules", sampleRules)
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	if len(rules) != 3 {
		t.Fatalf("got %d rules, want 3", len(rules))
	}

	tests := []struct {
		rule string
		row  Row
		want bool
	}{
		{"plural-ooue", row("ⲟⲥ", "ⲟⲟⲩⲉ", "ⲗⲟⲅ", "", "ⲗⲟⲅⲟⲥ"), true},
		{"plural-ooue", row("ⲟⲥ", "ⲟⲟⲩ", "ⲗⲟⲅ", "", "ⲗⲟⲅⲟⲥ"), true},
		{"plural-ooue", row("ⲟⲥ", "ⲟⲟⲩⲉ", "ⲗⲟⲅ", "ⲓ", "ⲗⲟⲅⲟⲥⲓ"), false},
		{"plural-ooue", row("ⲟⲥ", "ⲏ", "ⲗⲟⲅ", "", "ⲗⲟⲅⲟⲥ"), false},
		{"theta-prefix", row("", "ⲑⲉ", "", "ⲗⲟⲅⲟⲥ", "ⲗⲟⲅⲟⲥ"), true},
		{"theta-prefix", row("", "ⲑⲉ", "ⲗ", "ⲟⲅⲟⲥ", "ⲗⲟⲅⲟⲥ"), false},
		{"not-eta", row("ⲉ", "ⲓ", "ⲉⲕⲕⲗⲏⲥ", "ⲁ", "ⲉⲕⲕⲗⲏⲥⲓⲁ"), true},
		{"not-eta", row("ⲉ", "ⲏ", "ⲉⲕⲕⲗⲏⲥ", "ⲁ", "ⲉⲕⲕⲗⲏⲥⲓⲁ"), false},
	}

	byName := make(map[string]Rule)
	for _, r := range rules {
		byName[r.Name] = r
	}
	for _, tt := range tests {
		r, ok := byName[tt.rule]
		if !ok {
			t.Fatalf("rule %q not parsed", tt.rule)
		}
		if got := r.Match(tt.row); got != tt.want {
			t.Errorf("%s.Match(%v) = %v, want %v", tt.rule, tt.row.Edit, got, tt.want)
		}
	}
}

func TestParseRulesEmpty(t *testing.T) {
	t.Parallel()

	rules, err := ParseRules("empty.rules", "# nothing here\n")
	if err != nil {
		t.Fatalf("ParseRules: %v", err)
	}
	if len(rules) != 0 {
		t.Errorf("got %d rules, want 0", len(rules))
	}
}

func TestParseRulesErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		wantLine int
		wantMsg  string
	}{
		{"unknown field", "rule a: stem = \"ⲟ\"", 1, ""},
		{"missing value", "rule a: norm =", 1, ""},
		{"set with equals", "rule a: norm = {\"ⲟ\"}", 1, "single quoted string"},
		{"in without set", "\n\nrule a: norm in \"ⲟ\"", 3, "expected a set"},
		{"duplicate", "rule a: norm = \"ⲟ\"\nrule a: var = \"ⲱ\"", 2, "duplicate rule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseRules("bad.rules", tt.src)
			if err == nil {
				t.Fatal("expected an error")
			}
			var perr *errors.ParseError
			if !stderrors.As(err, &perr) {
				t.Fatalf("error %T is not a ParseError: %v", err, err)
			}
			if perr.Path != "bad.rules" {
				t.Errorf("Path = %q", perr.Path)
			}
			if perr.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", perr.Line, tt.wantLine)
			}
			if tt.wantMsg != "" && !strings.Contains(perr.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want it to mention %q", perr.Message, tt.wantMsg)
			}
		})
	}
}

func TestLoadRules(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "extra.rules")
	if err := os.WriteFile(path, []byte(sampleRules), 0o600); err != nil {
		t.Fatal(err)
	}
	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}

	f := NewFilter(WithRules(rules...))
	if keep, rule := f.Keep(row("ⲟⲥ", "ⲟⲟⲩⲉ", "ⲗⲟⲅ", "ⲓ", "ⲗⲟⲅⲟⲥⲓ")); !keep {
		t.Errorf("unexpected drop by %s", rule)
	}
	if keep, rule := f.Keep(row("", "ⲑⲉ", "", "ⲗⲟⲅⲟⲥ", "ⲗⲟⲅⲟⲥ")); keep || rule != "theta-prefix" {
		t.Errorf("keep=%v rule=%q, want dropped by theta-prefix", keep, rule)
	}

	if _, err := LoadRules(filepath.Join(t.TempDir(), "missing.rules")); err == nil {
		t.Error("expected an error for a missing file")
	} else if !stderrors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v does not wrap os.ErrNotExist", err)
	}
}
