package morph

import (
	"testing"

	"github.com/FocuswithJustin/loanspell/core/align"
	"github.com/FocuswithJustin/loanspell/core/edit"
)

func row(norm, variant, left, right, lemma string) Row {
	return Row{Edit: edit.New(norm, variant, left, right), Lemma: lemma}
}

func TestBuiltinRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  Row
		rule string
	}{
		{"verbal first person", row("ⲱ", "ⲟ", "ⲡⲓⲥⲧⲉⲩ", "", "ⲡⲓⲥⲧⲉⲩⲱ"), RuleVerbalEnding},
		{"verbal middle", row("ⲟⲙⲁⲓ", "ⲉ", "ⲁⲣⲛ", "", "ⲁⲣⲛⲟⲙⲁⲓ"), RuleVerbalEnding},
		{"verbal mi", row("ⲙⲓ", "", "ⲁⲫⲓⲏ", "", "ⲁⲫⲓⲏⲙⲓ"), RuleVerbalEnding},
		{"verbal infix", row("", "ⲉⲩ", "ⲭⲟⲣ", "ⲉⲱ", "ⲭⲟⲣⲉⲱ"), RuleVerbalEnding},
		{"nominal os to e", row("ⲟⲥ", "ⲏ", "ⲗⲟⲅ", "", "ⲗⲟⲅⲟⲥ"), RuleNominalEnding},
		{"nominal os to on", row("ⲟⲥ", "ⲱⲛ", "ⲗⲟⲅ", "", "ⲗⲟⲅⲟⲥ"), RuleNominalEnding},
		{"nominal accusative", row("ⲥ", "ⲛ", "ⲗⲟⲅⲟ", "", "ⲗⲟⲅⲟⲥ"), RuleNominalEnding},
		{"nominal after o", row("ⲛ", "ⲩ", "ⲇⲱⲣⲟ", "", "ⲇⲱⲣⲟⲛ"), RuleNominalEnding},
		{"nominal neuter plural", row("ⲟⲛ", "ⲁ", "ⲇⲱⲣ", "", "ⲇⲱⲣⲟⲛ"), RuleNominalEnding},
		{"nominal u-stem", row("ⲩⲥ", "ⲏ", "ⲉⲗⲁⲭ", "", "ⲉⲗⲁⲭⲩⲥ"), RuleNominalEnding},
		{"nominal sahidic plural", row("ⲏ", "ⲟⲟⲩⲉ", "ⲅⲣⲁⲫ", "", "ⲅⲣⲁⲫⲏ"), RuleNominalEnding},
		{"stem vowel before s", row("ⲟ", "ⲏ", "ⲗⲟⲅ", "ⲥ", "ⲗⲟⲅⲟⲥ"), RuleNominalEnding},
		{"stem vowel before n", row("ⲏ", "ⲟ", "ⲡⲟⲓⲙ", "ⲛ", "ⲡⲟⲓⲙⲏⲛ"), RuleNominalEnding},
		{"genitive plural", row("ⲟ", "ⲱ", "ⲇⲱⲣ", "ⲛ", "ⲇⲱⲣⲟⲛ"), RuleNominalEnding},
		{"article fusion aspirate", row("ϩ", "ⲫ", "", "ⲁⲙⲁⲣⲧⲓⲁ", "ϩⲁⲙⲁⲣⲧⲓⲁ"), RuleArticleFusion},
		{"article fusion insertion", row("", "ⲑ", "", "ⲩⲗⲏ", "ⲩⲗⲏ"), RuleArticleFusion},
		{"lexical", row("ⲩ", "ⲓ", "ⲉⲗⲁⲭ", "ⲥ", "ⲉⲗⲁⲭⲩⲥ"), RuleLexical},
		{"lexical deletion", row("ⲟⲥ", "", "ⲓⲟⲩⲇⲁⲓ", "", "ⲓⲟⲩⲇⲁⲓⲟⲥ"), RuleLexical},
		{"lexical aspirate", row("ϩ", "ⲧ", "", "ⲟⲩⲧⲟⲥ", "ϩⲟⲩⲧⲟⲥ"), RuleLexical},
		{"adverbial", row("ⲏ", "ⲱ", "ⲕⲁⲗ", "ⲥ", "ⲕⲁⲗⲏⲥ"), RuleAdverbialEnding},
		{"nomina sacra", row("ⲉⲩⲙ", "", "ⲡⲛ", "ⲁ", "ⲡⲛⲉⲩⲙⲁ"), RuleNominaSacra},
	}

	f := NewFilter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keep, rule := f.Keep(tt.row)
			if keep {
				t.Fatalf("Keep(%v) kept the row, want dropped by %s", tt.row.Edit, tt.rule)
			}
			if rule != tt.rule {
				t.Errorf("Keep(%v) rule = %s, want %s", tt.row.Edit, rule, tt.rule)
			}
		})
	}
}

func TestKeptRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  Row
	}{
		{"ordinary vowel change", row("ⲟ", "ⲱ", "ⲗ", "ⲅⲟⲥ", "ⲗⲟⲅⲟⲥ")},
		{"ending not word final", row("ⲟⲥ", "ⲏ", "ⲗⲟⲅ", "ⲓ", "ⲗⲟⲅⲟⲥⲓ")},
		{"verbal ending inside word", row("ⲱ", "ⲟ", "ⲡ", "ⲗⲟⲥ", "ⲡⲱⲗⲟⲥ")},
		{"aspirate change not word initial", row("ϩ", "ⲫ", "ⲁ", "ⲟⲥ", "ⲁϩⲟⲥ")},
		{"lexical pair on other lemma", row("ⲩ", "ⲓ", "ⲙ", "ⲥⲧⲏⲣⲓⲟⲛ", "ⲙⲩⲥⲧⲏⲣⲓⲟⲛ")},
		{"sacred lemma spelled out", row("ⲉⲩ", "ⲏ", "ⲡⲛ", "ⲙⲁ", "ⲡⲛⲉⲩⲙⲁ")},
		{"deletion on ordinary lemma", row("ⲉⲩⲙ", "", "ⲡⲛ", "ⲁ", "ⲡⲛⲉⲩⲙⲁⲧⲁ")},
		{"indeclinable", row("ⲥ", "ⲛ", "ⲭⲱⲣⲓ", "", "ⲭⲱⲣⲓⲥ")},
	}

	f := NewFilter()
	for _, tt := range tests {
		if keep, rule := f.Keep(tt.row); !keep {
			t.Errorf("%s: Keep(%v) dropped by %s", tt.name, tt.row.Edit, rule)
		}
	}
}

func TestNominalEndingScenario(t *testing.T) {
	t.Parallel()

	f := NewFilter()
	check := func(lemma, variant string, wantKept bool) {
		t.Helper()
		edits := edit.Diff(align.Difflib{}, lemma, variant)
		if len(edits) != 1 {
			t.Fatalf("Diff(%q, %q) = %v, want a single edit", lemma, variant, edits)
		}
		e := edits[0]
		if e.Norm != "ⲟⲥ" || e.Var != "ⲏ" || e.Right != edit.Boundary {
			t.Fatalf("Diff(%q, %q) = %v, want ⲟⲥ→ⲏ at the end of the word", lemma, variant, e)
		}
		got := f.Apply([]Row{{Edit: e, Lemma: lemma}})
		if kept := len(got) == 1; kept != wantKept {
			t.Errorf("%s: kept = %v, want %v", lemma, kept, wantKept)
		}
	}

	check("ⲗⲟⲅⲟⲥ", "ⲗⲟⲅⲏ", false)
	check("ⲡⲣⲟⲥ", "ⲡⲣⲏ", true)
}

func TestFilterOptions(t *testing.T) {
	t.Parallel()

	custom := Rule{Name: "no-eta", Match: func(r Row) bool { return r.Var == "ⲏ" }}
	r := row("ⲉ", "ⲏ", "ⲙ", "ⲅⲁⲥ", "ⲙⲉⲅⲁⲥ")

	if keep, _ := NewFilter().Keep(r); !keep {
		t.Fatal("built-in rules should keep the row")
	}
	if keep, rule := NewFilter(WithRules(custom)).Keep(r); keep || rule != "no-eta" {
		t.Errorf("custom rule: keep=%v rule=%q", keep, rule)
	}

	f := NewFilter(WithoutBuiltin(), WithRules(custom))
	if n := len(f.Rules()); n != 1 {
		t.Errorf("Rules() has %d entries, want 1", n)
	}
	if keep, _ := f.Keep(row("ⲟⲛ", "ⲁ", "ⲇⲱⲣ", "", "ⲇⲱⲣⲟⲛ")); !keep {
		t.Error("WithoutBuiltin should drop the nominal rule")
	}
}

func TestApplyKeepsOrder(t *testing.T) {
	t.Parallel()

	rows := []Row{
		row("ⲟ", "ⲱ", "ⲗ", "ⲅⲟⲥ", "ⲗⲟⲅⲟⲥ"),
		row("ⲟⲥ", "ⲏ", "ⲗⲟⲅ", "", "ⲗⲟⲅⲟⲥ"),
		row("ⲅ", "ⲕ", "ⲗⲟ", "ⲟⲥ", "ⲗⲟⲅⲟⲥ"),
	}
	got := NewFilter().Apply(rows)
	if len(got) != 2 || got[0] != rows[0] || got[1] != rows[2] {
		t.Errorf("Apply = %v", got)
	}
}
