package morph

import "github.com/FocuswithJustin/loanspell/core/edit"

// Names of the built-in rules.
const (
	RuleVerbalEnding    = "verbal-ending"
	RuleNominalEnding   = "nominal-ending"
	RuleArticleFusion   = "article-fusion"
	RuleLexical         = "lexical"
	RuleAdverbialEnding = "adverbial-ending"
	RuleNominaSacra     = "nomina-sacra"
)

// finalEndings maps a word-final canonical ending to the endings of other
// cases or numbers it alternates with.
var finalEndings = map[string][]string{
	"ⲟⲥ": {"ⲏ", "ⲁ", "ⲱⲛ", "ⲱ", "ⲉ", "ⲟⲩ"},
	"ⲟⲛ": {"ⲁ"},
	"ⲩⲥ": {"ⲏ"},
	"ⲥ":  {"ⲛ"},
	"ⲛ":  {"ⲥ"},
	"ⲏ":  {"ⲟⲟⲩⲉ"},
}

// indeclinables are lemmas whose final ⲥ, ⲛ or ⲟⲥ is not a case ending, so
// the nominal-ending rule never applies to them.
var indeclinables = map[string]bool{
	"ⲡⲣⲟⲥ":   true,
	"ⲭⲱⲣⲓⲥ":  true,
	"ⲡⲗⲏⲛ":   true,
	"ⲡⲁⲗⲓⲛ":  true,
	"ⲟⲩⲧⲱⲥ":  true,
	"ⲟⲩⲕⲟⲩⲛ": true,
	"ⲙⲉⲛ":    true,
	"ⲁⲙⲏⲛ":   true,
	"ⲙⲏⲡⲱⲥ":  true,
	"ⲕⲁⲗⲱⲥ":  true,
}

// lexicalAlternations lists Norm→Var pairs that are regular for one lemma.
var lexicalAlternations = map[string][][2]string{
	"ⲉⲗⲁⲭⲩⲥ":   {{"ⲩ", "ⲓ"}},
	"ⲓⲟⲩⲇⲁⲓⲟⲥ": {{"ⲟⲥ", edit.Null}},
	"ⲡⲣⲁⲥⲥⲱ":   {{"ⲥ", "ⲑ"}},
	"ϩⲟⲩⲧⲟⲥ":   {{"ϩ", "ⲧ"}},
	"ϩⲟ":       {{"ϩ", "ⲧ"}},
	"ϩⲏ":       {{"ϩ", "ⲧ"}},
}

// nominaSacra are lemmas routinely written abbreviated.
var nominaSacra = map[string]bool{
	"ⲡⲛⲉⲩⲙⲁ":       true,
	"ⲭⲣⲓⲥⲧⲟⲥ":      true,
	"ⲭⲣⲏⲥⲧⲟⲥ":      true,
	"ⲥⲧⲁⲩⲣⲟⲥ":      true,
	"ⲥⲧⲁⲩⲣⲟⲱ":      true,
	"ⲥⲱⲧⲏⲣ":        true,
	"ⲡⲛⲉⲩⲙⲁⲧⲓⲕⲟⲥ":  true,
	"ⲇⲉⲓⲛⲁ":        true,
	"ⲕⲩⲣⲓⲟⲥ":       true,
	"ⲡⲁⲛⲧⲟⲕⲣⲁⲧⲱⲣ":  true,
	"ⲁⲙⲏⲛ":         true,
}

func verbalEnding(r Row) bool {
	if r.Right == edit.Boundary && endsWithAny(r.Norm, "ⲱ", "ⲟⲙⲁⲓ", "ⲙⲓ") {
		return true
	}
	// ⲭⲟⲣⲉⲱ → ⲭⲟⲣⲉⲩⲉⲱ
	return r.Right == "ⲉⲱ" && r.Norm == edit.Null && r.Var == "ⲉⲩ"
}

func nominalEnding(r Row) bool {
	if indeclinables[r.Lemma] {
		return false
	}
	if r.Right == edit.Boundary {
		if oneOf(r.Norm, "ⲥ", "ⲛ") && oneOf(r.Var, "ⲛ", "ⲩ") && endsWithAny(r.Left, "ⲟ") {
			return true
		}
		if oneOf(r.Var, finalEndings[r.Norm]...) {
			return true
		}
	}
	// stem vowel of the other declension or of the genitive plural
	if oneOf(r.Right, "ⲥ", "ⲛ") && (r.Norm == "ⲟ" && r.Var == "ⲏ" || r.Norm == "ⲏ" && r.Var == "ⲟ") {
		return true
	}
	return r.Right == "ⲛ" && r.Norm == "ⲟ" && r.Var == "ⲱ"
}

func articleFusion(r Row) bool {
	if r.Left != edit.Boundary {
		return false
	}
	return r.Norm == "ϩ" && oneOf(r.Var, "ⲫ", "ⲑ") ||
		r.Norm == edit.Null && oneOf(r.Var, "ⲑ", "ⲧⲟⲥ")
}

func lexical(r Row) bool {
	for _, alt := range lexicalAlternations[r.Lemma] {
		if r.Norm == alt[0] && r.Var == alt[1] {
			return true
		}
	}
	return false
}

func adverbialEnding(r Row) bool {
	return r.Right == "ⲥ" && oneOf(r.Norm, "ⲟ", "ⲏ") && r.Var == "ⲱ"
}

func abbreviatedSacred(r Row) bool {
	return r.Var == edit.Null && nominaSacra[r.Lemma]
}

// Builtin returns the built-in rules in evaluation order.
func Builtin() []Rule {
	return []Rule{
		{Name: RuleVerbalEnding, Match: verbalEnding},
		{Name: RuleNominalEnding, Match: nominalEnding},
		{Name: RuleArticleFusion, Match: articleFusion},
		{Name: RuleLexical, Match: lexical},
		{Name: RuleAdverbialEnding, Match: adverbialEnding},
		{Name: RuleNominaSacra, Match: abbreviatedSacred},
	}
}
