// Package morph drops refined edits that are explained by Greek inflection or
// by scribal abbreviation rather than by spelling.
//
// A Filter holds an ordered list of named rules. A row is excluded as soon as
// one rule matches; Keep reports which one. The built-in rules cover verbal
// and nominal endings, article fusion, a few lexical alternations, adverbial
// endings and the abbreviated nomina sacra. Further rules can be loaded from
// a small text format with ParseRules.
package morph

import (
	"slices"
	"strings"

	"github.com/FocuswithJustin/loanspell/core/edit"
)

// Row is a refined edit together with the transliterated lemma of the
// attestation it came from. Fields keep their ∅ and # markers.
type Row struct {
	edit.Edit
	Lemma string
}

// Rule is a named exclusion predicate.
type Rule struct {
	Name  string
	Match func(Row) bool
}

func endsWithAny(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func oneOf(s string, set ...string) bool {
	return slices.Contains(set, s)
}
