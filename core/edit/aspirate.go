package edit

import (
	"strings"

	"github.com/FocuswithJustin/loanspell/core/translit"
)

const aspirate = string(translit.Aspirate)

// FixInsertH isolates a prefixed aspirate at the start of the word. A
// word-initial edit whose variant has more vowel/consonant runs than the
// canonical side and begins with ϩ becomes the substitution without ϩ plus
// the insertion ∅→ϩ before everything else.
func FixInsertH(e Edit) []Edit {
	if !e.WordInitial() {
		return []Edit{e}
	}
	norm, vr := e.NormText(), e.VarText()
	if len(GroupCV(vr)) <= len(GroupCV(norm)) || !strings.HasPrefix(vr, aspirate) {
		return []Edit{e}
	}
	rest := strings.TrimPrefix(vr, aspirate)
	if rest == "" {
		return []Edit{e}
	}
	right := e.RightText()
	return []Edit{
		New(norm, rest, "", right),
		New("", aspirate, "", norm+right),
	}
}
