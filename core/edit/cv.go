package edit

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/FocuswithJustin/loanspell/core/translit"
)

// Group is a maximal run of vowels or of non-vowels.
type Group struct {
	Vowel bool
	Text  string
}

// GroupCV splits s into alternating vowel and non-vowel runs. The Null marker
// is ignored.
func GroupCV(s string) []Group {
	s = strings.ReplaceAll(s, Null, "")
	var groups []Group
	start := 0
	for i, r := range s {
		v := translit.IsVowel(r)
		if i == 0 {
			groups = append(groups, Group{Vowel: v})
			continue
		}
		if last := &groups[len(groups)-1]; last.Vowel != v {
			last.Text = s[start:i]
			start = i
			groups = append(groups, Group{Vowel: v})
		}
	}
	if len(groups) > 0 {
		groups[len(groups)-1].Text = s[start:]
	}
	return groups
}

// Signature returns the vowel flags of groups, in order.
func Signature(groups []Group) []bool {
	sig := make([]bool, len(groups))
	for i, g := range groups {
		sig[i] = g.Vowel
	}
	return sig
}

func sameSignature(a, b []Group) bool {
	return slices.Equal(Signature(a), Signature(b))
}

// firstRune and lastRune return the first and last letters of s as strings.
// Callers guarantee s is not empty.
func firstRune(s string) string {
	_, n := utf8.DecodeRuneInString(s)
	return s[:n]
}

func lastRune(s string) string {
	_, n := utf8.DecodeLastRuneInString(s)
	return s[len(s)-n:]
}
