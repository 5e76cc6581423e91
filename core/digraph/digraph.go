// Package digraph hides vowel+glide digraphs from the aligner.
//
// A character aligner happily splits ⲟⲩ into ⲟ and ⲩ and pairs the halves with
// unrelated letters. Protect replaces each known digraph with one reserved
// private-use rune so that it is aligned as a single vowel; Unprotect restores
// the letters once the alignment is known.
package digraph

import "strings"

// digraphs lists the protected digraphs with their reserved runes.
// The private-use runes never occur in Coptic text.
var digraphs = [...]struct {
	letters string
	code    rune
}{
	{"ⲁⲓ", '\uE000'},
	{"ⲉⲓ", '\uE001'},
	{"ⲏⲓ", '\uE002'},
	{"ⲟⲓ", '\uE003'},
	{"ⲩⲓ", '\uE004'},
	{"ⲱⲓ", '\uE005'},
	{"ⲁⲩ", '\uE006'},
	{"ⲉⲩ", '\uE007'},
	{"ⲟⲩ", '\uE008'},
	{"ⲏⲩ", '\uE009'},
}

var protector, unprotector *strings.Replacer

func init() {
	var fwd, rev []string
	for _, d := range digraphs {
		fwd = append(fwd, d.letters, string(d.code))
		rev = append(rev, string(d.code), d.letters)
	}
	protector = strings.NewReplacer(fwd...)
	unprotector = strings.NewReplacer(rev...)
}

// Protect replaces every digraph in s with its reserved rune, scanning left
// to right so that ⲟⲩⲓ becomes ⲟⲩ+ⲓ rather than ⲟ+ⲩⲓ.
func Protect(s string) string {
	return protector.Replace(s)
}

// Unprotect restores the digraphs hidden by Protect. Text without reserved
// runes is returned unchanged.
func Unprotect(s string) string {
	return unprotector.Replace(s)
}

// IsReserved reports whether r is one of the reserved digraph runes.
func IsReserved(r rune) bool {
	return r >= '\uE000' && r <= '\uE009'
}

// Digraphs returns the protected digraphs in table order.
func Digraphs() []string {
	out := make([]string, len(digraphs))
	for i, d := range digraphs {
		out[i] = d.letters
	}
	return out
}
