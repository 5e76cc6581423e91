// Package translit maps Ancient Greek words onto the Coptic letters a scribe
// would be expected to write for them.
//
// The result is a consonant/vowel skeleton: accents, length marks and other
// diacritics are discarded, while rough breathing becomes the aspirate ϩ and
// iota subscript becomes ⲓ. The output is the canonical form every attested
// spelling is compared against.
//
// All functions are pure and safe for concurrent use.
package translit

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	// RoughBreathing is the combining reversed comma (spiritus asper).
	RoughBreathing = '\u0314'
	// IotaSubscript is the combining ypogegrammeni.
	IotaSubscript = '\u0345'
	// Aspirate is the Coptic letter hori.
	Aspirate = 'ϩ'
)

// misplacedAspirate matches an aspirate that NFD ordering placed after the
// initial vowels (or rho) it belongs in front of.
var misplacedAspirate = regexp.MustCompile(`^([ⲣⲁⲉⲏⲓⲟⲱⲩ]+)ϩ`)

// Transliterate returns the Coptic skeleton of a Greek word.
//
// The input is decomposed to NFD so that precomposed and combining spellings
// of the same letter agree. Characters without a Coptic counterpart are
// dropped. Rough breathing is written by Unicode after the vowel it marks; it
// is moved to the front of the word, where it is pronounced.
func Transliterate(greek string) string {
	if greek == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(greek))

	for _, r := range norm.NFD.String(greek) {
		if c, ok := greekToCoptic[unicode.ToLower(r)]; ok {
			b.WriteRune(c)
		}
	}

	return misplacedAspirate.ReplaceAllString(b.String(), "ϩ$1")
}

// TranslateLetters replaces Greek letters that crept into Coptic text with
// their Coptic counterparts, rune for rune. Everything else is unchanged.
func TranslateLetters(s string) string {
	return strings.Map(func(r rune) rune {
		if c, ok := greekToCoptic[r]; ok {
			return c
		}
		return r
	}, s)
}

// IsVowel reports whether r is a Coptic vowel letter.
func IsVowel(r rune) bool {
	return vowels[r]
}

// IsConsonant reports whether r is a Coptic consonant letter.
func IsConsonant(r rune) bool {
	return consonants[r]
}
