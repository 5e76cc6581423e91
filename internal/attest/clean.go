package attest

import (
	"regexp"
	"strings"

	"github.com/FocuswithJustin/loanspell/core/translit"
)

// Reasons a row is dropped by Clean.
const (
	DropMissingOrthography = "missing-orthography"
	DropMissingLemma       = "missing-lemma"
	DropSic                = "sic"
	DropAbbreviation       = "abbreviation"
	DropEditorialMark      = "editorial-mark"
)

// abbreviationSuffixes mark a spelling the editor abbreviated.
var abbreviationSuffixes = []string{"/", "/̅", "/°"}

// editorialMarks are digits, lacunae, numerals and abbreviation signs.
var editorialMarks = regexp.MustCompile(`\p{Nd}|[\x{2026}.\x{2CC7}\x{2044}?\x{2CC1}\x{2CE8}\x{2CC0}\x{2CE7}\x{2C8B}\x{2CE6}\x{2CE5}\x{2CFD}]`)

var (
	overlines    = regexp.MustCompile(`[\x{0305}\x{0304}\x{FE24}\x{FE25}\x{FE26}\x{2CF1}\x{2CF0}\x{0300}]+`)
	nuStroke     = regexp.MustCompile(`[\x{2CBB}\x{2CEF}]`)
	zetaVariants = regexp.MustCompile(`[\x{2CC5}\x{2CB9}]`)

	// strippedMarks are combining marks, column breaks, deleted passages
	// and editorial punctuation.
	strippedMarks = regexp.MustCompile(
		`[\x{001D}\x{0314}\x{200E}\x{0486}\x{02BE}\x{2CFF}\x{0307}\x{0308}\x{0301}\x{0323}\x{0304}\x{1DCD}\x{0302}\x{0306}]` +
			`|col\.b|/|\x{27E6}.*?\x{27E7}|\\|\[|\]` +
			`|[\x{2016}|\x{1FFD}\x{2E24}\x{2E25}\x{2E22}\x{2E23}\x{2045}\x{2046}\x{2E16}'\x{2039}\x{203A}\x{1FEF}\x{2019}\x{60}\x{00B4}:\x{2E0C}\x{2E0D}\x{2E33}\x{2027}\x{0387}\x{2022}\x{00B7}\x{02BE}*]`)
)

// Clean normalises the orthography of r and derives its dialect group and
// dates. It returns a non-empty reason when the row cannot be compared and
// should be dropped.
func Clean(r Record) (Record, string) {
	r.DialectGroup = NormalizeDialectGroup(r.DialectGroup)
	r = r.withDates()

	if reason := dropReason(r); reason != "" {
		return r, reason
	}
	r.OrthographyClean = NormalizeOrthography(r.Orthography)
	return r, ""
}

func dropReason(r Record) string {
	switch {
	case strings.TrimSpace(r.Orthography) == "":
		return DropMissingOrthography
	case strings.TrimSpace(r.GreekLemmaOriginal) == "":
		return DropMissingLemma
	case strings.Contains(r.Orthography, "sic"):
		return DropSic
	}
	for _, suffix := range abbreviationSuffixes {
		if strings.HasSuffix(r.Orthography, suffix) {
			return DropAbbreviation
		}
	}
	if editorialMarks.MatchString(r.Orthography) {
		return DropEditorialMark
	}
	return ""
}

// NormalizeOrthography reduces an edited Coptic spelling to plain lowercase
// Coptic letters.
func NormalizeOrthography(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = translit.TranslateLetters(s)
	s = strings.ReplaceAll(s, "ϊ", "ⲓ")
	s = overlines.ReplaceAllString(s, "")
	s = nuStroke.ReplaceAllString(s, "ⲛ")
	s = zetaVariants.ReplaceAllString(s, "ⲍ")
	s = strippedMarks.ReplaceAllString(s, "")
	// Latin o last so "col.b" is still recognisable above.
	return strings.ReplaceAll(s, "o", "ⲟ")
}
