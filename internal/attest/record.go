// Package attest loads attestations of Greek loanwords in Coptic texts and
// prepares them for spelling comparison.
//
// An attestation pairs a Greek lemma with one observed Coptic spelling and
// the metadata of the manuscript it was found in. Loaders read CSV or XML
// exports, optionally compressed, and Clean normalises the spelling and
// removes rows that cannot be compared.
package attest

import (
	"math"
	"strconv"
	"strings"
)

// maxDateRange is the widest earliest..latest span, in years, that still
// yields an approximate date.
const maxDateRange = 200

// Record is one attestation.
type Record struct {
	ID                 string
	Orthography        string
	OrthographyClean   string
	GreekLemmaOriginal string
	GreekLemma         string
	Dialect            string
	DialectGroup       string
	Earliest           *float64
	Latest             *float64
	DateApproximate    *float64
	Century            *int
	ManuscriptText     string
}

// dialectGroups are the dialect groups ordered north to south.
var dialectGroups = []string{"B", "F", "M", "S", "L", "A"}

var dialectGroupNames = map[string]string{
	"Akhmimic Dialects":        "A",
	"Lycopolitan Dialects":     "L",
	"Middle Egyptian Dialects": "M",
	"Sahidic Dialects":         "S",
	"Bohairic Dialects":        "B",
	"Fayyumic Dialects":        "F",
}

// DialectGroups returns the dialect group codes ordered north to south.
func DialectGroups() []string {
	return append([]string(nil), dialectGroups...)
}

// NormalizeDialectGroup maps a dialect group name to its one-letter code.
// Codes pass through unchanged; anything unrecognised becomes "".
func NormalizeDialectGroup(s string) string {
	s = strings.TrimSpace(s)
	if code, ok := dialectGroupNames[s]; ok {
		return code
	}
	for _, g := range dialectGroups {
		if s == g {
			return s
		}
	}
	return ""
}

// DialectRank returns the position of a group code in north-to-south order,
// or -1.
func DialectRank(group string) int {
	for i, g := range dialectGroups {
		if g == group {
			return i
		}
	}
	return -1
}

// ApproximateDate returns the midpoint of earliest and latest when both are
// known and at most 200 years apart.
func ApproximateDate(earliest, latest *float64) *float64 {
	if earliest == nil || latest == nil {
		return nil
	}
	if *latest-*earliest > maxDateRange {
		return nil
	}
	mid := (*earliest + *latest) / 2
	return &mid
}

// CenturyOf returns the century a year falls in, counting the years 0..99 as
// the first.
func CenturyOf(date *float64) *int {
	if date == nil {
		return nil
	}
	c := int(math.Floor(*date/100)) + 1
	return &c
}

// withDates fills DateApproximate and Century from Earliest and Latest.
func (r Record) withDates() Record {
	r.DateApproximate = ApproximateDate(r.Earliest, r.Latest)
	r.Century = CenturyOf(r.DateApproximate)
	return r
}

// FormatFloat renders an optional number the way it is written to output
// files: empty when unknown, without trailing zeros otherwise.
func FormatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// FormatInt renders an optional integer, empty when unknown.
func FormatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// parseYear parses an optional year field. Empty and NaN mean unknown.
func parseYear(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
