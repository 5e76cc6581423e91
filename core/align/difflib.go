package align

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Difflib aligns with a Ratcliff/Obershelp sequence matcher: it repeatedly
// anchors on the longest common block and recurses on both sides. The
// automatic junk heuristic is disabled so frequent letters still anchor.
type Difflib struct{}

// Name implements Aligner.
func (Difflib) Name() string { return NameDifflib }

// Align implements Aligner.
func (Difflib) Align(a, b []rune) []OpCode {
	m := difflib.NewMatcherWithJunk(runeStrings(a), runeStrings(b), false, nil)
	codes := m.GetOpCodes()
	ops := make([]OpCode, 0, len(codes))
	for _, c := range codes {
		ops = append(ops, OpCode{Tag: Tag(c.Tag), I1: c.I1, I2: c.I2, J1: c.J1, J2: c.J2})
	}
	return ops
}

func runeStrings(rs []rune) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}
