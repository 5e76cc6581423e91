package edit

import "strings"

// FixGemination reinterprets insertions that double a neighbouring letter.
//
// The aligner reports ⲗ→ⲗⲗ as an insertion of ⲗ next to an unchanged ⲗ. When
// the inserted text repeats the end of the left context or the start of the
// right context, the edit becomes X→XX over that copy. When only the first or
// last inserted letter repeats its neighbour, that letter is split off as its
// own X→XX edit and the remainder stays a plain substitution.
func FixGemination(e Edit) []Edit {
	norm, vr := e.NormText(), e.VarText()
	left, right := e.LeftText(), e.RightText()

	if vr == "" || sameSignature(GroupCV(norm), GroupCV(vr)) {
		return []Edit{e}
	}

	if norm == "" {
		switch {
		case strings.HasSuffix(left, vr):
			return []Edit{New(vr, vr+vr, strings.TrimSuffix(left, vr), right)}
		case strings.HasPrefix(right, vr):
			return []Edit{New(vr, vr+vr, left, strings.TrimPrefix(right, vr))}
		}
		return []Edit{e}
	}

	if g := firstRune(vr); strings.HasSuffix(left, g) {
		return []Edit{
			New(norm, strings.TrimPrefix(vr, g), left, right),
			New(g, g+g, strings.TrimSuffix(left, g), norm+right),
		}
	}
	if g := lastRune(vr); strings.HasPrefix(right, g) {
		return []Edit{
			New(norm, strings.TrimSuffix(vr, g), left, right),
			New(g, g+g, left+norm, strings.TrimPrefix(right, g)),
		}
	}
	return []Edit{e}
}
