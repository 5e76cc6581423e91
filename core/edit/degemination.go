package edit

import "strings"

// FixDegemination reinterprets deletions that reduce a double letter.
//
// It mirrors FixGemination with the roles of Norm and Var swapped: a deleted
// span that repeats its neighbour becomes XX→X, and a substitution whose first
// or last canonical letter repeats its neighbour is split into the residual
// substitution and an XX→X edit.
func FixDegemination(e Edit) []Edit {
	norm, vr := e.NormText(), e.VarText()
	left, right := e.LeftText(), e.RightText()

	if norm == "" || sameSignature(GroupCV(norm), GroupCV(vr)) {
		return []Edit{e}
	}

	if vr == "" {
		switch {
		case strings.HasSuffix(left, norm):
			return []Edit{New(norm+norm, norm, strings.TrimSuffix(left, norm), right)}
		case strings.HasPrefix(right, norm):
			return []Edit{New(norm+norm, norm, left, strings.TrimPrefix(right, norm))}
		}
		return []Edit{e}
	}

	if g := firstRune(norm); strings.HasSuffix(left, g) {
		rest := strings.TrimPrefix(norm, g)
		return []Edit{
			New(rest, vr, left+g, right),
			New(g+g, g, strings.TrimSuffix(left, g), rest+right),
		}
	}
	if g := lastRune(norm); strings.HasPrefix(right, g) {
		rest := strings.TrimSuffix(norm, g)
		return []Edit{
			New(rest, vr, left, g+right),
			New(g+g, g, left+rest, strings.TrimPrefix(right, g)),
		}
	}
	return []Edit{e}
}
