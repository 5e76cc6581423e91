package edit

// FixSyllables splits a substitution into one edit per vowel/consonant run
// when both sides have the same run structure, e.g. ⲟⲅⲟ→ⲱⲕⲱ becomes ⲟ→ⲱ,
// ⲅ→ⲕ and ⲟ→ⲱ, each with the canonical context of its own position.
// Edits whose sides differ in structure are returned unchanged.
func FixSyllables(e Edit) []Edit {
	return splitRuns(e, false)
}

// FixSyllablesShift is FixSyllables that additionally recognises a single run
// gaining one extra run on the variant side. The extra run is split off as an
// insertion after the aligned run (ⲁ→ⲁⲓⲛ shifts right) or before it
// (ⲟ→ϩⲱ shifts left).
func FixSyllablesShift(e Edit) []Edit {
	return splitRuns(e, true)
}

func splitRuns(e Edit, shift bool) []Edit {
	norm := e.NormText()
	ng, vg := GroupCV(norm), GroupCV(e.VarText())
	left, right := e.LeftText(), e.RightText()

	if !sameSignature(ng, vg) {
		if shift && len(ng) == 1 && len(vg) == 2 {
			if vg[0].Vowel == ng[0].Vowel {
				return []Edit{
					New(norm, vg[0].Text, left, right),
					New("", vg[1].Text, left+norm, right),
				}
			}
			return []Edit{
				New("", vg[0].Text, left, norm+right),
				New(norm, vg[1].Text, left, right),
			}
		}
		return []Edit{e}
	}
	if len(ng) < 2 {
		return []Edit{e}
	}

	out := make([]Edit, 0, len(ng))
	pos := 0
	for i, g := range ng {
		next := pos + len(g.Text)
		out = append(out, New(g.Text, vg[i].Text, left+norm[:pos], norm[next:]+right))
		pos = next
	}
	return out
}
