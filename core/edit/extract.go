package edit

import (
	"iter"

	"github.com/FocuswithJustin/loanspell/core/align"
	"github.com/FocuswithJustin/loanspell/core/digraph"
)

// Extract yields one raw edit per non-equal opcode of the alignment between
// canonical and variant. Digraphs are protected during alignment so they are
// never split, and restored in every yielded field. Contexts are the whole
// canonical prefix and suffix around the span.
//
// The sequence is computed lazily; ranging over it again realigns.
func Extract(al align.Aligner, canonical, variant string) iter.Seq[Edit] {
	return func(yield func(Edit) bool) {
		a := []rune(digraph.Protect(canonical))
		b := []rune(digraph.Protect(variant))

		for _, op := range al.Align(a, b) {
			if op.Tag == align.Equal {
				continue
			}
			e := New(
				string(a[op.I1:op.I2]),
				string(b[op.J1:op.J2]),
				string(a[:op.I1]),
				string(a[op.I2:]),
			)
			if !yield(e.Unprotect()) {
				return
			}
		}
	}
}
