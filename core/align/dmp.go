package align

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DMP aligns with Myers' O(ND) diff as implemented by diff-match-patch.
// Adjacent deletions and insertions are folded into one replace opcode so the
// output has the same shape as Difflib's.
type DMP struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewDMP returns a DMP aligner without a time budget, so results do not depend
// on machine load.
func NewDMP() DMP {
	d := diffmatchpatch.New()
	d.DiffTimeout = 0
	return DMP{dmp: d}
}

// Name implements Aligner.
func (DMP) Name() string { return NameDMP }

// Align implements Aligner.
func (d DMP) Align(a, b []rune) []OpCode {
	if d.dmp == nil {
		d = NewDMP()
	}
	diffs := d.dmp.DiffMainRunes(a, b, false)

	var ops []OpCode
	i, j := 0, 0
	del, ins := 0, 0

	flush := func() {
		switch {
		case del > 0 && ins > 0:
			ops = append(ops, OpCode{Replace, i, i + del, j, j + ins})
		case del > 0:
			ops = append(ops, OpCode{Delete, i, i + del, j, j})
		case ins > 0:
			ops = append(ops, OpCode{Insert, i, i, j, j + ins})
		}
		i += del
		j += ins
		del, ins = 0, 0
	}

	for _, df := range diffs {
		n := utf8.RuneCountInString(df.Text)
		if n == 0 {
			continue
		}
		switch df.Type {
		case diffmatchpatch.DiffDelete:
			del += n
		case diffmatchpatch.DiffInsert:
			ins += n
		case diffmatchpatch.DiffEqual:
			flush()
			ops = append(ops, OpCode{Equal, i, i + n, j, j + n})
			i += n
			j += n
		}
	}
	flush()

	return ops
}
