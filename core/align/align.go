// Package align computes character-level edit scripts between two strings.
//
// An Aligner returns opcodes in the style of a sequence matcher: a list of
// equal/replace/delete/insert operations that together cover both inputs
// from start to end. Indices are rune offsets, not byte offsets.
package align

import (
	"fmt"

	"github.com/FocuswithJustin/loanspell/core/errors"
)

// Tag identifies the kind of an opcode.
type Tag byte

const (
	Equal   Tag = 'e'
	Replace Tag = 'r'
	Delete  Tag = 'd'
	Insert  Tag = 'i'
)

func (t Tag) String() string {
	switch t {
	case Equal:
		return "equal"
	case Replace:
		return "replace"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	default:
		return fmt.Sprintf("Tag(%d)", byte(t))
	}
}

// OpCode says that a[I1:I2] should be turned into b[J1:J2] by Tag.
type OpCode struct {
	Tag    Tag
	I1, I2 int
	J1, J2 int
}

// Aligner produces an edit script between two rune sequences.
type Aligner interface {
	// Name identifies the algorithm, e.g. "difflib".
	Name() string
	// Align returns opcodes covering all of a and b in order.
	Align(a, b []rune) []OpCode
}

// Names of the built-in aligners.
const (
	NameDifflib = "difflib"
	NameDMP     = "dmp"
)

// New returns the aligner registered under name.
func New(name string) (Aligner, error) {
	switch name {
	case NameDifflib, "":
		return Difflib{}, nil
	case NameDMP:
		return NewDMP(), nil
	default:
		return nil, errors.NewUnsupported("aligner", fmt.Sprintf("%q (want %s or %s)", name, NameDifflib, NameDMP))
	}
}

// Ratio returns the similarity 2*M/T of two strings under the given opcodes,
// where M is the number of matched runes and T the total rune count. Two empty
// strings are identical.
func Ratio(ops []OpCode) float64 {
	var matched, total int
	for _, op := range ops {
		total += (op.I2 - op.I1) + (op.J2 - op.J1)
		if op.Tag == Equal {
			matched += op.I2 - op.I1
		}
	}
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matched) / float64(total)
}

// Similarity aligns a and b with al and returns their ratio.
func Similarity(al Aligner, a, b string) float64 {
	return Ratio(al.Align([]rune(a), []rune(b)))
}
