// Package edit turns a character diff between a canonical transliteration and
// an attested spelling into phonologically coherent edits.
//
// Extract reads the raw opcodes of an aligner. Refine then rewrites each raw
// edit through four passes, in this order:
//
//  1. FixGemination: an inserted letter next to the same letter becomes X→XX.
//  2. FixDegemination: a deleted letter next to the same letter becomes XX→X.
//  3. FixSyllables: a substitution spanning several vowel/consonant runs is
//     split into one substitution per run.
//  4. FixInsertH: a word-initial replacement that gains a leading ϩ is split
//     into the substitution and an isolated ϩ insertion.
//
// Every pass is total. A shape it does not recognise is returned unchanged.
package edit

import (
	"fmt"

	"github.com/FocuswithJustin/loanspell/core/digraph"
)

const (
	// Null marks an empty Norm or Var: a pure insertion or deletion.
	Null = "∅"
	// Boundary marks an empty context: the edit touches the start or end of the word.
	Boundary = "#"
)

// Edit rewrites Norm, a span of the canonical form, into Var. Left and Right
// are the canonical text on either side of the span, never variant text.
type Edit struct {
	Norm  string
	Var   string
	Left  string
	Right string
}

// New builds an edit from raw strings, substituting the sentinel markers for
// empty fields.
func New(norm, variant, left, right string) Edit {
	return Edit{
		Norm:  orMarker(norm, Null),
		Var:   orMarker(variant, Null),
		Left:  orMarker(left, Boundary),
		Right: orMarker(right, Boundary),
	}
}

func orMarker(s, marker string) string {
	if s == "" {
		return marker
	}
	return s
}

func content(s, marker string) string {
	if s == marker {
		return ""
	}
	return s
}

// NormText returns Norm without the sentinel.
func (e Edit) NormText() string { return content(e.Norm, Null) }

// VarText returns Var without the sentinel.
func (e Edit) VarText() string { return content(e.Var, Null) }

// LeftText returns Left without the sentinel.
func (e Edit) LeftText() string { return content(e.Left, Boundary) }

// RightText returns Right without the sentinel.
func (e Edit) RightText() string { return content(e.Right, Boundary) }

// Span reconstructs the canonical text the edit was taken from.
func (e Edit) Span() string {
	return e.LeftText() + e.NormText() + e.RightText()
}

// IsNoOp reports whether the edit changes nothing.
func (e Edit) IsNoOp() bool {
	return e.NormText() == e.VarText()
}

// WordInitial reports whether the edit starts at the beginning of the word.
func (e Edit) WordInitial() bool { return e.LeftText() == "" }

// WordFinal reports whether the edit ends at the end of the word.
func (e Edit) WordFinal() bool { return e.RightText() == "" }

// Unprotect restores protected digraphs in all four fields.
func (e Edit) Unprotect() Edit {
	return Edit{
		Norm:  digraph.Unprotect(e.Norm),
		Var:   digraph.Unprotect(e.Var),
		Left:  digraph.Unprotect(e.Left),
		Right: digraph.Unprotect(e.Right),
	}
}

// String renders the edit in the usual notation, e.g. "ⲟ→ⲱ / ⲗ_ⲅⲟⲥ".
func (e Edit) String() string {
	return fmt.Sprintf("%s→%s / %s_%s", e.Norm, e.Var, e.Left, e.Right)
}
