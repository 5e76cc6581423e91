package edit

import (
	"fmt"
	"iter"

	"github.com/FocuswithJustin/loanspell/core/align"
	"github.com/FocuswithJustin/loanspell/core/errors"
)

// Pass rewrites one edit into zero or more edits.
type Pass func(Edit) []Edit

// Strategy selects how an extra vowel/consonant run on the variant side is
// handled.
type Strategy int

const (
	// StrategyInsertH splits only word-initial ϩ insertions (FixInsertH).
	StrategyInsertH Strategy = iota
	// StrategyShiftSplit splits any single run that gains a neighbouring run
	// (FixSyllablesShift) and skips FixInsertH.
	StrategyShiftSplit
)

func (s Strategy) String() string {
	switch s {
	case StrategyInsertH:
		return "insert-h"
	case StrategyShiftSplit:
		return "shift-split"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy parses the names printed by Strategy.String.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "insert-h", "":
		return StrategyInsertH, nil
	case "shift-split":
		return StrategyShiftSplit, nil
	default:
		return 0, errors.NewUnsupported("strategy", fmt.Sprintf("%q (want insert-h or shift-split)", name))
	}
}

// Option configures a Refiner.
type Option func(*Refiner)

// WithStrategy selects the run-insertion strategy.
func WithStrategy(s Strategy) Option {
	return func(r *Refiner) { r.strategy = s }
}

// Refiner applies the refinement passes in their fixed order.
type Refiner struct {
	strategy Strategy
	passes   []Pass
}

// NewRefiner builds a refiner. The pass order is gemination, degemination,
// syllable split, then aspirate insertion; it is not configurable because
// each pass relies on the artifacts the previous one removed.
func NewRefiner(opts ...Option) *Refiner {
	r := &Refiner{}
	for _, opt := range opts {
		opt(r)
	}
	switch r.strategy {
	case StrategyShiftSplit:
		r.passes = []Pass{FixGemination, FixDegemination, FixSyllablesShift}
	default:
		r.passes = []Pass{FixGemination, FixDegemination, FixSyllables, FixInsertH}
	}
	return r
}

// Strategy returns the configured strategy.
func (r *Refiner) Strategy() Strategy { return r.strategy }

// Refine runs e through every pass. Edits that a split left empty or
// unchanged are dropped between passes.
func (r *Refiner) Refine(e Edit) []Edit {
	current := []Edit{e}
	for _, pass := range r.passes {
		next := make([]Edit, 0, len(current))
		for _, c := range current {
			for _, out := range pass(c) {
				if !out.IsNoOp() {
					next = append(next, out)
				}
			}
		}
		current = next
	}
	return current
}

// RefineAll refines every edit of seq, keeping their order.
func (r *Refiner) RefineAll(seq iter.Seq[Edit]) []Edit {
	var out []Edit
	for e := range seq {
		out = append(out, r.Refine(e)...)
	}
	return out
}

// Diff extracts and refines the edits turning canonical into variant.
func (r *Refiner) Diff(al align.Aligner, canonical, variant string) []Edit {
	return r.RefineAll(Extract(al, canonical, variant))
}

// Refine refines a single edit with a one-off Refiner.
func Refine(e Edit, opts ...Option) []Edit {
	return NewRefiner(opts...).Refine(e)
}

// Diff extracts and refines with a one-off Refiner.
func Diff(al align.Aligner, canonical, variant string, opts ...Option) []Edit {
	return NewRefiner(opts...).Diff(al, canonical, variant)
}
