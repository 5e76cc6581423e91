package morph

import (
	"iter"
	"slices"
)

// Filter applies exclusion rules to refined edits.
type Filter struct {
	rules []Rule
}

// Option configures a Filter.
type Option func(*Filter)

// WithRules appends rules after the built-in ones.
func WithRules(rules ...Rule) Option {
	return func(f *Filter) { f.rules = append(f.rules, rules...) }
}

// WithoutBuiltin starts from an empty rule list.
func WithoutBuiltin() Option {
	return func(f *Filter) { f.rules = nil }
}

// NewFilter returns a filter with the built-in rules plus any added by opts.
func NewFilter(opts ...Option) *Filter {
	f := &Filter{rules: Builtin()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Rules returns the rules in evaluation order.
func (f *Filter) Rules() []Rule {
	out := make([]Rule, len(f.rules))
	copy(out, f.rules)
	return out
}

// Keep reports whether r survives. When it does not, rule names the first
// rule that matched.
func (f *Filter) Keep(r Row) (keep bool, rule string) {
	for _, rl := range f.rules {
		if rl.Match(r) {
			return false, rl.Name
		}
	}
	return true, ""
}

// Apply returns the rows that survive, in order.
func (f *Filter) Apply(rows []Row) []Row {
	var out []Row
	for r := range f.Kept(slices.Values(rows)) {
		out = append(out, r)
	}
	return out
}

// Kept yields the rows of seq that survive.
func (f *Filter) Kept(seq iter.Seq[Row]) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for r := range seq {
			if ok, _ := f.Keep(r); ok && !yield(r) {
				return
			}
		}
	}
}
