// Package pipeline runs spelling-deviation extraction over a batch of
// attestations: clean, transliterate, align, refine and filter.
//
// Rows are processed independently on a worker pool. Output keeps the order
// of the input, and edits within one attestation keep their position order.
package pipeline

import (
	"context"
	"time"

	"github.com/FocuswithJustin/loanspell/core/align"
	"github.com/FocuswithJustin/loanspell/core/edit"
	"github.com/FocuswithJustin/loanspell/core/morph"
	"github.com/FocuswithJustin/loanspell/core/translit"
	"github.com/FocuswithJustin/loanspell/internal/attest"
	"github.com/FocuswithJustin/loanspell/internal/cache"
	"github.com/FocuswithJustin/loanspell/internal/logging"
	"github.com/FocuswithJustin/loanspell/internal/provenance"
)

// DropEmptyCanonical is the drop reason for a lemma that transliterates to
// nothing.
const DropEmptyCanonical = "empty-canonical"

// canonicalCacheSize bounds the transliteration memo. Lemmas repeat heavily
// across attestations.
const canonicalCacheSize = 1 << 16

// Option configures an Extractor.
type Option func(*Extractor)

// WithAligner selects the character aligner. The default is difflib.
func WithAligner(al align.Aligner) Option {
	return func(x *Extractor) { x.aligner = al }
}

// WithStrategy selects the refinement strategy.
func WithStrategy(s edit.Strategy) Option {
	return func(x *Extractor) { x.strategy = s }
}

// WithFilter replaces the default morphology filter.
func WithFilter(f *morph.Filter) Option {
	return func(x *Extractor) { x.filter = f }
}

// WithWorkers sets the worker count. Zero or less means runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(x *Extractor) { x.workers = n }
}

// WithKeepExcluded keeps edits matched by a morphology rule in the output,
// marked with the rule name, instead of dropping them.
func WithKeepExcluded(keep bool) Option {
	return func(x *Extractor) { x.keepExcluded = keep }
}

// Extractor turns attestations into deviations. It is safe for concurrent
// use.
type Extractor struct {
	aligner      align.Aligner
	strategy     edit.Strategy
	refiner      *edit.Refiner
	filter       *morph.Filter
	workers      int
	keepExcluded bool
	canonical    func(string) string
	memo         *cache.Memo[string, string]
}

// New builds an Extractor.
func New(opts ...Option) *Extractor {
	x := &Extractor{
		aligner:  align.Difflib{},
		strategy: edit.StrategyInsertH,
	}
	for _, opt := range opts {
		opt(x)
	}
	if x.filter == nil {
		x.filter = morph.NewFilter()
	}
	x.refiner = edit.NewRefiner(edit.WithStrategy(x.strategy))
	x.memo = cache.New[string, string](canonicalCacheSize)
	x.canonical = x.memo.Func(translit.Transliterate)
	return x
}

// Settings describes the configuration for a run manifest.
func (x *Extractor) Settings() provenance.Settings {
	rules := x.filter.Rules()
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return provenance.Settings{
		Aligner:      x.aligner.Name(),
		Strategy:     x.strategy.String(),
		Rules:        names,
		KeepExcluded: x.keepExcluded,
	}
}

// Canonical returns the expected Coptic spelling of a Greek lemma.
func (x *Extractor) Canonical(greek string) string {
	return x.canonical(greek)
}

// Result is the output of a run.
type Result struct {
	Deviations []attest.Deviation
	Counts     provenance.Counts
}

// rowResult is the outcome for one attestation.
type rowResult struct {
	record     attest.Record
	dropped    string
	extracted  int
	deviations []attest.Deviation
}

// Run cleans records and extracts their deviations. Cancelling ctx stops
// the run between rows and returns the context's error.
func (x *Extractor) Run(ctx context.Context, records []attest.Record) (*Result, error) {
	res := &Result{}
	res.Counts.RowsRead = len(records)
	res.Counts.RowsDropped = make(map[string]int)
	res.Counts.EditsExcluded = make(map[string]int)

	start := time.Now()
	cleaned := make([]attest.Record, 0, len(records))
	for _, r := range records {
		c, reason := attest.Clean(r)
		if reason != "" {
			res.Counts.RowsDropped[reason]++
			logging.RowDropped(ctx, r.ID, reason, "orthography", r.Orthography)
			continue
		}
		cleaned = append(cleaned, c)
	}
	logging.StageComplete(ctx, "clean", len(cleaned), time.Since(start),
		"dropped", res.Counts.Dropped())

	start = time.Now()
	rows, err := Map(ctx, x.workers, cleaned, x.extract)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if row.dropped != "" {
			res.Counts.RowsDropped[row.dropped]++
			logging.RowDropped(ctx, row.record.ID, row.dropped, "greek_lemma", row.record.GreekLemmaOriginal)
			continue
		}
		res.Counts.RowsExtracted++
		res.Counts.EditsExtracted += row.extracted
		for _, d := range row.deviations {
			if d.ExcludedBy != "" {
				res.Counts.EditsExcluded[d.ExcludedBy]++
				logging.EditExcluded(ctx, d.Record.ID, d.ExcludedBy, d.Edit.String())
				if !x.keepExcluded {
					continue
				}
			}
			res.Deviations = append(res.Deviations, d)
		}
	}
	res.Counts.EditsWritten = len(res.Deviations)

	hits, misses := x.memo.Stats()
	logging.StageComplete(ctx, "extract", res.Counts.EditsWritten, time.Since(start),
		"rows", res.Counts.RowsExtracted,
		"edits", res.Counts.EditsExtracted,
		"excluded", res.Counts.Excluded(),
		"translit_cache_hits", hits,
		"translit_cache_misses", misses,
		"translit_cache_size", x.memo.Len(),
	)
	return res, nil
}

// Diff returns the refined edits turning canonical into variant.
func (x *Extractor) Diff(canonical, variant string) []edit.Edit {
	return x.refiner.Diff(x.aligner, canonical, variant)
}

// ExcludedBy returns the name of the morphology rule that matches e in a
// word with the given canonical lemma, or "".
func (x *Extractor) ExcludedBy(e edit.Edit, lemma string) string {
	if keep, rule := x.filter.Keep(morph.Row{Edit: e, Lemma: lemma}); !keep {
		return rule
	}
	return ""
}

// extract computes the deviations of one cleaned record. Every edit is
// returned; those matched by a morphology rule carry the rule name in
// ExcludedBy.
func (x *Extractor) extract(rec attest.Record) rowResult {
	rec.GreekLemma = x.canonical(rec.GreekLemmaOriginal)
	if rec.GreekLemma == "" {
		return rowResult{record: rec, dropped: DropEmptyCanonical}
	}

	edits := x.Diff(rec.GreekLemma, rec.OrthographyClean)
	similarity := align.Similarity(x.aligner, rec.GreekLemma, rec.OrthographyClean)

	out := rowResult{record: rec, extracted: len(edits)}
	if len(edits) > 0 {
		out.deviations = make([]attest.Deviation, 0, len(edits))
	}
	for _, e := range edits {
		out.deviations = append(out.deviations, attest.Deviation{
			Edit:       e,
			Record:     rec,
			Similarity: similarity,
			ExcludedBy: x.ExcludedBy(e, rec.GreekLemma),
		})
	}
	return out
}
