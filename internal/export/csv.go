// Package export writes extracted deviations to CSV files and SQLite
// databases.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/FocuswithJustin/loanspell/core/errors"
	"github.com/FocuswithJustin/loanspell/internal/archive"
	"github.com/FocuswithJustin/loanspell/internal/attest"
)

// Columns is the fixed header of the deviations CSV.
var Columns = []string{
	"id", "norm", "var", "context_left", "context_right",
	"greek_lemma", "greek_lemma_original",
	"orthography", "orthography_clean",
	"dialect", "dialect_group", "manuscript_text",
	"date_approximate", "earliest", "latest", "century",
}

// Optional trailing columns.
const (
	ColSimilarity = "similarity"
	ColExcludedBy = "excluded_by"
)

// Option configures a CSVWriter.
type Option func(*CSVWriter)

// WithSimilarity appends the similarity column.
func WithSimilarity() Option {
	return func(w *CSVWriter) { w.similarity = true }
}

// WithExcludedBy appends the excluded_by column.
func WithExcludedBy() Option {
	return func(w *CSVWriter) { w.excludedBy = true }
}

// CSVWriter writes deviations as CSV rows, one per edit.
type CSVWriter struct {
	cw         *csv.Writer
	closer     io.Closer
	path       string
	similarity bool
	excludedBy bool
	header     bool
	rows       int
}

// NewCSVWriter returns a writer on w. The header is written with the first
// row, or on Flush if there are none.
func NewCSVWriter(w io.Writer, opts ...Option) *CSVWriter {
	cw := &CSVWriter{cw: csv.NewWriter(w)}
	for _, opt := range opts {
		opt(cw)
	}
	return cw
}

// CreateCSV creates path and returns a writer on it. A .xz or .gz suffix
// compresses the output.
func CreateCSV(path string, opts ...Option) (*CSVWriter, error) {
	f, err := archive.Create(path)
	if err != nil {
		return nil, errors.NewIO("create", path, err)
	}
	w := NewCSVWriter(f, opts...)
	w.closer = f
	w.path = path
	return w, nil
}

// Header returns the columns this writer emits.
func (w *CSVWriter) Header() []string {
	h := append([]string(nil), Columns...)
	if w.similarity {
		h = append(h, ColSimilarity)
	}
	if w.excludedBy {
		h = append(h, ColExcludedBy)
	}
	return h
}

// Write appends one deviation.
func (w *CSVWriter) Write(d attest.Deviation) error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	if err := w.cw.Write(w.record(d)); err != nil {
		return w.ioError(err)
	}
	w.rows++
	return nil
}

// WriteAll appends every deviation and flushes.
func (w *CSVWriter) WriteAll(devs []attest.Deviation) error {
	for _, d := range devs {
		if err := w.Write(d); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Rows returns the number of deviations written.
func (w *CSVWriter) Rows() int { return w.rows }

// Flush writes buffered rows to the underlying writer.
func (w *CSVWriter) Flush() error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	w.cw.Flush()
	if err := w.cw.Error(); err != nil {
		return w.ioError(err)
	}
	return nil
}

// Close flushes and, for writers from CreateCSV, closes the file.
func (w *CSVWriter) Close() error {
	err := w.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); cerr != nil && err == nil {
			err = w.ioError(cerr)
		}
		w.closer = nil
	}
	return err
}

func (w *CSVWriter) writeHeader() error {
	if w.header {
		return nil
	}
	w.header = true
	if err := w.cw.Write(w.Header()); err != nil {
		return w.ioError(err)
	}
	return nil
}

func (w *CSVWriter) record(d attest.Deviation) []string {
	r := d.Record
	row := []string{
		r.ID, d.Norm, d.Var, d.Left, d.Right,
		r.GreekLemma, r.GreekLemmaOriginal,
		r.Orthography, r.OrthographyClean,
		r.Dialect, r.DialectGroup, r.ManuscriptText,
		attest.FormatFloat(r.DateApproximate),
		attest.FormatFloat(r.Earliest),
		attest.FormatFloat(r.Latest),
		attest.FormatInt(r.Century),
	}
	if w.similarity {
		row = append(row, strconv.FormatFloat(d.Similarity, 'f', 4, 64))
	}
	if w.excludedBy {
		row = append(row, d.ExcludedBy)
	}
	return row
}

func (w *CSVWriter) ioError(err error) error {
	path := w.path
	if path == "" {
		path = "-"
	}
	return errors.NewIO("write", path, err)
}
