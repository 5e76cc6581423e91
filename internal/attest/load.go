package attest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/loanspell/core/errors"
	"github.com/FocuswithJustin/loanspell/internal/archive"
	"github.com/FocuswithJustin/loanspell/internal/logging"
	"github.com/FocuswithJustin/loanspell/internal/validation"
)

// Column names of the CSV export. The dialect siglum is read from "code"
// when present and from "dialect" otherwise.
const (
	ColID             = "id"
	ColOrthography    = "orthography"
	ColGreekLemma     = "greek_lemma"
	ColCode           = "code"
	ColDialect        = "dialect"
	ColDialectGroup   = "dialect_group"
	ColEarliest       = "earliest"
	ColLatest         = "latest"
	ColManuscriptText = "manuscript_text"
)

var requiredColumns = []string{ColID, ColOrthography, ColGreekLemma}

var attestationPath = xpath.MustCompile("//attestation")

// Load reads every attestation in path. Files ending in .xz or .gz are
// decompressed. When format is FormatUnknown or empty the format is
// detected from the file name and content.
func Load(path string, format validation.Format) ([]Record, error) {
	rc, err := archive.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	br := bufio.NewReader(rc)
	if format == "" || format == validation.FormatUnknown {
		head, err := br.Peek(validation.SniffLength)
		if err != nil && err != io.EOF && !errors.Is(err, bufio.ErrBufferFull) {
			return nil, errors.NewIO("read", path, err)
		}
		format, err = validation.DetectFormat(head, archive.TrimCompression(path))
		if err != nil {
			return nil, errors.NewUnsupported("input format", err.Error())
		}
		logging.Debug("detected input format", "path", path, "format", format)
	}

	switch format {
	case validation.FormatCSV:
		return ReadCSV(br, path)
	case validation.FormatXML:
		return ReadXML(br, path)
	default:
		return nil, errors.NewUnsupported("input format", string(format))
	}
}

// ReadCSV reads attestations from a CSV export with a header row. A path
// ending in .tsv (before any compression suffix) is read tab-separated.
func ReadCSV(r io.Reader, path string) ([]Record, error) {
	cr := csv.NewReader(r)
	if strings.EqualFold(filepath.Ext(archive.TrimCompression(path)), ".tsv") {
		cr.Comma = '\t'
	}

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewParse("csv", path, 1, "missing header row", nil)
	}
	if err != nil {
		return nil, csvError(path, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		cols[strings.ToLower(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, errors.NewParse("csv", path, 1, fmt.Sprintf("missing column %q", name), nil)
		}
	}
	dialectCol := ColCode
	if _, ok := cols[ColCode]; !ok {
		dialectCol = ColDialect
		if _, ok := cols[ColDialect]; !ok {
			logging.Warn("no dialect column", "path", path)
		}
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(path, err)
		}
		line, _ := cr.FieldPos(0)

		field := func(name string) string {
			if i, ok := cols[name]; ok && i < len(row) {
				return row[i]
			}
			return ""
		}

		rec, err := newRecord(field, dialectCol)
		if err != nil {
			return nil, errors.NewParse("csv", path, line, err.Error(), errors.ErrInvalidInput)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadXML reads attestations from an XML export: every <attestation>
// element carries an id attribute and one child element per field.
func ReadXML(r io.Reader, path string) ([]Record, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.NewParse("xml", path, 0, "malformed document", err)
	}

	var records []Record
	for i, n := range xmlquery.QuerySelectorAll(doc, attestationPath) {
		field := func(name string) string {
			if name == ColID {
				return n.SelectAttr(ColID)
			}
			if child := n.SelectElement(name); child != nil {
				return child.InnerText()
			}
			return ""
		}

		dialectCol := ColCode
		if n.SelectElement(ColCode) == nil {
			dialectCol = ColDialect
		}
		rec, err := newRecord(field, dialectCol)
		if err != nil {
			return nil, errors.NewParse("xml", path, 0, fmt.Sprintf("attestation %d: %v", i+1, err), errors.ErrInvalidInput)
		}
		records = append(records, rec)
	}
	return records, nil
}

func newRecord(field func(string) string, dialectCol string) (Record, error) {
	rec := Record{
		ID:                 strings.TrimSpace(field(ColID)),
		Orthography:        field(ColOrthography),
		GreekLemmaOriginal: field(ColGreekLemma),
		Dialect:            strings.TrimSpace(field(dialectCol)),
		DialectGroup:       field(ColDialectGroup),
		ManuscriptText:     field(ColManuscriptText),
	}
	if rec.ID == "" {
		return Record{}, errors.NewValidation(ColID, "missing")
	}

	var err error
	if rec.Earliest, err = parseYear(field(ColEarliest)); err != nil {
		return Record{}, errors.Wrapf(err, "id %s: bad earliest date %q", rec.ID, field(ColEarliest))
	}
	if rec.Latest, err = parseYear(field(ColLatest)); err != nil {
		return Record{}, errors.Wrapf(err, "id %s: bad latest date %q", rec.ID, field(ColLatest))
	}
	return rec, nil
}

func csvError(path string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return errors.NewParse("csv", path, perr.Line, perr.Err.Error(), nil)
	}
	return errors.NewIO("read", path, err)
}
