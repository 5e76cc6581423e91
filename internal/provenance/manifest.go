package provenance

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// osRename is a variable to allow testing of rename errors.
var osRename = os.Rename

// Counts are the row and edit totals of one run.
type Counts struct {
	RowsRead       int            `json:"rows_read"`
	RowsDropped    map[string]int `json:"rows_dropped,omitempty"`
	RowsExtracted  int            `json:"rows_extracted"`
	EditsExtracted int            `json:"edits_extracted"`
	EditsExcluded  map[string]int `json:"edits_excluded,omitempty"`
	EditsWritten   int            `json:"edits_written"`
}

// Dropped returns the number of rows removed before extraction.
func (c Counts) Dropped() int {
	n := 0
	for _, v := range c.RowsDropped {
		n += v
	}
	return n
}

// Excluded returns the number of edits removed by morphology rules.
func (c Counts) Excluded() int {
	n := 0
	for _, v := range c.EditsExcluded {
		n += v
	}
	return n
}

// Settings are the options that shape the output of a run.
type Settings struct {
	Aligner      string   `json:"aligner"`
	Strategy     string   `json:"strategy"`
	Rules        []string `json:"rules"`
	KeepExcluded bool     `json:"keep_excluded,omitempty"`
}

// Manifest describes one extraction run.
type Manifest struct {
	RunID     string    `json:"run_id"`
	Version   string    `json:"version"`
	StartedAt time.Time `json:"started_at"`
	Duration  string    `json:"duration"`
	Input     Digest    `json:"input"`
	Outputs   []Digest  `json:"outputs,omitempty"`
	Settings  Settings  `json:"settings"`
	Counts    Counts    `json:"counts"`
}

// NewRunID returns a fresh random run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// New starts a manifest for a run beginning now.
func New(runID, version string) *Manifest {
	return &Manifest{
		RunID:     runID,
		Version:   version,
		StartedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// Finish records the run duration and hashes the given output files.
func (m *Manifest) Finish(outputs ...string) error {
	m.Duration = time.Since(m.StartedAt).Round(time.Millisecond).String()
	m.Outputs = m.Outputs[:0]
	for _, p := range outputs {
		d, err := HashFile(p)
		if err != nil {
			return err
		}
		m.Outputs = append(m.Outputs, d)
	}
	return nil
}

// Encode writes the manifest as indented JSON.
func (m *Manifest) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(m)
}

// Write stores the manifest at path atomically.
func (m *Manifest) Write(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, ".manifest-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	if err := m.Encode(tempFile); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Rename to final path (atomic on POSIX)
	if err := osRename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename manifest: %w", err)
	}
	return nil
}

// Read loads a manifest written by Write.
func Read(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a manifest from r.
func Decode(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
