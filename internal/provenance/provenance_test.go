package provenance

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
)

func Blake3Hash(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

func SHA256Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

func TestHashReader(t *testing.T) {
	data := []byte("id,orthography\n1,ⲁⲅⲅⲉⲗⲟⲥ\n")

	d, err := HashReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("HashReader: %v", err)
	}
	if d.Size != int64(len(data)) {
		t.Errorf("Size = %d, want %d", d.Size, len(data))
	}
	if d.SHA256 != SHA256Hash(data) {
		t.Errorf("SHA256 = %s, want %s", d.SHA256, SHA256Hash(data))
	}
	sum := blake3.Sum256(data)
	if d.BLAKE3 != Blake3Hash(data) || len(d.BLAKE3) != 2*len(sum) {
		t.Errorf("BLAKE3 = %s, want %s", d.BLAKE3, Blake3Hash(data))
	}
}

func TestKnownDigests(t *testing.T) {
	// SHA-256 and BLAKE3 of the empty input.
	if got := SHA256Hash(nil); got != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Errorf("SHA256Hash(empty) = %s", got)
	}
	if got := Blake3Hash(nil); got != "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262" {
		t.Errorf("Blake3Hash(empty) = %s", got)
	}
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	if err := os.WriteFile(path, []byte("abc"), 0644); err != nil {
		t.Fatal(err)
	}
	d, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if d.Path != path || d.Size != 3 || d.SHA256 != SHA256Hash([]byte("abc")) {
		t.Errorf("unexpected digest %+v", d)
	}

	if _, err := HashFile(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("HashFile(missing) error = %v, want ErrNotExist", err)
	}
}

func TestCounts(t *testing.T) {
	c := Counts{
		RowsDropped:   map[string]int{"sic": 2, "digits": 3},
		EditsExcluded: map[string]int{"nominal-ending": 4},
	}
	if c.Dropped() != 5 || c.Excluded() != 4 {
		t.Errorf("Dropped=%d Excluded=%d", c.Dropped(), c.Excluded())
	}
}

func TestManifestWriteRead(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "deviations.csv")
	if err := os.WriteFile(out, []byte("id,norm\n"), 0644); err != nil {
		t.Fatal(err)
	}

	runID := NewRunID()
	if _, err := uuid.Parse(runID); err != nil {
		t.Fatalf("run ID %q is not a UUID: %v", runID, err)
	}

	m := New(runID, "test")
	m.Settings = Settings{Aligner: "difflib", Strategy: "insert-h", Rules: []string{"verbal-ending"}}
	m.Counts = Counts{RowsRead: 3, RowsExtracted: 2, EditsExtracted: 5, EditsWritten: 4,
		EditsExcluded: map[string]int{"nominal-ending": 1}}
	if err := m.Finish(out); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	path := filepath.Join(dir, "sub", "manifest.json")
	if err := m.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if got.RunID != runID || got.Settings.Strategy != "insert-h" || got.Counts.EditsWritten != 4 {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if len(got.Outputs) != 1 || got.Outputs[0].SHA256 != SHA256Hash([]byte("id,norm\n")) {
		t.Errorf("Outputs = %+v", got.Outputs)
	}
	if !got.StartedAt.Equal(m.StartedAt) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, m.StartedAt)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".manifest-") {
			t.Errorf("temp file %s left behind", e.Name())
		}
	}
}

func TestManifestEncodeKeepsUnicode(t *testing.T) {
	m := New("id", "v")
	m.Settings.Rules = []string{"ⲟⲥ→ⲏ"}
	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "ⲟⲥ→ⲏ") {
		t.Errorf("expected raw Coptic in %s", buf.String())
	}
}

func TestManifestWriteRenameError(t *testing.T) {
	orig := osRename
	osRename = func(string, string) error { return errors.New("rename failed") }
	defer func() { osRename = orig }()

	dir := t.TempDir()
	if err := New("id", "v").Write(filepath.Join(dir, "m.json")); err == nil {
		t.Fatal("expected rename error")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("temp file not cleaned up: %v", entries)
	}
}

func TestFinishMissingOutput(t *testing.T) {
	if err := New("id", "v").Finish(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing output")
	}
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Read(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing manifest")
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(bad); err == nil {
		t.Error("expected error for malformed manifest")
	}
}
