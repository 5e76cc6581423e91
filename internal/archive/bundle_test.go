package archive

import (
	"archive/tar"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	lserrors "github.com/FocuswithJustin/loanspell/core/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestBundleName(t *testing.T) {
	tests := map[string]string{
		"out/run-1.tar.xz": "run-1",
		"run.tar.gz":       "run",
	}
	for in, want := range tests {
		if got := BundleName(in); got != want {
			t.Errorf("BundleName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBundleRoundTrip(t *testing.T) {
	src := t.TempDir()
	csvPath := writeFile(t, src, "deviations.csv", "id,norm,var\n1,ⲅⲅ,ⲅ\n")
	manifestPath := writeFile(t, src, "manifest.json", `{"run_id":"x"}`)

	for _, name := range []string{"run.tar.xz", "run.tar.gz"} {
		t.Run(name, func(t *testing.T) {
			dst := filepath.Join(t.TempDir(), name)
			if err := CreateBundle(dst, csvPath, manifestPath); err != nil {
				t.Fatalf("CreateBundle: %v", err)
			}

			got, err := ReadFile(dst, "deviations.csv")
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if string(got) != "id,norm,var\n1,ⲅⲅ,ⲅ\n" {
				t.Errorf("deviations.csv = %q", got)
			}
			if got, err := ReadFile(dst, "run/manifest.json"); err != nil || string(got) != `{"run_id":"x"}` {
				t.Errorf("manifest.json = %q, %v", got, err)
			}

			r, err := NewReader(dst)
			if err != nil {
				t.Fatalf("NewReader: %v", err)
			}
			defer r.Close()
			var names []string
			err = r.Iterate(func(h *tar.Header, _ io.Reader) (bool, error) {
				names = append(names, h.Name)
				return false, nil
			})
			if err != nil {
				t.Fatalf("Iterate: %v", err)
			}
			if len(names) != 2 || names[0] != "run/deviations.csv" || names[1] != "run/manifest.json" {
				t.Errorf("entries = %v", names)
			}
		})
	}
}

func TestIterateStops(t *testing.T) {
	src := t.TempDir()
	a := writeFile(t, src, "a.txt", "a")
	b := writeFile(t, src, "b.txt", "b")
	dst := filepath.Join(t.TempDir(), "ab.tar.gz")
	if err := CreateBundle(dst, a, b); err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(dst)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	visited := 0
	if err := r.Iterate(func(*tar.Header, io.Reader) (bool, error) {
		visited++
		return true, nil
	}); err != nil {
		t.Fatal(err)
	}
	if visited != 1 {
		t.Errorf("visited %d entries, want 1", visited)
	}
}

func TestBundleErrors(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "a.txt", "a")

	if err := CreateBundle(filepath.Join(dir, "run.zip"), f); !errors.Is(err, lserrors.ErrUnsupported) {
		t.Errorf("CreateBundle(zip) = %v, want ErrUnsupported", err)
	}
	if err := CreateBundle(filepath.Join(dir, "run.tar"), f); !errors.Is(err, lserrors.ErrUnsupported) {
		t.Errorf("CreateBundle(uncompressed tar) = %v, want ErrUnsupported", err)
	}
	if _, err := NewReader(filepath.Join(dir, "a.txt")); !errors.Is(err, lserrors.ErrUnsupported) {
		t.Errorf("NewReader(txt) = %v, want ErrUnsupported", err)
	}
	if err := CreateBundle(filepath.Join(dir, "run.tar.gz"), filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing input file")
	}

	dst := filepath.Join(dir, "ok.tar.gz")
	if err := CreateBundle(dst, f); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(dst, "nope.txt"); !errors.Is(err, lserrors.ErrNotFound) {
		t.Errorf("ReadFile(missing entry) = %v, want ErrNotFound", err)
	}
}
