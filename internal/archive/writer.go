package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/FocuswithJustin/loanspell/core/errors"
)

// BundleName derives the directory name used inside a bundle from its path,
// e.g. "out/run.tar.xz" gives "run".
func BundleName(path string) string {
	return filepath.Base(strings.TrimSuffix(TrimCompression(path), ".tar"))
}

// CreateBundle packs files into a .tar.gz or .tar.xz at dstPath, each under
// BundleName(dstPath) with its base name. All entries share one timestamp.
func CreateBundle(dstPath string, files ...string) error {
	if !strings.HasSuffix(TrimCompression(dstPath), ".tar") || DetectCompression(dstPath) == None {
		return errors.NewUnsupported("archive format", dstPath)
	}

	out, err := Create(dstPath)
	if err != nil {
		return err
	}
	tw := tar.NewWriter(out)

	baseDir := BundleName(dstPath)
	now := time.Now()
	for _, path := range files {
		if err := addFile(tw, path, baseDir+"/"+filepath.Base(path), now); err != nil {
			tw.Close()
			out.Close()
			return fmt.Errorf("failed to create archive: %w", err)
		}
	}

	if err := tw.Close(); err != nil {
		out.Close()
		return fmt.Errorf("failed to create archive: %w", err)
	}
	return out.Close()
}

func addFile(tw *tar.Writer, path, name string, modTime time.Time) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}
	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = name
	header.ModTime = modTime

	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	_, err = io.Copy(tw, file)
	return err
}
