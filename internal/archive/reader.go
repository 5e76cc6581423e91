package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"strings"

	"github.com/FocuswithJustin/loanspell/core/errors"
)

// Reader reads the entries of a .tar.gz or .tar.xz bundle.
type Reader struct {
	*tar.Reader
	src io.Closer
}

// NewReader opens a bundle written by CreateBundle.
func NewReader(path string) (*Reader, error) {
	if !strings.HasSuffix(TrimCompression(path), ".tar") || DetectCompression(path) == None {
		return nil, errors.NewUnsupported("archive format", path)
	}
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{Reader: tar.NewReader(rc), src: rc}, nil
}

// Close closes the archive reader and any underlying decompressors.
func (r *Reader) Close() error {
	return r.src.Close()
}

// Visitor is a callback function for iterating archive entries.
// Return true to stop iteration, false to continue.
type Visitor func(header *tar.Header, content io.Reader) (stop bool, err error)

// Iterate walks through all entries in the archive, calling the visitor for each.
func (r *Reader) Iterate(visitor Visitor) error {
	for {
		header, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read header: %w", err)
		}

		stop, err := visitor(header, r)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
}

// ReadFile reads one file from a bundle. Names are matched with or without
// the bundle's leading directory.
func ReadFile(archivePath, filename string) ([]byte, error) {
	r, err := NewReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var content []byte
	err = r.Iterate(func(header *tar.Header, rd io.Reader) (bool, error) {
		name := header.Name
		if idx := strings.Index(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}
		if name == filename || header.Name == filename {
			var err error
			content, err = io.ReadAll(rd)
			return true, err
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, errors.NewNotFound("bundle entry", filename)
	}
	return content, nil
}
