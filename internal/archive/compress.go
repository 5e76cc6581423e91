// Package archive reads and writes the compressed files and tar bundles the
// extractor consumes and produces. Compression is chosen by file suffix:
// .xz, .gz or none.
package archive

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// Compression is a stream compression format.
type Compression int

const (
	None Compression = iota
	Gzip
	XZ
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case XZ:
		return "xz"
	default:
		return "none"
	}
}

// DetectCompression picks the compression for path from its suffix.
func DetectCompression(path string) Compression {
	switch {
	case strings.HasSuffix(path, ".xz"):
		return XZ
	case strings.HasSuffix(path, ".gz"):
		return Gzip
	default:
		return None
	}
}

// TrimCompression strips a trailing .xz or .gz from path.
func TrimCompression(path string) string {
	return strings.TrimSuffix(strings.TrimSuffix(path, ".xz"), ".gz")
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open opens path for reading, decompressing it when its suffix says so.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return decompress(f, DetectCompression(path))
}

func decompress(f *os.File, c Compression) (io.ReadCloser, error) {
	switch c {
	case XZ:
		xzr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		// xz reader doesn't need closing
		return &readCloser{Reader: xzr, closers: []io.Closer{f}}, nil
	case Gzip:
		gzr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		return &readCloser{Reader: gzr, closers: []io.Closer{gzr, f}}, nil
	default:
		return f, nil
	}
}

type writeCloser struct {
	io.Writer
	closers []io.Closer
}

// Close flushes the compressor before closing the file.
func (w *writeCloser) Close() error {
	var first error
	for _, c := range w.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Create creates path, and its parent directories, for writing, compressing
// the stream when its suffix says so.
func Create(path string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create parent directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return compress(f, DetectCompression(path))
}

func compress(f *os.File, c Compression) (io.WriteCloser, error) {
	switch c {
	case XZ:
		xw, err := xz.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("xz writer: %w", err)
		}
		return &writeCloser{Writer: xw, closers: []io.Closer{xw, f}}, nil
	case Gzip:
		gw := gzip.NewWriter(f)
		return &writeCloser{Writer: gw, closers: []io.Closer{gw, f}}, nil
	default:
		return f, nil
	}
}
