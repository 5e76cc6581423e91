// Package provenance records where an extraction run came from: a run ID,
// digests of the input and outputs, the settings used and the row counts.
package provenance

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Digest holds both SHA-256 and BLAKE3 hashes of one file.
type Digest struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
	BLAKE3 string `json:"blake3"`
}

// HashReader hashes everything r yields with both algorithms in one pass.
func HashReader(r io.Reader) (Digest, error) {
	s := sha256.New()
	b := blake3.New()
	n, err := io.Copy(io.MultiWriter(s, b), r)
	if err != nil {
		return Digest{}, err
	}
	return Digest{
		Size:   n,
		SHA256: hex.EncodeToString(s.Sum(nil)),
		BLAKE3: hex.EncodeToString(b.Sum(nil)),
	}, nil
}

// HashFile hashes the file at path as stored on disk, compressed or not.
func HashFile(path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	d, err := HashReader(f)
	if err != nil {
		return Digest{}, fmt.Errorf("failed to hash %s: %w", path, err)
	}
	d.Path = path
	return d, nil
}
