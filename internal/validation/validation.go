// Package validation checks user-supplied paths and sniffs the format of
// attestation exports before they are parsed.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Limits on user-supplied names.
const (
	// MaxFilenameLength is the maximum allowed filename length.
	MaxFilenameLength = 255
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
	// SniffLength is how many leading bytes DetectFormat needs.
	SniffLength = 512
)

// Common validation errors.
var (
	ErrInvalidFilename  = errors.New("invalid filename")
	ErrPathTooLong      = errors.New("path too long")
	ErrFilenameTooLong  = errors.New("filename too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrFormatMismatch   = errors.New("file format mismatch")
)

// ValidatePath checks for length limits and invalid characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}

	// Check for null bytes
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}

	return nil
}

// ValidateFilename checks that a single path element is a usable file name.
func ValidateFilename(filename string) error {
	if filename == "" {
		return ErrInvalidFilename
	}

	if len(filename) > MaxFilenameLength {
		return ErrFilenameTooLong
	}

	if filename == "." || filename == ".." {
		return fmt.Errorf("%w: reserved name", ErrInvalidFilename)
	}

	if strings.ContainsAny(filename, "/\\") {
		return fmt.Errorf("%w: path separator not allowed", ErrInvalidFilename)
	}

	for _, r := range filename {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidFilename)
		}
	}

	// Reject filenames starting with hyphen (can be confused with command flags)
	if strings.HasPrefix(filename, "-") {
		return fmt.Errorf("%w: filename cannot start with hyphen", ErrInvalidFilename)
	}

	return nil
}

// ValidateOutputPath validates a path the tool will create.
func ValidateOutputPath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	return ValidateFilename(filepath.Base(path))
}

// Format is the layout of an attestation export.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatXML     Format = "xml"
	FormatUnknown Format = "unknown"
)

// FormatFromName determines the format from the file extension, looking
// through a trailing .xz or .gz.
func FormatFromName(filename string) Format {
	lower := strings.ToLower(filename)
	lower = strings.TrimSuffix(strings.TrimSuffix(lower, ".xz"), ".gz")

	switch filepath.Ext(lower) {
	case ".csv", ".tsv":
		return FormatCSV
	case ".xml":
		return FormatXML
	default:
		return FormatUnknown
	}
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// SniffFormat determines the format from the first bytes of the
// decompressed content.
func SniffFormat(head []byte) Format {
	head = bytes.TrimPrefix(head, utf8BOM)
	trimmed := bytes.TrimLeftFunc(head, unicode.IsSpace)
	if len(trimmed) == 0 {
		return FormatUnknown
	}
	if trimmed[0] == '<' {
		return FormatXML
	}
	if isLikelyText(head) {
		return FormatCSV
	}
	return FormatUnknown
}

// DetectFormat reconciles the extension of filename with the content in
// head. A recognised extension wins unless the content clearly says
// otherwise.
func DetectFormat(head []byte, filename string) (Format, error) {
	byName := FormatFromName(filename)
	byContent := SniffFormat(head)

	switch {
	case byName == FormatUnknown && byContent == FormatUnknown:
		return FormatUnknown, fmt.Errorf("%w: cannot tell the format of %s", ErrFormatMismatch, filename)
	case byName == FormatUnknown:
		return byContent, nil
	case byContent == FormatUnknown, byContent == byName:
		return byName, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: extension suggests %s but content is %s", ErrFormatMismatch, byName, byContent)
	}
}

// isLikelyText reports whether buf looks like UTF-8 text. A rune cut off at
// the end of buf is tolerated.
func isLikelyText(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}

	// Check for null bytes (strong indicator of binary content)
	if bytes.IndexByte(buf, 0) != -1 {
		return false
	}

	for i := 0; i < utf8.UTFMax && len(buf) > 0 && !utf8.Valid(buf); i++ {
		buf = buf[:len(buf)-1]
	}
	if !utf8.Valid(buf) {
		return false
	}

	control := 0
	total := 0
	for _, r := range string(buf) {
		total++
		if unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r' {
			control++
		}
	}
	return float64(control) <= 0.05*float64(total)
}
