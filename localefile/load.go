package localefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a serialization format for locale files.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for file extensions no decoder handles.
var ErrUnknownFormat = errors.New("unknown locale file format")

// SyntaxError reports a document that could not be decoded at all.
type SyntaxError struct {
	// Source is the file path, or empty when parsing raw data.
	Source string
	Format Format
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("parsing %s: %v", strings.ToUpper(string(e.Format)), e.Err)
	}
	return fmt.Sprintf("parsing %s: %v", e.Source, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// IsSyntaxError reports whether err is, or wraps, a *SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}

// decoders maps each format to its document decoder. A decoder returns the
// top-level mapping of the document.
var decoders = map[Format]func(data []byte) (*Branch, error){
	FormatYAML: decodeYAML,
	FormatJSON: decodeJSON,
	FormatTOML: decodeTOML,
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Decode decodes data into a document mapping without applying the
// single-locale rule. Decoding failures are returned as *SyntaxError.
func Decode(data []byte, format Format) (*Branch, error) {
	decode, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	doc, err := decode(data)
	if err != nil {
		if IsSyntaxError(err) || errors.Is(err, ErrNotMapping) {
			return nil, err
		}
		return nil, &SyntaxError{Format: format, Err: err}
	}
	return doc, nil
}

// Parse decodes data and builds a Tree from it.
func Parse(data []byte, format Format) (*Tree, error) {
	doc, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return New(doc, "")
}

// ParseFile reads, decodes and builds the Tree stored at path.
func ParseFile(path string) (*Tree, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Decode(data, format)
	if err != nil {
		var se *SyntaxError
		if errors.As(err, &se) {
			se.Source = path
		}
		return nil, err
	}
	t, err := New(doc, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// IsParseable reports whether the file at path decodes. Only syntax errors
// make it return false; any other failure, including a document with more
// than one top-level key, is returned as an error.
func IsParseable(path string) (bool, error) {
	if _, err := ParseFile(path); err != nil {
		if IsSyntaxError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
