// Package loader reads configuration files and environment variables.
//
// Files are decoded into a caller-supplied struct. The format is chosen by
// file extension: .toml for TOML, .yaml or .yml for YAML. Unknown keys are
// rejected in both formats.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for file extensions with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Format identifies a configuration file format.
type Format int

const (
	// FormatTOML is TOML (github.com/pelletier/go-toml/v2).
	FormatTOML Format = iota
	// FormatYAML is YAML (gopkg.in/yaml.v3).
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatForPath returns the format implied by path's extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// FileLoader decodes configuration files into structs.
type FileLoader struct {
	fs FileSystem
}

// NewFileLoader creates a loader backed by the OS file system.
func NewFileLoader() *FileLoader {
	return &FileLoader{fs: DefaultFS()}
}

// NewFileLoaderWithFS creates a loader with a custom file system.
func NewFileLoaderWithFS(fsys FileSystem) *FileLoader {
	return &FileLoader{fs: fsys}
}

// LoadInto decodes the file at path into v.
// Returns false and no error if the file does not exist; v is untouched.
func (l *FileLoader) LoadInto(path string, v any) (bool, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return false, err
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := Decode(format, path, data, v); err != nil {
		return false, err
	}
	return true, nil
}

// LoadFromReader decodes configuration in the given format from r into v.
func (l *FileLoader) LoadFromReader(format Format, r io.Reader, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	return Decode(format, "<reader>", data, v)
}

// Decode decodes data in the given format into v.
// Source names the data in errors.
func Decode(format Format, source string, data []byte, v any) error {
	switch format {
	case FormatTOML:
		return decodeTOML(source, data, v)
	case FormatYAML:
		return decodeYAML(source, data, v)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
