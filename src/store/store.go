// Package store persists the movie catalog. Every store loads and saves the whole
// sequence at once; there are no partial or appending writes.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/apimgr/moviesaver/src/model"
)

// Store errors
var (
	// ErrCorrupt marks a persisted catalog that exists but cannot be decoded
	ErrCorrupt = errors.New("corrupt catalog data")

	// ErrUnknownFormat is returned for an unsupported format name or file extension
	ErrUnknownFormat = errors.New("unknown storage format")

	// ErrSameStore is returned when converting a store onto itself
	ErrSameStore = errors.New("source and destination are the same file")
)

// Store loads and saves a complete catalog
type Store interface {
	// Load returns the persisted sequence. A missing file yields an empty
	// sequence and no error; undecodable content yields an error wrapping ErrCorrupt.
	Load(ctx context.Context) ([]model.Movie, error)

	// Save overwrites the persisted sequence, creating the parent directory if needed.
	Save(ctx context.Context, movies []model.Movie) error

	Path() string
	Format() Format
}

// Format names a persistence encoding
type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// Defaults for Config
const (
	DefaultDir       = "MovieData"
	DefaultDelimiter = "|"
	defaultBaseName  = "movies"
)

// Formats lists every supported format
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatSQLite}
}

// ParseFormat maps user-friendly names to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt", "delimited", "pipe":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "sqlite", "sqlite3", "db":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: text, json, yaml, sqlite)", ErrUnknownFormat, s)
	}
}

// FormatFromPath detects the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Extension returns the default file extension for the format, without the dot
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yml"
	case FormatSQLite:
		return "db"
	default:
		return "txt"
	}
}

// DefaultFile returns the default file name for the format, e.g. movies.txt
func (f Format) DefaultFile() string {
	return defaultBaseName + "." + f.Extension()
}

// Config selects and locates a store
type Config struct {
	Dir       string // Storage directory, DefaultDir when empty.
	File      string // File name or absolute path; derived from the format when empty.
	Format    string // Format name; detected from File's extension when empty.
	Delimiter string // Field delimiter for the text format, DefaultDelimiter when empty.
}

// Resolve fills in defaults and returns the format and full file path
func (c Config) Resolve() (Format, string, error) {
	var (
		format Format
		err    error
	)
	switch {
	case c.Format != "":
		format, err = ParseFormat(c.Format)
	case c.File != "":
		format, err = FormatFromPath(c.File)
	default:
		format = FormatText
	}
	if err != nil {
		return "", "", err
	}

	file := c.File
	if file == "" {
		file = format.DefaultFile()
	}
	if filepath.IsAbs(file) {
		return format, file, nil
	}

	dir := c.Dir
	if dir == "" {
		dir = DefaultDir
	}
	return format, filepath.Join(dir, file), nil
}

// Open returns the store described by cfg
func Open(cfg Config) (Store, error) {
	format, path, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatText:
		delim := cfg.Delimiter
		if delim == "" {
			delim = DefaultDelimiter
		}
		if utf8.RuneCountInString(delim) != 1 || delim == "\n" || delim == "\r" {
			return nil, fmt.Errorf("text delimiter must be a single character, got %q", delim)
		}
		r, _ := utf8.DecodeRuneInString(delim)
		return NewFileStore(path, TextCodec{Delimiter: r}), nil
	case FormatJSON:
		return NewFileStore(path, JSONCodec{}), nil
	case FormatYAML:
		return NewFileStore(path, YAMLCodec{}), nil
	case FormatSQLite:
		return NewSQLiteStore(path), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Convert copies the whole sequence from one store to another and returns the number of
// movies written. A corrupt source aborts the conversion so nothing is overwritten with an
// empty catalog.
func Convert(ctx context.Context, from, to Store) (int, error) {
	if samePath(from.Path(), to.Path()) {
		return 0, fmt.Errorf("%w: %s", ErrSameStore, from.Path())
	}

	movies, err := from.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", from.Path(), err)
	}
	if err := to.Save(ctx, movies); err != nil {
		return 0, fmt.Errorf("save %s: %w", to.Path(), err)
	}
	return len(movies), nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
