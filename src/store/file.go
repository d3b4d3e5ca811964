package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/apimgr/moviesaver/src/model"
)

// FileStore keeps the catalog in a single file encoded by a Codec
type FileStore struct {
	path  string
	codec Codec
}

// NewFileStore returns a store for path using codec
func NewFileStore(path string, codec Codec) *FileStore {
	return &FileStore{path: path, codec: codec}
}

func (s *FileStore) Path() string   { return s.path }
func (s *FileStore) Format() Format { return s.codec.Format() }

// Load reads and decodes the file. A missing file is an empty catalog.
func (s *FileStore) Load(ctx context.Context) ([]model.Movie, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	movies, err := s.codec.Decode(f)
	if err != nil {
		return nil, err
	}
	return movies, nil
}

// Save encodes the full sequence and overwrites the file
func (s *FileStore) Save(ctx context.Context, movies []model.Movie) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create storage directory: %w", err)
	}

	var buf bytes.Buffer
	if err := s.codec.Encode(&buf, movies); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
