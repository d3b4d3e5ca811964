// Package backup keeps compressed snapshots of the catalog file
package backup

import (
	"archive/tar"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	manifestName  = "manifest.json"
	archivePrefix = "movies_"
	archiveSuffix = ".tar.gz"
)

// Backup errors
var (
	ErrNotFound     = errors.New("backup not found")
	ErrInvalidName  = errors.New("invalid backup name")
	ErrChecksum     = errors.New("backup checksum mismatch")
	ErrNoManifest   = errors.New("manifest not found in backup")
	ErrNoSourceFile = errors.New("source file not found")
)

// Manifest describes the content of one snapshot
type Manifest struct {
	Version    string    `json:"version"` // Manifest format version
	CreatedAt  time.Time `json:"created_at"`
	AppVersion string    `json:"app_version"`
	Source     string    `json:"source"` // Path of the file that was backed up
	File       string    `json:"file"`   // Entry name inside the archive
	Size       int64     `json:"size"`
	Checksum   string    `json:"checksum"` // "sha256:<hex>"
}

// Info summarizes a snapshot on disk
type Info struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
	Source    string    `json:"source,omitempty"`
}

// Manager creates, lists, restores and prunes snapshots in one directory
type Manager struct {
	dir        string
	appVersion string
}

// NewManager returns a manager storing snapshots in dir
func NewManager(dir, appVersion string) *Manager {
	return &Manager{dir: dir, appVersion: appVersion}
}

// Dir returns the snapshot directory
func (m *Manager) Dir() string {
	return m.dir
}

// Create archives source with a manifest and returns the snapshot name.
// Names sort in creation order.
func (m *Manager) Create(source string) (string, error) {
	data, err := os.ReadFile(source)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNoSourceFile, source)
		}
		return "", fmt.Errorf("read source: %w", err)
	}

	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	name := archivePrefix + ulid.Make().String() + archiveSuffix
	path := filepath.Join(m.dir, name)

	sum := sha256.Sum256(data)
	manifest := Manifest{
		Version:    "1",
		CreatedAt:  time.Now(),
		AppVersion: m.appVersion,
		Source:     source,
		File:       filepath.Base(source),
		Size:       int64(len(data)),
		Checksum:   "sha256:" + hex.EncodeToString(sum[:]),
	}

	if err := writeArchive(path, manifest, data); err != nil {
		os.Remove(path)
		return "", err
	}
	return name, nil
}

func writeArchive(path string, manifest Manifest, data []byte) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	defer file.Close()

	gzWriter := gzip.NewWriter(file)
	tarWriter := tar.NewWriter(gzWriter)

	metaJSON, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	entries := []struct {
		name string
		body []byte
	}{
		{manifestName, metaJSON},
		{manifest.File, data},
	}
	for _, e := range entries {
		header := &tar.Header{
			Name:    e.name,
			Size:    int64(len(e.body)),
			Mode:    0644,
			ModTime: manifest.CreatedAt,
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			return fmt.Errorf("write %s header: %w", e.name, err)
		}
		if _, err := tarWriter.Write(e.body); err != nil {
			return fmt.Errorf("write %s: %w", e.name, err)
		}
	}

	if err := tarWriter.Close(); err != nil {
		return fmt.Errorf("close tar: %w", err)
	}
	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("close gzip: %w", err)
	}
	return file.Sync()
}

// List returns all snapshots, newest first
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() || !isArchiveName(entry.Name()) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}

		bi := Info{
			Name:      entry.Name(),
			Path:      filepath.Join(m.dir, entry.Name()),
			Size:      fi.Size(),
			CreatedAt: fi.ModTime(),
		}
		if manifest, _, err := readArchive(bi.Path); err == nil {
			bi.CreatedAt = manifest.CreatedAt
			bi.Source = manifest.Source
		}
		backups = append(backups, bi)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Name > backups[j].Name
	})
	return backups, nil
}

// Manifest reads the manifest of the named snapshot
func (m *Manager) Manifest(name string) (*Manifest, error) {
	path, err := m.resolve(name)
	if err != nil {
		return nil, err
	}
	manifest, _, err := readArchive(path)
	return manifest, err
}

// Restore verifies the named snapshot and writes its file to dest, replacing any
// existing content
func (m *Manager) Restore(name, dest string) error {
	path, err := m.resolve(name)
	if err != nil {
		return err
	}

	manifest, data, err := readArchive(path)
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("%w: %s missing from archive", ErrNotFound, manifest.File)
	}

	sum := sha256.Sum256(data)
	if got := "sha256:" + hex.EncodeToString(sum[:]); got != manifest.Checksum {
		return fmt.Errorf("%w: %s", ErrChecksum, name)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}

// Delete removes the named snapshot
func (m *Manager) Delete(name string) error {
	path, err := m.resolve(name)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// Prune deletes the oldest snapshots so that at most keep remain
func (m *Manager) Prune(keep int) error {
	if keep < 0 {
		keep = 0
	}
	backups, err := m.List()
	if err != nil {
		return err
	}

	var errs []error
	for i := keep; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) resolve(name string) (string, error) {
	if name != filepath.Base(name) || !isArchiveName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	path := filepath.Join(m.dir, name)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return "", err
	}
	return path, nil
}

func isArchiveName(name string) bool {
	return strings.HasPrefix(name, archivePrefix) && strings.HasSuffix(name, archiveSuffix)
}

// readArchive returns the manifest and the backed up file content
func readArchive(path string) (*Manifest, []byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("open gzip: %w", err)
	}
	defer gzReader.Close()

	var (
		manifest *Manifest
		files    = make(map[string][]byte)
	)
	tarReader := tar.NewReader(gzReader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read tar: %w", err)
		}

		body, err := io.ReadAll(tarReader)
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", header.Name, err)
		}
		if header.Name == manifestName {
			manifest = &Manifest{}
			if err := json.Unmarshal(body, manifest); err != nil {
				return nil, nil, fmt.Errorf("decode manifest: %w", err)
			}
			continue
		}
		files[header.Name] = body
	}

	if manifest == nil {
		return nil, nil, ErrNoManifest
	}
	return manifest, files[manifest.File], nil
}

// FormatSize returns a human-readable size
func (bi Info) FormatSize() string {
	const unit = 1024
	if bi.Size < unit {
		return fmt.Sprintf("%d B", bi.Size)
	}
	div, exp := int64(unit), 0
	for n := bi.Size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bi.Size)/float64(div), "KMGTPE"[exp])
}
