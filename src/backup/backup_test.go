package backup

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "MovieData", "movies.txt")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCreateAndManifest(t *testing.T) {
	src := writeSource(t, "2024-01-01 00:00:00|Heat|1995|4.5\n")
	m := NewManager(filepath.Join(t.TempDir(), "backups"), "1.2.3")

	name, err := m.Create(src)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !strings.HasPrefix(name, "movies_") || !strings.HasSuffix(name, ".tar.gz") {
		t.Errorf("Create() name = %q", name)
	}

	manifest, err := m.Manifest(name)
	if err != nil {
		t.Fatalf("Manifest() error = %v", err)
	}
	if manifest.AppVersion != "1.2.3" {
		t.Errorf("AppVersion = %q, want '1.2.3'", manifest.AppVersion)
	}
	if manifest.Source != src {
		t.Errorf("Source = %q, want %q", manifest.Source, src)
	}
	if manifest.File != "movies.txt" {
		t.Errorf("File = %q, want 'movies.txt'", manifest.File)
	}
	if !strings.HasPrefix(manifest.Checksum, "sha256:") {
		t.Errorf("Checksum = %q", manifest.Checksum)
	}
}

func TestCreateMissingSource(t *testing.T) {
	m := NewManager(t.TempDir(), "dev")
	_, err := m.Create(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, ErrNoSourceFile) {
		t.Errorf("Create() error = %v, want ErrNoSourceFile", err)
	}
}

func TestRestore(t *testing.T) {
	src := writeSource(t, "original\n")
	m := NewManager(t.TempDir(), "dev")

	name, err := m.Create(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, []byte("changed\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := m.Restore(name, src); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	data, _ := os.ReadFile(src)
	if string(data) != "original\n" {
		t.Errorf("restored content = %q, want 'original\\n'", data)
	}
}

func TestRestoreDetectsTampering(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, "dev")
	name := "movies_tampered.tar.gz"

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for _, e := range []struct{ name, body string }{
		{"manifest.json", `{"version":"1","file":"movies.txt","checksum":"sha256:00"}`},
		{"movies.txt", "data\n"},
	} {
		tw.WriteHeader(&tar.Header{Name: e.name, Size: int64(len(e.body)), Mode: 0644})
		tw.Write([]byte(e.body))
	}
	tw.Close()
	gz.Close()
	f.Close()

	err = m.Restore(name, filepath.Join(t.TempDir(), "out.txt"))
	if !errors.Is(err, ErrChecksum) {
		t.Errorf("Restore() error = %v, want ErrChecksum", err)
	}
}

func TestResolveRejectsBadNames(t *testing.T) {
	m := NewManager(t.TempDir(), "dev")

	for _, name := range []string{"../movies_x.tar.gz", "other.tar.gz", "movies_x.zip", ""} {
		if err := m.Delete(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Delete(%q) error = %v, want ErrInvalidName", name, err)
		}
	}
	if err := m.Delete("movies_missing.tar.gz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}

func TestListNewestFirstAndPrune(t *testing.T) {
	src := writeSource(t, "x\n")
	m := NewManager(t.TempDir(), "dev")

	var names []string
	for i := 0; i < 4; i++ {
		name, err := m.Create(src)
		if err != nil {
			t.Fatal(err)
		}
		names = append(names, name)
	}

	list, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 4 {
		t.Fatalf("List() len = %d, want 4", len(list))
	}
	if list[0].Name != names[3] || list[3].Name != names[0] {
		t.Errorf("List() order = %v", list)
	}
	if list[0].Source != src {
		t.Errorf("Source = %q, want %q", list[0].Source, src)
	}

	if err := m.Prune(2); err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	list, _ = m.List()
	if len(list) != 2 {
		t.Fatalf("List() after prune len = %d, want 2", len(list))
	}
	if list[0].Name != names[3] || list[1].Name != names[2] {
		t.Errorf("Prune kept %v, want newest two", list)
	}
}

func TestListMissingDir(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "none"), "dev")
	list, err := m.List()
	if err != nil || len(list) != 0 {
		t.Errorf("List() = %v, %v; want empty, nil", list, err)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}
	for _, tt := range tests {
		if got := (Info{Size: tt.size}).FormatSize(); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
