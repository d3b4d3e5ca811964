package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()
	if info.Version == "" {
		t.Error("Version should not be empty")
	}
	if info.OS != runtime.GOOS {
		t.Errorf("OS = %q, want %q", info.OS, runtime.GOOS)
	}
	if info.Arch != runtime.GOARCH {
		t.Errorf("Arch = %q, want %q", info.Arch, runtime.GOARCH)
	}
	if info.GoVersion == "" {
		t.Error("GoVersion should not be empty")
	}
}

func TestInfoString(t *testing.T) {
	info := Info{Version: "1.2.0", Commit: "0123456789abcdef", BuildDate: "2025-01-01"}
	want := "v1.2.0 (0123456) built 2025-01-01"
	if got := info.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestInfoFull(t *testing.T) {
	full := Get().Full()
	for _, label := range []string{"Version:", "Commit:", "Build Date:", "Go Version:", "OS/Arch:"} {
		if !strings.Contains(full, label) {
			t.Errorf("Full() missing %q", label)
		}
	}
}

func TestIsDev(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	tests := map[string]bool{
		"dev":       true,
		"":          true,
		"1.0.0-dev": true,
		"1.0.0":     false,
	}
	for v, want := range tests {
		Version = v
		if got := IsDev(); got != want {
			t.Errorf("IsDev() with %q = %v, want %v", v, got, want)
		}
	}
}
