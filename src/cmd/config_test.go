package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apimgr/moviesaver/src/paths"
)

func TestConfigLifecycle(t *testing.T) {
	setupEnv(t)
	cfg := filepath.Join(t.TempDir(), "cli.yml")

	out, _, err := run(t, "", "--config", cfg, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, cfg) {
		t.Errorf("init output = %q", out)
	}
	if _, _, err := run(t, "", "--config", cfg, "config", "init"); err == nil {
		t.Error("second init should refuse to overwrite")
	}

	out, _, err = run(t, "", "--config", cfg, "config", "get", "storage.format")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "text" {
		t.Errorf("storage.format = %q, want text", out)
	}

	if _, _, err := run(t, "", "--config", cfg, "config", "set", "storage.format", "json"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, _, err = run(t, "", "--config", cfg, "config", "get", "storage.format")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "json" {
		t.Errorf("storage.format = %q, want json", out)
	}

	out, _, err = run(t, "", "--config", cfg, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "format: json") {
		t.Errorf("show = %q", out)
	}
}

func TestConfigSetUnknownKey(t *testing.T) {
	setupEnv(t)
	cfg := filepath.Join(t.TempDir(), "cli.yml")

	if _, _, err := run(t, "", "--config", cfg, "config", "set", "server.address", "x"); err == nil {
		t.Error("unknown key should be rejected")
	}
	if _, err := os.Stat(cfg); err == nil {
		t.Error("rejected set should not write the config")
	}
}

func TestConfigGetMissing(t *testing.T) {
	setupEnv(t)
	if _, _, err := run(t, "", "config", "get", "no.such.key"); err == nil {
		t.Error("missing key should fail")
	}
}

func TestConfigPath(t *testing.T) {
	setupEnv(t)

	tests := []struct {
		flag string
		want string
	}{
		{"", paths.ConfigFile()},
		{"work", filepath.Join(paths.ConfigDir(), "work.yml")},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			args := []string{"config", "path"}
			if tt.flag != "" {
				args = append([]string{"--config", tt.flag}, args...)
			}
			out, _, err := run(t, "", args...)
			if err != nil {
				t.Fatal(err)
			}
			if strings.TrimSpace(out) != tt.want {
				t.Errorf("path = %q, want %q", strings.TrimSpace(out), tt.want)
			}
		})
	}
}

func TestConfigFileDrivesStorage(t *testing.T) {
	dir := setupEnv(t)
	cfg := filepath.Join(t.TempDir(), "cli.yml")
	content := "storage:\n  dir: " + dir + "\n  format: yaml\n"
	if err := os.WriteFile(cfg, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := run(t, "", "--config", cfg, "add", "Heat"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "movies.yml")); err != nil {
		t.Errorf("expected movies.yml from config: %v", err)
	}
}

func TestIsKnownKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"storage.format", true},
		{"storage.backups", true},
		{"journal.enabled", true},
		{"storage", false},
		{"server.address", false},
	}
	for _, tt := range tests {
		if got := isKnownKey(tt.key); got != tt.want {
			t.Errorf("isKnownKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestDefaultConfigMatchesDefaults(t *testing.T) {
	for _, d := range defaults {
		leaf := d.key[strings.LastIndex(d.key, ".")+1:]
		if !strings.Contains(defaultConfig, "  "+leaf+":") {
			t.Errorf("defaultConfig missing %s", d.key)
		}
	}
}
