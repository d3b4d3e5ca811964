package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	sigsvc "github.com/apimgr/moviesaver/src/signal"
)

func TestInitCLI(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	if err := InitCLI(); err != nil {
		t.Fatalf("InitCLI() error = %v", err)
	}

	for _, dir := range []string{
		filepath.Join(home, ".config", "apimgr", "moviesaver"),
		filepath.Join(home, ".local", "log", "apimgr", "moviesaver"),
	} {
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			t.Errorf("expected directory %s: %v", dir, err)
		}
	}
}

func TestInitCLIUnwritableHome(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", blocker)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(blocker, "config"))

	if err := InitCLI(); err == nil {
		t.Error("InitCLI() should report directories it cannot create")
	}

	ran := false
	code := run(func() error {
		ran = true
		return nil
	})
	if !ran {
		t.Error("commands should still run when per-user directories are unavailable")
	}
	if code != 0 {
		t.Errorf("run() = %d, want 0", code)
	}
}

func TestRunExitCodes(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	tests := []struct {
		name    string
		execute func() error
		want    int
	}{
		{"success", func() error { return nil }, 0},
		{"error", func() error { return errors.New("save failed") }, 1},
		{"panic", func() error { panic("index out of range") }, 1},
		{"interrupted", func() error { return fmt.Errorf("tui: %w", sigsvc.ErrInterrupted) }, sigsvc.ExitInterrupted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.execute); got != tt.want {
				t.Errorf("run() = %d, want %d", got, tt.want)
			}
		})
	}
}
