// Package paths resolves the CLI config, log and backup locations.
// Linux follows XDG; Windows uses APPDATA / LOCALAPPDATA.
// The catalog itself lives in storage.dir, relative to the working directory.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	projectOrg  = "apimgr"
	projectName = "moviesaver"
)

// goos is overridden in tests
var goos = runtime.GOOS

// ErrNoHome is returned for per-user locations that cannot be anchored to a home
// or XDG directory
var ErrNoHome = errors.New("home directory could not be determined")

// home returns "" when the home directory is unknown. Locations built from it are
// then relative and CheckUserDir rejects them.
func home() string {
	h, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return h
}

// CheckUserDir returns ErrNoHome when dir is not absolute, so nothing per-user is
// ever created under the working directory
func CheckUserDir(dir string) error {
	if !filepath.IsAbs(dir) {
		return fmt.Errorf("%w: refusing relative path %q", ErrNoHome, dir)
	}
	return nil
}

// ConfigDir returns the CLI config directory
// Linux: ~/.config/apimgr/moviesaver/
// Windows: %APPDATA%\apimgr\moviesaver\
func ConfigDir() string {
	if goos == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), projectOrg, projectName)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, projectOrg, projectName)
	}
	return filepath.Join(home(), ".config", projectOrg, projectName)
}

// DataDir returns the CLI data directory (backups live here)
// Linux: ~/.local/share/apimgr/moviesaver/
// Windows: %LOCALAPPDATA%\apimgr\moviesaver\data\
func DataDir() string {
	if goos == "windows" {
		return filepath.Join(os.Getenv("LOCALAPPDATA"), projectOrg, projectName, "data")
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, projectOrg, projectName)
	}
	return filepath.Join(home(), ".local", "share", projectOrg, projectName)
}

// LogDir returns the CLI log directory
// Linux: ~/.local/log/apimgr/moviesaver/
// Windows: %LOCALAPPDATA%\apimgr\moviesaver\log\
func LogDir() string {
	if goos == "windows" {
		return filepath.Join(os.Getenv("LOCALAPPDATA"), projectOrg, projectName, "log")
	}
	return filepath.Join(home(), ".local", "log", projectOrg, projectName)
}

// BackupDir returns the directory holding catalog snapshots
func BackupDir() string {
	return filepath.Join(DataDir(), "backups")
}

// ConfigFile returns the CLI config file path
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "cli.yml")
}

// LogFile returns the CLI log file path
func LogFile() string {
	return filepath.Join(LogDir(), "cli.log")
}

// JournalFile returns the catalog journal path
func JournalFile() string {
	return filepath.Join(LogDir(), "journal.log")
}

// EnsureDirs creates the config and log directories.
// Called on startup before any file operations. Each directory is attempted even
// when another fails.
func EnsureDirs() error {
	var errs []error
	for _, dir := range []string{ConfigDir(), LogDir()} {
		if err := CheckUserDir(dir); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := os.MkdirAll(dir, 0700); err != nil {
			errs = append(errs, fmt.Errorf("create dir %s: %w", dir, err))
		}
	}
	return errors.Join(errs...)
}

// EnsureFile creates the parent directories of path
func EnsureFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the home directory
func ExpandHome(path string) string {
	if path == "~" {
		return home()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home(), path[2:])
	}
	return path
}

// ResolveConfigPath resolves the --config flag to a file path.
// Empty means the default cli.yml; bare names resolve inside ConfigDir; a missing
// extension becomes .yml unless a .yaml file already exists.
func ResolveConfigPath(configFlag string) string {
	if configFlag == "" {
		return ConfigFile()
	}

	configFlag = ExpandHome(configFlag)
	if !filepath.IsAbs(configFlag) && !strings.ContainsRune(configFlag, filepath.Separator) {
		configFlag = filepath.Join(ConfigDir(), configFlag)
	}
	return addExtIfNeeded(configFlag)
}

func addExtIfNeeded(path string) string {
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		return path
	case "":
		if _, err := os.Stat(path + ".yaml"); err == nil {
			return path + ".yaml"
		}
		return path + ".yml"
	default:
		return path
	}
}
