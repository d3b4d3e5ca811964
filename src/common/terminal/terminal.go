// Package terminal detects terminal capabilities for console output
package terminal

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Size represents terminal dimensions
type Size struct {
	Cols int
	Rows int
}

// fder is satisfied by *os.File
type fder interface {
	Fd() uintptr
}

// IsTerminal reports whether w is a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fder)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// GetSize returns the size of the terminal behind w, or 80x24 when unknown
func GetSize(w io.Writer) Size {
	cols, rows := 0, 0
	if f, ok := w.(fder); ok {
		cols, rows, _ = term.GetSize(int(f.Fd()))
	}
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}
	return Size{Cols: cols, Rows: rows}
}

// ColorEnabled decides whether to emit ANSI styling to w.
// setting is one of auto, always, never. NO_COLOR and TERM=dumb disable auto.
func ColorEnabled(w io.Writer, setting string, noColor bool) bool {
	if noColor {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(setting)) {
	case "always", "true", "yes", "on":
		return true
	case "never", "false", "no", "off":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return IsTerminal(w)
}
