package main

import (
	"fmt"

	"github.com/apimgr/moviesaver/src/paths"
)

// InitCLI prepares the per-user directories before any command runs.
// Logging and config are set up by the root command once flags are parsed.
// A failure here is reported by the caller and does not stop the catalog, which
// lives in the working directory.
func InitCLI() error {
	if err := paths.EnsureDirs(); err != nil {
		return fmt.Errorf("init directories: %w", err)
	}
	return nil
}
