package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/apimgr/moviesaver/src/cmd"
	sigsvc "github.com/apimgr/moviesaver/src/signal"
)

func main() {
	os.Exit(run(cmd.Execute))
}

// run executes the CLI and maps its outcome to an exit status.
// A panic anywhere below is reported once here and exits 1.
func run(execute func() error) (code int) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("unexpected panic", "panic", r, "stack", string(debug.Stack()))
			fmt.Fprintln(os.Stderr, "Error: An unexpected error occurred.")
			code = 1
		}
	}()

	if err := InitCLI(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	stop := sigsvc.Setup(sigsvc.Handlers{
		OnInterrupt: func(sig os.Signal) {
			fmt.Fprintln(os.Stderr, "\nInterrupted. Unsaved changes were discarded.")
		},
		OnReopenLogs: func() {
			if err := cmd.ReopenLogs(); err != nil {
				slog.Warn("reopen logs failed", "error", err)
			}
		},
	})
	defer stop()

	if err := execute(); err != nil {
		if errors.Is(err, sigsvc.ErrInterrupted) {
			return sigsvc.ExitInterrupted
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
