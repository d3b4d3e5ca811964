//go:build !windows

package signal

import (
	"os"
	"os/signal"
	"syscall"
)

// setupSignals routes Unix signals:
// SIGINT, SIGTERM, SIGQUIT exit without saving; SIGUSR1 reopens logs
func setupSignals(h Handlers) func() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan,
		syscall.SIGINT,  // 2 - Ctrl+C
		syscall.SIGTERM, // 15 - kill (default)
		syscall.SIGQUIT, // 3 - Ctrl+\
		syscall.SIGUSR1, // 10 - reopen logs after external rotation
	)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigChan:
				dispatch(h, sig)
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}

func dispatch(h Handlers, sig os.Signal) {
	switch sig {
	case syscall.SIGUSR1:
		handleReopenLogs(h)
	default:
		handleInterrupt(h, sig)
	}
}
