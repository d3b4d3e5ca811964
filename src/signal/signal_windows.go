//go:build windows

package signal

import (
	"os"
	"os/signal"
	"syscall"
)

// setupSignals routes Windows console signals; there is no SIGUSR1
func setupSignals(h Handlers) func() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

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
	handleInterrupt(h, sig)
}
