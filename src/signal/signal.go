// Package signal routes process signals for the interactive CLI.
// Signal sets are platform-dependent and live behind build tags.
package signal

import (
	"errors"
	"log/slog"
	"os"
	"sync"
)

// ExitInterrupted is the exit status after an interrupt (128 + SIGINT)
const ExitInterrupted = 130

// Handlers configures what each signal does
type Handlers struct {
	// OnInterrupt runs before the process exits on SIGINT, SIGTERM or SIGQUIT
	OnInterrupt func(sig os.Signal)
	// OnReopenLogs runs on SIGUSR1 (Unix only)
	OnReopenLogs func()
	// Exit terminates the process, os.Exit when nil
	Exit func(code int)
}

// ErrInterrupted is returned by commands that stopped early because of an interrupt
var ErrInterrupted = errors.New("interrupted")

// Interceptor gets first look at an interrupt. Returning true means the signal was
// handled and the process must not exit.
type Interceptor func(sig os.Signal) bool

type interceptor struct {
	id int
	fn Interceptor
}

var (
	interrupted  bool
	interceptors []interceptor
	nextID       int
	mu           sync.RWMutex
)

// Interrupted reports whether an interrupt signal was received
func Interrupted() bool {
	mu.RLock()
	defer mu.RUnlock()
	return interrupted
}

func setInterrupted(v bool) {
	mu.Lock()
	defer mu.Unlock()
	interrupted = v
}

// Intercept registers fn ahead of the default interrupt handling. The most recently
// registered interceptor runs first. The returned release removes it.
func Intercept(fn Interceptor) (release func()) {
	mu.Lock()
	nextID++
	id := nextID
	interceptors = append(interceptors, interceptor{id: id, fn: fn})
	mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			mu.Lock()
			defer mu.Unlock()
			for i, ic := range interceptors {
				if ic.id == id {
					interceptors = append(interceptors[:i:i], interceptors[i+1:]...)
					return
				}
			}
		})
	}
}

func snapshotInterceptors() []interceptor {
	mu.RLock()
	defer mu.RUnlock()
	return append([]interceptor(nil), interceptors...)
}

// Setup starts routing signals to h and returns a function that stops it
func Setup(h Handlers) (stop func()) {
	if h.Exit == nil {
		h.Exit = os.Exit
	}
	return setupSignals(h)
}

// handleInterrupt ends the process without saving unless an interceptor handles it
func handleInterrupt(h Handlers, sig os.Signal) {
	setInterrupted(true)
	ics := snapshotInterceptors()
	for i := len(ics) - 1; i >= 0; i-- {
		if ics[i].fn(sig) {
			slog.Warn("interrupt handled by active command", "signal", sig.String())
			return
		}
	}
	slog.Warn("interrupted, unsaved changes discarded", "signal", sig.String())
	if h.OnInterrupt != nil {
		h.OnInterrupt(sig)
	}
	h.Exit(ExitInterrupted)
}

func handleReopenLogs(h Handlers) {
	slog.Info("reopening logs")
	if h.OnReopenLogs != nil {
		h.OnReopenLogs()
	}
}
