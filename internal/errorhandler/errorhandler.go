// ABOUTME: Process-wide error reporting and panic recovery for the CLIs
// ABOUTME: and for background goroutines started by the command runner.

package errorhandler

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"github.com/777genius/audio-device-manager/internal/logging"
)

// Handler decides where errors go and whether panics are swallowed
type Handler struct {
	logToConsole    bool
	exitOnCritical  bool
	recoveryEnabled bool
}

var (
	global   = &Handler{recoveryEnabled: true}
	globalMu sync.RWMutex

	// exit is replaced in tests
	exit = os.Exit
)

// Init configures the global handler
func Init(logToConsole, exitOnCritical, recoveryEnabled bool) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = &Handler{
		logToConsole:    logToConsole,
		exitOnCritical:  exitOnCritical,
		recoveryEnabled: recoveryEnabled,
	}
}

func get() *Handler {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

// HandleError logs a non-fatal error with context
func HandleError(err error, context string) {
	if err == nil {
		return
	}
	logging.Error("%s: %v", context, err)
	if get().logToConsole {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", context, err)
	}
}

// HandleCriticalError logs an error that prevents the command from completing.
// Exits with status 1 when the handler was initialized with exitOnCritical.
func HandleCriticalError(err error, context string) {
	if err == nil {
		return
	}
	h := get()
	logging.Error("CRITICAL: %s: %v", context, err)
	if h.logToConsole {
		fmt.Fprintf(os.Stderr, "Critical error: %s: %v\n", context, err)
	}
	if h.exitOnCritical {
		exit(1)
	}
}

// HandlePanic recovers a panic in the calling goroutine.
// Must be called directly via defer.
func HandlePanic() {
	if !get().recoveryEnabled {
		return
	}
	if r := recover(); r != nil {
		logging.Error("PANIC recovered: %v\n%s", r, debug.Stack())
		if get().logToConsole {
			fmt.Fprintf(os.Stderr, "Panic recovered: %v\n", r)
		}
	}
}

// SafeGo runs fn on a new goroutine with panic recovery
func SafeGo(fn func()) {
	go func() {
		defer HandlePanic()
		fn()
	}()
}
