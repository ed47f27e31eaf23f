package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

// Finalizer restores the display before a crash report is printed
// tcell.Screen satisfies it
type Finalizer interface {
	Fini()
}

var (
	crashMu       sync.RWMutex
	crashTerminal Finalizer
	crashExit     = os.Exit
)

// SetCrashTerminal registers the screen torn down by HandleCrash, nil clears it
func SetCrashTerminal(f Finalizer) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashTerminal = f
}

// HandleCrash is the unified panic handler that releases the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.RLock()
	term, exit := crashTerminal, crashExit
	crashMu.RUnlock()

	if term != nil {
		term.Fini()
	}

	// Raw mode may still be active on some terminals, \r\n keeps the trace readable
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
