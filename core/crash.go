package core

import (
	"fmt"
	"os"
	"runtime/debug"
)

// terminalReset leaves the alternate screen, restores default
// attributes and re-shows the cursor, so a crash inside a TUI host
// does not leave the terminal unusable.
const terminalReset = "\x1b[?1049l\x1b[0m\x1b[?25h"

// HandleCrash is the unified panic handler: it resets the terminal and
// prints the recovered value with a stack trace before exiting.
func HandleCrash(r any) {
	if r == nil {
		return
	}

	os.Stdout.WriteString(terminalReset)
	os.Stdout.Sync()

	fmt.Fprintf(os.Stderr, "\r\ncrash: %v\r\n", r)
	fmt.Fprintf(os.Stderr, "stack trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs fn in a new goroutine with panic recovery. Use this instead
// of the go keyword for loops that run under a TUI screen.
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
