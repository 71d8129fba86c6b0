// ABOUTME: RestoreOnPanic recovers from panics, restores the terminal, and prints the stack trace.
// ABOUTME: Releases a held raw session and resets colors before exiting with code 1.

package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// Restorer puts a terminal back into the state the process found it in.
type Restorer interface {
	Restore() error
}

// Both backends can be restored after a panic.
var (
	_ Restorer = (*ANSITerminal)(nil)
	_ Restorer = (*ConsoleTerminal)(nil)
)

// stderr is where panic reports go; tests swap it.
var stderr io.Writer = os.Stderr

// exit terminates the process; tests swap it.
var exit = os.Exit

// RestoreOnPanic should be deferred at the top of main (or whichever
// goroutine owns the terminal). On panic it releases a held raw session,
// resets colors, prints the panic value and stack trace, then exits with
// code 1.
func RestoreOnPanic(t Restorer) {
	r := recover()
	if r == nil {
		return
	}

	_ = t.Restore()

	fmt.Fprintf(stderr, "\npanic: %v\n\n%s\n", r, debug.Stack())
	exit(1)
}
