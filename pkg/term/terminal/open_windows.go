// ABOUTME: Windows backend selection: the structured console backend over the std handles.
// ABOUTME: The escape-sequence backend needs a POSIX tty driver and is reported as unsupported.

//go:build windows

package terminal

import (
	"fmt"
	"os"
)

// Open returns the backend b over the process's standard streams. The
// console backend has no timing heuristics to tune.
func Open(b Backend, _ Options) (Terminal, error) {
	switch b {
	case BackendAuto, BackendConsole, "":
		return NewConsoleTerminal(NewWindowsConsole(os.Stdin, os.Stdout)), nil
	}
	return nil, fmt.Errorf("opening %s backend: %w", b, ErrUnsupportedBackend)
}
