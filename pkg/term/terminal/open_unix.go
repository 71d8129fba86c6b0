// ABOUTME: Unix backend selection: the escape-sequence backend over stdin/stdout.
// ABOUTME: The console backend does not exist here and is reported as unsupported.

//go:build unix

package terminal

import (
	"fmt"
	"os"
)

// Open returns the backend b over the process's standard streams.
func Open(b Backend, opts Options) (Terminal, error) {
	switch b {
	case BackendAuto, BackendANSI, "":
		return NewANSITerminal(NewTTYHost(os.Stdin, os.Stdout), opts), nil
	}
	return nil, fmt.Errorf("opening %s backend: %w", b, ErrUnsupportedBackend)
}
