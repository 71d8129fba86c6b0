// ABOUTME: Backend selection for platforms with neither a POSIX tty driver nor a Windows console.
// ABOUTME: Every backend is reported as unsupported.

//go:build !unix && !windows

package terminal

import "fmt"

// Open always fails: no backend exists for this platform.
func Open(b Backend, _ Options) (Terminal, error) {
	return nil, fmt.Errorf("opening %s backend: %w", b, ErrUnsupportedBackend)
}
