// ABOUTME: Backend selection: names the available backends and parses them from configuration.
// ABOUTME: Open (per platform) wires the chosen backend to the process's standard streams.

package terminal

import (
	"fmt"
	"strings"
)

// Backend names a Terminal implementation.
type Backend string

const (
	// BackendAuto picks the platform's native backend.
	BackendAuto Backend = "auto"

	// BackendANSI writes escape sequences and decodes raw input bytes.
	BackendANSI Backend = "ansi"

	// BackendConsole drives the structured console API.
	BackendConsole Backend = "console"
)

// ParseBackend parses a backend name; the empty string means BackendAuto.
func ParseBackend(name string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(name))); b {
	case "":
		return BackendAuto, nil
	case BackendAuto, BackendANSI, BackendConsole:
		return b, nil
	}
	return "", fmt.Errorf("unknown backend %q (want auto, ansi or console)", name)
}
