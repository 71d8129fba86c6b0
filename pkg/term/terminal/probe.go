// ABOUTME: Capability probe: interactive-terminal detection per stream and color depth detection.
// ABOUTME: Uses go-isatty (including Cygwin/MSYS ptys) and termenv's environment-aware profile.

package terminal

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// IsInteractive reports whether f is attached to an interactive terminal.
// Redirected and piped streams report false.
func IsInteractive(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ColorDepth is the richest color model a terminal advertises.
type ColorDepth int

const (
	Depth16 ColorDepth = iota
	Depth256
	DepthRGB
)

func (d ColorDepth) String() string {
	switch d {
	case DepthRGB:
		return "rgb"
	case Depth256:
		return "256"
	}
	return "16"
}

// DetectColorDepth inspects the environment (TERM, COLORTERM, NO_COLOR,
// CLICOLOR_FORCE) for the stream f. Terminals without color are reported
// as Depth16, the smallest depth this package supports.
func DetectColorDepth(f *os.File) ColorDepth {
	if f == nil {
		return Depth16
	}

	return profileDepth(termenv.NewOutput(f))
}

// profileDepth maps the environment-adjusted profile of o to a ColorDepth.
func profileDepth(o *termenv.Output) ColorDepth {
	switch o.EnvColorProfile() {
	case termenv.TrueColor:
		return DepthRGB
	case termenv.ANSI256:
		return Depth256
	}
	return Depth16
}
