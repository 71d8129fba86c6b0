// ABOUTME: Defines the Terminal interface shared by the escape-sequence and console backends.
// ABOUTME: Also holds the geometry/position value types, tunable Options and sentinel errors.

package terminal

import (
	"errors"
	"time"

	"github.com/mauromedda/termctl/pkg/term/key"
)

// Terminal is the full control surface. Operations never fail loudly: when
// the relevant stream is not interactive or the host call fails, queries
// return their zero-value sentinel and mutating calls do nothing.
//
// A process owns at most one Terminal and drives it from one goroutine.
type Terminal interface {
	ClearScreen()
	Size() Size

	SetCursorPosition(row, col uint16)
	CursorUp(n int)
	CursorDown(n int)
	CursorForward(n int)
	CursorBackward(n int)
	SaveCursorPosition()
	RestoreCursorPosition()
	CursorPosition() Position

	SetForegroundColor256(idx uint8)
	SetBackgroundColor256(idx uint8)
	SetForegroundColorRGB(r, g, b uint8)
	SetBackgroundColorRGB(r, g, b uint8)
	ResetColors()

	// ReadKey blocks for one key-press. Read failures report key.Unknown.
	ReadKey() key.KeyPress

	// RawMode holds raw input for the caller until the session is
	// released. Operations called meanwhile run inside that session
	// instead of acquiring their own.
	RawMode() (*RawSession, error)
}

// Size is a snapshot of the terminal dimensions. The zero value means the
// size is unavailable.
type Size struct {
	Rows uint16
	Cols uint16
}

// Position is a 1-based cursor position (row 1 is the top line). The zero
// value means the position is unknown.
type Position struct {
	Row uint16
	Col uint16
}

// Options tunes the timing heuristics. Zero fields take their defaults.
type Options struct {
	// EscapeWait is how long the decoder waits after ESC for the rest of
	// a sequence before reporting a bare Escape.
	EscapeWait time.Duration

	// ReadAhead is how many bytes the decoder requests after ESC.
	ReadAhead int

	// ReportTimeout bounds the wait for each byte of a cursor position
	// report.
	ReportTimeout time.Duration

	// ReportLimit caps the length of a cursor position report.
	ReportLimit int
}

const (
	DefaultReportTimeout = 200 * time.Millisecond
	DefaultReportLimit   = 32
)

// DefaultOptions returns the default tunables.
func DefaultOptions() Options {
	return Options{
		EscapeWait:    key.DefaultEscapeWait,
		ReadAhead:     key.DefaultReadAhead,
		ReportTimeout: DefaultReportTimeout,
		ReportLimit:   DefaultReportLimit,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.EscapeWait <= 0 {
		o.EscapeWait = d.EscapeWait
	}
	if o.ReadAhead <= 0 {
		o.ReadAhead = d.ReadAhead
	}
	if o.ReportTimeout <= 0 {
		o.ReportTimeout = d.ReportTimeout
	}
	if o.ReportLimit <= 0 {
		o.ReportLimit = d.ReportLimit
	}
	return o
}

var (
	// ErrRawModeActive is returned when a raw session is requested while
	// another one is held.
	ErrRawModeActive = errors.New("raw mode already active")

	// ErrNotInteractive is returned when a stream is not a terminal.
	ErrNotInteractive = errors.New("not an interactive terminal")

	// ErrUnsupportedBackend is returned by Open for a backend the platform
	// cannot provide.
	ErrUnsupportedBackend = errors.New("backend not supported on this platform")

	errOutOfBuffer = errors.New("coordinates outside the screen buffer")
)

// clampUint16 converts a host dimension to uint16, mapping non-positive
// values to 0.
func clampUint16(v int) uint16 {
	switch {
	case v <= 0:
		return 0
	case v > 0xFFFF:
		return 0xFFFF
	}
	return uint16(v)
}
