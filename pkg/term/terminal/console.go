// ABOUTME: ConsoleTerminal implements Terminal over a structured console API with a 16-color palette.
// ABOUTME: Keeps the saved cursor slot and the lazily captured default attributes as explicit state.

package terminal

import (
	"sync"

	"github.com/mauromedda/termctl/internal/log"
	"github.com/mauromedda/termctl/pkg/term/color"
	"github.com/mauromedda/termctl/pkg/term/key"
)

// Console input mode bits cleared for raw input.
const (
	ConsoleProcessedInput uint32 = 0x0001
	ConsoleLineInput      uint32 = 0x0002
	ConsoleEchoInput      uint32 = 0x0004

	consoleCookedBits = ConsoleProcessedInput | ConsoleLineInput | ConsoleEchoInput
)

// ScreenInfo is a console screen buffer snapshot. Coordinates are 0-based
// buffer cells.
type ScreenInfo struct {
	BufferCols int
	BufferRows int
	CursorX    int
	CursorY    int
	Attributes uint16

	WindowLeft   int
	WindowTop    int
	WindowRight  int
	WindowBottom int
}

// InputEvent is one console input record. Only key events carry a payload.
type InputEvent struct {
	IsKey bool
	Key   key.ConsoleEvent
}

// ConsoleHost is the platform console API the console backend drives.
type ConsoleHost interface {
	InputInteractive() bool
	OutputInteractive() bool

	ScreenInfo() (ScreenInfo, error)
	SetCursor(x, y int) error
	SetAttributes(attr uint16) error

	// Fill writes n blank cells with attr starting at (x, y).
	Fill(x, y, n int, attr uint16) error

	InputMode() (uint32, error)
	SetInputMode(mode uint32) error

	// ReadEvent blocks for the next input record.
	ReadEvent() (InputEvent, error)
}

// ConsoleTerminal is the structured-console backend.
type ConsoleTerminal struct {
	host ConsoleHost
	raw  rawGuard

	mu sync.Mutex

	savedX, savedY int
	saved          bool

	defaults    uint16
	defaultsSet bool
}

// NewConsoleTerminal returns a console backend over host.
func NewConsoleTerminal(host ConsoleHost) *ConsoleTerminal {
	return &ConsoleTerminal{host: host}
}

// MakeRaw clears line input, echo and processed input, and restores the
// exact prior mode word on release.
func (t *ConsoleTerminal) MakeRaw() (func() error, error) {
	prior, err := t.host.InputMode()
	if err != nil {
		return nil, err
	}
	if err := t.host.SetInputMode(prior &^ consoleCookedBits); err != nil {
		return nil, err
	}
	return func() error { return t.host.SetInputMode(prior) }, nil
}

// screen returns the buffer snapshot when output is an interactive console.
func (t *ConsoleTerminal) screen() (ScreenInfo, bool) {
	if !t.host.OutputInteractive() {
		return ScreenInfo{}, false
	}
	info, err := t.host.ScreenInfo()
	if err != nil {
		log.Debug("reading console screen info: %v", err)
		return ScreenInfo{}, false
	}
	return info, true
}

// ClearScreen blanks every buffer cell with the current attributes and
// homes the cursor.
func (t *ConsoleTerminal) ClearScreen() {
	info, ok := t.screen()
	if !ok {
		return
	}
	if err := t.host.Fill(0, 0, info.BufferCols*info.BufferRows, info.Attributes); err != nil {
		log.Debug("clearing console: %v", err)
		return
	}
	t.setCursor(0, 0)
}

// Size returns the visible window size.
func (t *ConsoleTerminal) Size() Size {
	info, ok := t.screen()
	if !ok {
		return Size{}
	}
	rows := info.WindowBottom - info.WindowTop + 1
	cols := info.WindowRight - info.WindowLeft + 1
	if rows <= 0 || cols <= 0 {
		return Size{}
	}
	return Size{Rows: clampUint16(rows), Cols: clampUint16(cols)}
}

func (t *ConsoleTerminal) setCursor(x, y int) {
	if err := t.host.SetCursor(x, y); err != nil {
		log.Debug("moving console cursor: %v", err)
	}
}

// SetCursorPosition moves to the 1-based (row, col), clamped to the buffer.
func (t *ConsoleTerminal) SetCursorPosition(row, col uint16) {
	info, ok := t.screen()
	if !ok {
		return
	}
	x := clampCoord(int(col)-1, info.BufferCols)
	y := clampCoord(int(row)-1, info.BufferRows)
	t.setCursor(x, y)
}

// clampCoord limits v to [0, size-1].
func clampCoord(v, size int) int {
	if v >= size {
		v = size - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

// CursorUp moves up n rows, stopping at the top of the buffer.
func (t *ConsoleTerminal) CursorUp(n int) { t.move(0, -1, n) }

// CursorDown moves down n rows, stopping at the bottom of the buffer.
func (t *ConsoleTerminal) CursorDown(n int) { t.move(0, 1, n) }

// CursorForward moves right n columns, stopping at the right edge.
func (t *ConsoleTerminal) CursorForward(n int) { t.move(1, 0, n) }

// CursorBackward moves left n columns, stopping at the left edge.
func (t *ConsoleTerminal) CursorBackward(n int) { t.move(-1, 0, n) }

func (t *ConsoleTerminal) move(dx, dy, n int) {
	if n < 1 {
		return
	}
	info, ok := t.screen()
	if !ok {
		return
	}
	// Any count past the larger buffer side lands on the edge; capping it
	// keeps the arithmetic below from overflowing.
	n = min(n, max(info.BufferCols, info.BufferRows))
	x := clampCoord(info.CursorX+dx*n, info.BufferCols)
	y := clampCoord(info.CursorY+dy*n, info.BufferRows)
	t.setCursor(x, y)
}

// SaveCursorPosition stores the cursor in the single in-process slot.
func (t *ConsoleTerminal) SaveCursorPosition() {
	info, ok := t.screen()
	if !ok {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.savedX, t.savedY, t.saved = info.CursorX, info.CursorY, true
}

// RestoreCursorPosition returns to the saved position; without a prior
// save it does nothing.
func (t *ConsoleTerminal) RestoreCursorPosition() {
	if !t.host.OutputInteractive() {
		return
	}

	t.mu.Lock()
	x, y, saved := t.savedX, t.savedY, t.saved
	t.mu.Unlock()

	if !saved {
		return
	}
	t.setCursor(x, y)
}

// CursorPosition reads the cursor from the console as a 1-based position.
func (t *ConsoleTerminal) CursorPosition() Position {
	info, ok := t.screen()
	if !ok {
		return Position{}
	}
	if info.CursorX < 0 || info.CursorY < 0 {
		return Position{}
	}
	return Position{Row: clampUint16(info.CursorY + 1), Col: clampUint16(info.CursorX + 1)}
}

// updateAttributes applies fn to the current attribute word, capturing
// the defaults first if this is the first color call.
func (t *ConsoleTerminal) updateAttributes(fn func(uint16) uint16) {
	info, ok := t.screen()
	if !ok {
		return
	}

	t.mu.Lock()
	if !t.defaultsSet {
		t.defaults, t.defaultsSet = info.Attributes, true
	}
	t.mu.Unlock()

	if err := t.host.SetAttributes(fn(info.Attributes)); err != nil {
		log.Debug("setting console attributes: %v", err)
	}
}

// SetForegroundColor256 maps idx onto the 16-color palette. Indices
// above 15 have no console equivalent and leave the color unchanged.
func (t *ConsoleTerminal) SetForegroundColor256(idx uint8) {
	t.setIndexed(idx, "foreground", color.WithForeground)
}

// SetBackgroundColor256 is SetForegroundColor256 for the background.
func (t *ConsoleTerminal) SetBackgroundColor256(idx uint8) {
	t.setIndexed(idx, "background", color.WithBackground)
}

func (t *ConsoleTerminal) setIndexed(idx uint8, half string, with func(uint16, color.Color16) uint16) {
	if !t.host.OutputInteractive() {
		return
	}
	c, ok := color.FromIndex(idx)
	if !ok {
		log.Warn("color index %d has no 16-color console equivalent; %s unchanged", idx, half)
		return
	}
	t.updateAttributes(func(a uint16) uint16 { return with(a, c) })
}

// SetForegroundColorRGB approximates (r, g, b) with the 16-color palette.
func (t *ConsoleTerminal) SetForegroundColorRGB(r, g, b uint8) {
	c := color.FromRGB(r, g, b)
	t.updateAttributes(func(a uint16) uint16 { return color.WithForeground(a, c) })
}

// SetBackgroundColorRGB approximates (r, g, b) for the background.
func (t *ConsoleTerminal) SetBackgroundColorRGB(r, g, b uint8) {
	c := color.FromRGB(r, g, b)
	t.updateAttributes(func(a uint16) uint16 { return color.WithBackground(a, c) })
}

// ResetColors restores the attributes captured on the first color call,
// capturing the current ones if no color call happened yet.
func (t *ConsoleTerminal) ResetColors() {
	info, ok := t.screen()
	if !ok {
		return
	}

	t.mu.Lock()
	if !t.defaultsSet {
		t.defaults, t.defaultsSet = info.Attributes, true
	}
	defaults := t.defaults
	t.mu.Unlock()

	if err := t.host.SetAttributes(defaults); err != nil {
		log.Debug("restoring console attributes: %v", err)
	}
}

// ReadKey reads input records until one concludes a key-press. Key-up,
// bare modifier and non-key records are skipped.
func (t *ConsoleTerminal) ReadKey() key.KeyPress {
	if !t.host.InputInteractive() {
		return key.Unknown
	}

	release, err := t.raw.scope(t)
	if err != nil {
		log.Debug("read key: %v", err)
		return key.Unknown
	}
	defer release()

	for {
		ev, err := t.host.ReadEvent()
		if err != nil {
			log.Debug("reading console input: %v", err)
			return key.Unknown
		}
		if !ev.IsKey {
			continue
		}
		if press, done := key.ClassifyConsoleEvent(ev.Key); done {
			return press
		}
	}
}

// RawMode holds raw console input until the session is released.
func (t *ConsoleTerminal) RawMode() (*RawSession, error) {
	if !t.host.InputInteractive() {
		return nil, ErrNotInteractive
	}
	return t.raw.acquire(t)
}

// Restore releases any raw session still held and restores the default
// attributes.
func (t *ConsoleTerminal) Restore() error {
	t.ResetColors()
	return t.raw.releaseHeld()
}
