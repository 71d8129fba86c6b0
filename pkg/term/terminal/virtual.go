// ABOUTME: VirtualConsole implements ConsoleHost for testing without a real console.
// ABOUTME: Models a cell buffer, cursor, attribute word and input mode, and replays scripted input records.

package terminal

import (
	"io"
	"sync"

	"github.com/mauromedda/termctl/pkg/term/key"
)

// DefaultConsoleMode is the cooked input mode a fresh console starts in.
const DefaultConsoleMode uint32 = ConsoleProcessedInput | ConsoleLineInput | ConsoleEchoInput | 0x0080

// VirtualConsole is a fake console host for unit tests.
// It records every mode change and keeps the buffer contents in memory.
type VirtualConsole struct {
	mu sync.Mutex

	cols, rows int
	window     [4]int // left, top, right, bottom
	cells      []rune
	attrs      []uint16

	cursorX, cursorY int
	attr             uint16
	mode             uint32
	modeSets         int

	inInteractive  bool
	outInteractive bool

	events []InputEvent
}

// NewVirtualConsole returns an interactive console with a cols x rows
// buffer, a window covering all of it and the attribute word attr.
func NewVirtualConsole(cols, rows int, attr uint16) *VirtualConsole {
	v := &VirtualConsole{
		cols:           cols,
		rows:           rows,
		window:         [4]int{0, 0, cols - 1, rows - 1},
		cells:          make([]rune, cols*rows),
		attrs:          make([]uint16, cols*rows),
		attr:           attr,
		mode:           DefaultConsoleMode,
		inInteractive:  true,
		outInteractive: true,
	}
	for i := range v.cells {
		v.cells[i] = ' '
		v.attrs[i] = attr
	}
	return v
}

// InputInteractive reports the configured input state.
func (v *VirtualConsole) InputInteractive() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.inInteractive
}

// OutputInteractive reports the configured output state.
func (v *VirtualConsole) OutputInteractive() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.outInteractive
}

// ScreenInfo returns the current buffer snapshot.
func (v *VirtualConsole) ScreenInfo() (ScreenInfo, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return ScreenInfo{
		BufferCols:   v.cols,
		BufferRows:   v.rows,
		CursorX:      v.cursorX,
		CursorY:      v.cursorY,
		Attributes:   v.attr,
		WindowLeft:   v.window[0],
		WindowTop:    v.window[1],
		WindowRight:  v.window[2],
		WindowBottom: v.window[3],
	}, nil
}

// SetCursor moves the cursor; out-of-buffer coordinates are rejected the
// way the real console rejects them.
func (v *VirtualConsole) SetCursor(x, y int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if x < 0 || y < 0 || x >= v.cols || y >= v.rows {
		return errOutOfBuffer
	}
	v.cursorX, v.cursorY = x, y
	return nil
}

// SetAttributes replaces the attribute word.
func (v *VirtualConsole) SetAttributes(attr uint16) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.attr = attr
	return nil
}

// Fill blanks n cells from (x, y), wrapping at the end of each row.
func (v *VirtualConsole) Fill(x, y, n int, attr uint16) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	start := y*v.cols + x
	for i := start; i < start+n && i < len(v.cells); i++ {
		v.cells[i] = ' '
		v.attrs[i] = attr
	}
	return nil
}

// InputMode returns the input mode word.
func (v *VirtualConsole) InputMode() (uint32, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.mode, nil
}

// SetInputMode replaces the input mode word.
func (v *VirtualConsole) SetInputMode(mode uint32) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.mode = mode
	v.modeSets++
	return nil
}

// ReadEvent pops the next scripted record; an empty script reads as EOF.
func (v *VirtualConsole) ReadEvent() (InputEvent, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.events) == 0 {
		return InputEvent{}, io.EOF
	}
	ev := v.events[0]
	v.events = v.events[1:]
	return ev, nil
}

// --- Test helpers (not part of ConsoleHost) ---

// SetInteractive overrides whether input and output count as a console.
func (v *VirtualConsole) SetInteractive(in, out bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.inInteractive, v.outInteractive = in, out
}

// SetWindow sets the visible window rectangle, inclusive.
func (v *VirtualConsole) SetWindow(left, top, right, bottom int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.window = [4]int{left, top, right, bottom}
}

// QueueEvents appends input records to the script.
func (v *VirtualConsole) QueueEvents(evs ...InputEvent) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.events = append(v.events, evs...)
}

// QueueKeys appends key records to the script.
func (v *VirtualConsole) QueueKeys(evs ...key.ConsoleEvent) {
	for _, ev := range evs {
		v.QueueEvents(InputEvent{IsKey: true, Key: ev})
	}
}

// Pending returns how many scripted records are left.
func (v *VirtualConsole) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return len(v.events)
}

// Cursor returns the 0-based cursor cell.
func (v *VirtualConsole) Cursor() (x, y int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.cursorX, v.cursorY
}

// Attributes returns the current attribute word.
func (v *VirtualConsole) Attributes() uint16 {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.attr
}

// Mode returns the input mode word.
func (v *VirtualConsole) Mode() uint32 {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.mode
}

// ModeSets returns how many times the input mode was written.
func (v *VirtualConsole) ModeSets() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.modeSets
}

// PutRune writes r with the current attribute at (x, y) without moving
// the cursor.
func (v *VirtualConsole) PutRune(x, y int, r rune) {
	v.mu.Lock()
	defer v.mu.Unlock()

	i := y*v.cols + x
	v.cells[i] = r
	v.attrs[i] = v.attr
}

// Cell returns the rune and attribute word at (x, y).
func (v *VirtualConsole) Cell(x, y int) (rune, uint16) {
	v.mu.Lock()
	defer v.mu.Unlock()

	i := y*v.cols + x
	return v.cells[i], v.attrs[i]
}
