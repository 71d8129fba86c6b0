// ABOUTME: Windows console host for the console backend: screen buffer, cursor, modes and input records.
// ABOUTME: Uses x/sys/windows where it has wrappers and lazy kernel32 procs for the rest.

//go:build windows

package terminal

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/mauromedda/termctl/pkg/term/key"
)

var (
	kernel32                       = windows.NewLazySystemDLL("kernel32.dll")
	procReadConsoleInputW          = kernel32.NewProc("ReadConsoleInputW")
	procFillConsoleOutputCharacter = kernel32.NewProc("FillConsoleOutputCharacterW")
	procFillConsoleOutputAttribute = kernel32.NewProc("FillConsoleOutputAttribute")
	procSetConsoleTextAttribute    = kernel32.NewProc("SetConsoleTextAttribute")
)

const keyEvent = 0x0001

// inputRecord mirrors INPUT_RECORD with the KEY_EVENT_RECORD union arm.
type inputRecord struct {
	eventType       uint16
	_               uint16
	keyDown         int32
	repeatCount     uint16
	virtualKeyCode  uint16
	virtualScanCode uint16
	unicodeChar     uint16
	controlKeyState uint32
}

// WindowsConsole is a ConsoleHost over the process console handles.
type WindowsConsole struct {
	in  windows.Handle
	out windows.Handle
}

// NewWindowsConsole wraps the console handles behind in and out.
func NewWindowsConsole(in, out *os.File) *WindowsConsole {
	return &WindowsConsole{
		in:  windows.Handle(in.Fd()),
		out: windows.Handle(out.Fd()),
	}
}

// isConsole reports whether h is a console handle rather than a file or pipe.
func isConsole(h windows.Handle) bool {
	var mode uint32
	return windows.GetConsoleMode(h, &mode) == nil
}

// InputInteractive reports whether input is a console.
func (c *WindowsConsole) InputInteractive() bool { return isConsole(c.in) }

// OutputInteractive reports whether output is a console.
func (c *WindowsConsole) OutputInteractive() bool { return isConsole(c.out) }

// ScreenInfo reads the screen buffer info of the output handle.
func (c *WindowsConsole) ScreenInfo() (ScreenInfo, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(c.out, &info); err != nil {
		return ScreenInfo{}, fmt.Errorf("reading screen buffer info: %w", err)
	}
	return ScreenInfo{
		BufferCols:   int(info.Size.X),
		BufferRows:   int(info.Size.Y),
		CursorX:      int(info.CursorPosition.X),
		CursorY:      int(info.CursorPosition.Y),
		Attributes:   info.Attributes,
		WindowLeft:   int(info.Window.Left),
		WindowTop:    int(info.Window.Top),
		WindowRight:  int(info.Window.Right),
		WindowBottom: int(info.Window.Bottom),
	}, nil
}

// SetCursor moves the cursor to the 0-based buffer cell (x, y).
func (c *WindowsConsole) SetCursor(x, y int) error {
	if err := windows.SetConsoleCursorPosition(c.out, windows.Coord{X: int16(x), Y: int16(y)}); err != nil {
		return fmt.Errorf("setting cursor position: %w", err)
	}
	return nil
}

// SetAttributes sets the attribute word used for subsequent output.
func (c *WindowsConsole) SetAttributes(attr uint16) error {
	r1, _, err := procSetConsoleTextAttribute.Call(uintptr(c.out), uintptr(attr))
	if r1 == 0 {
		return fmt.Errorf("setting text attribute: %w", err)
	}
	return nil
}

// packCoord passes a COORD by value as the single register it occupies.
func packCoord(x, y int) uintptr {
	return uintptr(uint32(uint16(x)) | uint32(uint16(y))<<16)
}

// Fill writes n blanks with attr starting at (x, y).
func (c *WindowsConsole) Fill(x, y, n int, attr uint16) error {
	var written uint32
	r1, _, err := procFillConsoleOutputCharacter.Call(
		uintptr(c.out), uintptr(' '), uintptr(n), packCoord(x, y), uintptr(unsafe.Pointer(&written)))
	if r1 == 0 {
		return fmt.Errorf("filling console characters: %w", err)
	}
	r1, _, err = procFillConsoleOutputAttribute.Call(
		uintptr(c.out), uintptr(attr), uintptr(n), packCoord(x, y), uintptr(unsafe.Pointer(&written)))
	if r1 == 0 {
		return fmt.Errorf("filling console attributes: %w", err)
	}
	return nil
}

// InputMode returns the input handle's mode word.
func (c *WindowsConsole) InputMode() (uint32, error) {
	var mode uint32
	if err := windows.GetConsoleMode(c.in, &mode); err != nil {
		return 0, fmt.Errorf("reading console mode: %w", err)
	}
	return mode, nil
}

// SetInputMode replaces the input handle's mode word.
func (c *WindowsConsole) SetInputMode(mode uint32) error {
	if err := windows.SetConsoleMode(c.in, mode); err != nil {
		return fmt.Errorf("setting console mode: %w", err)
	}
	return nil
}

// ReadEvent blocks for one input record.
func (c *WindowsConsole) ReadEvent() (InputEvent, error) {
	var (
		rec  inputRecord
		read uint32
	)
	r1, _, err := procReadConsoleInputW.Call(
		uintptr(c.in), uintptr(unsafe.Pointer(&rec)), 1, uintptr(unsafe.Pointer(&read)))
	if r1 == 0 {
		return InputEvent{}, fmt.Errorf("reading console input: %w", err)
	}
	if read == 0 || rec.eventType != keyEvent {
		return InputEvent{}, nil
	}
	return InputEvent{
		IsKey: true,
		Key: key.ConsoleEvent{
			KeyDown:      rec.keyDown != 0,
			VirtualKey:   rec.virtualKeyCode,
			Char:         rune(rec.unicodeChar),
			ControlState: rec.controlKeyState,
		},
	}, nil
}
