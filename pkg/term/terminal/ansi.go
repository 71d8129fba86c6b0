// ABOUTME: ANSITerminal implements Terminal by writing escape sequences and decoding raw input bytes.
// ABOUTME: Colors pass through untouched; cursor position is queried with a DSR 6 report.

package terminal

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/mauromedda/termctl/internal/log"
	"github.com/mauromedda/termctl/pkg/term/key"
)

// Escape sequences.
var (
	csiClearHome     = []byte("\x1b[2J\x1b[H")
	csiSaveCursor    = []byte("\x1b[s")
	csiRestoreCursor = []byte("\x1b[u")
	csiReset         = []byte("\x1b[0m")
	csiReportCursor  = []byte("\x1b[6n")
)

// ANSIHost is the device side of the escape-sequence backend.
type ANSIHost interface {
	io.Writer
	key.Source

	InputInteractive() bool
	OutputInteractive() bool

	// Size returns the window size in character cells.
	Size() (rows, cols int, err error)

	// MakeRaw switches input to raw mode and returns the restore func.
	MakeRaw() (restore func() error, err error)
}

// ANSITerminal is the escape-sequence backend.
type ANSITerminal struct {
	host    ANSIHost
	opts    Options
	raw     rawGuard
	mu      sync.Mutex
	decoder *key.Decoder
}

// NewANSITerminal returns an escape-sequence backend over host.
func NewANSITerminal(host ANSIHost, opts Options) *ANSITerminal {
	opts = opts.withDefaults()
	return &ANSITerminal{
		host: host,
		opts: opts,
		decoder: &key.Decoder{
			EscapeWait: opts.EscapeWait,
			ReadAhead:  opts.ReadAhead,
		},
	}
}

// write sends seq when output is a terminal. Write errors are not
// surfaced to callers.
func (t *ANSITerminal) write(seq []byte) {
	if !t.host.OutputInteractive() {
		return
	}
	if _, err := t.host.Write(seq); err != nil {
		log.Debug("writing escape sequence %q: %v", seq, err)
	}
}

// csi builds "ESC [ n1 ; n2 ; ... final".
func csi(final byte, params ...int) []byte {
	buf := make([]byte, 0, 24)
	buf = append(buf, 0x1b, '[')
	for i, p := range params {
		if i > 0 {
			buf = append(buf, ';')
		}
		buf = strconv.AppendInt(buf, int64(p), 10)
	}
	return append(buf, final)
}

// ClearScreen erases the screen and homes the cursor.
func (t *ANSITerminal) ClearScreen() {
	t.write(csiClearHome)
}

// Size returns the current window size, or the zero Size.
func (t *ANSITerminal) Size() Size {
	if !t.host.OutputInteractive() {
		return Size{}
	}
	rows, cols, err := t.host.Size()
	if err != nil {
		log.Debug("querying terminal size: %v", err)
		return Size{}
	}
	if rows <= 0 || cols <= 0 {
		return Size{}
	}
	return Size{Rows: clampUint16(rows), Cols: clampUint16(cols)}
}

// SetCursorPosition moves the cursor to the 1-based (row, col). Zero
// coordinates are treated as 1.
func (t *ANSITerminal) SetCursorPosition(row, col uint16) {
	t.write(csi('H', int(max(row, 1)), int(max(col, 1))))
}

// CursorUp moves up n rows; the terminal stops the cursor at the top edge.
func (t *ANSITerminal) CursorUp(n int) { t.move('A', n) }

// CursorDown moves down n rows, stopping at the bottom edge.
func (t *ANSITerminal) CursorDown(n int) { t.move('B', n) }

// CursorForward moves right n columns, stopping at the right edge.
func (t *ANSITerminal) CursorForward(n int) { t.move('C', n) }

// CursorBackward moves left n columns, stopping at the left edge.
func (t *ANSITerminal) CursorBackward(n int) { t.move('D', n) }

// move ignores n < 1: most terminals treat a zero count as one.
func (t *ANSITerminal) move(final byte, n int) {
	if n < 1 {
		return
	}
	t.write(csi(final, n))
}

// SaveCursorPosition stores the cursor in the terminal's own save slot.
func (t *ANSITerminal) SaveCursorPosition() {
	t.write(csiSaveCursor)
}

// RestoreCursorPosition returns to the saved position. Without a prior
// save the terminal decides; usually nothing visible happens.
func (t *ANSITerminal) RestoreCursorPosition() {
	t.write(csiRestoreCursor)
}

// CursorPosition asks the terminal for a cursor position report. Any
// missing, truncated or malformed reply yields the zero Position.
func (t *ANSITerminal) CursorPosition() Position {
	if !t.host.InputInteractive() || !t.host.OutputInteractive() {
		return Position{}
	}

	release, err := t.raw.scope(t.host)
	if err != nil {
		log.Debug("cursor position: %v", err)
		return Position{}
	}
	defer release()

	if _, err := t.host.Write(csiReportCursor); err != nil {
		log.Debug("requesting cursor position: %v", err)
		return Position{}
	}

	reply := make([]byte, 0, t.opts.ReportLimit)
	var b [1]byte
	for len(reply) < t.opts.ReportLimit {
		n, err := t.host.ReadPending(b[:], t.opts.ReportTimeout)
		if err != nil || n == 0 {
			break
		}
		reply = append(reply, b[0])
		// A typed 'R' before the report introducer is input, not the end.
		if b[0] == 'R' && bytes.Contains(reply, []byte("\x1b[")) {
			break
		}
	}

	pos, typed := parseCursorReport(reply)

	// Keys typed while waiting for the report are replayed by ReadKey.
	if len(typed) > 0 {
		t.mu.Lock()
		t.decoder.Unread(typed)
		t.mu.Unlock()
	}

	if pos == (Position{}) {
		log.Debug("malformed cursor position report %q", reply)
	}
	return pos
}

// parseCursorReport extracts "ESC [ row ; col R" from the end of reply.
// Bytes before the report are returned as typed input. A reply with no
// well-formed report yields the zero Position and no typed bytes.
func parseCursorReport(reply []byte) (Position, []byte) {
	start := bytes.LastIndex(reply, []byte("\x1b["))
	if start < 0 || len(reply) < start+6 || reply[len(reply)-1] != 'R' {
		return Position{}, nil
	}

	body := string(reply[start+2 : len(reply)-1])
	rowStr, colStr, ok := strings.Cut(body, ";")
	if !ok {
		return Position{}, nil
	}
	row, err := strconv.ParseUint(rowStr, 10, 16)
	if err != nil || row == 0 {
		return Position{}, nil
	}
	col, err := strconv.ParseUint(colStr, 10, 16)
	if err != nil || col == 0 {
		return Position{}, nil
	}

	return Position{Row: uint16(row), Col: uint16(col)}, reply[:start]
}

// SetForegroundColor256 selects palette index idx for the foreground.
func (t *ANSITerminal) SetForegroundColor256(idx uint8) {
	t.write(csi('m', 38, 5, int(idx)))
}

// SetBackgroundColor256 selects palette index idx for the background.
func (t *ANSITerminal) SetBackgroundColor256(idx uint8) {
	t.write(csi('m', 48, 5, int(idx)))
}

// SetForegroundColorRGB selects a 24-bit foreground color.
func (t *ANSITerminal) SetForegroundColorRGB(r, g, b uint8) {
	t.write(csi('m', 38, 2, int(r), int(g), int(b)))
}

// SetBackgroundColorRGB selects a 24-bit background color.
func (t *ANSITerminal) SetBackgroundColorRGB(r, g, b uint8) {
	t.write(csi('m', 48, 2, int(r), int(g), int(b)))
}

// ResetColors restores the terminal's default attributes.
func (t *ANSITerminal) ResetColors() {
	t.write(csiReset)
}

// ReadKey decodes one key-press from raw input.
func (t *ANSITerminal) ReadKey() key.KeyPress {
	if !t.host.InputInteractive() {
		return key.Unknown
	}

	release, err := t.raw.scope(t.host)
	if err != nil {
		log.Debug("read key: %v", err)
		return key.Unknown
	}
	defer release()

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.decoder.Decode(t.host)
}

// RawMode holds raw input until the returned session is released.
func (t *ANSITerminal) RawMode() (*RawSession, error) {
	if !t.host.InputInteractive() {
		return nil, ErrNotInteractive
	}
	return t.raw.acquire(t.host)
}

// Restore releases any raw session still held and resets colors.
func (t *ANSITerminal) Restore() error {
	t.ResetColors()
	return t.raw.releaseHeld()
}
