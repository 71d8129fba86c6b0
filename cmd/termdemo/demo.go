// ABOUTME: The interactive demo: geometry, color swatches, save/restore and a key echo loop.
// ABOUTME: Text goes to the writer; every terminal effect goes through the Terminal interface.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mauromedda/termctl/pkg/term/key"
	"github.com/mauromedda/termctl/pkg/term/terminal"
)

const title = "termctl ─ terminal control demo"

// crlf ends lines; raw output does not translate "\n".
const crlf = "\r\n"

// banner centers title within width cells, truncating it if needed.
func banner(width int) string {
	if width <= 0 {
		return title
	}
	text := runewidth.Truncate(title, width, "…")
	pad := (width - runewidth.StringWidth(text)) / 2
	return strings.Repeat(" ", pad) + text
}

// printSummary reports what the demo would use without touching the terminal.
func printSummary(w io.Writer, backend terminal.Backend, depth terminal.ColorDepth, opts terminal.Options) {
	fmt.Fprintf(w, "%s\n", title)
	fmt.Fprintf(w, "stdout is not a terminal; nothing to demo.\n")
	fmt.Fprintf(w, "backend:        %s\n", backend)
	fmt.Fprintf(w, "color depth:    %s\n", depth)
	fmt.Fprintf(w, "escape wait:    %s\n", opts.EscapeWait)
	fmt.Fprintf(w, "read-ahead:     %d\n", opts.ReadAhead)
	fmt.Fprintf(w, "report timeout: %s\n", opts.ReportTimeout)
}

// maxUnknown consecutive unrecognized reads end the loop; a closed input
// reads as Unknown forever.
const maxUnknown = 3

// runDemo drives the whole Terminal surface. It returns when q, Escape or
// Ctrl+C is pressed, or input ends.
func runDemo(t terminal.Terminal, w io.Writer, depth terminal.ColorDepth) error {
	sess, err := t.RawMode()
	if err != nil {
		return fmt.Errorf("starting demo: %w", err)
	}
	defer sess.Release()

	size := t.Size()

	t.ClearScreen()
	fmt.Fprint(w, banner(int(size.Cols)), crlf, crlf)
	fmt.Fprintf(w, "size: %d rows x %d cols%s", size.Rows, size.Cols, crlf)

	pos := t.CursorPosition()
	fmt.Fprintf(w, "cursor: row %d col %d%s%s", pos.Row, pos.Col, crlf, crlf)

	paintSwatch(t, w, depth)

	t.SaveCursorPosition()
	t.CursorDown(2)
	t.CursorForward(4)
	fmt.Fprint(w, "(written away from the saved position)")
	t.RestoreCursorPosition()
	fmt.Fprint(w, "press keys; q, Esc or Ctrl+C quits", crlf)
	t.CursorDown(2)

	for unknown := 0; unknown < maxUnknown; {
		press := t.ReadKey()
		if press == key.Unknown {
			unknown++
			fmt.Fprint(w, "unknown key", crlf)
			continue
		}
		unknown = 0

		fmt.Fprint(w, "key: ", press, crlf)
		if quits(press) {
			break
		}
	}

	t.ResetColors()
	return nil
}

// quits reports whether press ends the key loop.
func quits(press key.KeyPress) bool {
	switch {
	case press.Key == key.KeyEscape && press.Mods == key.ModNone:
		return true
	case press.HasChar && press.Char == 'q' && press.Mods == key.ModNone:
		return true
	case press.HasChar && press.Char == 'c' && press.Mods == key.ModCtrl:
		return true
	}
	return false
}

// paintSwatch shows the richest palette the terminal advertises: the 16
// base colors, a 216-entry cube row, or an RGB ramp.
func paintSwatch(t terminal.Terminal, w io.Writer, depth terminal.ColorDepth) {
	fmt.Fprintf(w, "palette (%s):%s", depth, crlf)

	for i := range 16 {
		t.SetBackgroundColor256(uint8(i))
		fmt.Fprint(w, "  ")
	}
	t.ResetColors()
	fmt.Fprint(w, crlf)

	switch depth {
	case terminal.Depth256:
		for i := 16; i < 52; i++ {
			t.SetBackgroundColor256(uint8(i))
			fmt.Fprint(w, " ")
		}
	case terminal.DepthRGB:
		for i := range 32 {
			v := uint8(i * 8)
			t.SetBackgroundColorRGB(v, 64, 255-v)
			fmt.Fprint(w, " ")
		}
	default:
		for _, c := range [][3]uint8{{255, 0, 0}, {0, 200, 0}, {40, 40, 255}, {255, 255, 0}, {128, 128, 128}} {
			t.SetForegroundColorRGB(c[0], c[1], c[2])
			fmt.Fprint(w, "██")
		}
	}
	t.ResetColors()
	fmt.Fprint(w, crlf, crlf)
}
