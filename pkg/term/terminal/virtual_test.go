// ABOUTME: Tests for VirtualConsole verifying cursor bounds, fills, mode tracking and scripted input.
// ABOUTME: Uses table-driven and parallel sub-tests like the backend tests.

package terminal

import (
	"errors"
	"io"
	"testing"

	"github.com/mauromedda/termctl/pkg/term/key"
)

func TestVirtualConsole_SetCursorBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		x, y    int
		wantErr bool
	}{
		{name: "origin", x: 0, y: 0},
		{name: "last cell", x: 9, y: 4},
		{name: "x past edge", x: 10, y: 0, wantErr: true},
		{name: "y past edge", x: 0, y: 5, wantErr: true},
		{name: "negative", x: -1, y: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			vc := NewVirtualConsole(10, 5, defaultAttr)

			err := vc.SetCursor(tt.x, tt.y)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetCursor(%d, %d) error = %v, wantErr %v", tt.x, tt.y, err, tt.wantErr)
			}
			if tt.wantErr {
				if x, y := vc.Cursor(); x != 0 || y != 0 {
					t.Errorf("cursor moved to (%d, %d) on error", x, y)
				}
			}
		})
	}
}

func TestVirtualConsole_FillWraps(t *testing.T) {
	t.Parallel()
	vc := NewVirtualConsole(4, 3, defaultAttr)
	for y := range 3 {
		for x := range 4 {
			vc.PutRune(x, y, '#')
		}
	}

	if err := vc.Fill(2, 0, 4, 0x0070); err != nil {
		t.Fatalf("Fill() unexpected error: %v", err)
	}

	want := []string{"##  ", "  ##", "####"}
	for y, row := range want {
		for x, wr := range row {
			r, _ := vc.Cell(x, y)
			if r != wr {
				t.Errorf("cell (%d, %d) = %q, want %q", x, y, r, wr)
			}
		}
	}
	if _, attr := vc.Cell(3, 0); attr != 0x0070 {
		t.Errorf("filled attr = %#04x, want 0x0070", attr)
	}
}

func TestVirtualConsole_ModeTracking(t *testing.T) {
	t.Parallel()
	vc := NewVirtualConsole(10, 5, defaultAttr)

	for _, m := range []uint32{0x1, 0x2, DefaultConsoleMode} {
		if err := vc.SetInputMode(m); err != nil {
			t.Fatalf("SetInputMode(%#x) unexpected error: %v", m, err)
		}
	}

	if got := vc.ModeSets(); got != 3 {
		t.Errorf("ModeSets() = %d, want 3", got)
	}
	if got, _ := vc.InputMode(); got != DefaultConsoleMode {
		t.Errorf("InputMode() = %#x, want %#x", got, DefaultConsoleMode)
	}
}

func TestVirtualConsole_ScriptedEvents(t *testing.T) {
	t.Parallel()
	vc := NewVirtualConsole(10, 5, defaultAttr)
	vc.QueueKeys(
		key.ConsoleEvent{KeyDown: true, VirtualKey: 'A', Char: 'a'},
		key.ConsoleEvent{KeyDown: false, VirtualKey: 'A', Char: 'a'},
	)

	for i := range 2 {
		ev, err := vc.ReadEvent()
		if err != nil {
			t.Fatalf("ReadEvent() #%d unexpected error: %v", i, err)
		}
		if !ev.IsKey || ev.Key.Char != 'a' {
			t.Errorf("ReadEvent() #%d = %+v, want key 'a'", i, ev)
		}
	}

	if _, err := vc.ReadEvent(); !errors.Is(err, io.EOF) {
		t.Errorf("ReadEvent() on empty script error = %v, want io.EOF", err)
	}
}
