// ABOUTME: Tests for console attribute conversion and half-word replacement.
// ABOUTME: Ensures setting one half never disturbs the other half or the high bits.

package color

import "testing"

func TestConsoleNibble(t *testing.T) {
	t.Parallel()

	tests := []struct {
		c    Color16
		want uint16
	}{
		{c: Black, want: 0x0},
		{c: Red, want: AttrFgRed},
		{c: Green, want: AttrFgGreen},
		{c: Blue, want: AttrFgBlue},
		{c: Yellow, want: AttrFgRed | AttrFgGreen},
		{c: Cyan, want: AttrFgGreen | AttrFgBlue},
		{c: White, want: 0x7},
		{c: BrightBlack, want: AttrFgIntensity},
		{c: BrightWhite, want: 0xF},
	}

	for _, tt := range tests {
		got := ConsoleNibble(tt.c)
		if got != tt.want {
			t.Errorf("ConsoleNibble(%v) = 0x%x, want 0x%x", tt.c, got, tt.want)
		}
		if back := FromConsoleNibble(got); back != tt.c {
			t.Errorf("FromConsoleNibble(0x%x) = %v, want %v", got, back, tt.c)
		}
	}
}

func TestWithForegroundPreservesBackground(t *testing.T) {
	t.Parallel()

	const attr uint16 = 0x8000 | 0x0010 | 0x0007 // high flag, blue bg, white fg
	got := WithForeground(attr, BrightRed)

	if want := uint16(0x8000 | 0x0010 | 0x000C); got != want {
		t.Errorf("WithForeground() = 0x%04x, want 0x%04x", got, want)
	}
	if Background(got) != Blue {
		t.Errorf("background = %v, want blue", Background(got))
	}
	if Foreground(got) != BrightRed {
		t.Errorf("foreground = %v, want bright-red", Foreground(got))
	}
}

func TestWithBackgroundPreservesForeground(t *testing.T) {
	t.Parallel()

	const attr uint16 = 0x0007
	got := WithBackground(attr, Green)

	if want := uint16(0x0027); got != want {
		t.Errorf("WithBackground() = 0x%04x, want 0x%04x", got, want)
	}
	if Foreground(got) != White {
		t.Errorf("foreground = %v, want white", Foreground(got))
	}
}
