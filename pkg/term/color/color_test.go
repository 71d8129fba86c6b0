// ABOUTME: Tests for 256-index and RGB approximation onto the 16-color palette.
// ABOUTME: Covers each rule of the cascade, gray stability and determinism.

package color

import "testing"

func TestFromIndex(t *testing.T) {
	t.Parallel()

	for idx := 0; idx < 256; idx++ {
		got, ok := FromIndex(uint8(idx))
		if idx < 16 {
			if !ok || got != Color16(idx) {
				t.Errorf("FromIndex(%d) = (%v, %v), want (%v, true)", idx, got, ok, Color16(idx))
			}
			continue
		}
		if ok {
			t.Errorf("FromIndex(%d) reported supported, want unsupported", idx)
		}
	}
}

func TestFromRGB(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		r, g, b uint8
		want    Color16
	}{
		// near-gray
		{name: "black", r: 0, g: 0, b: 0, want: Black},
		{name: "very dark gray", r: 10, g: 10, b: 10, want: Black},
		{name: "gray within tolerance", r: 120, g: 130, b: 128, want: White},
		{name: "mid gray", r: 128, g: 128, b: 128, want: White},
		{name: "light gray", r: 200, g: 200, b: 200, want: BrightWhite},
		{name: "white", r: 255, g: 255, b: 255, want: BrightWhite},

		// near-black
		{name: "dim purple collapses to black", r: 40, g: 0, b: 20, want: Black},
		{name: "near-black with some energy", r: 47, g: 10, b: 30, want: BrightBlack},

		// dominant channel
		{name: "pure red", r: 255, g: 0, b: 0, want: BrightRed},
		{name: "dark red", r: 128, g: 0, b: 0, want: Red},
		{name: "pure green", r: 0, g: 255, b: 0, want: BrightGreen},
		{name: "pure blue", r: 0, g: 0, b: 255, want: BrightBlue},
		{name: "orange leans red", r: 200, g: 100, b: 50, want: Red},
		{name: "salmon is bright red", r: 250, g: 150, b: 100, want: BrightRed},

		// pairs
		{name: "yellow", r: 255, g: 255, b: 0, want: BrightYellow},
		{name: "dim yellow pair", r: 150, g: 140, b: 20, want: Yellow},
		{name: "magenta", r: 180, g: 0, b: 180, want: Magenta},
		{name: "teal", r: 0, g: 180, b: 180, want: Cyan},
		{name: "bright cyan", r: 0, g: 210, b: 210, want: BrightCyan},
		{name: "olive ties combine", r: 100, g: 100, b: 0, want: Yellow},

		// intensity by sum only
		{name: "bright by sum", r: 190, g: 190, b: 100, want: BrightYellow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FromRGB(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("FromRGB(%d, %d, %d) = %v, want %v", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestFromRGB_GrayNeverSelectsHue(t *testing.T) {
	t.Parallel()

	for v := 0; v < 256; v++ {
		got := FromRGB(uint8(v), uint8(v), uint8(v))
		switch got {
		case Black, White, BrightWhite:
		default:
			t.Errorf("FromRGB(%d, %d, %d) = %v, want a gray", v, v, v, got)
		}
	}
}

func TestFromRGB_Deterministic(t *testing.T) {
	t.Parallel()

	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 17 {
				first := FromRGB(uint8(r), uint8(g), uint8(b))
				second := FromRGB(uint8(r), uint8(g), uint8(b))
				if first != second {
					t.Fatalf("FromRGB(%d, %d, %d) not deterministic: %v then %v", r, g, b, first, second)
				}
				if first > BrightWhite {
					t.Fatalf("FromRGB(%d, %d, %d) = %d, outside the palette", r, g, b, first)
				}
			}
		}
	}
}

func TestColor16String(t *testing.T) {
	t.Parallel()

	if got := BrightCyan.String(); got != "bright-cyan" {
		t.Errorf("BrightCyan.String() = %q", got)
	}
	if got := Color16(42).String(); got != "invalid" {
		t.Errorf("Color16(42).String() = %q", got)
	}
	if !BrightRed.Bright() || Red.Bright() {
		t.Error("Bright() should follow the intensity bit")
	}
}
