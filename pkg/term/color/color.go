// ABOUTME: 16-color palette model and approximation of 256-index and RGB colors onto it.
// ABOUTME: Also converts palette colors to console attribute bits with read-modify-write helpers.

package color

// Color16 is a 4-bit palette color: bit0 red, bit1 green, bit2 blue,
// bit3 intensity. Values 0..15 match the first 16 xterm palette indices.
type Color16 uint8

const (
	Black Color16 = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

const (
	bitRed    Color16 = 1 << 0
	bitGreen  Color16 = 1 << 1
	bitBlue   Color16 = 1 << 2
	bitBright Color16 = 1 << 3
)

var names = [16]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright-black", "bright-red", "bright-green", "bright-yellow",
	"bright-blue", "bright-magenta", "bright-cyan", "bright-white",
}

// String returns the palette name.
func (c Color16) String() string {
	if int(c) < len(names) {
		return names[c]
	}
	return "invalid"
}

// Bright reports whether the intensity bit is set.
func (c Color16) Bright() bool {
	return c&bitBright != 0
}

// FromIndex maps a 256-color palette index onto the 16-color palette.
// Only indices 0..15 have an exact counterpart; higher indices report false
// and callers must leave the color unchanged.
func FromIndex(idx uint8) (Color16, bool) {
	if idx > 15 {
		return 0, false
	}
	return Color16(idx), true
}

// Thresholds for FromRGB.
const (
	GrayTolerance = 16  // max channel spread treated as gray
	GrayDark      = 64  // gray luminance below this is black
	GrayLight     = 192 // gray luminance at or above this is bright white
	NearBlack     = 48  // every channel below this is near-black
	NearBlackSum  = 72  // near-black sum below this is black, else bright-black
	Mid           = 128 // both channels of a pair must exceed this
	Low           = 64  // the third channel of a pair must stay below this
	BrightSum     = 384 // channel sum above this sets intensity
	ClearlyBright = 200 // any channel above this sets intensity
)

// FromRGB approximates a 24-bit color with the 16-color palette.
//
// The rules run in a fixed order and the first special case that matches
// wins: near-gray, then near-black, then dominant channel(s), then the
// intensity bit. This is a lossy best-effort mapping, not a perceptual
// nearest-color search, and moving a channel across a threshold can change
// the result abruptly.
func FromRGB(r, g, b uint8) Color16 {
	ri, gi, bi := int(r), int(g), int(b)
	hi := max(ri, gi, bi)
	lo := min(ri, gi, bi)
	sum := ri + gi + bi

	if hi-lo <= GrayTolerance {
		switch lum := sum / 3; {
		case lum < GrayDark:
			return Black
		case lum < GrayLight:
			return White
		default:
			return BrightWhite
		}
	}

	if hi < NearBlack {
		if sum < NearBlackSum {
			return Black
		}
		return BrightBlack
	}

	c := dominant(ri, gi, bi, hi)
	if sum > BrightSum || hi > ClearlyBright {
		c |= bitBright
	}
	return c
}

// dominant picks the hue bits. A pair of strong channels over a weak third
// wins first; otherwise every channel equal to the maximum is set, which
// is the single strictly greatest channel in the common case.
func dominant(r, g, b, hi int) Color16 {
	switch {
	case r > Mid && g > Mid && b < Low:
		return Yellow
	case r > Mid && b > Mid && g < Low:
		return Magenta
	case g > Mid && b > Mid && r < Low:
		return Cyan
	}

	var c Color16
	if r == hi {
		c |= bitRed
	}
	if g == hi {
		c |= bitGreen
	}
	if b == hi {
		c |= bitBlue
	}
	return c
}
