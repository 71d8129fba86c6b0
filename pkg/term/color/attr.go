// ABOUTME: Console attribute word helpers: palette-to-attribute bits and half-word replacement.
// ABOUTME: Foreground lives in bits 0-3 and background in bits 4-7; other bits are preserved.

package color

// Console attribute bits.
const (
	AttrFgBlue      uint16 = 0x0001
	AttrFgGreen     uint16 = 0x0002
	AttrFgRed       uint16 = 0x0004
	AttrFgIntensity uint16 = 0x0008

	fgMask uint16 = 0x000F
	bgMask uint16 = 0x00F0
)

// ConsoleNibble converts c to the 4 console color bits, which order the
// channels blue, green, red.
func ConsoleNibble(c Color16) uint16 {
	var n uint16
	if c&bitRed != 0 {
		n |= AttrFgRed
	}
	if c&bitGreen != 0 {
		n |= AttrFgGreen
	}
	if c&bitBlue != 0 {
		n |= AttrFgBlue
	}
	if c&bitBright != 0 {
		n |= AttrFgIntensity
	}
	return n
}

// FromConsoleNibble is the inverse of ConsoleNibble for the low 4 bits of n.
func FromConsoleNibble(n uint16) Color16 {
	var c Color16
	if n&AttrFgRed != 0 {
		c |= bitRed
	}
	if n&AttrFgGreen != 0 {
		c |= bitGreen
	}
	if n&AttrFgBlue != 0 {
		c |= bitBlue
	}
	if n&AttrFgIntensity != 0 {
		c |= bitBright
	}
	return c
}

// WithForeground replaces the foreground half of attr with c.
func WithForeground(attr uint16, c Color16) uint16 {
	return attr&^fgMask | ConsoleNibble(c)
}

// WithBackground replaces the background half of attr with c.
func WithBackground(attr uint16, c Color16) uint16 {
	return attr&^bgMask | ConsoleNibble(c)<<4
}

// Foreground extracts the foreground color of attr.
func Foreground(attr uint16) Color16 {
	return FromConsoleNibble(attr & fgMask)
}

// Background extracts the background color of attr.
func Background(attr uint16) Color16 {
	return FromConsoleNibble(attr & bgMask >> 4)
}
