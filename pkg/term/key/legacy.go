// ABOUTME: Escape sequence tables for CSI letter, CSI number~ and SS3 key encodings.
// ABOUTME: Covers arrows, Home/End, Insert/Delete, PageUp/PageDown and F1-F12.

package key

// letterKeys maps the final byte of "ESC [ <letter>" (optionally with an
// xterm modifier parameter) to its key.
var letterKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

// tildeKeys maps the numeric parameter of "ESC [ <n> ~" to its key.
// Both the vt220 (1/4) and rxvt (7/8) Home/End codes are accepted.
var tildeKeys = map[int]Key{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

// ss3Keys maps the byte after "ESC O". Terminals use SS3 for F1-F4 and,
// in application cursor mode, for the arrows and Home/End.
var ss3Keys = map[byte]Key{
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}
