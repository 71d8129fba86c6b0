// ABOUTME: Defines Key, Modifier and KeyPress, the normalized form of one key-press.
// ABOUTME: Shared by the byte-stream decoder and the console event classifier.

package key

import "strings"

// Key identifies the logical key of a key-press.
type Key int

const (
	KeyUnknown   Key = iota // Unrecognized input or read failure
	KeyChar                 // Printable or Ctrl/Alt-modified character
	KeyEnter                // Enter / Return
	KeyEscape               // Bare Escape
	KeyBackspace            // Backspace / DEL
	KeyTab                  // Tab
	KeyUp                   // Arrow up
	KeyDown                 // Arrow down
	KeyLeft                 // Arrow left
	KeyRight                // Arrow right
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var keyNames = map[Key]string{
	KeyUnknown:   "Unknown",
	KeyChar:      "Char",
	KeyEnter:     "Enter",
	KeyEscape:    "Escape",
	KeyBackspace: "Backspace",
	KeyTab:       "Tab",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyInsert:    "Insert",
	KeyDelete:    "Delete",
	KeyF1:        "F1",
	KeyF2:        "F2",
	KeyF3:        "F3",
	KeyF4:        "F4",
	KeyF5:        "F5",
	KeyF6:        "F6",
	KeyF7:        "F7",
	KeyF8:        "F8",
	KeyF9:        "F9",
	KeyF10:       "F10",
	KeyF11:       "F11",
	KeyF12:       "F12",
}

// String returns the key name, or "Unknown" for values outside the enum.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Modifier is a bit set of held modifier keys. The zero value means none.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt

	ModNone Modifier = 0
)

// Has reports whether every bit in m is set.
func (mods Modifier) Has(m Modifier) bool {
	return mods&m == m
}

// String joins the set modifiers with '+', in Ctrl, Alt, Shift order.
func (mods Modifier) String() string {
	var parts []string
	if mods.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if mods.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if mods.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	return strings.Join(parts, "+")
}

// KeyPress is one decoded key-press. Char is meaningful only when HasChar
// is set; a KeyChar press always carries a character.
type KeyPress struct {
	Key     Key
	Char    rune
	HasChar bool
	Mods    Modifier
}

// Unknown is the press reported for unrecognized input and read failures.
var Unknown = KeyPress{Key: KeyUnknown}

// charPress builds a KeyChar press carrying r.
func charPress(r rune, mods Modifier) KeyPress {
	return KeyPress{Key: KeyChar, Char: r, HasChar: true, Mods: mods}
}

// String renders the press for display, e.g. "Ctrl+c", "Alt+x", "Up".
func (p KeyPress) String() string {
	var label string
	if p.Key == KeyChar && p.HasChar {
		label = string(p.Char)
	} else {
		label = p.Key.String()
	}

	if prefix := p.Mods.String(); prefix != "" {
		return prefix + "+" + label
	}
	return label
}
