// ABOUTME: Classifies structured console key events (virtual key, char, control state) into KeyPress.
// ABOUTME: Platform-neutral so the console backend's classification is testable everywhere.

package key

import "unicode/utf16"

// Console control-key-state bits.
const (
	RightAltPressed  uint32 = 0x0001
	LeftAltPressed   uint32 = 0x0002
	RightCtrlPressed uint32 = 0x0004
	LeftCtrlPressed  uint32 = 0x0008
	ShiftPressed     uint32 = 0x0010
)

// ConsoleEvent is the subset of a console key event record the classifier needs.
type ConsoleEvent struct {
	KeyDown      bool
	VirtualKey   uint16
	Char         rune
	ControlState uint32
}

// Virtual key codes.
const (
	vkBack    = 0x08
	vkTab     = 0x09
	vkReturn  = 0x0D
	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12
	vkCapital = 0x14
	vkEscape  = 0x1B
	vkPrior   = 0x21
	vkNext    = 0x22
	vkEnd     = 0x23
	vkHome    = 0x24
	vkLeft    = 0x25
	vkUp      = 0x26
	vkRight   = 0x27
	vkDown    = 0x28
	vkInsert  = 0x2D
	vkDelete  = 0x2E
	vkLWin    = 0x5B
	vkRWin    = 0x5C
	vkF1      = 0x70
	vkLShift  = 0xA0
	vkRMenu   = 0xA5
)

var virtualKeys = map[uint16]Key{
	vkBack:   KeyBackspace,
	vkTab:    KeyTab,
	vkReturn: KeyEnter,
	vkEscape: KeyEscape,
	vkPrior:  KeyPageUp,
	vkNext:   KeyPageDown,
	vkEnd:    KeyEnd,
	vkHome:   KeyHome,
	vkLeft:   KeyLeft,
	vkUp:     KeyUp,
	vkRight:  KeyRight,
	vkDown:   KeyDown,
	vkInsert: KeyInsert,
	vkDelete: KeyDelete,
}

func init() {
	for i := 0; i < 12; i++ {
		virtualKeys[uint16(vkF1+i)] = KeyF1 + Key(i)
	}
}

// ConsoleModifiers converts a control-key-state word to a Modifier set.
func ConsoleModifiers(state uint32) Modifier {
	var mods Modifier
	if state&(LeftCtrlPressed|RightCtrlPressed) != 0 {
		mods |= ModCtrl
	}
	if state&(LeftAltPressed|RightAltPressed) != 0 {
		mods |= ModAlt
	}
	if state&ShiftPressed != 0 {
		mods |= ModShift
	}
	return mods
}

// ClassifyConsoleEvent classifies one console key event. The boolean is
// false when the event does not conclude a key-press: key-up events and
// key-downs of bare modifier keys.
func ClassifyConsoleEvent(ev ConsoleEvent) (KeyPress, bool) {
	if !ev.KeyDown || isModifierKey(ev.VirtualKey) {
		return KeyPress{}, false
	}

	mods := ConsoleModifiers(ev.ControlState)

	if k, ok := virtualKeys[ev.VirtualKey]; ok {
		press := KeyPress{Key: k, Mods: mods}
		if k == KeyEnter {
			press.Char, press.HasChar = '\n', true
		}
		return press, true
	}

	switch {
	case ev.Char >= 0x01 && ev.Char <= 0x1a && mods.Has(ModCtrl) &&
		ev.VirtualKey >= 'A' && ev.VirtualKey <= 'Z':
		return charPress(rune('a'+ev.VirtualKey-'A'), mods), true
	case ev.Char >= 0x20 && ev.Char != 0x7f && !utf16.IsSurrogate(ev.Char):
		return charPress(ev.Char, mods), true
	}
	return Unknown, true
}

func isModifierKey(vk uint16) bool {
	switch {
	case vk == vkShift, vk == vkControl, vk == vkMenu, vk == vkCapital:
		return true
	case vk == vkLWin, vk == vkRWin:
		return true
	case vk >= vkLShift && vk <= vkRMenu:
		return true
	}
	return false
}
