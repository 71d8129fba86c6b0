// ABOUTME: Decoder turns raw terminal input bytes into KeyPress values.
// ABOUTME: Resolves a bare Escape versus a CSI/SS3 sequence with a timed non-blocking read-ahead.

package key

import (
	"strconv"
	"strings"
	"time"
)

const esc = 0x1b

const (
	// DefaultEscapeWait bounds how long the read-ahead after ESC waits for
	// the rest of a sequence.
	DefaultEscapeWait = 50 * time.Millisecond

	// DefaultReadAhead is the number of bytes requested after ESC; it covers
	// the longest sequence in the tables ("[15~", "[1;5A").
	DefaultReadAhead = 5

	// maxSequence caps how far an unterminated CSI sequence is extended.
	maxSequence = 16
)

// Source is the byte-level input the Decoder reads from.
type Source interface {
	// ReadByte blocks until one byte is available.
	ReadByte() (byte, error)

	// ReadPending performs a single poll for up to len(p) bytes, waiting
	// at most wait for the first one. It returns 0 and a nil error when
	// nothing arrived in time.
	ReadPending(p []byte, wait time.Duration) (int, error)
}

// Decoder is the escape-sequence key decoder. It keeps bytes that were read
// ahead but not consumed by the decoded sequence and replays them first on
// the next Decode, so fast typing after an arrow key is not lost.
//
// Telling a bare Escape from the start of a sequence is a timing heuristic:
// if no byte follows ESC within EscapeWait the press is reported as Escape.
// A slow paste or a sequence delayed by the network can therefore be split
// into Escape followed by stray characters.
type Decoder struct {
	EscapeWait time.Duration
	ReadAhead  int

	pending []byte
}

// NewDecoder returns a Decoder with the default escape window and read-ahead.
func NewDecoder() *Decoder {
	return &Decoder{
		EscapeWait: DefaultEscapeWait,
		ReadAhead:  DefaultReadAhead,
	}
}

// Decode reads exactly one key-press from src. Read errors and EOF are
// reported as Unknown.
func (d *Decoder) Decode(src Source) KeyPress {
	b, err := d.readByte(src)
	if err != nil {
		return Unknown
	}
	if b != esc {
		return classifyByte(b)
	}

	seq, err := d.fill(src, nil, d.readAhead(), d.EscapeWait)
	if err != nil {
		return Unknown
	}
	if len(seq) == 0 {
		return KeyPress{Key: KeyEscape}
	}

	if seq[0] == '[' && finalIndex(seq) < 0 {
		seq, _ = d.fill(src, seq, maxSequence, 0)
	}

	press, used := decodeSequence(seq)
	d.Unread(seq[used:])
	return press
}

// Buffered reports how many read-ahead bytes are waiting to be replayed.
func (d *Decoder) Buffered() int {
	return len(d.pending)
}

func (d *Decoder) readAhead() int {
	switch {
	case d.ReadAhead < 1:
		return 1
	case d.ReadAhead > maxSequence:
		return maxSequence
	}
	return d.ReadAhead
}

func (d *Decoder) readByte(src Source) (byte, error) {
	if len(d.pending) > 0 {
		b := d.pending[0]
		d.pending = d.pending[1:]
		return b, nil
	}
	return src.ReadByte()
}

// fill grows seq to at most limit bytes, first from the replay buffer and
// then with one poll of src. The poll does not wait when replayed bytes
// were already available.
func (d *Decoder) fill(src Source, seq []byte, limit int, wait time.Duration) ([]byte, error) {
	buf := make([]byte, len(seq), maxSequence)
	copy(buf, seq)
	if limit > maxSequence {
		limit = maxSequence
	}

	take := min(limit-len(buf), len(d.pending))
	if take > 0 {
		buf = append(buf, d.pending[:take]...)
		d.pending = d.pending[take:]
		wait = 0
	}
	if len(buf) >= limit {
		return buf, nil
	}

	n, err := src.ReadPending(buf[len(buf):limit], wait)
	if n > 0 {
		buf = buf[:len(buf)+n]
	}
	if err != nil && len(buf) == 0 {
		return nil, err
	}
	return buf, nil
}

// Unread queues bytes to be decoded before any new input, in order.
func (d *Decoder) Unread(rest []byte) {
	if len(rest) == 0 {
		return
	}
	merged := make([]byte, 0, len(rest)+len(d.pending))
	merged = append(merged, rest...)
	d.pending = append(merged, d.pending...)
}

// classifyByte maps a single non-ESC byte.
func classifyByte(b byte) KeyPress {
	switch {
	case b == '\r' || b == '\n':
		return KeyPress{Key: KeyEnter, Char: '\n', HasChar: true}
	case b == 0x7f || b == 0x08:
		return KeyPress{Key: KeyBackspace}
	case b == '\t':
		return KeyPress{Key: KeyTab}
	case b >= 0x01 && b <= 0x1a:
		return charPress(rune('a'+b-1), ModCtrl)
	case b >= 0x20 && b <= 0x7e:
		return charPress(rune(b), ModNone)
	}
	return Unknown
}

// decodeSequence decodes the bytes following ESC and returns how many of
// them belong to the key-press.
func decodeSequence(seq []byte) (KeyPress, int) {
	switch seq[0] {
	case '[':
		return decodeCSI(seq)
	case 'O':
		if len(seq) == 1 {
			return altPress('O'), 1
		}
		if k, ok := ss3Keys[seq[1]]; ok {
			return KeyPress{Key: k}, 2
		}
		return Unknown, 2
	}
	return altPress(seq[0]), 1
}

// altPress handles ESC followed by a plain byte: the byte's own key with
// Alt added. Control bytes keep their Ctrl+letter remap.
func altPress(b byte) KeyPress {
	press := classifyByte(b)
	if b == esc {
		press = KeyPress{Key: KeyEscape}
	}
	if press.Key == KeyUnknown {
		return Unknown
	}
	press.Mods |= ModAlt
	return press
}

// finalIndex returns the index of the CSI final byte (0x40..0x7e) in seq,
// which starts with '[', or -1 if the sequence is unterminated.
func finalIndex(seq []byte) int {
	for i := 1; i < len(seq); i++ {
		if seq[i] >= 0x40 && seq[i] <= 0x7e {
			return i
		}
	}
	return -1
}

// decodeCSI handles "[ params final". Unrecognized sequences are consumed
// through their final byte and reported as Unknown.
func decodeCSI(seq []byte) (KeyPress, int) {
	end := finalIndex(seq)
	if end < 0 {
		return Unknown, len(seq)
	}
	used := end + 1
	params := string(seq[1:end])
	final := seq[end]

	if final == '~' {
		code, mods, ok := parseParams(params)
		if !ok {
			return Unknown, used
		}
		if k, found := tildeKeys[code]; found {
			return KeyPress{Key: k, Mods: mods}, used
		}
		return Unknown, used
	}

	k, found := letterKeys[final]
	if !found {
		return Unknown, used
	}
	if params == "" {
		return KeyPress{Key: k}, used
	}

	// xterm modified form: "[1;<mod><letter>"
	code, mods, ok := parseParams(params)
	if !ok || code != 1 {
		return Unknown, used
	}
	return KeyPress{Key: k, Mods: mods}, used
}

// parseParams parses "<code>" or "<code>;<modifier>" where the xterm
// modifier parameter is 1 + (shift | alt<<1 | ctrl<<2).
func parseParams(params string) (int, Modifier, bool) {
	codeStr, modStr, hasMod := strings.Cut(params, ";")
	code, err := strconv.Atoi(codeStr)
	if err != nil || code < 0 {
		return 0, ModNone, false
	}
	if !hasMod {
		return code, ModNone, true
	}

	m, err := strconv.Atoi(modStr)
	if err != nil || m < 1 {
		return 0, ModNone, false
	}
	bits := m - 1

	var mods Modifier
	if bits&1 != 0 {
		mods |= ModShift
	}
	if bits&2 != 0 {
		mods |= ModAlt
	}
	if bits&4 != 0 {
		mods |= ModCtrl
	}
	return code, mods, true
}
