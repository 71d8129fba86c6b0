// ABOUTME: Checks on a real pty that a raw session changes the line discipline and restores it exactly.
// ABOUTME: Linux only because it reads termios with TCGETS.

//go:build linux

package terminal

import (
	"testing"

	"golang.org/x/sys/unix"
)

func TestTTY_RawSessionRestoresTermios(t *testing.T) {
	t.Parallel()
	_, tty, term := openPTY(t)
	fd := int(tty.Fd())

	before, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		t.Fatalf("TCGETS: %v", err)
	}

	sess, err := term.RawMode()
	if err != nil {
		t.Fatalf("RawMode() unexpected error: %v", err)
	}

	during, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		t.Fatalf("TCGETS: %v", err)
	}
	if during.Lflag&(unix.ICANON|unix.ECHO) != 0 {
		t.Errorf("lflag during session = %#x, want ICANON and ECHO cleared", during.Lflag)
	}

	if err := sess.Release(); err != nil {
		t.Fatalf("Release() unexpected error: %v", err)
	}

	after, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		t.Fatalf("TCGETS: %v", err)
	}
	if after.Iflag != before.Iflag || after.Oflag != before.Oflag ||
		after.Cflag != before.Cflag || after.Lflag != before.Lflag {
		t.Errorf("termios after release = %+v, want %+v", after, before)
	}
}
