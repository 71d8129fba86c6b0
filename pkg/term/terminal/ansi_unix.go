// ABOUTME: Unix TTY host for the escape-sequence backend: x/term raw mode and size, x/sys/unix reads.
// ABOUTME: The read-ahead polls the fd, then drains it with O_NONBLOCK set and restores the prior flags.

//go:build unix

package terminal

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// TTYHost is an ANSIHost over a pair of file descriptors.
type TTYHost struct {
	in    *os.File
	out   *os.File
	inFd  int
	outFd int
}

// NewTTYHost wraps in and out. Calling Fd puts both files in blocking mode,
// which the byte reads below rely on.
func NewTTYHost(in, out *os.File) *TTYHost {
	return &TTYHost{
		in:    in,
		out:   out,
		inFd:  int(in.Fd()),
		outFd: int(out.Fd()),
	}
}

// InputInteractive reports whether the input stream is a terminal.
func (h *TTYHost) InputInteractive() bool {
	return IsInteractive(h.in)
}

// OutputInteractive reports whether the output stream is a terminal.
func (h *TTYHost) OutputInteractive() bool {
	return IsInteractive(h.out)
}

// Write sends p to the output stream.
func (h *TTYHost) Write(p []byte) (int, error) {
	n, err := h.out.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to terminal: %w", err)
	}
	return n, nil
}

// Size returns the window size of the output stream.
func (h *TTYHost) Size() (rows, cols int, err error) {
	w, hgt, err := term.GetSize(h.outFd)
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return hgt, w, nil
}

// MakeRaw puts the input stream in raw mode.
func (h *TTYHost) MakeRaw() (func() error, error) {
	state, err := term.MakeRaw(h.inFd)
	if err != nil {
		return nil, err
	}
	return func() error { return term.Restore(h.inFd, state) }, nil
}

// ReadByte blocks until one byte arrives.
func (h *TTYHost) ReadByte() (byte, error) {
	var b [1]byte
	for {
		n, err := unix.Read(h.inFd, b[:])
		switch {
		case err == unix.EINTR:
			continue
		case err == unix.EAGAIN:
			// Someone left the fd non-blocking; wait for readiness.
			if _, perr := h.poll(-1); perr != nil {
				return 0, perr
			}
			continue
		case err != nil:
			return 0, fmt.Errorf("reading terminal input: %w", err)
		case n == 0:
			return 0, io.EOF
		}
		return b[0], nil
	}
}

// ReadPending waits up to wait for input, then reads whatever is already
// buffered, up to len(p) bytes, without blocking.
func (h *TTYHost) ReadPending(p []byte, wait time.Duration) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	ms := int((wait + time.Millisecond - 1) / time.Millisecond)
	ready, err := h.poll(ms)
	if err != nil || !ready {
		return 0, err
	}

	flags, err := unix.FcntlInt(uintptr(h.inFd), unix.F_GETFL, 0)
	if err != nil {
		return 0, fmt.Errorf("reading fd flags: %w", err)
	}
	if _, err := unix.FcntlInt(uintptr(h.inFd), unix.F_SETFL, flags|unix.O_NONBLOCK); err != nil {
		return 0, fmt.Errorf("setting non-blocking input: %w", err)
	}
	defer func() {
		_, _ = unix.FcntlInt(uintptr(h.inFd), unix.F_SETFL, flags)
	}()

	total := 0
	for total < len(p) {
		n, err := unix.Read(h.inFd, p[total:])
		if err == unix.EINTR {
			continue
		}
		if err != nil || n <= 0 {
			break
		}
		total += n
	}
	return total, nil
}

// poll waits up to ms milliseconds (-1 forever) for input readiness.
func (h *TTYHost) poll(ms int) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(h.inFd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, ms)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("polling terminal input: %w", err)
		}
		return n > 0, nil
	}
}
