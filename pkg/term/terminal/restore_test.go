// ABOUTME: Tests for RestoreOnPanic panic recovery.
// ABOUTME: Verifies a held raw session is released, colors reset and the process exits with code 1.

package terminal

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

// panicMu serializes tests that swap the package's stderr and exit hooks.
var panicMu sync.Mutex

func swapPanicHooks(t *testing.T) (*bytes.Buffer, *int) {
	t.Helper()
	panicMu.Lock()

	var buf bytes.Buffer
	code := -1
	prevStderr, prevExit := stderr, exit
	stderr = &buf
	exit = func(c int) { code = c }
	t.Cleanup(func() {
		stderr, exit = prevStderr, prevExit
		panicMu.Unlock()
	})
	return &buf, &code
}

func TestRestoreOnPanic_ReleasesAndExits(t *testing.T) {
	buf, code := swapPanicHooks(t)
	host := newFakeANSIHost()
	term := NewANSITerminal(host, Options{})

	func() {
		defer RestoreOnPanic(term)

		if _, err := term.RawMode(); err != nil {
			t.Fatalf("RawMode() unexpected error: %v", err)
		}
		panic("render failed")
	}()

	if *code != 1 {
		t.Errorf("exit code = %d, want 1", *code)
	}
	if _, exits, raw := host.rawCounts(); exits != 1 || raw {
		t.Errorf("raw exits=%d active=%v, want 1/false", exits, raw)
	}
	if !strings.HasSuffix(host.output(), "\x1b[0m") {
		t.Errorf("output = %q, want a color reset", host.output())
	}
	if !strings.Contains(buf.String(), "panic: render failed") {
		t.Errorf("stderr = %q, want the panic value", buf.String())
	}
}

func TestRestoreOnPanic_NoPanic(t *testing.T) {
	_, code := swapPanicHooks(t)
	host := newFakeANSIHost()
	term := NewANSITerminal(host, Options{})

	func() {
		defer RestoreOnPanic(term)
	}()

	if *code != -1 {
		t.Errorf("exit called with %d, want no exit", *code)
	}
	if got := host.output(); got != "" {
		t.Errorf("output = %q, want nothing", got)
	}
}

func TestRestoreOnPanic_ConsoleBackend(t *testing.T) {
	buf, code := swapPanicHooks(t)
	term, vc := newConsole(t)
	term.SetForegroundColor256(2)

	func() {
		defer RestoreOnPanic(term)

		if _, err := term.RawMode(); err != nil {
			t.Fatalf("RawMode() unexpected error: %v", err)
		}
		panic("console panic")
	}()

	if *code != 1 {
		t.Errorf("exit code = %d, want 1", *code)
	}
	if got := vc.Mode(); got != DefaultConsoleMode {
		t.Errorf("mode = %#x, want restored %#x", got, DefaultConsoleMode)
	}
	if got := vc.Attributes(); got != defaultAttr {
		t.Errorf("attributes = %#04x, want defaults %#04x", got, defaultAttr)
	}
	if !strings.Contains(buf.String(), "panic: console panic") {
		t.Errorf("stderr = %q, want the panic value", buf.String())
	}
}
