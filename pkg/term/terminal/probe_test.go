// ABOUTME: Tests for the capability probe: interactive detection on files and color depth from the environment.
// ABOUTME: Color depth cases set TERM/COLORTERM with t.Setenv, so they do not run in parallel.

package terminal

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/muesli/termenv"
)

func TestIsInteractive_NonTerminals(t *testing.T) {
	t.Parallel()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() unexpected error: %v", err)
	}
	defer r.Close()
	defer w.Close()

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatalf("creating file: %v", err)
	}
	defer f.Close()

	for name, file := range map[string]*os.File{"pipe reader": r, "pipe writer": w, "regular file": f, "nil": nil} {
		if IsInteractive(file) {
			t.Errorf("IsInteractive(%s) = true, want false", name)
		}
	}
}

func TestProfileDepth(t *testing.T) {
	tests := []struct {
		name      string
		term      string
		colorterm string
		want      ColorDepth
	}{
		{name: "truecolor", term: "xterm-256color", colorterm: "truecolor", want: DepthRGB},
		{name: "24bit", term: "xterm", colorterm: "24bit", want: DepthRGB},
		{name: "256", term: "xterm-256color", want: Depth256},
		{name: "basic", term: "xterm", want: Depth16},
		{name: "dumb", term: "dumb", want: Depth16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TERM", tt.term)
			t.Setenv("COLORTERM", tt.colorterm)
			t.Setenv("NO_COLOR", "")
			t.Setenv("CLICOLOR", "")
			t.Setenv("CLICOLOR_FORCE", "")
			t.Setenv("GOOGLE_CLOUD_SHELL", "")

			// Test output is redirected, so treat it as a terminal.
			out := termenv.NewOutput(io.Discard, termenv.WithTTY(true))
			if got := profileDepth(out); got != tt.want {
				t.Errorf("profileDepth() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectColorDepth_Nil(t *testing.T) {
	t.Parallel()

	if got := DetectColorDepth(nil); got != Depth16 {
		t.Errorf("DetectColorDepth(nil) = %v, want %v", got, Depth16)
	}
}

func TestColorDepthString(t *testing.T) {
	t.Parallel()

	for d, want := range map[ColorDepth]string{Depth16: "16", Depth256: "256", DepthRGB: "rgb"} {
		if got := d.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(d), got, want)
		}
	}
}

func TestProfileDepth_NoColor(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("COLORTERM", "truecolor")
	t.Setenv("NO_COLOR", "1")

	out := termenv.NewOutput(io.Discard, termenv.WithTTY(true))
	if got := profileDepth(out); got != Depth16 {
		t.Errorf("profileDepth() with NO_COLOR = %v, want %v", got, Depth16)
	}
}
