// ABOUTME: Tests for the leveled logging package
// ABOUTME: Validates level filtering, output redirection and level name parsing

package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// capture redirects output and level for the duration of the test.
func capture(t *testing.T, l slog.Level) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	savedLevel := GetLevel()
	savedOut := SetOutput(&buf)
	SetLevel(l)
	t.Cleanup(func() {
		SetLevel(savedLevel)
		SetOutput(savedOut)
	})
	return &buf
}

func TestSetLevel(t *testing.T) {
	savedLevel := GetLevel()
	defer SetLevel(savedLevel)

	SetLevel(LevelDebug)
	if GetLevel() != LevelDebug {
		t.Errorf("expected LevelDebug, got %v", GetLevel())
	}

	SetLevel(LevelError)
	if GetLevel() != LevelError {
		t.Errorf("expected LevelError, got %v", GetLevel())
	}
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	buf := capture(t, LevelInfo)

	Debug("this should be suppressed: %s", "test")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestWarnFormatting(t *testing.T) {
	buf := capture(t, LevelInfo)

	Warn("color index %d unsupported", 200)
	if got, want := buf.String(), "[WARN] color index 200 unsupported\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestErrorAlwaysEmitted(t *testing.T) {
	buf := capture(t, LevelError+4)

	Warn("hidden")
	Error("shown: %d", 1)
	if got := buf.String(); got != "[ERROR] shown: 1\n" {
		t.Errorf("output = %q", got)
	}
}

func TestAllLevels(t *testing.T) {
	buf := capture(t, LevelDebug)

	Debug("debug: %d", 1)
	Info("info: %d", 2)
	Warn("warn: %d", 3)
	Error("error: %d", 4)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{"[DEBUG] debug: 1", "[INFO] info: 2", "[WARN] warn: 3", "[ERROR] error: 4"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    slog.Level
		wantErr bool
	}{
		{name: "debug", want: LevelDebug},
		{name: "INFO", want: LevelInfo},
		{name: "", want: LevelInfo},
		{name: " warning ", want: LevelWarn},
		{name: "error", want: LevelError},
		{name: "loud", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
