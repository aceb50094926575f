package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"", zapcore.InfoLevel},
		{"info", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNew(t *testing.T) {
	log, err := New("info", "json")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be disabled at info level")
	}
	if _, err := New("nope", "json"); err == nil {
		t.Error("expected error for bad level")
	}
}

func TestCLI(t *testing.T) {
	quiet, err := CLI(false)
	if err != nil {
		t.Fatal(err)
	}
	if quiet.Core().Enabled(zapcore.InfoLevel) {
		t.Error("non-verbose CLI logger should drop info")
	}
	loud, err := CLI(true)
	if err != nil {
		t.Fatal(err)
	}
	if !loud.Core().Enabled(zapcore.DebugLevel) {
		t.Error("verbose CLI logger should emit debug")
	}
}
