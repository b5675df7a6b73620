package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewWithWriter("debug", buf)

	logger.Debug("test message %s", "value")
	output := buf.String()

	if !strings.Contains(output, "[DEBUG]") {
		t.Errorf("expected [DEBUG] in output, got: %s", output)
	}
	if !strings.Contains(output, "test message value") {
		t.Errorf("expected message in output, got: %s", output)
	}
}

func TestLoggerFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewWithWriter("warn", buf)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()

	if strings.Contains(output, "debug message") {
		t.Errorf("debug should be filtered, got: %s", output)
	}
	if strings.Contains(output, "info message") {
		t.Errorf("info should be filtered, got: %s", output)
	}
	if !strings.Contains(output, "warn message") {
		t.Errorf("warn should be present, got: %s", output)
	}
	if !strings.Contains(output, "error message") {
		t.Errorf("error should be present, got: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"ERROR", LevelError},
		{" info ", LevelInfo},
		{"invalid", LevelInfo},
		{"", LevelInfo},
	}

	for _, test := range tests {
		if got := ParseLevel(test.name); got != test.expected {
			t.Errorf("level %q: expected %d, got %d", test.name, test.expected, got)
		}
	}
}

func TestNewUsesParsedLevel(t *testing.T) {
	if got := New("error").Level(); got != LevelError {
		t.Errorf("expected LevelError, got %d", got)
	}
}
