package log

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/op/go-logging"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)
	defer SetLevel(Notice)

	logger := New("test")

	SetLevel(Notice)
	logger.Debugf("hidden %d", 1)
	logger.Info("hidden too")
	logger.Noticef("shown %d", 2)
	logger.Error("also shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected debug and info messages to be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown 2") || !strings.Contains(out, "also shown") {
		t.Errorf("Expected notice and error messages, got %q", out)
	}
	if !strings.Contains(out, "[test]") {
		t.Errorf("Expected module name in output, got %q", out)
	}

	buf.Reset()
	SetLevel(Debug)
	logger.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("Expected debug message at Debug level, got %q", buf.String())
	}
}

func TestSetSink_KeepsLevel(t *testing.T) {
	var buf bytes.Buffer
	SetLevel(Warning)
	SetSink(&buf)
	defer SetSink(os.Stderr)
	defer SetLevel(Notice)

	New("sink").Notice("dropped")
	New("sink").Warning("kept")

	if out := buf.String(); strings.Contains(out, "dropped") || !strings.Contains(out, "kept") {
		t.Errorf("Expected the Warning level to survive a sink change, got %q", out)
	}
}

func TestSetLevel_BackendMapping(t *testing.T) {
	defer SetLevel(Notice)

	tests := []struct {
		level    Level
		expected logging.Level
	}{
		{Debug, logging.DEBUG},
		{Info, logging.INFO},
		{Notice, logging.NOTICE},
		{Warning, logging.WARNING},
		{Error, logging.ERROR},
		{Level(-3), logging.DEBUG},
		{Level(42), logging.ERROR},
	}

	for _, tt := range tests {
		SetLevel(tt.level)
		if got := leveledBackend.GetLevel(""); got != tt.expected {
			t.Errorf("SetLevel(%d): expected backend level %v, got %v", tt.level, tt.expected, got)
		}
	}
}
