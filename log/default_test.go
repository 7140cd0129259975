package log

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestConfig_ReplacesDefault(t *testing.T) {
	prev := Default()
	t.Cleanup(func() {
		defaultMu.Lock()
		defaultLogger = prev
		defaultMu.Unlock()
	})

	var buf bytes.Buffer
	Config(WithOutput(&buf), WithLevel(LevelDebug))
	Config(WithFormat(FormatText))

	Debug("package debug")
	InfoContext(context.Background(), "package info")
	Trace("package trace")

	output := buf.String()
	if !strings.Contains(output, "package debug") {
		t.Errorf("expected debug message: %s", output)
	}

	if !strings.Contains(output, "package info") {
		t.Errorf("expected info message: %s", output)
	}

	if strings.Contains(output, "package trace") {
		t.Errorf("trace message logged below level: %s", output)
	}

	if strings.HasPrefix(output, "{") {
		t.Errorf("expected text output after reconfiguring: %s", output)
	}
}
