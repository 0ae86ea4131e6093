package tiles3d

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultSilent(t *testing.T) {
	SetLogger(nil)
	l := Logger()
	if l == nil {
		t.Fatal("Logger must never return nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger must report disabled at every level")
	}
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	Logger().Info("adapter selected", "name", "test")
	if !strings.Contains(buf.String(), "adapter selected") {
		t.Errorf("expected log output, got %q", buf.String())
	}

	// nil restores the silent default.
	SetLogger(nil)
	buf.Reset()
	Logger().Info("should not appear")
	if buf.Len() != 0 {
		t.Errorf("expected no output after reset, got %q", buf.String())
	}
}

func TestNopHandlerChaining(t *testing.T) {
	SetLogger(nil)
	l := Logger().With("key", "value").WithGroup("group")
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("derived nop loggers must stay disabled")
	}
}
