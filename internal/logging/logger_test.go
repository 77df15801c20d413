package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsRecord(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelInfo)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Info("import finished",
		String(FieldComponent, "csvimport"),
		Int("imported", 3),
		String("file", "master list.csv"),
	)

	out := buf.String()
	if !strings.Contains(out, "INFO csvimport: import finished") {
		t.Fatalf("unexpected console output: %q", out)
	}
	if !strings.Contains(out, "imported=3") {
		t.Fatalf("expected imported attribute, got %q", out)
	}
	if !strings.Contains(out, `file="master list.csv"`) {
		t.Fatalf("expected quoted file attribute, got %q", out)
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Info("suppressed")
	if buf.Len() != 0 {
		t.Fatalf("expected info record suppressed at warn level, got %q", buf.String())
	}

	logger.Warn("kept")
	if !strings.Contains(buf.String(), "WARN kept") {
		t.Fatalf("expected warn record, got %q", buf.String())
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
		"  INFO ": slog.LevelInfo,
	}
	for input, expected := range cases {
		if got := parseLevel(input); got != expected {
			t.Fatalf("parseLevel(%q) = %v, expected %v", input, got, expected)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewComponentLoggerNilBase(t *testing.T) {
	logger := NewComponentLogger(nil, "matcher")
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
	logger.Info("should not panic")
}
