package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	originalLogger := Logger
	Logger = zap.New(core)
	defer func() { Logger = originalLogger }()

	tests := []struct {
		name  string
		fn    func(msg string, args ...any)
		level zapcore.Level
		msg   string
	}{
		{"Info", Info, zapcore.InfoLevel, "info message"},
		{"Error", Error, zapcore.ErrorLevel, "error message"},
		{"Warn", Warn, zapcore.WarnLevel, "warn message"},
		{"Debug", Debug, zapcore.DebugLevel, "debug message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_ = logs.TakeAll()
			tt.fn(tt.msg, "rows", 3)

			entries := logs.TakeAll()
			if len(entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(entries))
			}
			if entries[0].Message != tt.msg {
				t.Errorf("expected msg %q, got %q", tt.msg, entries[0].Message)
			}
			if entries[0].Level != tt.level {
				t.Errorf("expected level %v, got %v", tt.level, entries[0].Level)
			}
			if got := entries[0].ContextMap()["rows"]; got != int64(3) {
				t.Errorf("expected field rows=3, got %v", got)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	l, err := New("info", path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	l.Info("written to file")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file missing entry: %q", data)
	}
}

func TestDefaultLogger(t *testing.T) {
	if Logger == nil {
		t.Error("Logger should be initialized")
	}
}
