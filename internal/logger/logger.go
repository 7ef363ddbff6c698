// Package logger provides a thin wrapper around zap for structured logging.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger instance.
var Logger = mustConsole(zapcore.InfoLevel)

// Init replaces the global logger. An empty logFile logs to stderr.
func Init(level, logFile string) error {
	l, err := New(level, logFile)
	if err != nil {
		return err
	}
	Logger = l
	return nil
}

// New builds a console-encoded zap logger at the given level.
func New(level, logFile string) (*zap.Logger, error) {
	zapLevel := ParseLevel(level)

	sink := zapcore.AddSync(os.Stderr)
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		sink = zapcore.AddSync(file)
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), sink, zapLevel)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// ParseLevel maps a level name to a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.ConsoleSeparator = " | "
	return cfg
}

func mustConsole(level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(os.Stderr), level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

// Sync flushes buffered entries.
func Sync() {
	_ = Logger.Sync()
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger.Sugar().Errorw(msg, args...)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	Logger.Sugar().Infow(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger.Sugar().Warnw(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger.Sugar().Debugw(msg, args...)
}
