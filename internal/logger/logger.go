// Copyright (c) 2025 Langflow
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logger

import (
	"context"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	//nolint:gochecknoglobals // Shared by every package through the helpers below.
	globalLogger *zap.SugaredLogger
	//nolint:gochecknoglobals // Level is adjusted at runtime by --verbose and config.
	atomicLevel = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	//nolint:gochecknoglobals // Guards globalLogger.
	mu sync.RWMutex
)

//nolint:gochecknoinits // The logger must be usable before config is loaded.
func init() {
	globalLogger = New(atomicLevel)
}

// New creates a console logger writing to stderr.
// A nil level falls back to the global atomic level.
func New(level zapcore.LevelEnabler) *zap.SugaredLogger {
	if level == nil {
		level = atomicLevel
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		level,
	)

	return zap.New(core).Sugar()
}

// ParseLogLevel converts a textual level. Unknown input yields InfoLevel and false.
func ParseLogLevel(s string) (zapcore.Level, bool) {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || strings.TrimSpace(s) == "" {
		return zapcore.InfoLevel, false
	}

	return level, true
}

// Level returns the current global level.
func Level() zapcore.Level {
	return atomicLevel.Level()
}

// SetLevel changes the global level.
func SetLevel(level zapcore.Level) {
	atomicLevel.SetLevel(level)
}

// IsDebugLevel reports whether debug messages are emitted.
func IsDebugLevel() bool {
	return atomicLevel.Enabled(zapcore.DebugLevel)
}

// Logger returns the global logger.
func Logger() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()

	return globalLogger
}

// SetLogger replaces the global logger.
func SetLogger(l *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()

	globalLogger = l
}

// Debug logs a message at debug level.
func Debug(_ context.Context, args ...any) { Logger().Debug(args...) }

// Debugf logs a formatted message at debug level.
func Debugf(_ context.Context, format string, args ...any) { Logger().Debugf(format, args...) }

// DebugKV logs a message with key-value pairs at debug level.
func DebugKV(_ context.Context, msg string, kv ...any) { Logger().Debugw(msg, kv...) }

// Infof logs a formatted message at info level.
func Infof(_ context.Context, format string, args ...any) { Logger().Infof(format, args...) }

// InfoKV logs a message with key-value pairs at info level.
func InfoKV(_ context.Context, msg string, kv ...any) { Logger().Infow(msg, kv...) }

// Warnf logs a formatted message at warn level.
func Warnf(_ context.Context, format string, args ...any) { Logger().Warnf(format, args...) }

// ErrorKV logs a message with key-value pairs at error level.
func ErrorKV(_ context.Context, msg string, kv ...any) { Logger().Errorw(msg, kv...) }
