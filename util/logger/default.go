package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"os"
	"strings"
)

var (
	defaultLogger = NewLogger("lvmctl", zap.InfoLevel, os.Stderr)
)

func SetupDefaultLogger(l *zap.SugaredLogger) {
	defaultLogger = l
}

// Default returns the logger handed to components that were not given one.
func Default() *zap.SugaredLogger {
	return defaultLogger
}

// Nop discards everything, used by tests.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// ParseLevel accepts the names used in the config file: debug, info, warn, error.
// An empty name means info.
func ParseLevel(name string) (zapcore.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zapcore.InfoLevel, nil
	}
	return zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
}
