package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLevel = "info"

// New builds a zap logger. The json format emits structured lines suitable for
// log aggregation; any other format falls back to the human readable console encoder.
func New(levelStr, format string) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(levelStr)))); err != nil {
		_ = level.UnmarshalText([]byte(defaultLevel))
	}

	var cfg zap.Config
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.MessageKey = "message"
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.LevelKey = "severity"
		cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.DisableStacktrace = true
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = level

	return cfg.Build()
}

// Must is like New but falls back to a no-op logger when construction fails.
func Must(levelStr, format string) *zap.Logger {
	l, err := New(levelStr, format)
	if err != nil {
		return zap.NewNop()
	}
	return l
}
