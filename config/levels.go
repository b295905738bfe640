package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// CriticalLevel is the level named CRITICAL. It is the lowest zap level above
// Error, so a CRITICAL threshold still admits panic and fatal entries.
const CriticalLevel = zapcore.DPanicLevel

var levelNames = map[string]zapcore.Level{
	"DEBUG":    zapcore.DebugLevel,
	"INFO":     zapcore.InfoLevel,
	"WARN":     zapcore.WarnLevel,
	"WARNING":  zapcore.WarnLevel,
	"ERROR":    zapcore.ErrorLevel,
	"CRITICAL": CriticalLevel,
	"FATAL":    CriticalLevel,
}

// ParseLevel parses a level name case-insensitively.
func ParseLevel(name string) (zapcore.Level, error) {
	level, ok := levelNames[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return DefaultLogLevel, fmt.Errorf("%w: unknown level name %q", ErrInvalidConfig, name)
	}
	return level, nil
}

// LevelName returns the canonical upper-case name of level.
func LevelName(level zapcore.Level) string {
	switch {
	case level <= zapcore.DebugLevel:
		return "DEBUG"
	case level == zapcore.InfoLevel:
		return "INFO"
	case level == zapcore.WarnLevel:
		return "WARNING"
	case level == zapcore.ErrorLevel:
		return "ERROR"
	default:
		return "CRITICAL"
	}
}

// ParseBool reports whether value is one of "true", "1", "yes" or "y",
// ignoring case. Everything else is false.
func ParseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "y":
		return true
	default:
		return false
	}
}
