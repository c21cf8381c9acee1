package log

import (
	"log/slog"
	"strings"
)

// Level is the minimum severity a message needs to be emitted.
type Level int

const (
	// LevelDebug is for diagnostics such as discarded renewals
	LevelDebug Level = iota
	// LevelInfo is for normal operational messages
	LevelInfo
	// LevelWarn is for degraded but recoverable conditions
	LevelWarn
	// LevelError is for failures
	LevelError
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ToSlogLevel converts the level to its slog equivalent
func (l Level) ToSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel parses a level name as it appears in the config file or
// MERCHDESK_LOG_LEVEL. Unrecognized values fall back to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}
