package config

import (
	"log/slog"
	"strings"
)

// LogLevelEnv selects the slog level for the app and the CLI.
const LogLevelEnv = "VIBE_LOG_LEVEL"

// ParseLogLevel maps debug/info/warn/error (case-insensitive) to a slog level.
// Unknown or empty values yield info and false.
func ParseLogLevel(raw string) (slog.Level, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return slog.LevelInfo, false
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(trimmed)); err != nil {
		return slog.LevelInfo, false
	}
	return level, true
}
