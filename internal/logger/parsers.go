package logger

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/xdrshjr/AIDocMaster/internal/common"
)

// ParseLevel parses a configured log level string to a zerolog level.
func ParseLevel(levelStr string) (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		return zerolog.InfoLevel, common.WrapError(err, "invalid log level")
	}
	return level, nil
}

// ParseFormat maps a configured format string to a LogFormat. Unknown
// formats fall back to console.
func ParseFormat(formatStr string) LogFormat {
	switch strings.ToLower(formatStr) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return FormatConsole
	}
}
