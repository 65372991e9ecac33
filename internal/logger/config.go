package logger

import (
	"github.com/rs/zerolog"

	"github.com/xdrshjr/AIDocMaster/internal/config"
)

// LoggerConfig is the fully resolved logger setup: level, format, and
// which outputs (console, rotating file) are enabled.
type LoggerConfig struct {
	Level         zerolog.Level
	Format        LogFormat
	EnableConsole bool
	EnableFile    bool
	FilePath      string
	MaxSizeMB     int
	MaxBackups    int
}

// LogFormat represents available log formats
type LogFormat int

const (
	FormatJSON LogFormat = iota
	FormatConsole
	FormatText
)

// String returns string representation of LogFormat
func (lf LogFormat) String() string {
	switch lf {
	case FormatJSON:
		return "json"
	case FormatConsole:
		return "console"
	case FormatText:
		return "text"
	default:
		return "console"
	}
}

// DefaultLoggerConfig returns default logger configuration
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:         zerolog.InfoLevel,
		Format:        FormatConsole,
		EnableConsole: true,
		EnableFile:    false,
		MaxSizeMB:     10,
		MaxBackups:    3,
	}
}

// FromLogConfig builds a LoggerConfig from the application log section,
// falling back to defaults for unset values. An unparseable level falls
// back to info rather than failing the bootstrap.
func FromLogConfig(cfg config.LogConfig) LoggerConfig {
	out := DefaultLoggerConfig()

	if level, err := ParseLevel(cfg.LogLevel); err == nil {
		out.Level = level
	}
	out.Format = ParseFormat(cfg.LogFormat)
	out.EnableFile = cfg.LogFile != ""
	out.FilePath = cfg.LogFile
	if cfg.MaxLogSizeMB > 0 {
		out.MaxSizeMB = cfg.MaxLogSizeMB
	}
	if cfg.MaxLogBackups > 0 {
		out.MaxBackups = cfg.MaxLogBackups
	}
	return out
}
