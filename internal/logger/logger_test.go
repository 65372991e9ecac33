package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xdrshjr/AIDocMaster/internal/config"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)

	level, err = ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, level)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatConsole, ParseFormat("console"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatConsole, ParseFormat("anything else"))
}

func TestFromLogConfig(t *testing.T) {
	cfg := FromLogConfig(config.LogConfig{
		LogFile:   "logs/test.log",
		LogFormat: "json",
		LogLevel:  "error",
	})

	assert.Equal(t, zerolog.ErrorLevel, cfg.Level)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.True(t, cfg.EnableFile)
	assert.Equal(t, "logs/test.log", cfg.FilePath)
	// Unset rotation settings fall back to defaults.
	assert.Equal(t, 10, cfg.MaxSizeMB)
	assert.Equal(t, 3, cfg.MaxBackups)
}

func TestFromLogConfig_NoFileDisablesFileOutput(t *testing.T) {
	cfg := FromLogConfig(config.LogConfig{LogLevel: "info"})

	assert.False(t, cfg.EnableFile)
}

func TestFromLogConfig_BadLevelFallsBackToInfo(t *testing.T) {
	cfg := FromLogConfig(config.LogConfig{LogLevel: "chatty"})

	assert.Equal(t, zerolog.InfoLevel, cfg.Level)
}

func TestNew_WritesToConfiguredFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "app.log")

	zLogger, err := New(config.LogConfig{
		LogFile:   logFile,
		LogFormat: "json",
		LogLevel:  "info",
	})
	require.NoError(t, err)

	zLogger.Info().Str("component", "test").Msg("hello from the logger test")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the logger test")
}
