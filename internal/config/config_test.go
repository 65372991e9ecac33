package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	assert.Equal(t, DefaultValidationEndpoint, cfg.ValidatorConfig.Endpoint)
	assert.Equal(t, DefaultMaxChunkSize, cfg.ValidatorConfig.MaxChunkSize)
	assert.Equal(t, DefaultValidationParseErrorThreshold, cfg.ValidatorConfig.ParseErrorThreshold)
	assert.Equal(t, DefaultChatParseErrorThreshold, cfg.ChatConfig.ParseErrorThreshold)
	assert.Equal(t, DefaultLogLevel, cfg.LogConfig.LogLevel)
}

func TestLoadGlobalConfig_MissingFileYieldsDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	cfg, err := LoadGlobalConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultValidationEndpoint, cfg.ValidatorConfig.Endpoint)
}

func TestLoadGlobalConfig_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
validator_config:
  endpoint: "http://example.com/api/document-validation"
  max_chunk_size: 1500
log_config:
  log_level: "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadGlobalConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "http://example.com/api/document-validation", cfg.ValidatorConfig.Endpoint)
	assert.Equal(t, 1500, cfg.ValidatorConfig.MaxChunkSize)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultChatEndpoint, cfg.ChatConfig.Endpoint)
}

func TestLoadGlobalConfig_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"validator_config": {"parse_error_threshold": 5}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadGlobalConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 5, cfg.ValidatorConfig.ParseErrorThreshold)
}

func TestLoadGlobalConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("::: not yaml {{{"), 0644))

	_, err := LoadGlobalConfig(path)
	assert.Error(t, err)
}

func TestGetConfigPath_EnvFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	t.Setenv(EnvConfigPath, path)

	assert.Equal(t, path, GetConfigPath(""))
}

func TestValidateConfig_AcceptsDefaults(t *testing.T) {
	assert.NoError(t, ValidateConfig(NewDefaultGlobalConfig()))
}

func TestValidateConfig_RejectsBadLogLevel(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.LogConfig.LogLevel = "verbose"

	err := ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loglevel")
}

func TestValidateConfig_RejectsBadEndpointURL(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.ValidatorConfig.Endpoint = "not a url"

	assert.Error(t, ValidateConfig(cfg))
}

func TestValidateConfig_RejectsBoundaryWindowLargerThanChunk(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.ValidatorConfig.MaxChunkSize = 100
	cfg.ValidatorConfig.BoundaryWindow = 500

	err := ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boundary_window")
}

func TestValidateConfig_RejectsMultipleDefaultModels(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.Models = []ModelConfig{
		{Name: "a", IsDefault: true, IsEnabled: true},
		{Name: "b", IsDefault: true, IsEnabled: true},
	}

	err := ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "default")
}

func TestResolveModel_PrefersDefaultEnabled(t *testing.T) {
	resolved, err := ResolveModel([]ModelConfig{
		{Name: "first", ModelName: "m1", APIURL: "https://a.example.com", APIKey: "k1", IsEnabled: true},
		{Name: "second", ModelName: "m2", APIURL: "https://b.example.com", APIKey: "k2", IsDefault: true, IsEnabled: true},
	})

	require.NoError(t, err)
	assert.Equal(t, "second", resolved.Source)
	assert.Equal(t, "m2", resolved.ModelName)
}

func TestResolveModel_DisabledDefaultIsSkipped(t *testing.T) {
	resolved, err := ResolveModel([]ModelConfig{
		{Name: "off", ModelName: "m1", IsDefault: true, IsEnabled: false},
		{Name: "on", ModelName: "m2", APIURL: "https://b.example.com", APIKey: "k2", IsEnabled: true},
	})

	require.NoError(t, err)
	assert.Equal(t, "on", resolved.Source)
}

func TestResolveModel_EnvironmentFallback(t *testing.T) {
	t.Setenv("LLM_API_KEY", "env-key")
	t.Setenv("LLM_API_URL", "https://env.example.com/v1")
	t.Setenv("LLM_MODEL_NAME", "env-model")

	resolved, err := ResolveModel(nil)

	require.NoError(t, err)
	assert.Equal(t, "environment", resolved.Source)
	assert.Equal(t, "env-key", resolved.APIKey)
	assert.Equal(t, "https://env.example.com/v1", resolved.APIURL)
	assert.Equal(t, "env-model", resolved.ModelName)
	assert.NoError(t, resolved.Validate())
}

func TestResolveModel_EnvironmentDefaults(t *testing.T) {
	t.Setenv("LLM_API_KEY", "env-key")
	// Register restoration, then unset so the envDefault values apply.
	t.Setenv("LLM_API_URL", "placeholder")
	t.Setenv("LLM_MODEL_NAME", "placeholder")
	require.NoError(t, os.Unsetenv("LLM_API_URL"))
	require.NoError(t, os.Unsetenv("LLM_MODEL_NAME"))

	resolved, err := ResolveModel(nil)

	require.NoError(t, err)
	assert.Equal(t, "gpt-4", resolved.ModelName)
	assert.Equal(t, "https://api.openai.com/v1", resolved.APIURL)
}

func TestResolvedModel_RequestHeaders(t *testing.T) {
	m := ResolvedModel{ModelName: "gpt-4", APIURL: "https://api.example.com", APIKey: "secret"}

	headers := m.RequestHeaders()

	assert.Equal(t, "Bearer secret", headers["Authorization"])
	assert.Equal(t, "gpt-4", headers["X-Model-Name"])
}

func TestResolvedModel_ValidateRequiresKey(t *testing.T) {
	m := ResolvedModel{ModelName: "gpt-4", APIURL: "https://api.example.com"}
	assert.Error(t, m.Validate())
}
