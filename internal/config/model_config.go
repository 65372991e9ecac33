package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/xdrshjr/AIDocMaster/internal/common"
)

// ModelConfig describes one configured upstream LLM.
type ModelConfig struct {
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	ModelName string `json:"model_name,omitempty" yaml:"model_name,omitempty"`
	APIURL    string `json:"api_url,omitempty" yaml:"api_url,omitempty" validate:"omitempty,url"`
	APIKey    string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	IsDefault bool   `json:"is_default,omitempty" yaml:"is_default,omitempty"`
	IsEnabled bool   `json:"is_enabled,omitempty" yaml:"is_enabled,omitempty"`
}

// llmEnv carries the environment-variable fallback for LLM credentials.
type llmEnv struct {
	APIKey    string `env:"LLM_API_KEY"`
	APIURL    string `env:"LLM_API_URL" envDefault:"https://api.openai.com/v1"`
	ModelName string `env:"LLM_MODEL_NAME" envDefault:"gpt-4"`
}

// ResolvedModel is the model configuration actually used for requests.
type ResolvedModel struct {
	ModelName string
	APIURL    string
	APIKey    string
	Source    string
}

// ResolveModel selects the model to use: the default enabled entry, else
// the first enabled entry, else the environment-variable fallback.
func ResolveModel(models []ModelConfig) (ResolvedModel, error) {
	for _, m := range models {
		if m.IsDefault && m.IsEnabled {
			return ResolvedModel{ModelName: m.ModelName, APIURL: m.APIURL, APIKey: m.APIKey, Source: m.Name}, nil
		}
	}
	for _, m := range models {
		if m.IsEnabled {
			return ResolvedModel{ModelName: m.ModelName, APIURL: m.APIURL, APIKey: m.APIKey, Source: m.Name}, nil
		}
	}
	return resolveModelFromEnv()
}

// resolveModelFromEnv loads LLM credentials from the environment, reading
// a .env file first when present.
func resolveModelFromEnv() (ResolvedModel, error) {
	_ = godotenv.Load()

	var e llmEnv
	if err := env.Parse(&e); err != nil {
		return ResolvedModel{}, common.WrapError(err, "failed to parse LLM environment variables")
	}

	return ResolvedModel{
		ModelName: e.ModelName,
		APIURL:    e.APIURL,
		APIKey:    e.APIKey,
		Source:    "environment",
	}, nil
}

// RequestHeaders returns the headers carrying the resolved model's
// credentials and name on every backend request.
func (m ResolvedModel) RequestHeaders() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + m.APIKey,
		"X-Model-Name":  m.ModelName,
	}
}

// Validate checks that the resolved model carries everything a request needs.
func (m ResolvedModel) Validate() error {
	if m.APIKey == "" {
		return common.NewValidationError("api_key", "", "LLM API key is not configured")
	}
	if m.APIURL == "" {
		return common.NewValidationError("api_url", "", "LLM API URL is not configured")
	}
	if m.ModelName == "" {
		return common.NewValidationError("model_name", "", "LLM model name is not configured")
	}
	return nil
}
