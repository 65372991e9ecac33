package httpclient

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/xdrshjr/AIDocMaster/internal/config"
)

// HTTPClientBuilder provides a fluent interface for creating an HTTPClient
type HTTPClientBuilder struct {
	config HTTPClientConfig
	logger zerolog.Logger
}

// NewHTTPClientBuilder creates a new builder
func NewHTTPClientBuilder(logger zerolog.Logger) *HTTPClientBuilder {
	return &HTTPClientBuilder{
		config: DefaultHTTPClientConfig(),
		logger: logger.With().Str("component", "HTTPClient").Logger(),
	}
}

// WithClientConfig applies the application client configuration
func (b *HTTPClientBuilder) WithClientConfig(cfg config.ClientConfig) *HTTPClientBuilder {
	if cfg.RequestTimeoutSecs > 0 {
		b.config.Timeout = time.Duration(cfg.RequestTimeoutSecs) * time.Second
	}
	if cfg.UserAgent != "" {
		b.config.UserAgent = cfg.UserAgent
	}
	b.config.EnableHTTP2 = cfg.EnableHTTP2
	b.config.InsecureSkipVerify = cfg.InsecureSkipVerify
	b.config.Proxy = cfg.Proxy
	return b
}

// WithTimeout overrides the request timeout
func (b *HTTPClientBuilder) WithTimeout(timeout time.Duration) *HTTPClientBuilder {
	b.config.Timeout = timeout
	return b
}

// WithCustomHeaders sets default headers applied to every request
func (b *HTTPClientBuilder) WithCustomHeaders(headers map[string]string) *HTTPClientBuilder {
	b.config.CustomHeaders = headers
	return b
}

// Build creates a new HTTPClient instance
func (b *HTTPClientBuilder) Build() (*HTTPClient, error) {
	return NewHTTPClient(b.config, b.logger)
}
