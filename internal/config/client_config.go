package config

// ClientConfig defines configuration for the HTTP client used for
// validation and chat requests.
type ClientConfig struct {
	RequestTimeoutSecs int    `json:"request_timeout_secs,omitempty" yaml:"request_timeout_secs,omitempty" validate:"omitempty,gt=0"`
	UserAgent          string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	EnableHTTP2        bool   `json:"enable_http2,omitempty" yaml:"enable_http2,omitempty"`
	InsecureSkipVerify bool   `json:"insecure_skip_verify,omitempty" yaml:"insecure_skip_verify,omitempty"`
	Proxy              string `json:"proxy,omitempty" yaml:"proxy,omitempty" validate:"omitempty,url"`
}

// NewDefaultClientConfig creates default HTTP client configuration
func NewDefaultClientConfig() ClientConfig {
	return ClientConfig{
		RequestTimeoutSecs: DefaultRequestTimeoutSecs,
		UserAgent:          DefaultUserAgent,
		EnableHTTP2:        true,
	}
}
