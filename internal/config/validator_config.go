package config

// ValidatorConfig defines configuration for the document validation pipeline.
type ValidatorConfig struct {
	Endpoint            string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" validate:"omitempty,url"`
	MaxChunkSize        int    `json:"max_chunk_size,omitempty" yaml:"max_chunk_size,omitempty" validate:"omitempty,gt=0"`
	BoundaryWindow      int    `json:"boundary_window,omitempty" yaml:"boundary_window,omitempty" validate:"omitempty,gte=0"`
	Lookahead           int    `json:"lookahead,omitempty" yaml:"lookahead,omitempty" validate:"omitempty,gte=0"`
	ParseErrorThreshold int    `json:"parse_error_threshold,omitempty" yaml:"parse_error_threshold,omitempty" validate:"omitempty,gt=0"`
	MinDocumentLength   int    `json:"min_document_length,omitempty" yaml:"min_document_length,omitempty" validate:"omitempty,gte=0"`
}

// NewDefaultValidatorConfig creates default validator configuration
func NewDefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{
		Endpoint:            DefaultValidationEndpoint,
		MaxChunkSize:        DefaultMaxChunkSize,
		BoundaryWindow:      DefaultBoundaryWindow,
		Lookahead:           DefaultLookahead,
		ParseErrorThreshold: DefaultValidationParseErrorThreshold,
		MinDocumentLength:   1,
	}
}

// ChatConfig defines configuration for the assistant chat client.
type ChatConfig struct {
	Endpoint            string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" validate:"omitempty,url"`
	ParseErrorThreshold int    `json:"parse_error_threshold,omitempty" yaml:"parse_error_threshold,omitempty" validate:"omitempty,gt=0"`
}

// NewDefaultChatConfig creates default chat configuration
func NewDefaultChatConfig() ChatConfig {
	return ChatConfig{
		Endpoint:            DefaultChatEndpoint,
		ParseErrorThreshold: DefaultChatParseErrorThreshold,
	}
}
