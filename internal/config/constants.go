package config

// Logging defaults
const (
	DefaultLogFile       = "logs/docaimaster.log"
	DefaultLogFormat     = "console"
	DefaultLogLevel      = "info"
	DefaultMaxLogBackups = 3
	DefaultMaxLogSizeMB  = 10
)

// Chunker defaults. The boundary window and lookahead bound the backward
// sentence-terminator search around a chunk cut point.
const (
	DefaultMaxChunkSize   = 3000
	DefaultBoundaryWindow = 200
	DefaultLookahead      = 100
)

// Stream defaults. Validation streams tolerate more malformed frames than
// chat streams because validation responses are longer.
const (
	DefaultChatParseErrorThreshold       = 10
	DefaultValidationParseErrorThreshold = 15
)

// Endpoint defaults, matching the backend's route layout.
const (
	DefaultValidationEndpoint = "http://localhost:5000/api/document-validation"
	DefaultChatEndpoint       = "http://localhost:5000/api/chat"
)

// HTTP client defaults
const (
	DefaultRequestTimeoutSecs = 120
	DefaultUserAgent          = "AIDocMaster/1.0"
)

// Position mapper defaults
const (
	DefaultFuzzyProbeLength = 30
	DefaultMatchThreshold   = 0.5
)

// Storage defaults
const (
	DefaultHistoryDBPath = "data/validation_history.db"
)

// Environment variable fallbacks for LLM credentials
const (
	EnvConfigPath = "AIDOCMASTER_CONFIG_PATH"
)
