package chunker

import "github.com/xdrshjr/AIDocMaster/internal/config"

// ChunkerConfig controls how document text is split into chunks.
type ChunkerConfig struct {
	// MaxChunkSize is the target chunk size in characters.
	MaxChunkSize int
	// BoundaryWindow is how far back from the cut point the sentence
	// terminator search extends.
	BoundaryWindow int
	// Lookahead is how far past the cut point the sentence terminator
	// search extends. A chunk may exceed MaxChunkSize by at most this much.
	Lookahead int
}

// DefaultChunkerConfig returns the default chunking configuration
func DefaultChunkerConfig() ChunkerConfig {
	return ChunkerConfig{
		MaxChunkSize:   config.DefaultMaxChunkSize,
		BoundaryWindow: config.DefaultBoundaryWindow,
		Lookahead:      config.DefaultLookahead,
	}
}

// FromValidatorConfig builds a ChunkerConfig from the validator section,
// falling back to defaults for unset values.
func FromValidatorConfig(cfg config.ValidatorConfig) ChunkerConfig {
	out := DefaultChunkerConfig()
	if cfg.MaxChunkSize > 0 {
		out.MaxChunkSize = cfg.MaxChunkSize
	}
	if cfg.BoundaryWindow > 0 {
		out.BoundaryWindow = cfg.BoundaryWindow
	}
	if cfg.Lookahead > 0 {
		out.Lookahead = cfg.Lookahead
	}
	return out
}
