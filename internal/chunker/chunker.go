package chunker

import (
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/xdrshjr/AIDocMaster/internal/common"
	"github.com/xdrshjr/AIDocMaster/internal/models"
)

// Chunker splits raw document text into bounded-size segments, preferring
// sentence boundaries, then word boundaries, then a hard cut. Offsets are
// measured in runes so multi-byte text never splits mid-character.
type Chunker struct {
	config ChunkerConfig
	logger zerolog.Logger
}

// ChunkerBuilder provides a fluent interface for creating a Chunker
type ChunkerBuilder struct {
	config ChunkerConfig
	logger zerolog.Logger
}

// NewChunkerBuilder creates a new builder
func NewChunkerBuilder(logger zerolog.Logger) *ChunkerBuilder {
	return &ChunkerBuilder{
		config: DefaultChunkerConfig(),
		logger: logger.With().Str("component", "Chunker").Logger(),
	}
}

// WithConfig sets the chunking configuration
func (b *ChunkerBuilder) WithConfig(cfg ChunkerConfig) *ChunkerBuilder {
	b.config = cfg
	return b
}

// Build creates a new Chunker instance
func (b *ChunkerBuilder) Build() (*Chunker, error) {
	if b.config.MaxChunkSize <= 0 {
		return nil, common.NewValidationError("max_chunk_size", b.config.MaxChunkSize, "max chunk size must be positive")
	}
	if b.config.BoundaryWindow < 0 || b.config.Lookahead < 0 {
		return nil, common.NewValidationError("boundary_window", b.config.BoundaryWindow, "search window sizes must not be negative")
	}
	return &Chunker{
		config: b.config,
		logger: b.logger,
	}, nil
}

// Chunk splits text into DocumentChunks. Consecutive chunk ranges are
// contiguous and cover the full text exactly once. Empty input yields an
// empty slice. Deterministic for identical input.
func (c *Chunker) Chunk(text string) []models.DocumentChunk {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	if len(runes) <= c.config.MaxChunkSize {
		chunk := c.makeChunk(0, runes, 0, len(runes))
		if chunk == nil {
			return nil
		}
		return []models.DocumentChunk{*chunk}
	}

	var chunks []models.DocumentChunk
	pos := 0
	for pos < len(runes) {
		end := c.chooseCut(runes, pos)
		if chunk := c.makeChunk(len(chunks), runes, pos, end); chunk != nil {
			chunks = append(chunks, *chunk)
		}
		pos = end
	}

	c.logger.Debug().
		Int("text_length", len(runes)).
		Int("chunk_count", len(chunks)).
		Msg("Document chunked")

	return chunks
}

// chooseCut picks the end offset for the chunk starting at pos. Preference
// order: sentence terminator in the boundary window, nearest whitespace
// before the boundary, hard cut at the boundary.
func (c *Chunker) chooseCut(runes []rune, pos int) int {
	remaining := len(runes) - pos
	if remaining <= c.config.MaxChunkSize {
		return len(runes)
	}

	boundary := pos + c.config.MaxChunkSize

	if cut := c.findSentenceCut(runes, pos, boundary); cut > pos {
		return cut
	}
	if cut := c.findWhitespaceCut(runes, pos, boundary); cut > pos {
		return cut
	}
	return boundary
}

// findSentenceCut scans backward for the rightmost sentence terminator
// followed by whitespace, within BoundaryWindow before the boundary and
// Lookahead past it. Returns the offset just after the terminator, or -1.
func (c *Chunker) findSentenceCut(runes []rune, pos, boundary int) int {
	hi := boundary + c.config.Lookahead
	if hi > len(runes)-1 {
		hi = len(runes) - 1
	}
	lo := boundary - c.config.BoundaryWindow
	if lo <= pos {
		lo = pos + 1
	}

	for i := hi - 1; i >= lo; i-- {
		if isSentenceTerminator(runes[i]) && isCutWhitespace(runes[i+1]) {
			return i + 1
		}
	}
	return -1
}

// findWhitespaceCut scans backward from the boundary for any whitespace
// character. Returns its offset, or -1 when the chunk has no whitespace.
func (c *Chunker) findWhitespaceCut(runes []rune, pos, boundary int) int {
	for i := boundary; i > pos; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}

// makeChunk builds a chunk for runes[start:end), trimming the text but
// keeping the untrimmed character range. Returns nil for whitespace-only
// segments.
func (c *Chunker) makeChunk(index int, runes []rune, start, end int) *models.DocumentChunk {
	text := strings.TrimSpace(string(runes[start:end]))
	if text == "" {
		return nil
	}
	return &models.DocumentChunk{
		Index:     index,
		Text:      text,
		CharStart: start,
		CharEnd:   end,
	}
}

// isSentenceTerminator reports whether r ends a sentence.
func isSentenceTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// isCutWhitespace reports whether r is whitespace that may follow a
// sentence terminator at a cut point.
func isCutWhitespace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\r' || r == '\t'
}
