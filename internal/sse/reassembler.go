package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xdrshjr/AIDocMaster/internal/common"
)

// DeltaFunc observes each appended content fragment, e.g. for a live
// typing effect. It runs on the consuming goroutine.
type DeltaFunc func(delta string)

// ReassemblerConfig controls stream reassembly.
type ReassemblerConfig struct {
	// MaxParseErrors is the per-stream budget of malformed frames before
	// the whole stream is aborted as corrupted.
	MaxParseErrors int
	// ReadBufferSize is the size of the transport read buffer.
	ReadBufferSize int
}

// DefaultReassemblerConfig returns the default reassembly configuration
func DefaultReassemblerConfig() ReassemblerConfig {
	return ReassemblerConfig{
		MaxParseErrors: 15,
		ReadBufferSize: 8 * 1024,
	}
}

// Reassembler consumes an SSE byte stream of chat-completion delta frames
// and reconstructs the full content string. A network read may split a
// frame anywhere, so a line buffer holds back the trailing partial line
// between reads.
type Reassembler struct {
	config ReassemblerConfig
	logger zerolog.Logger
}

// ReassemblerBuilder provides a fluent interface for creating a Reassembler
type ReassemblerBuilder struct {
	config ReassemblerConfig
	logger zerolog.Logger
}

// NewReassemblerBuilder creates a new builder
func NewReassemblerBuilder(logger zerolog.Logger) *ReassemblerBuilder {
	return &ReassemblerBuilder{
		config: DefaultReassemblerConfig(),
		logger: logger.With().Str("component", "StreamReassembler").Logger(),
	}
}

// WithConfig sets the reassembly configuration
func (b *ReassemblerBuilder) WithConfig(cfg ReassemblerConfig) *ReassemblerBuilder {
	b.config = cfg
	return b
}

// WithMaxParseErrors overrides the malformed-frame budget
func (b *ReassemblerBuilder) WithMaxParseErrors(max int) *ReassemblerBuilder {
	b.config.MaxParseErrors = max
	return b
}

// Build creates a new Reassembler instance
func (b *ReassemblerBuilder) Build() (*Reassembler, error) {
	if b.config.MaxParseErrors <= 0 {
		return nil, common.NewValidationError("max_parse_errors", b.config.MaxParseErrors, "parse error budget must be positive")
	}
	if b.config.ReadBufferSize <= 0 {
		return nil, common.NewValidationError("read_buffer_size", b.config.ReadBufferSize, "read buffer size must be positive")
	}
	return &Reassembler{
		config: b.config,
		logger: b.logger,
	}, nil
}

// consumeState tracks one stream's progress across reads.
type consumeState struct {
	acc         strings.Builder
	lineBuf     string
	parseErrors int
	emptyReads  int
	frames      int
}

// Consume reads the stream until transport EOF and returns the accumulated
// content. Each delta fragment is reported through onDelta as it arrives.
// The caller retains ownership of r and must close it on all paths.
func (ra *Reassembler) Consume(ctx context.Context, r io.Reader, onDelta DeltaFunc) (string, error) {
	state := &consumeState{}
	buf := make([]byte, ra.config.ReadBufferSize)

	for {
		select {
		case <-ctx.Done():
			return state.acc.String(), ctx.Err()
		default:
		}

		n, err := r.Read(buf)
		if n == 0 && err == nil {
			// Zero-length payloads are counted but are not stream end.
			state.emptyReads++
			continue
		}

		if n > 0 {
			if procErr := ra.processBytes(state, buf[:n], onDelta); procErr != nil {
				return state.acc.String(), procErr
			}
		}

		if err == io.EOF {
			return ra.finish(state, onDelta)
		}
		if err != nil {
			return state.acc.String(), common.WrapError(err, "stream read failed")
		}
	}
}

// processBytes appends a read to the line buffer, then processes every
// complete line, holding back the trailing partial line for the next read.
func (ra *Reassembler) processBytes(state *consumeState, data []byte, onDelta DeltaFunc) error {
	state.lineBuf += string(data)

	lines := strings.Split(state.lineBuf, "\n")
	state.lineBuf = lines[len(lines)-1]

	for _, line := range lines[:len(lines)-1] {
		if err := ra.processLine(state, line, onDelta); err != nil {
			return err
		}
	}
	return nil
}

// processLine handles one complete frame line.
func (ra *Reassembler) processLine(state *consumeState, line string, onDelta DeltaFunc) error {
	line = strings.TrimSuffix(line, "\r")
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	if !strings.HasPrefix(trimmed, dataPrefix) {
		// Comment and event lines carry no content.
		return nil
	}

	payload := strings.TrimSpace(strings.TrimPrefix(trimmed, dataPrefix))
	if payload == "" || payload == doneSentinel {
		return nil
	}

	state.frames++

	var chunk completionChunk
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		return ra.recordParseError(state, err)
	}

	if len(chunk.Choices) == 0 {
		return nil
	}

	choice := chunk.Choices[0]
	if choice.Delta.Content != "" {
		state.acc.WriteString(choice.Delta.Content)
		if onDelta != nil {
			onDelta(choice.Delta.Content)
		}
		return nil
	}

	if choice.FinishReason != nil {
		// Informational terminal signal for this frame, not a stream error.
		ra.logger.Debug().Str("finish_reason", *choice.FinishReason).Msg("Stream finish reason received")
	}
	return nil
}

// recordParseError counts one malformed frame and aborts the stream once
// the budget is exhausted.
func (ra *Reassembler) recordParseError(state *consumeState, cause error) error {
	state.parseErrors++
	ra.logger.Warn().
		Err(cause).
		Int("parse_errors", state.parseErrors).
		Int("max_parse_errors", ra.config.MaxParseErrors).
		Msg("Malformed SSE frame skipped")

	if state.parseErrors >= ra.config.MaxParseErrors {
		return common.WrapError(common.ErrStreamCorrupted,
			fmt.Sprintf("%d malformed frames in one stream", state.parseErrors))
	}
	return nil
}

// finish flushes the held-back trailing line at transport EOF and returns
// the accumulated content. A bare JSON error object in the trailing line
// is surfaced as a stream error; content accumulated before it is still
// returned so callers can keep the partial text.
func (ra *Reassembler) finish(state *consumeState, onDelta DeltaFunc) (string, error) {
	trailing := strings.TrimSpace(state.lineBuf)
	state.lineBuf = ""

	if trailing != "" {
		if ue, ok := parseUpstreamError([]byte(trailing)); ok {
			return state.acc.String(), common.NewNetworkError("", ue.Error, common.ErrStreamCorrupted)
		}
		if err := ra.processLine(state, trailing, onDelta); err != nil {
			return state.acc.String(), err
		}
	}

	ra.logger.Debug().
		Int("frames", state.frames).
		Int("parse_errors", state.parseErrors).
		Int("empty_reads", state.emptyReads).
		Int("content_length", state.acc.Len()).
		Msg("Stream reassembly finished")

	return state.acc.String(), nil
}
