package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/xdrshjr/AIDocMaster/internal/chunker"
	"github.com/xdrshjr/AIDocMaster/internal/common"
	"github.com/xdrshjr/AIDocMaster/internal/config"
	"github.com/xdrshjr/AIDocMaster/internal/httpclient"
	"github.com/xdrshjr/AIDocMaster/internal/models"
	"github.com/xdrshjr/AIDocMaster/internal/resultparser"
	"github.com/xdrshjr/AIDocMaster/internal/sse"
)

// validationRequest is the per-chunk request body sent to the validation
// endpoint.
type validationRequest struct {
	Content     string `json:"content"`
	ChunkIndex  int    `json:"chunkIndex"`
	TotalChunks int    `json:"totalChunks"`
}

// ResultFunc observes each completed per-chunk result as it arrives, in
// chunk-index order.
type ResultFunc func(result models.ValidationResult)

// Pipeline runs one validation pass: chunk the document, submit each
// chunk sequentially, reassemble its SSE stream, parse the report, and
// accumulate results in document order. Per-chunk failures become error
// results; only pre-flight input validation aborts the run.
type Pipeline struct {
	config   config.ValidatorConfig
	chunker  *chunker.Chunker
	client   *httpclient.HTTPClient
	parser   *resultparser.Parser
	logger   zerolog.Logger
	onDelta  sse.DeltaFunc
	onResult ResultFunc
}

// PipelineBuilder provides a fluent interface for creating a Pipeline
type PipelineBuilder struct {
	config   config.ValidatorConfig
	client   *httpclient.HTTPClient
	logger   zerolog.Logger
	onDelta  sse.DeltaFunc
	onResult ResultFunc
}

// NewPipelineBuilder creates a new builder
func NewPipelineBuilder(logger zerolog.Logger) *PipelineBuilder {
	return &PipelineBuilder{
		config: config.NewDefaultValidatorConfig(),
		logger: logger.With().Str("component", "ValidationPipeline").Logger(),
	}
}

// WithConfig sets the validator configuration
func (b *PipelineBuilder) WithConfig(cfg config.ValidatorConfig) *PipelineBuilder {
	b.config = cfg
	return b
}

// WithClient sets the HTTP client used for validation requests
func (b *PipelineBuilder) WithClient(client *httpclient.HTTPClient) *PipelineBuilder {
	b.client = client
	return b
}

// WithDeltaHandler sets the live-delta observer
func (b *PipelineBuilder) WithDeltaHandler(onDelta sse.DeltaFunc) *PipelineBuilder {
	b.onDelta = onDelta
	return b
}

// WithResultHandler sets the per-chunk result observer
func (b *PipelineBuilder) WithResultHandler(onResult ResultFunc) *PipelineBuilder {
	b.onResult = onResult
	return b
}

// Build creates a new Pipeline instance
func (b *PipelineBuilder) Build() (*Pipeline, error) {
	if b.client == nil {
		return nil, common.NewValidationError("client", b.client, "HTTP client cannot be nil")
	}
	if b.config.Endpoint == "" {
		return nil, common.NewValidationError("endpoint", b.config.Endpoint, "validation endpoint cannot be empty")
	}

	chk, err := chunker.NewChunkerBuilder(b.logger).
		WithConfig(chunker.FromValidatorConfig(b.config)).
		Build()
	if err != nil {
		return nil, common.WrapError(err, "failed to build chunker")
	}

	return &Pipeline{
		config:   b.config,
		chunker:  chk,
		client:   b.client,
		parser:   resultparser.NewParser(b.logger),
		logger:   b.logger,
		onDelta:  b.onDelta,
		onResult: b.onResult,
	}, nil
}

// Run validates the whole document. Results are returned in strictly
// increasing chunk-index order. A cancellation returns the partial result
// list together with the context error.
func (p *Pipeline) Run(ctx context.Context, documentText string) ([]models.ValidationResult, error) {
	if err := p.preflight(documentText); err != nil {
		return nil, err
	}

	chunks := p.chunker.Chunk(documentText)
	if len(chunks) == 0 {
		return nil, common.WrapError(common.ErrEmptyDocument, "document contains no validatable text")
	}

	p.logger.Info().Int("chunk_count", len(chunks)).Msg("Validation run started")
	startTime := time.Now()

	results := make([]models.ValidationResult, 0, len(chunks))
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			p.logger.Info().Int("completed", len(results)).Msg("Validation run canceled")
			return results, err
		}

		result := p.validateChunk(ctx, chunk, len(chunks))
		results = append(results, result)
		if p.onResult != nil {
			p.onResult(result)
		}
	}

	p.logger.Info().
		Int("chunk_count", len(chunks)).
		Int("failed_chunks", countFailed(results)).
		Dur("duration", time.Since(startTime)).
		Msg("Validation run finished")

	return results, nil
}

// preflight rejects empty or too-short input before any network call.
func (p *Pipeline) preflight(documentText string) error {
	trimmed := strings.TrimSpace(documentText)
	if trimmed == "" {
		return common.WrapError(common.ErrEmptyDocument, "nothing to validate")
	}
	if len([]rune(trimmed)) < p.config.MinDocumentLength {
		return common.NewValidationError("document", len(trimmed),
			fmt.Sprintf("document is shorter than the %d character minimum", p.config.MinDocumentLength))
	}
	return nil
}

// validateChunk submits one chunk and converts every failure into an
// error-carrying result. The stream body is released on all exit paths.
func (p *Pipeline) validateChunk(ctx context.Context, chunk models.DocumentChunk, totalChunks int) models.ValidationResult {
	chunkLogger := p.logger.With().Int("chunk_index", chunk.Index).Logger()
	chunkLogger.Debug().Int("chunk_length", chunk.Len()).Msg("Submitting chunk for validation")

	payload := validationRequest{
		Content:     chunk.Text,
		ChunkIndex:  chunk.Index,
		TotalChunks: totalChunks,
	}

	stream, err := p.client.PostJSONStream(ctx, p.config.Endpoint, payload, nil)
	if err != nil {
		return p.errorResult(chunk.Index, describeTransportError(err))
	}
	defer func() {
		if closeErr := stream.Body.Close(); closeErr != nil {
			chunkLogger.Warn().Err(closeErr).Msg("Failed to close validation stream")
		}
	}()

	if !strings.HasPrefix(stream.ContentType, "text/event-stream") {
		return p.errorResult(chunk.Index,
			fmt.Sprintf("unexpected response content type %q", stream.ContentType))
	}

	reassembler, err := sse.NewReassemblerBuilder(chunkLogger).
		WithMaxParseErrors(p.config.ParseErrorThreshold).
		Build()
	if err != nil {
		return p.errorResult(chunk.Index, common.WrapError(err, "failed to build stream reassembler").Error())
	}

	content, err := reassembler.Consume(ctx, stream.Body, p.onDelta)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return p.errorResult(chunk.Index, "validation canceled before the chunk completed")
		}
		return p.errorResult(chunk.Index, common.WrapError(err, "validation stream failed").Error())
	}

	return p.parser.Parse(content, chunk.Index)
}

// errorResult builds a well-formed per-chunk failure entry.
func (p *Pipeline) errorResult(chunkIndex int, message string) models.ValidationResult {
	p.logger.Warn().Int("chunk_index", chunkIndex).Str("error", message).Msg("Chunk validation failed")
	return models.ValidationResult{
		ChunkIndex: chunkIndex,
		Issues:     []models.ValidationIssue{},
		Timestamp:  time.Now(),
		Error:      message,
	}
}

// describeTransportError keeps the timeout case human-readable and
// distinct from other transport failures.
func describeTransportError(err error) string {
	if errors.Is(err, common.ErrTimeout) {
		return "validation request timed out; the model endpoint did not respond in time"
	}
	var httpErr *common.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Error()
	}
	return common.WrapError(err, "validation request failed").Error()
}

// countFailed counts error-carrying results.
func countFailed(results []models.ValidationResult) int {
	failed := 0
	for _, r := range results {
		if r.HasError() {
			failed++
		}
	}
	return failed
}
