package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xdrshjr/AIDocMaster/internal/common"
	"github.com/xdrshjr/AIDocMaster/internal/config"
	"github.com/xdrshjr/AIDocMaster/internal/httpclient"
	"github.com/xdrshjr/AIDocMaster/internal/models"
	"github.com/xdrshjr/AIDocMaster/internal/sse"
)

// chatRequest is the request body for the assistant chat endpoint.
type chatRequest struct {
	Messages []models.ChatMessage `json:"messages"`
}

// Client streams assistant chat replies. Chat streams use a tighter
// malformed-frame budget than validation because replies are shorter.
type Client struct {
	config      config.ChatConfig
	client      *httpclient.HTTPClient
	reassembler *sse.Reassembler
	logger      zerolog.Logger
}

// ClientBuilder provides a fluent interface for creating a chat Client
type ClientBuilder struct {
	config config.ChatConfig
	client *httpclient.HTTPClient
	logger zerolog.Logger
}

// NewClientBuilder creates a new builder
func NewClientBuilder(logger zerolog.Logger) *ClientBuilder {
	return &ClientBuilder{
		config: config.NewDefaultChatConfig(),
		logger: logger.With().Str("component", "ChatClient").Logger(),
	}
}

// WithConfig sets the chat configuration
func (b *ClientBuilder) WithConfig(cfg config.ChatConfig) *ClientBuilder {
	b.config = cfg
	return b
}

// WithClient sets the HTTP client used for chat requests
func (b *ClientBuilder) WithClient(client *httpclient.HTTPClient) *ClientBuilder {
	b.client = client
	return b
}

// Build creates a new chat Client instance
func (b *ClientBuilder) Build() (*Client, error) {
	if b.client == nil {
		return nil, common.NewValidationError("client", b.client, "HTTP client cannot be nil")
	}
	if b.config.Endpoint == "" {
		return nil, common.NewValidationError("endpoint", b.config.Endpoint, "chat endpoint cannot be empty")
	}

	reassembler, err := sse.NewReassemblerBuilder(b.logger).
		WithMaxParseErrors(b.config.ParseErrorThreshold).
		Build()
	if err != nil {
		return nil, common.WrapError(err, "failed to build stream reassembler")
	}

	return &Client{
		config:      b.config,
		client:      b.client,
		reassembler: reassembler,
		logger:      b.logger,
	}, nil
}

// Send posts the conversation and streams the reply, reporting each delta
// through onDelta. Returns the full accumulated reply.
func (c *Client) Send(ctx context.Context, messages []models.ChatMessage, onDelta sse.DeltaFunc) (string, error) {
	if len(messages) == 0 {
		return "", common.NewValidationError("messages", messages, "messages array is required and must not be empty")
	}

	stream, err := c.client.PostJSONStream(ctx, c.config.Endpoint, chatRequest{Messages: messages}, nil)
	if err != nil {
		return "", common.WrapError(err, "chat request failed")
	}
	defer func() {
		if closeErr := stream.Body.Close(); closeErr != nil {
			c.logger.Warn().Err(closeErr).Msg("Failed to close chat stream")
		}
	}()

	if !strings.HasPrefix(stream.ContentType, "text/event-stream") {
		return "", common.NewError("unexpected chat response content type %q", stream.ContentType)
	}

	reply, err := c.reassembler.Consume(ctx, stream.Body, onDelta)
	if err != nil {
		return reply, common.WrapError(err, "chat stream failed")
	}

	c.logger.Debug().Int("reply_length", len(reply)).Msg("Chat reply received")
	return reply, nil
}
