package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/http2"

	"github.com/xdrshjr/AIDocMaster/internal/common"
)

// HTTPClientConfig holds transport-level settings for the client.
type HTTPClientConfig struct {
	Timeout             time.Duration
	DialTimeout         time.Duration
	TLSHandshakeTimeout time.Duration
	IdleConnTimeout     time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	UserAgent           string
	CustomHeaders       map[string]string
	EnableHTTP2         bool
	InsecureSkipVerify  bool
	Proxy               string
}

// DefaultHTTPClientConfig returns sensible defaults for API streaming.
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:             120 * time.Second,
		DialTimeout:         10 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		EnableHTTP2:         true,
	}
}

// HTTPClient wraps net/http.Client with the configuration and streaming
// behaviour the validation pipeline needs.
type HTTPClient struct {
	client *http.Client
	config HTTPClientConfig
	logger zerolog.Logger
}

// NewHTTPClient creates a new HTTP client with the given configuration
func NewHTTPClient(config HTTPClientConfig, logger zerolog.Logger) (*HTTPClient, error) {
	transport := &http.Transport{
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
		TLSHandshakeTimeout: config.TLSHandshakeTimeout,
		DialContext: (&net.Dialer{
			Timeout: config.DialTimeout,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: config.InsecureSkipVerify,
		},
	}

	if config.EnableHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			logger.Warn().Err(err).Msg("Failed to configure HTTP/2, falling back to HTTP/1.1")
		} else {
			logger.Debug().Msg("HTTP/2 support enabled")
		}
	}

	if config.Proxy != "" {
		proxyURL, err := url.Parse(config.Proxy)
		if err != nil {
			return nil, common.WrapError(err, "failed to parse proxy URL")
		}
		transport.Proxy = http.ProxyURL(proxyURL)
		logger.Info().Str("proxy", config.Proxy).Msg("HTTP client configured with proxy")
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}

	logger.Debug().
		Dur("timeout", config.Timeout).
		Bool("http2_enabled", config.EnableHTTP2).
		Msg("HTTP client created")

	return &HTTPClient{
		client: client,
		config: config,
		logger: logger,
	}, nil
}

// StreamResponse is an open streaming response. The caller owns Body and
// must close it on every path.
type StreamResponse struct {
	StatusCode  int
	ContentType string
	Body        io.ReadCloser
}

// PostJSONStream sends a JSON body and returns the response with its body
// left open for incremental consumption. Non-2xx responses are drained,
// closed and converted to an HTTPError.
func (c *HTTPClient) PostJSONStream(ctx context.Context, rawURL string, payload any, headers map[string]string) (*StreamResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, common.WrapError(err, "failed to marshal request payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return nil, common.WrapError(err, "failed to create HTTP request")
	}

	c.applyHeaders(req, headers)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.classifyTransportError(rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		_ = resp.Body.Close()
		c.logger.Warn().Str("url", rawURL).Int("status_code", resp.StatusCode).Msg("Received non-OK HTTP status")
		return nil, common.NewHTTPErrorWithURL(resp.StatusCode, string(errorBody), rawURL)
	}

	return &StreamResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        resp.Body,
	}, nil
}

// applyHeaders sets default and per-request headers.
func (c *HTTPClient) applyHeaders(req *http.Request, headers map[string]string) {
	for key, value := range c.config.CustomHeaders {
		req.Header.Set(key, value)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
}

// classifyTransportError distinguishes timeouts from other network
// failures so the UI can surface a distinct message.
func (c *HTTPClient) classifyTransportError(rawURL string, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return common.NewNetworkError(rawURL, "request timed out", common.ErrTimeout)
	}
	return common.NewNetworkError(rawURL, err.Error(), err)
}
