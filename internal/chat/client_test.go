package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xdrshjr/AIDocMaster/internal/config"
	"github.com/xdrshjr/AIDocMaster/internal/httpclient"
	"github.com/xdrshjr/AIDocMaster/internal/models"
)

func newTestClient(t *testing.T, endpoint string) *Client {
	t.Helper()
	httpClient, err := httpclient.NewHTTPClient(httpclient.DefaultHTTPClientConfig(), zerolog.Nop())
	require.NoError(t, err)

	cfg := config.NewDefaultChatConfig()
	cfg.Endpoint = endpoint

	c, err := NewClientBuilder(zerolog.Nop()).
		WithConfig(cfg).
		WithClient(httpClient).
		Build()
	require.NoError(t, err)
	return c
}

func TestClient_SendStreamsReply(t *testing.T) {
	var received chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "text/event-stream")
		for _, fragment := range []string{"Hello", ", how can I ", "help?"} {
			payload, _ := json.Marshal(map[string]any{
				"choices": []map[string]any{{"delta": map[string]any{"content": fragment}}},
			})
			fmt.Fprintf(w, "data: %s\n\n", payload)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	var deltas []string
	reply, err := c.Send(context.Background(),
		[]models.ChatMessage{models.NewUserMessage("Hi there")},
		func(d string) { deltas = append(deltas, d) })

	require.NoError(t, err)
	assert.Equal(t, "Hello, how can I help?", reply)
	assert.Equal(t, []string{"Hello", ", how can I ", "help?"}, deltas)
	require.Len(t, received.Messages, 1)
	assert.Equal(t, "user", received.Messages[0].Role)
	assert.Equal(t, "Hi there", received.Messages[0].Content)
}

func TestClient_SendRejectsEmptyConversation(t *testing.T) {
	c := newTestClient(t, "http://localhost:0/api/chat")

	_, err := c.Send(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestClient_SendSurfacesHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "chat backend down", http.StatusBadGateway)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := c.Send(context.Background(), []models.ChatMessage{models.NewUserMessage("Hi")}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_SendRejectsNonStreamResponses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"reply":"not a stream"}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := c.Send(context.Background(), []models.ChatMessage{models.NewUserMessage("Hi")}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "content type")
}

func TestClientBuilder_Validation(t *testing.T) {
	_, err := NewClientBuilder(zerolog.Nop()).Build()
	assert.Error(t, err)

	httpClient, err := httpclient.NewHTTPClient(httpclient.DefaultHTTPClientConfig(), zerolog.Nop())
	require.NoError(t, err)

	cfg := config.NewDefaultChatConfig()
	cfg.Endpoint = ""
	_, err = NewClientBuilder(zerolog.Nop()).WithConfig(cfg).WithClient(httpClient).Build()
	assert.Error(t, err)
}
