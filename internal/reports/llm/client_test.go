package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildsense/energy-backend/config"
)

func newTestClient(url, key string) *Client {
	return NewClient(config.LLMConfig{
		BaseURL:   url + "/",
		APIKey:    key,
		Model:     "gpt-4",
		MaxTokens: 100,
		Timeout:   5 * time.Second,
		RateLimit: 100,
	})
}

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4", req.Model)
		assert.Equal(t, 100, req.MaxTokens)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Shade the west facade."}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "sk-test")
	out, err := c.Complete(context.Background(), "analyse")
	require.NoError(t, err)
	assert.Equal(t, "Shade the west facade.", out)
}

func TestComplete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded","type":"insufficient_quota"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "sk-test").Complete(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Contains(t, err.Error(), "429")
}

func TestComplete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "sk-test").Complete(context.Background(), "x")
	assert.Error(t, err)
}

func TestComplete_Disabled(t *testing.T) {
	c := newTestClient("http://unused", "")
	assert.False(t, c.Enabled())

	_, err := c.Complete(context.Background(), "x")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestComplete_ContextCancelledWhileRateLimited(t *testing.T) {
	c := NewClient(config.LLMConfig{BaseURL: "http://unused", APIKey: "k", RateLimit: 0.001})
	require.True(t, c.limiter.Allow(), "first token is available")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Complete(ctx, "x")
	assert.Error(t, err)
}
