// Package llm is a small client for OpenAI-compatible chat completion APIs.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/buildsense/energy-backend/config"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("llm client disabled: no API key")

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []ChatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

type Client struct {
	BaseURL   string
	Model     string
	MaxTokens int
	HTTP      *http.Client
	limiter   *rate.Limiter
	enabled   bool
}

// NewClient authenticates with the API key as a bearer token and limits the
// request rate to cfg.RateLimit per second.
func NewClient(cfg config.LLMConfig) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIKey, TokenType: "Bearer"})
	hc := oauth2.NewClient(context.Background(), ts)
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	hc.Timeout = timeout

	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}

	return &Client{
		BaseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		Model:     cfg.Model,
		MaxTokens: cfg.MaxTokens,
		HTTP:      hc,
		limiter:   rate.NewLimiter(limit, 1),
		enabled:   cfg.APIKey != "",
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.enabled
}

// Complete sends a single user message and returns the first choice.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("llm rate limit: %w", err)
	}

	b, err := json.Marshal(chatRequest{
		Model:     c.Model,
		Messages:  []ChatMessage{{Role: "user", Content: prompt}},
		MaxTokens: c.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("llm encode: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("llm request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("llm chat: %w", err)
	}
	defer resp.Body.Close()

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("llm decode (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= 400 {
		if out.Error != nil {
			return "", fmt.Errorf("llm error (status %d): %s", resp.StatusCode, out.Error.Message)
		}
		return "", fmt.Errorf("llm error (status %d)", resp.StatusCode)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("llm returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}
