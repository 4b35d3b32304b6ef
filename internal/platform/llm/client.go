// Package llm wraps the Anthropic Messages API used to turn call transcripts
// into structured summaries.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	apiVersion       = "2023-06-01"
	defaultMaxTokens = 300
)

// Client calls the Anthropic Messages API.
type Client struct {
	http      *resty.Client
	model     string
	maxTokens int
	logger    zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.http.SetBaseURL(baseURL)
	}
}

// WithMaxTokens overrides the completion token limit.
func WithMaxTokens(n int) Option {
	return func(c *Client) {
		c.maxTokens = n
	}
}

func NewClient(apiKey, model string, logger zerolog.Logger, opts ...Option) *Client {
	httpClient := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(30 * time.Second).
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("Content-Type", "application/json")

	c := &Client{
		http:      httpClient,
		model:     model,
		maxTokens: defaultMaxTokens,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messagesResponse struct {
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
}

// CreateMessage sends a single user prompt and returns the text of the first
// content block of the completion. A non-2xx response is an error.
func (c *Client) CreateMessage(ctx context.Context, prompt string) (string, error) {
	var result messagesResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(messagesRequest{
			Model:     c.model,
			MaxTokens: c.maxTokens,
			Messages:  []message{{Role: "user", Content: prompt}},
		}).
		SetResult(&result).
		Post("/v1/messages")
	if err != nil {
		return "", fmt.Errorf("call messages API: %w", err)
	}

	if resp.IsError() {
		c.logger.Error().
			Int("status", resp.StatusCode()).
			Str("body", resp.String()).
			Msg("messages API returned error")
		return "", fmt.Errorf("messages API returned status %d", resp.StatusCode())
	}

	if len(result.Content) == 0 {
		return "", nil
	}
	return result.Content[0].Text, nil
}
