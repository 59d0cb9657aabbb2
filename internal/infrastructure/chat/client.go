// Package chat adapts OpenAI-compatible chat completion endpoints to
// ports.ChatCompleter.
package chat

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/nyaaysathi/legal-api/internal/core/domain"
)

const defaultTimeout = 30 * time.Second

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client implements ports.ChatCompleter.
type Client struct {
	api   *openai.Client
	model string
	ready bool
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if base := strings.TrimRight(cfg.BaseURL, "/"); base != "" {
		oc.BaseURL = base
	}
	oc.HTTPClient = &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	return &Client{
		api:   openai.NewClientWithConfig(oc),
		model: cfg.Model,
		ready: cfg.BaseURL != "" && cfg.APIKey != "",
	}
}

// Complete sends one user message. Every failure, including a missing
// configuration, is reported as domain.ErrServiceUnavailable.
func (c *Client) Complete(ctx context.Context, sessionID, systemPrompt, userMessage string) (string, error) {
	if !c.ready {
		return "", fmt.Errorf("chat client not configured: %w", domain.ErrServiceUnavailable)
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		User: sessionID,
	})
	if err != nil {
		return "", upstreamError(ctx, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat response has no choices: %w", domain.ErrServiceUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}

// upstreamError keeps a deadline in the chain so callers can tell a slow
// upstream from a failing one.
func upstreamError(ctx context.Context, err error) error {
	var netErr net.Error
	timedOut := errors.As(err, &netErr) && netErr.Timeout()
	if timedOut || errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("chat request: %w: %w", domain.ErrServiceUnavailable, context.DeadlineExceeded)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("chat upstream returned %d (%s): %w",
			apiErr.HTTPStatusCode, apiErr.Message, domain.ErrServiceUnavailable)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("chat upstream returned %d: %w", reqErr.HTTPStatusCode, domain.ErrServiceUnavailable)
	}
	return fmt.Errorf("chat request: %w: %v", domain.ErrServiceUnavailable, err)
}
