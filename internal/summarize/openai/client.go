// Package openai implements summarize.Summarizer on top of OpenAI chat
// completions, as an alternative to the hosted summarization model.
package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"smartdoc-backend/internal/summarize"
)

const defaultModel = "gpt-4o-mini"

// Client summarizes text through the OpenAI chat API.
type Client struct {
	client *openai.Client
	model  string
	params summarize.Params
}

// NewClient constructs an OpenAI-backed summarizer.
func NewClient(apiKey, model string, params summarize.Params) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	if params.MaxLength <= 0 {
		return nil, fmt.Errorf("summary max length must be positive")
	}
	return &Client{
		client: openai.NewClient(apiKey),
		model:  model,
		params: params,
	}, nil
}

// Name identifies the provider in errors and logs.
func (c *Client) Name() string { return "openai" }

// Summarize condenses one chunk of text. Temperature is pinned to zero so the
// output is deterministic for a fixed input.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(
		"Summarize the following text in %d to %d words. Return only the summary.\n\n%s",
		c.params.MinLength, c.params.MaxLength, text,
	)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned empty response")
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("openai api returned empty summary")
	}
	return out, nil
}
