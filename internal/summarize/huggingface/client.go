// Package huggingface implements summarize.Summarizer against the Hugging
// Face Inference API hosting a pretrained summarization model such as
// facebook/bart-large-cnn. The model weights live behind the API; the process
// holds one client and reuses it for every call.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"smartdoc-backend/internal/summarize"
)

const defaultBaseURL = "https://api-inference.huggingface.co/models"

// Client calls a hosted summarization model over HTTP.
type Client struct {
	baseURL    string
	apiToken   string
	model      string
	params     summarize.Params
	httpClient *http.Client
}

// NewClient constructs a Hugging Face inference client. The API token may be
// empty for public models, at the cost of aggressive rate limits.
func NewClient(apiToken, model string, params summarize.Params) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("SUMMARIZER_MODEL is required")
	}
	if params.MinLength <= 0 || params.MaxLength <= params.MinLength {
		return nil, fmt.Errorf("invalid summary length bounds min=%d max=%d", params.MinLength, params.MaxLength)
	}

	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("HF_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}

	return &Client{
		baseURL:  defaultBaseURL,
		apiToken: strings.TrimSpace(apiToken),
		model:    model,
		params:   params,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Name identifies the provider in errors and logs.
func (c *Client) Name() string { return "huggingface" }

type inferenceParameters struct {
	MinLength int  `json:"min_length"`
	MaxLength int  `json:"max_length"`
	DoSample  bool `json:"do_sample"`
}

type inferenceOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
	Options    inferenceOptions    `json:"options"`
}

type inferenceResult struct {
	SummaryText string `json:"summary_text"`
}

type inferenceError struct {
	Error string `json:"error"`
}

// Summarize sends one chunk of text to the hosted model and returns its
// summary. Decoding is non-sampling, so output is deterministic for a fixed
// input and parameter set.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	reqBody := inferenceRequest{
		Inputs: text,
		Parameters: inferenceParameters{
			MinLength: c.params.MinLength,
			MaxLength: c.params.MaxLength,
			DoSample:  false,
		},
		Options: inferenceOptions{WaitForModel: true},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := c.baseURL + "/" + c.model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("huggingface request timeout: %w", err)
		}
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr inferenceError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return "", fmt.Errorf("huggingface error (status %d): %s", resp.StatusCode, apiErr.Error)
		}
		return "", fmt.Errorf("huggingface status %d", resp.StatusCode)
	}

	var results []inferenceResult
	if err := json.Unmarshal(body, &results); err != nil {
		return "", fmt.Errorf("huggingface response parse: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("huggingface response missing results")
	}

	out := strings.TrimSpace(results[0].SummaryText)
	if out == "" {
		return "", fmt.Errorf("huggingface response empty summary")
	}
	return out, nil
}
