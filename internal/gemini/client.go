// Package gemini is a minimal client for the generateContent endpoint of the Gemini API
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/skillup/backend/internal/httpclient"
	"github.com/skillup/backend/internal/models"
)

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// Client calls the generative text API
type Client struct {
	http    *httpclient.HTTPClient
	baseURL string
	model   string
	apiKey  string
}

// NewClient creates a client for the given model.
// It returns nil when apiKey is empty; calls on a nil client fail with models.ErrCompletionDisabled.
func NewClient(http *httpclient.HTTPClient, baseURL, model, apiKey string) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{
		http:    http,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		apiKey:  apiKey,
	}
}

// GenerateText sends a single-turn prompt and returns the text of the first candidate
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c == nil {
		return "", models.ErrCompletionDisabled
	}

	var result generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", c.apiKey).
		SetPathParam("model", c.model).
		SetBody(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}).
		SetResult(&result).
		Post(c.baseURL + "/v1beta/models/{model}:generateContent")
	if err != nil {
		return "", fmt.Errorf("failed to call generateContent: %w", err)
	}
	if err := httpclient.CheckResponse(resp); err != nil {
		return "", fmt.Errorf("generateContent failed: %w", err)
	}

	if len(result.Candidates) == 0 {
		if result.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked: %s", result.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("no candidates in response")
	}

	var sb strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	return sb.String(), nil
}
