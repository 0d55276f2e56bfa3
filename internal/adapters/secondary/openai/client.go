// Package openai provides the live generation-service clients and their
// offline fixture counterpart.
package openai

import (
	"context"
	"errors"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/vnayar/pitchdeck/internal/domain/entities"
	"github.com/vnayar/pitchdeck/internal/domain/ports"
)

// Client calls an OpenAI-compatible API for text completions and image
// generation. The configuration is captured at construction and never
// mutated; concurrent requests share one client safely.
type Client struct {
	api         *openai.Client
	model       string
	maxTokens   int
	temperature float32
	imageSize   string
	timeout     time.Duration
}

// NewClient creates a new generation-service client from immutable config
func NewClient(cfg entities.OpenAIConfig) *Client {
	apiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:         openai.NewClientWithConfig(apiConfig),
		model:       cfg.GetModel(),
		maxTokens:   cfg.GetMaxTokens(),
		temperature: float32(cfg.Temperature),
		imageSize:   cfg.GetImageSize(),
		timeout:     cfg.GetTimeout(),
	}
}

// Complete sends the prompt and returns the first candidate's text. A
// transport error, API error, or empty candidate list all surface as an
// UpstreamError; there is no retry here.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", &entities.UpstreamError{Operation: "completion", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &entities.UpstreamError{Operation: "completion", Err: errors.New("no candidates returned")}
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateImage requests one square image for the prompt and returns the
// URL where its bytes can be fetched.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		N:              1,
		Size:           c.imageSize,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", &entities.UpstreamError{Operation: "image generation", Err: err}
	}

	if len(resp.Data) == 0 {
		return "", &entities.UpstreamError{Operation: "image generation", Err: errors.New("no images returned")}
	}

	return resp.Data[0].URL, nil
}

// Ensure Client implements the generation ports
var (
	_ ports.CompletionClient = (*Client)(nil)
	_ ports.ImageGenerator   = (*Client)(nil)
)
