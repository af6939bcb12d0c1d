// Package feedback asks a hosted language model to comment on a day's water
// intake. Groq is reached through its OpenAI-compatible endpoint.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama3-8b-8192"

	systemPrompt = "You are a helpful assistant."
)

var (
	// ErrMissingAPIKey is returned by New when no API key is configured.
	ErrMissingAPIKey = errors.New("GROQ_API_KEY not set")
	// ErrEmptyResponse is returned when the model produced no text.
	ErrEmptyResponse = errors.New("empty response from model")
)

// Config selects the endpoint, credentials, and model.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client turns a daily intake into a short natural-language comment.
type Client struct {
	llm llms.Model
}

// New builds a Client. It fails eagerly when the API key is missing so the
// caller can run without feedback instead of failing on first use.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	llm, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create groq client: %w", err)
	}
	return &Client{llm: llm}, nil
}

// NewWithModel wraps an existing model, e.g. a fake in tests.
func NewWithModel(llm llms.Model) *Client {
	return &Client{llm: llm}
}

// Analyze sends one request per call; errors are returned as-is, without retry.
func (c *Client) Analyze(ctx context.Context, litersPerDay float64) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, Prompt(litersPerDay)),
	}
	resp, err := c.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("analyze intake: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

// Prompt renders the user message for a daily intake in liters.
func Prompt(litersPerDay float64) string {
	return "Analyze my water intake: " + strconv.FormatFloat(litersPerDay, 'f', -1, 64) + " liters/day"
}
