package openai

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/shyam20433/PDF-extractor-RAG/internal/generation"
)

// Client is an OpenAI-compatible chat-completion backend.
type Client struct {
	client  *goopenai.Client
	model   string
	timeout time.Duration
}

// Config configures the OpenAI generation client.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// NewClient creates a generation client. The API key is read from the
// environment variable named in APIKeyEnv (default OPENAI_API_KEY).
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	clientCfg := goopenai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Client{
		client:  goopenai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// ModelInfo identifies the backend and model.
func (c *Client) ModelInfo() string { return "openai/" + c.model }

// Generate sends the prompt as a single user message and returns the reply.
func (c *Client) Generate(prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", &generation.ServiceError{Backend: "openai", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &generation.ServiceError{Backend: "openai", Err: fmt.Errorf("no choices returned")}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
