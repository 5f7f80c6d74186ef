package openai

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/shyam20433/PDF-extractor-RAG/internal/embedding"
)

// Client is an OpenAI-compatible embeddings backend. It is safe for
// concurrent use.
type Client struct {
	client    *goopenai.Client
	model     string
	timeout   time.Duration
	dimension atomic.Int64
}

// Config configures the OpenAI embeddings client.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// NewClient creates an embeddings client. The API key is read from the
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
		cfg.Model = "text-embedding-3-small"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
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

// Dimension returns the vector length learned from the first embedding.
func (c *Client) Dimension() int { return int(c.dimension.Load()) }

// Embed returns the embedding vector for the given text.
func (c *Client) Embed(text string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	resp, err := c.client.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{
		Model: goopenai.EmbeddingModel(c.model),
		Input: []string{text},
	})
	if err != nil {
		return nil, &embedding.ServiceError{Backend: "openai", Err: err}
	}
	if len(resp.Data) == 0 {
		return nil, &embedding.ServiceError{Backend: "openai", Err: fmt.Errorf("no embedding data returned")}
	}

	raw := resp.Data[0].Embedding
	vec := make([]float64, len(raw))
	for i, v := range raw {
		vec[i] = float64(v)
	}
	c.dimension.CompareAndSwap(0, int64(len(vec)))
	return vec, nil
}

// EmbedBatch embeds each text in order.
func (c *Client) EmbedBatch(texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vec, err := c.Embed(text)
		if err != nil {
			return nil, fmt.Errorf("embed text %d/%d: %w", i+1, len(texts), err)
		}
		vectors[i] = vec
	}
	return vectors, nil
}
