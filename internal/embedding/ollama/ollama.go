package ollama

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shyam20433/PDF-extractor-RAG/internal/embedding"
)

const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "nomic-embed-text"
	defaultTimeout = 30 * time.Second
)

// Client requests embeddings from a local Ollama endpoint. It is safe for
// concurrent use; the dimension is learned atomically from the first
// successful embedding.
type Client struct {
	baseURL   string
	model     string
	client    *http.Client
	dimension atomic.Int64
}

// Config configures the Ollama embeddings client.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewClient creates an embeddings client with defaults applied.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// ModelInfo identifies the backend and model.
func (c *Client) ModelInfo() string { return "ollama/" + c.model }

// Dimension returns the vector length learned from the first embedding.
func (c *Client) Dimension() int { return int(c.dimension.Load()) }

// Embed returns the embedding vector for the given text. Transport errors
// and server-side failures get a single retry; malformed responses do not.
func (c *Client) Embed(text string) ([]float64, error) {
	vec, err := c.embedOnce(text)
	if err != nil && retryable(err) {
		vec, err = c.embedOnce(text)
	}
	if err != nil {
		return nil, &embedding.ServiceError{Backend: "ollama", Err: err}
	}
	if !c.dimension.CompareAndSwap(0, int64(len(vec))) {
		if d := int(c.dimension.Load()); d != len(vec) {
			return nil, &embedding.ServiceError{
				Backend: "ollama",
				Err:     fmt.Errorf("embedding dimension changed from %d to %d", d, len(vec)),
			}
		}
	}
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

func (c *Client) embedOnce(text string) ([]float64, error) {
	payload := map[string]any{
		"model":  c.model,
		"prompt": text,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal embedding request: %w", err)
	}

	resp, err := c.client.Post(c.baseURL+"/api/embeddings", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, &transportError{err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &transportError{err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{status: resp.StatusCode, body: strings.TrimSpace(string(raw))}
	}

	var parsed struct {
		Embedding []float64 `json:"embedding"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse embedding response: %w", err)
	}
	if len(parsed.Embedding) == 0 {
		return nil, fmt.Errorf("embedding response returned empty vector")
	}
	return parsed.Embedding, nil
}

type transportError struct{ err error }

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("embedding request failed: status %d: %s", e.status, e.body)
}

func retryable(err error) bool {
	switch e := err.(type) {
	case *transportError:
		return true
	case *statusError:
		return e.status == http.StatusTooManyRequests || e.status >= 500
	default:
		return false
	}
}
