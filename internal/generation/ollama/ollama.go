package ollama

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shyam20433/PDF-extractor-RAG/internal/generation"
)

const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "llama3.2"
	defaultTimeout = 120 * time.Second
)

// Client requests single-shot completions from a local Ollama endpoint.
type Client struct {
	baseURL string
	model   string
	client  *http.Client
}

// Config configures the Ollama generation client.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewClient creates a generation client with defaults applied.
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

// Generate sends the prompt and returns the completed text.
func (c *Client) Generate(prompt string) (string, error) {
	payload := map[string]any{
		"model":  c.model,
		"prompt": prompt,
		"stream": false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal generation request: %w", err)
	}

	resp, err := c.client.Post(c.baseURL+"/api/generate", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", &generation.ServiceError{Backend: "ollama", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &generation.ServiceError{Backend: "ollama", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &generation.ServiceError{
			Backend: "ollama",
			Err:     fmt.Errorf("generation request failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))),
		}
	}

	var parsed struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &generation.ServiceError{Backend: "ollama", Err: fmt.Errorf("parse generation response: %w", err)}
	}
	if strings.TrimSpace(parsed.Response) == "" {
		return "", &generation.ServiceError{Backend: "ollama", Err: fmt.Errorf("generation response was empty")}
	}
	return strings.TrimSpace(parsed.Response), nil
}
