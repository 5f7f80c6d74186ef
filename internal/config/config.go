package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/shyam20433/PDF-extractor-RAG/internal/chunker"
)

// OllamaConfig holds connection details for a local Ollama endpoint.
type OllamaConfig struct {
	BaseURL       string `yaml:"base_url"`
	EmbedModel    string `yaml:"embed_model"`
	GenerateModel string `yaml:"generate_model"`
	TimeoutSecs   int    `yaml:"timeout_secs"`
}

// OpenAIConfig holds connection details for an OpenAI-compatible endpoint.
type OpenAIConfig struct {
	BaseURL       string `yaml:"base_url"`
	APIKeyEnv     string `yaml:"api_key_env"`
	EmbedModel    string `yaml:"embed_model"`
	GenerateModel string `yaml:"generate_model"`
	TimeoutSecs   int    `yaml:"timeout_secs"`
}

// ModelsConfig selects and configures the embedding/generation backend.
type ModelsConfig struct {
	Backend string        `yaml:"backend"`
	Ollama  *OllamaConfig `yaml:"ollama,omitempty"`
	OpenAI  *OpenAIConfig `yaml:"openai,omitempty"`
}

// ChunkerConfig configures how the document text is split into windows.
type ChunkerConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// RetrievalConfig configures top-K retrieval and the relevance threshold.
// MaxDistance is on the squared L2 distance; zero disables the check.
type RetrievalConfig struct {
	TopK        int     `yaml:"top_k"`
	MaxDistance float64 `yaml:"max_distance"`
}

// StorageConfig configures where the built store is persisted.
type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
}

// ServerConfig configures the HTTP front end.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Models    ModelsConfig    `yaml:"models"`
	Chunker   ChunkerConfig   `yaml:"chunker"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Storage   StorageConfig   `yaml:"storage"`
	Server    ServerConfig    `yaml:"server"`
	Debug     bool            `yaml:"debug"`
}

// Load reads a config from the specified path. If the file does not exist,
// it returns defaults. Invalid chunker settings are rejected here so a bad
// overlap fails at startup, not mid-ingest.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/pdfrag/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pdfrag", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Models: ModelsConfig{
			Backend: "ollama",
			Ollama: &OllamaConfig{
				BaseURL:       "http://localhost:11434",
				EmbedModel:    "nomic-embed-text",
				GenerateModel: "llama3.2",
				TimeoutSecs:   120,
			},
		},
		Chunker:   ChunkerConfig{Size: chunker.DefaultSize, Overlap: chunker.DefaultOverlap},
		Retrieval: RetrievalConfig{TopK: 3},
		Storage:   StorageConfig{DataDir: "data"},
		Server:    ServerConfig{Addr: ":8080"},
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Chunker.Size == 0 {
		cfg.Chunker.Size = chunker.DefaultSize
	}
	// Skip the overlap default when it would not fit a small explicit size.
	if cfg.Chunker.Overlap == 0 && chunker.DefaultOverlap < cfg.Chunker.Size {
		cfg.Chunker.Overlap = chunker.DefaultOverlap
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 3
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = "data"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Models.Backend == "" {
		cfg.Models.Backend = "ollama"
	}
	if cfg.Models.Backend == "ollama" && cfg.Models.Ollama == nil {
		cfg.Models.Ollama = defaultConfig().Models.Ollama
	}
	if cfg.Models.Backend == "openai" && cfg.Models.OpenAI != nil {
		if cfg.Models.OpenAI.APIKeyEnv == "" {
			cfg.Models.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Models.OpenAI.EmbedModel == "" {
			cfg.Models.OpenAI.EmbedModel = "text-embedding-3-small"
		}
		if cfg.Models.OpenAI.GenerateModel == "" {
			cfg.Models.OpenAI.GenerateModel = "gpt-4o-mini"
		}
		if cfg.Models.OpenAI.TimeoutSecs == 0 {
			cfg.Models.OpenAI.TimeoutSecs = 120
		}
	}
}

func validate(cfg *AppConfig) error {
	if cfg.Chunker.Size <= 0 {
		return fmt.Errorf("chunker size must be positive, got %d", cfg.Chunker.Size)
	}
	if cfg.Chunker.Overlap < 0 {
		return fmt.Errorf("chunker overlap must not be negative, got %d", cfg.Chunker.Overlap)
	}
	if cfg.Chunker.Overlap >= cfg.Chunker.Size {
		return chunker.ErrInvalidOverlap
	}
	switch cfg.Models.Backend {
	case "ollama", "openai":
	default:
		return fmt.Errorf("unknown models backend %q", cfg.Models.Backend)
	}
	return nil
}
