package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shyam20433/PDF-extractor-RAG/internal/chunker"
	"github.com/shyam20433/PDF-extractor-RAG/internal/config"
	"github.com/shyam20433/PDF-extractor-RAG/internal/embedding"
	embollama "github.com/shyam20433/PDF-extractor-RAG/internal/embedding/ollama"
	embopenai "github.com/shyam20433/PDF-extractor-RAG/internal/embedding/openai"
	"github.com/shyam20433/PDF-extractor-RAG/internal/generation"
	genollama "github.com/shyam20433/PDF-extractor-RAG/internal/generation/ollama"
	genopenai "github.com/shyam20433/PDF-extractor-RAG/internal/generation/openai"
	"github.com/shyam20433/PDF-extractor-RAG/internal/persistence"
	"github.com/shyam20433/PDF-extractor-RAG/internal/retriever"
	"github.com/shyam20433/PDF-extractor-RAG/internal/synthesizer"
)

// FromConfig assembles an engine with the backend the config selects.
func FromConfig(cfg *config.AppConfig, log *zap.Logger) (*Engine, error) {
	emb, gen, err := buildBackends(cfg)
	if err != nil {
		return nil, err
	}
	ch, err := chunker.New(cfg.Chunker.Size, cfg.Chunker.Overlap)
	if err != nil {
		return nil, err
	}
	ret := retriever.New(emb, cfg.Retrieval.TopK)
	synth := synthesizer.New(gen, cfg.Retrieval.MaxDistance)
	persist := persistence.NewManager(cfg.Storage.DataDir)
	return NewEngine(ch, emb, ret, synth, persist, log), nil
}

func buildBackends(cfg *config.AppConfig) (embedding.Embedder, generation.Generator, error) {
	switch cfg.Models.Backend {
	case "ollama", "":
		oc := cfg.Models.Ollama
		if oc == nil {
			oc = &config.OllamaConfig{}
		}
		timeout := time.Duration(oc.TimeoutSecs) * time.Second
		emb := embollama.NewClient(embollama.Config{
			BaseURL: oc.BaseURL,
			Model:   oc.EmbedModel,
			Timeout: timeout,
		})
		gen := genollama.NewClient(genollama.Config{
			BaseURL: oc.BaseURL,
			Model:   oc.GenerateModel,
			Timeout: timeout,
		})
		return emb, gen, nil
	case "openai":
		oc := cfg.Models.OpenAI
		if oc == nil {
			return nil, nil, fmt.Errorf("openai backend selected but not configured")
		}
		timeout := time.Duration(oc.TimeoutSecs) * time.Second
		emb, err := embopenai.NewClient(embopenai.Config{
			BaseURL:   oc.BaseURL,
			APIKeyEnv: oc.APIKeyEnv,
			Model:     oc.EmbedModel,
			Timeout:   timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		gen, err := genopenai.NewClient(genopenai.Config{
			BaseURL:   oc.BaseURL,
			APIKeyEnv: oc.APIKeyEnv,
			Model:     oc.GenerateModel,
			Timeout:   timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return emb, gen, nil
	default:
		return nil, nil, fmt.Errorf("unknown models backend %q", cfg.Models.Backend)
	}
}
