package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyam20433/PDF-extractor-RAG/internal/chunker"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.Models.Backend)
	assert.Equal(t, 500, cfg.Chunker.Size)
	assert.Equal(t, 100, cfg.Chunker.Overlap)
	assert.Equal(t, 3, cfg.Retrieval.TopK)
	assert.Equal(t, "data", cfg.Storage.DataDir)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "models:\n  backend: ollama\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Models.Ollama)
	assert.Equal(t, "nomic-embed-text", cfg.Models.Ollama.EmbedModel)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadDefaultsOverlapWhenOnlySizeSet(t *testing.T) {
	path := writeConfig(t, "chunker:\n  size: 300\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 300, cfg.Chunker.Size)
	assert.Equal(t, chunker.DefaultOverlap, cfg.Chunker.Overlap)
}

func TestLoadSkipsOverlapDefaultForSmallSize(t *testing.T) {
	path := writeConfig(t, "chunker:\n  size: 50\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Chunker.Size)
	assert.Equal(t, 0, cfg.Chunker.Overlap)
}

func TestLoadRejectsOverlapAtLeastSize(t *testing.T) {
	path := writeConfig(t, "chunker:\n  size: 100\n  overlap: 100\n")
	_, err := Load(path)
	assert.ErrorIs(t, err, chunker.ErrInvalidOverlap)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, "models:\n  backend: acmecloud\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := defaultConfig()
	cfg.Retrieval.TopK = 7
	cfg.Retrieval.MaxDistance = 1.25
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Retrieval.TopK)
	assert.Equal(t, 1.25, loaded.Retrieval.MaxDistance)
}
