package ollama

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyam20433/PDF-extractor-RAG/internal/embedding"
)

func newFakeOllama(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestEmbedSuccess(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := newFakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{"embedding": []float64{0.1, 0.2, 0.3}})
	})

	c := NewClient(Config{BaseURL: srv.URL, Model: "nomic-embed-text"})
	vec, err := c.Embed("hello")
	require.NoError(t, err)

	assert.Equal(t, "/api/embeddings", gotPath)
	assert.Equal(t, "nomic-embed-text", gotBody["model"])
	assert.Equal(t, "hello", gotBody["prompt"])
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, 3, c.Dimension())
	assert.Equal(t, "ollama/nomic-embed-text", c.ModelInfo())
}

func TestEmbedServerErrorRetriesOnce(t *testing.T) {
	attempts := 0
	srv := newFakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			http.Error(w, "model not loaded", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"embedding": []float64{1, 2}})
	})

	c := NewClient(Config{BaseURL: srv.URL})
	vec, err := c.Embed("hello")
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, []float64{1, 2}, vec)
}

func TestEmbedPersistentFailure(t *testing.T) {
	attempts := 0
	srv := newFakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.Embed("hello")
	require.Error(t, err)

	var svcErr *embedding.ServiceError
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "ollama", svcErr.Backend)
	assert.Equal(t, 2, attempts, "one bounded retry, no more")
}

func TestEmbedMalformedResponseNotRetried(t *testing.T) {
	attempts := 0
	srv := newFakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		_, _ = w.Write([]byte("{not json"))
	})

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.Embed("hello")
	require.Error(t, err)

	var svcErr *embedding.ServiceError
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 1, attempts)
}

func TestEmbedEmptyVector(t *testing.T) {
	srv := newFakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"embedding": []float64{}})
	})

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.Embed("hello")
	assert.Error(t, err)
}

func TestEmbedUnreachableEndpoint(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:1", Timeout: 500 * time.Millisecond})
	_, err := c.Embed("hello")

	var svcErr *embedding.ServiceError
	assert.ErrorAs(t, err, &svcErr)
}

func TestEmbedConcurrent(t *testing.T) {
	srv := newFakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"embedding": []float64{0.1, 0.2, 0.3}})
	})

	// Questions may arrive in parallel on a fresh client, so the first
	// embeddings race to learn the dimension.
	c := NewClient(Config{BaseURL: srv.URL})
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Embed("hello")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 3, c.Dimension())
}

func TestEmbedBatchPreservesOrder(t *testing.T) {
	srv := newFakeOllama(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string `json:"prompt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_ = json.NewEncoder(w).Encode(map[string]any{"embedding": []float64{float64(len(req.Prompt))}})
	})

	c := NewClient(Config{BaseURL: srv.URL})
	vectors, err := c.EmbedBatch([]string{"a", "bb", "ccc"})
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	assert.Equal(t, []float64{1}, vectors[0])
	assert.Equal(t, []float64{2}, vectors[1])
	assert.Equal(t, []float64{3}, vectors[2])
}
