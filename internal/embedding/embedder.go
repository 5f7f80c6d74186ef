package embedding

import "fmt"

// Embedder converts free text into a fixed-dimension numeric vector.
// For a fixed model the same input yields the same vector, so retrieval
// stays deterministic across ingest and query.
type Embedder interface {
	// ModelInfo identifies the backend and model, e.g. "ollama/nomic-embed-text".
	ModelInfo() string
	// Dimension is the vector length, or 0 until the first embedding is produced.
	Dimension() int
	Embed(text string) ([]float64, error)
	EmbedBatch(texts []string) ([][]float64, error)
}

// ServiceError reports a failure talking to the embedding model: the
// endpoint was unreachable, timed out, or returned a malformed response.
type ServiceError struct {
	Backend string
	Err     error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("embedding service (%s): %v", e.Backend, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }
