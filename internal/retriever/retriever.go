package retriever

import (
	"fmt"

	"github.com/shyam20433/PDF-extractor-RAG/internal/domain"
	"github.com/shyam20433/PDF-extractor-RAG/internal/embedding"
	"github.com/shyam20433/PDF-extractor-RAG/internal/vectorstore"
)

// DefaultTopK is the number of chunks retrieved per question when the
// configuration does not say otherwise.
const DefaultTopK = 3

// Retriever embeds a question and finds the closest chunks in the store.
type Retriever struct {
	embedder embedding.Embedder
	topK     int
}

// New creates a retriever. A non-positive topK falls back to DefaultTopK.
func New(embedder embedding.Embedder, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{embedder: embedder, topK: topK}
}

// Retrieve returns the ranked (chunk, distance) pairs for the question.
// An empty index yields an empty result without calling the embedding
// model, so querying before any ingest stays cheap and error-free.
func (r *Retriever) Retrieve(index vectorstore.Index, question string) ([]domain.SearchResult, error) {
	if index == nil || index.Len() == 0 {
		return nil, nil
	}
	vec, err := r.embedder.Embed(question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	return index.Search(vec, r.topK)
}
